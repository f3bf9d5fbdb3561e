package ast

// Label is a field's cardinality marker.
type Label int

const (
	LabelNone Label = iota
	LabelOptional
	LabelRequired
	LabelRepeated
)

// MessageElement is implemented by every node that can appear directly in a
// message (or extend) body, in source order. The descriptor generator and
// IR builder both rely on this ordering to interleave synthetic nested
// types (from groups and maps) with user-declared ones at the correct
// position.
type MessageElement interface {
	isMessageElement()
}

// Field is a normal (non-group, non-map) field declaration.
type Field struct {
	Label    Label
	LabelSp  Span
	Type     TypeName
	Name     Ident
	Number   Int
	Options  []Option
	Sp       Span
	Comments EntityComments

	// A Field carries no oneof index of its own: membership in a
	// user-declared oneof is recorded by parenting the Field under a Oneof
	// node, and the index (including proto3-optional synthetic oneofs) is
	// assigned during IR lowering, see ir.Field.OneofIndex.
}

func (*Field) isMessageElement() {}

// GroupField is the sugared `[label] group Name = N { ... }` field. The
// parser does not desugar it; see ir.Lower for the expansion into a field +
// synthetic nested message.
type GroupField struct {
	Label    Label
	LabelSp  Span
	Name     Ident
	Number   Int
	Options  []Option
	Body     *Message
	Sp       Span
	Comments EntityComments
}

func (*GroupField) isMessageElement() {}

// MapField is the sugared `map<K, V> name = N;` field.
type MapField struct {
	KeyType   Ident
	ValueType TypeName
	Name      Ident
	Number    Int
	Options   []Option
	Sp        Span
	Comments  EntityComments
}

func (*MapField) isMessageElement() {}

// Oneof is a user-declared `oneof name { ... }` group. Only Field elements
// (never groups, maps, or further oneofs) may appear inside.
type Oneof struct {
	Name     Ident
	Fields   []*Field
	Options  []Option
	Sp       Span
	Comments EntityComments
}

func (*Oneof) isMessageElement() {}

func (*ExtensionRange) isMessageElement() {}
func (*ReservedRange) isMessageElement()  {}
func (*ReservedNames) isMessageElement()  {}
func (*Option) isMessageElement()         {}
func (*Enum) isMessageElement()           {}
func (*Extend) isMessageElement()         {}

// Message is a `message Name { ... }` declaration (top-level or nested).
type Message struct {
	Name     Ident
	Elements []MessageElement
	Sp       Span
	Comments EntityComments

	// IsGroupBody is true for the synthetic-by-source-shape message that
	// backs a GroupField's Body: it is still a real AST node (the group's
	// `{ ... }` body), just one that the IR stage will also represent as a
	// field+nested-message pair rather than a plain nested message.
	IsGroupBody bool
}

func (*Message) isMessageElement() {}

// Extend is an `extend Extendee { ... }` block. Only fields and groups may
// appear inside.
type Extend struct {
	Extendee TypeName
	Elements []MessageElement
	Sp       Span
	Comments EntityComments
}
