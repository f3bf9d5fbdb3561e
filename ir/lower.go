package ir

import (
	"math"
	"strings"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/internal"
	"github.com/andrewhickman/protox-sub000/report"
)

// Lower builds the desugared IR for one file: group fields, map fields and
// proto3 explicit-optional fields are all rewritten here into their plain
// field-plus-synthetic-type form, so every later stage works on one
// uniform field shape. A file with no explicit `syntax` statement defaults
// to proto2, per the parser's BeforeSyntax/AfterSyntax/InBody state
// machine. Enum value numbers that don't fit in an int32 are reported to
// handler (which may be nil in contexts, such as tests, that don't care
// about this diagnostic) and then truncated so lowering can keep going.
// Field numbers are truncated to int32 here without a check; the
// descriptor generator range-checks them as written in the source.
func Lower(f *ast.File, handler *report.Handler) *File {
	syntax := f.Syntax
	if !f.HasSyntax {
		syntax = ast.Proto2
	}

	out := &File{
		AST:     f,
		Info:    f.Info,
		Name:    f.Name,
		Syntax:  syntax,
		Options: f.Options,
		Imports: f.Imports,
	}
	if f.Package != nil {
		out.Package = f.Package.Name.String()
	}

	l := &lowerer{info: f.Info, handler: handler}
	for _, el := range f.Elements {
		switch e := el.(type) {
		case *ast.Message:
			out.Messages = append(out.Messages, l.lowerMessage(e, syntax))
		case *ast.Enum:
			out.Enums = append(out.Enums, l.lowerEnum(e))
		case *ast.Service:
			out.Services = append(out.Services, lowerService(e))
		case *ast.Extend:
			fields, nested := l.lowerExtend(e, syntax)
			out.Extensions = append(out.Extensions, fields...)
			out.Messages = append(out.Messages, nested...)
		}
	}
	return out
}

// lowerer carries the bits of lowering state (the file's position info, for
// diagnostics; the handler to report them to) that would otherwise need to
// be threaded through every lowering function by hand.
type lowerer struct {
	info    *ast.FileInfo
	handler *report.Handler
}

func (l *lowerer) pos(sp ast.Span) ast.SourcePos {
	if l.info == nil {
		return ast.SourcePos{}
	}
	return l.info.SourcePos(sp.Start)
}

// checkEnumNumber reports InvalidEnumNumber if n doesn't fit in an int32;
// enum numbers (unlike field numbers) may be any 32-bit signed value.
func (l *lowerer) checkEnumNumber(sp ast.Span, n int64) {
	if l.handler == nil {
		return
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		l.handler.HandleDiagnostic(report.New(report.KindInvalidEnumNumber, l.pos(sp),
			"enum numbers must be between %d and %d", math.MinInt32, math.MaxInt32))
	}
}

func (l *lowerer) lowerMessage(am *ast.Message, syntax ast.Syntax) *Message {
	m := &Message{AST: am, Name: am.Name.Name, Span: am.Sp}

	for _, el := range am.Elements {
		switch e := el.(type) {
		case *ast.Field:
			m.Fields = append(m.Fields, lowerField(e))
		case *ast.GroupField:
			f, nested := l.lowerGroup(e, syntax)
			m.Fields = append(m.Fields, f)
			m.NestedMessages = append(m.NestedMessages, nested)
		case *ast.MapField:
			f, nested := lowerMap(e)
			m.Fields = append(m.Fields, f)
			m.NestedMessages = append(m.NestedMessages, nested)
		case *ast.Oneof:
			o := &Oneof{AST: e, Name: e.Name.Name, Span: e.Sp, Options: e.Options}
			idx := len(m.OneofDecls)
			m.OneofDecls = append(m.OneofDecls, o)
			for _, of := range e.Fields {
				f := lowerField(of)
				f.OneofIndex = idx
				m.Fields = append(m.Fields, f)
			}
		case *ast.Message:
			m.NestedMessages = append(m.NestedMessages, l.lowerMessage(e, syntax))
		case *ast.Enum:
			m.NestedEnums = append(m.NestedEnums, l.lowerEnum(e))
		case *ast.Extend:
			fields, nested := l.lowerExtend(e, syntax)
			m.Extensions = append(m.Extensions, fields...)
			m.NestedMessages = append(m.NestedMessages, nested...)
		case *ast.ExtensionRange:
			m.ExtensionRanges = append(m.ExtensionRanges, e)
		case *ast.ReservedRange:
			m.ReservedRanges = append(m.ReservedRanges, e)
		case *ast.ReservedNames:
			m.ReservedNames = append(m.ReservedNames, e)
		case *ast.Option:
			m.Options = append(m.Options, *e)
		}
	}

	if syntax == ast.Proto3 {
		for _, f := range m.Fields {
			if f.OneofIndex < 0 && f.ExplicitOptional {
				f.Proto3Optional = true
				idx := len(m.OneofDecls)
				m.OneofDecls = append(m.OneofDecls, &Oneof{
					Name:      syntheticOneofName(f.Name),
					Span:      f.Span,
					Synthetic: true,
				})
				f.OneofIndex = idx
			}
		}
	}
	return m
}

// syntheticOneofName computes the synthetic oneof name for a proto3
// explicit-optional field: `_name`, or `Xname` if the field name itself
// already starts with `_` (avoiding a name collision with a second
// underscore-prefixed field).
func syntheticOneofName(fieldName string) string {
	if strings.HasPrefix(fieldName, "_") {
		return "X" + fieldName
	}
	return "_" + fieldName
}

func lowerField(e *ast.Field) *Field {
	f := &Field{
		AST:              e,
		Name:             e.Name.Name,
		Span:             e.Sp,
		Number:           int32(e.Number.Int64()),
		Label:            e.Label,
		Options:          e.Options,
		OneofIndex:       -1,
		ExplicitOptional: e.Label == ast.LabelOptional,
	}
	if len(e.Type.Parts) == 1 && !e.Type.LeadingDot {
		if t, ok := internal.ScalarFieldTypes[e.Type.Parts[0].Name]; ok {
			f.Kind = FieldScalar
			f.ScalarType = t
			return f
		}
	}
	f.Kind = FieldNamed
	f.TypeRef = e.Type
	return f
}

// lowerGroup desugars a `group` field into a normal field of kind Group
// plus the synthetic nested message backing its body.
func (l *lowerer) lowerGroup(e *ast.GroupField, syntax ast.Syntax) (*Field, *Message) {
	nested := l.lowerMessage(e.Body, syntax)
	nested.Name = e.Name.Name

	f := &Field{
		AST:        e,
		Name:       strings.ToLower(e.Name.Name),
		Span:       e.Sp,
		Number:     int32(e.Number.Int64()),
		Label:      e.Label,
		Options:    e.Options,
		OneofIndex: -1,
		Kind:       FieldGroup,
		TypeRef:    ast.TypeName{Parts: []ast.Ident{e.Name}, Sp: e.Name.Sp},
	}
	return f, nested
}

// lowerMap desugars a `map<K, V>` field into a repeated field of the
// synthetic `*Entry` message.
func lowerMap(e *ast.MapField) (*Field, *Message) {
	entryName := internal.PascalCase(e.Name.Name) + "Entry"

	keyField := &Field{Name: "key", Span: e.Sp, Number: 1, Label: ast.LabelOptional, OneofIndex: -1}
	if t, ok := internal.ScalarFieldTypes[e.KeyType.Name]; ok {
		keyField.Kind = FieldScalar
		keyField.ScalarType = t
	} else {
		keyField.Kind = FieldNamed
		keyField.TypeRef = ast.TypeName{Parts: []ast.Ident{e.KeyType}, Sp: e.KeyType.Sp}
	}

	valField := &Field{Name: "value", Span: e.Sp, Number: 2, Label: ast.LabelOptional, OneofIndex: -1}
	if len(e.ValueType.Parts) == 1 && !e.ValueType.LeadingDot {
		if t, ok := internal.ScalarFieldTypes[e.ValueType.Parts[0].Name]; ok {
			valField.Kind = FieldScalar
			valField.ScalarType = t
		}
	}
	if valField.Kind != FieldScalar {
		valField.Kind = FieldNamed
		valField.TypeRef = e.ValueType
	}

	entry := &Message{
		Name:       entryName,
		Span:       e.Sp,
		Fields:     []*Field{keyField, valField},
		IsMapEntry: true,
	}

	f := &Field{
		AST:        e,
		Name:       e.Name.Name,
		Span:       e.Sp,
		Number:     int32(e.Number.Int64()),
		Label:      ast.LabelRepeated,
		Options:    e.Options,
		OneofIndex: -1,
		Kind:       FieldNamed,
		TypeRef:    ast.TypeName{Parts: []ast.Ident{{Name: entryName}}},
	}
	return f, entry
}

// lowerExtend desugars an `extend Extendee { ... }` block into its
// constituent extension fields (plus any synthetic group-body messages they
// introduce, which belong in the same scope as the extend block itself).
func (l *lowerer) lowerExtend(e *ast.Extend, syntax ast.Syntax) ([]*Field, []*Message) {
	var fields []*Field
	var nested []*Message
	for _, el := range e.Elements {
		switch ef := el.(type) {
		case *ast.Field:
			f := lowerField(ef)
			f.IsExtension = true
			f.Extendee = e.Extendee
			fields = append(fields, f)
		case *ast.GroupField:
			f, n := l.lowerGroup(ef, syntax)
			f.IsExtension = true
			f.Extendee = e.Extendee
			fields = append(fields, f)
			nested = append(nested, n)
		}
	}
	return fields, nested
}

func (l *lowerer) lowerEnum(e *ast.Enum) *Enum {
	en := &Enum{
		AST:            e,
		Name:           e.Name.Name,
		Span:           e.Sp,
		Options:        e.Options,
		ReservedRanges: e.ReservedRanges,
		ReservedNames:  e.ReservedNames,
	}
	for _, v := range e.Values {
		n := v.Number.Int64()
		l.checkEnumNumber(v.Sp, n)
		en.Values = append(en.Values, &EnumValue{
			AST:     v,
			Name:    v.Name.Name,
			Span:    v.Sp,
			Number:  int32(n),
			Options: v.Options,
		})
	}
	return en
}

func lowerService(s *ast.Service) *Service {
	sv := &Service{AST: s, Name: s.Name.Name, Span: s.Sp, Options: s.Options}
	for _, m := range s.Methods {
		sv.Methods = append(sv.Methods, &Method{
			AST:             m,
			Name:            m.Name.Name,
			Span:            m.Sp,
			InputType:       m.InputType,
			InputStreaming:  m.InputStreaming,
			OutputType:      m.OutputType,
			OutputStreaming: m.OutputStreaming,
			Options:         m.Options,
		})
	}
	return sv
}
