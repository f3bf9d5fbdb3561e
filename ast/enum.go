package ast

// Enum is an `enum Name { ... }` declaration.
type Enum struct {
	Name           Ident
	Values         []*EnumValue
	Options        []Option
	ReservedRanges []*ReservedRange
	ReservedNames  []*ReservedNames
	Sp             Span
	Comments       EntityComments
}

// EnumValue is a single `NAME = N [options];` entry inside an enum body.
type EnumValue struct {
	Name     Ident
	Number   Int
	Options  []Option
	Sp       Span
	Comments EntityComments
}
