package ast

// Service is a `service Name { ... }` declaration.
type Service struct {
	Name     Ident
	Methods  []*Method
	Options  []Option
	Sp       Span
	Comments EntityComments
}

// Method is an `rpc Name ([stream] In) returns ([stream] Out) [{...}];`
// declaration.
type Method struct {
	Name            Ident
	InputType       TypeName
	InputStreaming  bool
	InputStreamSp   Span
	OutputType      TypeName
	OutputStreaming bool
	OutputStreamSp  Span
	Options         []Option
	Sp              Span
	Comments        EntityComments
}
