package parser

import "github.com/andrewhickman/protox-sub000/ast"

// tokenKind classifies a lexed token. This is the lexer's own vocabulary,
// distinct from (and lower-level than) the AST node types the parser builds
// from a stream of these.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokPunct
	tokNewline // only emitted in text-format mode, see Mode in lexer.go
	tokError
)

// rawToken is one entry in the lexer's output stream: a classification, the
// ast.Token handle into the file's token table (for span/comment lookup),
// and the decoded literal value, if any.
type rawToken struct {
	kind tokenKind
	tok  ast.Token
	sp   ast.Span

	ident  string
	intVal uint64
	// The lexer never produces a sign; sign folding for "-123" happens in
	// the parser.
	floatVal float64
	strVal   []byte
	punct    byte
}
