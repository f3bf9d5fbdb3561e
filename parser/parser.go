// Package parser turns .proto source text into an ast.File: a lexer
// (lexer.go and lex_*.go) produces a flat token stream, and a recursive
// descent parser (parse_*.go) consumes it according to the proto2/proto3
// grammar, attaching comments and positions from the same ast.FileInfo the
// lexer built.
//
// Like the lexer, the parser never aborts on a malformed construct: it
// reports a diagnostic, skips forward to a recognizable synchronization
// point (the next ';' or matching '}'), and keeps parsing, so one call can
// surface every syntax error in a file instead of just the first.
package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

// Parse scans and parses one file's contents into an ast.File. Diagnostics
// are reported to handler; Parse has no error result and always returns a
// (possibly partial) file, so callers should check handler.Error() after
// Parse returns.
func Parse(filename string, src []byte, handler *report.Handler) *ast.File {
	p := &parser{
		lex:     newLexer(filename, src, ModeSchema, handler),
		handler: handler,
	}
	p.file = p.lex.FileInfo()
	f := p.parseFile()
	f.Info = p.file
	return f
}

// parser holds a small lookahead buffer over the lexer's token stream. Most
// productions in the grammar are LL(1); a handful (group vs. message,
// "stream" before an rpc type, map<...> detection) need one token of
// lookahead past the current one.
type parser struct {
	lex     *lexer
	handler *report.Handler
	file    *ast.FileInfo

	buf []rawToken

	// prevConsumed is the last token returned by next(), used by
	// constructs whose own sub-parse already consumed their closing
	// delimiter (e.g. a nested message body) to compute an enclosing
	// node's span without re-peeking.
	prevConsumed rawToken
}

// peek returns the token n positions ahead of the current one (peek(0) is
// "the current token"), filling the lookahead buffer as needed.
func (p *parser) peek(n int) rawToken {
	for len(p.buf) <= n {
		// tokNewline only ever separates text-format aggregate fields as an
		// alternative to ',' / ';'; the grammar never requires it, so the
		// parser treats it as insignificant whitespace.
		t := p.lex.Next()
		if t.kind == tokNewline {
			continue
		}
		p.buf = append(p.buf, t)
	}
	return p.buf[n]
}

// next consumes and returns the current token.
func (p *parser) next() rawToken {
	t := p.peek(0)
	p.buf = p.buf[1:]
	p.prevConsumed = t
	return t
}

func (p *parser) atEOF() bool { return p.peek(0).kind == tokEOF }

func (p *parser) isPunct(n int, c byte) bool {
	t := p.peek(n)
	return t.kind == tokPunct && t.punct == c
}

func (p *parser) isKeyword(n int, kw string) bool {
	t := p.peek(n)
	return t.kind == tokIdent && t.ident == kw
}

func (p *parser) posOf(t rawToken) ast.SourcePos { return p.file.SourcePos(t.sp.Start) }

func (p *parser) errorf(t rawToken, kind report.Kind, format string, args ...interface{}) {
	d := report.New(kind, p.posOf(t), format, args...)
	_ = p.handler.HandleDiagnostic(d)
}

// expectPunct consumes the current token if it is the punctuation c,
// reporting KindUnexpectedToken and leaving the cursor in place otherwise.
func (p *parser) expectPunct(c byte, context string) (rawToken, bool) {
	if p.isPunct(0, c) {
		return p.next(), true
	}
	t := p.peek(0)
	p.errorf(t, report.KindUnexpectedToken, "expected %q %s", string(c), context)
	return t, false
}

// expectIdent consumes the current token if it is an identifier (any
// identifier, not a specific keyword), reporting otherwise.
func (p *parser) expectIdent(context string) (ast.Ident, bool) {
	t := p.peek(0)
	if t.kind != tokIdent {
		p.errorf(t, report.KindUnexpectedToken, "expected identifier %s", context)
		return ast.Ident{}, false
	}
	p.next()
	return ast.Ident{Name: t.ident, Sp: t.sp}, true
}

func (p *parser) nodeComments(start, end ast.Token) ast.EntityComments {
	return p.file.CommentsFor(start, end)
}

func (p *parser) spanOf(start, end rawToken) ast.Span {
	return ast.Span{Start: start.sp.Start, End: end.sp.End}
}

// synchronize skips tokens until a statement boundary: a top-level ';' is
// consumed and the call returns, or a '}' that would close an enclosing
// body is left unconsumed for the caller, or EOF is reached. depth counts
// '{'/'}' pairs opened since synchronize started, so a ';' nested inside a
// skipped aggregate value doesn't falsely end the recovery.
func (p *parser) synchronize() {
	depth := 0
	for {
		t := p.peek(0)
		switch {
		case t.kind == tokEOF:
			return
		case t.kind == tokPunct && t.punct == '{':
			depth++
			p.next()
		case t.kind == tokPunct && t.punct == '}':
			if depth == 0 {
				return
			}
			depth--
			p.next()
		case t.kind == tokPunct && t.punct == ';' && depth == 0:
			p.next()
			return
		default:
			p.next()
		}
	}
}
