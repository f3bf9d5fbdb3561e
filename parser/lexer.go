package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

// Mode selects the lexer's dialect: schema mode tokenizes ordinary
// `.proto` syntax, text-format mode tokenizes the option-aggregate literal
// syntax embedded inside `[ ... ]` and `{ ... }` value positions.
type Mode int

const (
	ModeSchema Mode = iota
	ModeTextFormat
)

// lexer is a byte-at-a-time scanner producing a flat token stream. Errors
// are non-fatal: on an unexpected byte, it emits an error token, advances
// one byte, and keeps going, so one pass can surface many lexical issues
// instead of stopping at the first.
type lexer struct {
	src  []byte
	pos  int
	mode Mode

	file    *ast.FileInfo
	handler *report.Handler

	// prevTok is the most recently emitted non-comment token, used for
	// comment attribution (leading vs. trailing).
	prevTok     ast.Token
	havePrevTok bool

	pendingComments []ast.Token
}

// SetMode switches the lexer's dialect mid-stream. The parser uses this to
// lex a text-format aggregate value's tokens (between the `{`/`}` or `[`/`]`
// of an option value) in ModeTextFormat, then switches back once the value
// is fully parsed.
func (l *lexer) SetMode(mode Mode) { l.mode = mode }

func newLexer(filename string, src []byte, mode Mode, handler *report.Handler) *lexer {
	return &lexer{
		src:     src,
		mode:    mode,
		file:    ast.NewFileInfo(filename, src),
		handler: handler,
	}
}

// FileInfo returns the lexer's underlying token/line table, for the parser
// to resolve positions and attach comments.
func (l *lexer) FileInfo() *ast.FileInfo { return l.file }

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.file.AddLine(l.pos)
	}
	return c
}

func (l *lexer) posAt(offset int) ast.SourcePos { return l.file.SourcePos(offset) }

func (l *lexer) errorf(start int, kind report.Kind, format string, args ...interface{}) {
	d := report.New(kind, l.posAt(start), format, args...)
	_ = l.handler.HandleDiagnostic(d)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Next scans and returns the next token, skipping whitespace (and, outside
// text-format mode, newlines) and attaching any intervening comments to the
// returned token (as leading) or the previously returned token (as
// trailing) based on whether the comment starts on the line where the
// previous token ends.
func (l *lexer) Next() rawToken {
	for {
		if l.eof() {
			return l.finish(tokEOF, l.pos, l.pos)
		}
		c := l.peek()

		switch {
		case c == '\n':
			if l.mode == ModeTextFormat {
				start := l.pos
				l.advance()
				return l.finish(tokNewline, start, l.pos)
			}
			l.advance()
			continue
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.advance()
			continue
		case c == '/' && l.peekAt(1) == '/':
			l.lexLineComment()
			continue
		case c == '/' && l.peekAt(1) == '*':
			l.lexBlockComment()
			continue
		case c == '#' :
			if l.mode == ModeTextFormat {
				l.lexHashComment()
				continue
			}
			start := l.pos
			l.advance()
			l.errorf(start, report.KindHashCommentOutsideTextFormat, "'#' comments are only allowed in text-format values")
			return l.finish(tokError, start, l.pos)
		case isIdentStart(c):
			return l.lexIdent()
		case isDigit(c):
			return l.lexNumber()
		case c == '.' && isDigit(l.peekAt(1)):
			return l.lexNumber()
		case c == '\'' || c == '"':
			return l.lexString(c)
		default:
			return l.lexPunct()
		}
	}
}

func (l *lexer) finish(kind tokenKind, start, end int) rawToken {
	tok := l.file.AddToken(start, end-start)
	l.attributeComments(tok)
	l.prevTok = tok
	l.havePrevTok = true
	return rawToken{kind: kind, tok: tok, sp: ast.Span{Start: start, End: end}}
}

// attributeComments is called whenever a non-comment token is finalized. It
// decides, for every comment token scanned since the previous non-comment
// token, whether it's a trailing comment of the previous token (same line,
// no other tokens between) or a leading comment of the new one.
func (l *lexer) attributeComments(tok ast.Token) {
	for _, c := range l.pendingComments {
		if l.havePrevTok {
			prevEnd := l.file.SourcePos(l.file.Span(l.prevTok).End - 1).Line
			commentStart := l.file.SourcePos(l.file.Span(c).Start).Line
			if commentStart == prevEnd {
				l.file.AddComment(c, l.prevTok, false)
				continue
			}
		}
		l.file.AddComment(c, tok, true)
	}
	l.pendingComments = nil
}
