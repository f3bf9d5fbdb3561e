package parser

import "github.com/andrewhickman/protox-sub000/report"

// lexLineComment scans a `//` comment through end of line (exclusive) and
// queues it for attribution by the next finish call.
func (l *lexer) lexLineComment() {
	start := l.pos
	l.advance()
	l.advance()
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
	l.queueComment(start, l.pos)
}

// lexHashComment scans a `#` comment through end of line (exclusive). Only
// reachable in text-format mode; schema mode rejects '#' before calling in.
func (l *lexer) lexHashComment() {
	start := l.pos
	l.advance()
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
	l.queueComment(start, l.pos)
}

// lexBlockComment scans a `/* ... */` comment. A `/*` found before the
// closing `*/` is reported but does not nest: scanning still
// stops at the first `*/`. Reaching EOF without a closing `*/` is reported
// as an unexpected EOF.
func (l *lexer) lexBlockComment() {
	start := l.pos
	l.advance()
	l.advance()

	for {
		if l.eof() {
			l.errorf(start, report.KindUnexpectedEOF, "unexpected EOF, expected comment terminator \"*/\"")
			l.queueComment(start, l.pos)
			return
		}
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			l.queueComment(start, l.pos)
			return
		}
		if l.peek() == '/' && l.peekAt(1) == '*' {
			l.errorf(l.pos, report.KindNestedBlockComment, "block comments cannot be nested")
		}
		l.advance()
	}
}

func (l *lexer) queueComment(start, end int) {
	tok := l.file.AddToken(start, end-start)
	l.pendingComments = append(l.pendingComments, tok)
}
