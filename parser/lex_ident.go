package parser

import "github.com/andrewhickman/protox-sub000/report"

func (l *lexer) lexIdent() rawToken {
	start := l.pos
	for !l.eof() && isIdentCont(l.peek()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	tk := l.finish(tokIdent, start, l.pos)
	tk.ident = text
	return tk
}

func (l *lexer) lexPunct() rawToken {
	start := l.pos
	c := l.peek()
	if c > 127 {
		l.advance()
		l.errorf(start, report.KindInvalidToken, "invalid character %q", c)
		return l.finish(tokError, start, l.pos)
	}
	l.advance()
	tk := l.finish(tokPunct, start, l.pos)
	tk.punct = c
	return tk
}
