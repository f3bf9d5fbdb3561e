package parser

import (
	"strconv"

	"github.com/andrewhickman/protox-sub000/report"
)

// lexNumber scans an integer or float literal starting at the current
// position (which is either a digit, or a '.' known to be followed by a
// digit).
func (l *lexer) lexNumber() rawToken {
	start := l.pos
	isHex := false
	isFloat := false

	switch {
	case l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X'):
		isHex = true
		l.advance()
		l.advance()
		for !l.eof() && isHexDigit(l.peek()) {
			l.advance()
		}
	case l.peek() == '.':
		isFloat = true
		l.advance()
		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
		l.lexExponent(&isFloat)
	default:
		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
		if !l.eof() && l.peek() == '.' && isDigit(l.peekAt(1)) {
			isFloat = true
			l.advance()
			for !l.eof() && isDigit(l.peek()) {
				l.advance()
			}
		}
		l.lexExponent(&isFloat)
	}

	suffix := false
	if !l.eof() && (l.peek() == 'f' || l.peek() == 'F') {
		sufStart := l.pos
		l.advance()
		suffix = true
		if l.mode != ModeTextFormat {
			l.errorf(sufStart, report.KindFloatSuffixOutsideTextFormat,
				"float literal suffix is only allowed in text-format values")
		}
		isFloat = true
	}

	text := string(l.src[start:l.pos])

	if isFloat {
		numText := text
		if suffix {
			numText = numText[:len(numText)-1]
		}
		f, err := strconv.ParseFloat(numText, 64)
		if err != nil {
			l.errorf(start, report.KindInvalidToken, "invalid float literal %q", numText)
			f = 0
		}
		tk := l.finish(tokFloat, start, l.pos)
		tk.floatVal = f
		return tk
	}

	if isHex {
		v, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				l.errorf(start, report.KindIntegerOutOfRange, "hexadecimal integer literal %q is out of range", text)
			} else {
				l.errorf(start, report.KindInvalidToken, "invalid hexadecimal integer literal %q", text)
			}
			v = 0
		}
		return l.finishInt(start, v)
	}
	if len(text) > 1 && text[0] == '0' {
		v, err := strconv.ParseUint(text[1:], 8, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				l.errorf(start, report.KindIntegerOutOfRange, "octal integer literal %q is out of range", text)
			} else {
				l.errorf(start, report.KindInvalidToken, "invalid octal integer literal %q", text)
			}
			v = 0
		}
		return l.finishInt(start, v)
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		l.errorf(start, report.KindIntegerOutOfRange, "integer literal %q is out of range", text)
		v = 0
	}
	return l.finishInt(start, v)
}

// lexExponent consumes a `[eE][+-]?[0-9]+` suffix if present, restoring the
// cursor (without side effects, since exponents never contain a newline) if
// what follows 'e'/'E' doesn't look like a valid exponent.
func (l *lexer) lexExponent(isFloat *bool) {
	if l.eof() || (l.peek() != 'e' && l.peek() != 'E') {
		return
	}
	save := l.pos
	l.advance()
	if !l.eof() && (l.peek() == '+' || l.peek() == '-') {
		l.advance()
	}
	if l.eof() || !isDigit(l.peek()) {
		l.pos = save
		return
	}
	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}
	*isFloat = true
}

// finishInt finalizes an integer token and checks for the
// NoSpaceBetweenIntAndIdent condition: an identifier-start byte
// immediately following, with no intervening whitespace.
func (l *lexer) finishInt(start int, v uint64) rawToken {
	tk := l.finish(tokInt, start, l.pos)
	tk.intVal = v
	if !l.eof() && isIdentStart(l.peek()) {
		l.errorf(start, report.KindNoSpaceBetweenIntAndIdent,
			"integer literal must be separated from following identifier by whitespace")
	}
	return tk
}
