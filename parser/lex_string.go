package parser

import (
	"strconv"
	"unicode/utf8"

	"github.com/andrewhickman/protox-sub000/report"
)

// errRun accumulates a contiguous run of invalid-character/invalid-escape
// errors so they can be merged into one diagnostic covering the combined
// span.
type errRun struct {
	start, end int
	kind       report.Kind
	msg        string
}

// lexString scans a string literal delimited by quote ('\'' or '"'),
// decoding escape sequences. The returned token's byte
// value need not be valid UTF-8 (non-Unicode escapes can produce arbitrary
// bytes); that is validated later, against the field's type, by the
// descriptor generator.
func (l *lexer) lexString(quote byte) rawToken {
	start := l.pos
	l.advance() // opening quote

	var buf []byte
	var merge *errRun

	flush := func() {
		if merge != nil {
			l.errorf(merge.start, merge.kind, "%s", merge.msg)
			merge = nil
		}
	}
	addErr := func(at int, kind report.Kind, msg string) {
		if merge != nil && merge.kind == kind && at == merge.end {
			merge.end = l.pos
			return
		}
		flush()
		merge = &errRun{start: at, end: l.pos, kind: kind, msg: msg}
	}

	for {
		if l.eof() {
			flush()
			l.errorf(start, report.KindUnexpectedEOF, "unexpected EOF, expected string terminator")
			return l.finish(tokError, start, l.pos)
		}
		c := l.peek()
		if c == '\n' {
			flush()
			l.errorf(start, report.KindUnterminatedString, "string literal not terminated before end of line")
			tk := l.finish(tokString, start, l.pos)
			tk.strVal = buf
			return tk
		}
		if c == quote {
			l.advance()
			break
		}
		if c == '\\' {
			escStart := l.pos
			l.advance()
			if l.eof() {
				flush()
				l.errorf(start, report.KindUnexpectedEOF, "unexpected EOF in escape sequence")
				return l.finish(tokError, start, l.pos)
			}
			if b, ok := l.lexEscape(); ok {
				buf = append(buf, b...)
			} else {
				addErr(escStart, report.KindInvalidStringEscape, "invalid escape sequence")
			}
			continue
		}
		if c > 127 {
			// non-ASCII bytes are passed through raw; validity as UTF-8 is
			// checked later against the surrounding field's type.
			buf = append(buf, c)
			l.advance()
			continue
		}
		buf = append(buf, c)
		l.advance()
	}
	flush()
	tk := l.finish(tokString, start, l.pos)
	tk.strVal = buf
	return tk
}

// lexEscape decodes one escape sequence (the leading backslash has already
// been consumed by the caller, and the escape-selector byte has not). It
// returns the decoded bytes and true, or false if the escape is invalid.
func (l *lexer) lexEscape() ([]byte, bool) {
	c := l.advance()
	switch c {
	case 'a':
		return []byte{'\a'}, true
	case 'b':
		return []byte{'\b'}, true
	case 'f':
		return []byte{'\f'}, true
	case 'n':
		return []byte{'\n'}, true
	case 'r':
		return []byte{'\r'}, true
	case 't':
		return []byte{'\t'}, true
	case 'v':
		return []byte{'\v'}, true
	case '\\':
		return []byte{'\\'}, true
	case '?':
		return []byte{'?'}, true
	case '\'':
		return []byte{'\''}, true
	case '"':
		return []byte{'"'}, true
	case 'x', 'X':
		digits := ""
		for len(digits) < 2 && !l.eof() && isHexDigit(l.peek()) {
			digits += string(l.advance())
		}
		if digits == "" {
			return nil, false
		}
		v, _ := strconv.ParseUint(digits, 16, 32)
		return []byte{byte(v)}, true
	case '0', '1', '2', '3', '4', '5', '6', '7':
		digits := string(c)
		for len(digits) < 3 && !l.eof() && l.peek() >= '0' && l.peek() <= '7' {
			digits += string(l.advance())
		}
		v, err := strconv.ParseUint(digits, 8, 32)
		if err != nil || v > 0xff {
			return nil, false
		}
		return []byte{byte(v)}, true
	case 'u':
		return l.lexUnicodeEscape(4)
	case 'U':
		return l.lexUnicodeEscape(8)
	default:
		return nil, false
	}
}

func (l *lexer) lexUnicodeEscape(n int) ([]byte, bool) {
	digits := ""
	for i := 0; i < n; i++ {
		if l.eof() || !isHexDigit(l.peek()) {
			return nil, false
		}
		digits += string(l.advance())
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, false
	}
	r := rune(v)
	if v > 0x10FFFF || (r >= 0xD800 && r <= 0xDFFF) {
		return nil, false
	}
	buf := make([]byte, utf8.UTFMax)
	sz := utf8.EncodeRune(buf, r)
	return buf[:sz], true
}
