package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

// parseEnum parses an `enum Name { ... }` declaration.
func (p *parser) parseEnum() *ast.Enum {
	startTok := p.next() // "enum"
	name, _ := p.expectIdent("naming the enum")
	p.expectPunct('{', "to begin enum body")

	e := &ast.Enum{Name: name}
	for !p.isPunct(0, '}') && !p.atEOF() {
		switch {
		case p.isPunct(0, ';'):
			p.next()
		case p.isKeyword(0, "option"):
			e.Options = append(e.Options, p.parseOptionStatement())
		case p.isKeyword(0, "reserved"):
			switch r := p.parseReserved().(type) {
			case *ast.ReservedRange:
				e.ReservedRanges = append(e.ReservedRanges, r)
			case *ast.ReservedNames:
				e.ReservedNames = append(e.ReservedNames, r)
			}
		default:
			e.Values = append(e.Values, p.parseEnumValue())
		}
	}
	endTok, _ := p.expectPunct('}', "to end enum body")
	e.Sp = p.spanOf(startTok, endTok)
	e.Comments = p.nodeComments(startTok.tok, endTok.tok)
	return e
}

func (p *parser) parseEnumValue() *ast.EnumValue {
	startTok := p.peek(0)
	name, _ := p.expectIdent("naming the enum value")
	p.expectPunct('=', "before enum value number")
	num := p.parseSignedInt()
	opts := p.parseCompactOptions()
	endTok, _ := p.expectPunct(';', "to end enum value declaration")
	return &ast.EnumValue{
		Name:     name,
		Number:   num,
		Options:  opts,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}

// parseSignedInt parses an (optionally negative) integer literal, as used
// for enum value numbers, which unlike field numbers may be negative.
func (p *parser) parseSignedInt() ast.Int {
	if p.isPunct(0, '-') {
		minus := p.next()
		t := p.peek(0)
		if t.kind != tokInt {
			p.errorf(t, report.KindUnexpectedToken, "expected integer literal")
			return ast.Int{Negative: true, Sp: minus.sp}
		}
		p.next()
		return ast.Int{Value: t.intVal, Negative: true, Sp: p.spanOf(minus, t)}
	}
	t := p.peek(0)
	if t.kind != tokInt {
		p.errorf(t, report.KindUnexpectedToken, "expected integer literal")
		return ast.Int{Sp: t.sp}
	}
	p.next()
	return ast.Int{Value: t.intVal, Sp: t.sp}
}
