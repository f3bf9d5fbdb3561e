package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

// parseValue parses an option/default/message-literal-field value: a
// scalar literal, an identifier (enum value name, or predeclared
// true/false), a text-format aggregate, or an array.
func (p *parser) parseValue() ast.Value {
	if p.isPunct(0, '-') && (p.peek(1).kind == tokInt || p.peek(1).kind == tokFloat) {
		minus := p.next()
		num := p.next()
		sp := p.spanOf(minus, num)
		if num.kind == tokInt {
			return ast.Value{Kind: ast.ValueInt, Int: ast.Int{Value: num.intVal, Negative: true, Sp: sp}, Sp: sp}
		}
		return ast.Value{Kind: ast.ValueFloat, Float: ast.Float{Value: -num.floatVal, Sp: sp}, Sp: sp}
	}

	t := p.peek(0)
	switch t.kind {
	case tokInt:
		p.next()
		return ast.Value{Kind: ast.ValueInt, Int: ast.Int{Value: t.intVal, Sp: t.sp}, Sp: t.sp}
	case tokFloat:
		p.next()
		return ast.Value{Kind: ast.ValueFloat, Float: ast.Float{Value: t.floatVal, Sp: t.sp}, Sp: t.sp}
	case tokString:
		p.next()
		str := ast.StringLiteral{Value: t.strVal, Sp: t.sp}
		sp := t.sp
		// adjacent string literals concatenate, as in C.
		for p.peek(0).kind == tokString {
			n := p.next()
			str.Value = append(append([]byte{}, str.Value...), n.strVal...)
			sp.End = n.sp.End
		}
		str.Sp = sp
		return ast.Value{Kind: ast.ValueString, Str: str, Sp: sp}
	case tokIdent:
		p.next()
		switch t.ident {
		case "true":
			return ast.Value{Kind: ast.ValueBool, Bool: ast.Bool{Value: true, Sp: t.sp}, Sp: t.sp}
		case "false":
			return ast.Value{Kind: ast.ValueBool, Bool: ast.Bool{Value: false, Sp: t.sp}, Sp: t.sp}
		default:
			return ast.Value{Kind: ast.ValueIdent, Ident: ast.Ident{Name: t.ident, Sp: t.sp}, Sp: t.sp}
		}
	case tokPunct:
		switch t.punct {
		case '{':
			return p.parseAggregate()
		case '[':
			return p.parseArray()
		}
	}
	p.errorf(t, report.KindUnexpectedToken, "expected a value")
	return ast.Value{Kind: ast.ValueIdent, Sp: t.sp}
}

// parseAggregate parses a `{ field* }` text-format message literal,
// switching the lexer into ModeTextFormat for its contents.
func (p *parser) parseAggregate() ast.Value {
	open := p.next() // '{'
	p.lex.SetMode(ModeTextFormat)

	var fields []ast.MessageLiteralField
	for !p.isPunct(0, '}') && !p.atEOF() {
		fields = append(fields, p.parseMessageLiteralField())
		if p.isPunct(0, ',') || p.isPunct(0, ';') {
			p.next()
		}
	}
	p.lex.SetMode(ModeSchema)
	closeTok, _ := p.expectPunct('}', "to close message literal")
	return ast.Value{Kind: ast.ValueAggregate, Aggregate: fields, Sp: p.spanOf(open, closeTok)}
}

func (p *parser) parseMessageLiteralField() ast.MessageLiteralField {
	name := p.parseOptionNamePart()
	if p.isPunct(0, ':') {
		p.next()
	}
	val := p.parseValue()
	return ast.MessageLiteralField{Name: name, Value: val, Sp: ast.Span{Start: name.Sp.Start, End: val.Sp.End}}
}

// parseArray parses a `[ value, ... ]` text-format array literal.
func (p *parser) parseArray() ast.Value {
	open := p.next() // '['
	p.lex.SetMode(ModeTextFormat)

	var vals []ast.Value
	for !p.isPunct(0, ']') && !p.atEOF() {
		vals = append(vals, p.parseValue())
		if p.isPunct(0, ',') {
			p.next()
		}
	}
	p.lex.SetMode(ModeSchema)
	closeTok, _ := p.expectPunct(']', "to close array literal")
	return ast.Value{Kind: ast.ValueArray, Array: vals, Sp: p.spanOf(open, closeTok)}
}

// parseCompactOptions parses the optional `[ option, ... ]` suffix found on
// fields, enum values, extension ranges, and so on.
func (p *parser) parseCompactOptions() []ast.Option {
	if !p.isPunct(0, '[') {
		return nil
	}
	p.next()
	var opts []ast.Option
	for {
		startTok := p.peek(0)
		name := p.parseOptionName()
		if _, ok := p.expectPunct('=', "after option name"); !ok {
			p.synchronize()
			break
		}
		val := p.parseValue()
		opts = append(opts, ast.Option{
			Name: name,
			Value: val,
			Sp:   ast.Span{Start: startTok.sp.Start, End: val.Sp.End},
		})
		if p.isPunct(0, ',') {
			p.next()
			continue
		}
		break
	}
	p.expectPunct(']', "to close compact options")
	return opts
}
