package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

// parseMessage parses a `message Name { ... }` declaration.
func (p *parser) parseMessage() *ast.Message {
	startTok := p.next() // "message"
	name, _ := p.expectIdent("naming the message")
	elems := p.parseMessageBody()
	endTok := p.lastConsumed()
	return &ast.Message{
		Name:     name,
		Elements: elems,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}

// lastConsumed returns the most recently consumed token, for computing a
// node's closing span after a sub-parse that may have already advanced past
// its own closing brace.
func (p *parser) lastConsumed() rawToken {
	return p.prevConsumed
}

func (p *parser) parseMessageBody() []ast.MessageElement {
	if _, ok := p.expectPunct('{', "to begin message body"); !ok {
		p.synchronize()
		return nil
	}
	var elems []ast.MessageElement
	for !p.isPunct(0, '}') && !p.atEOF() {
		if e := p.parseMessageElement(); e != nil {
			elems = append(elems, e)
		}
	}
	p.expectPunct('}', "to end message body")
	return elems
}

// parseMessageElement parses one declaration inside a message or extend
// body. A nil return (with no element appended) means an empty statement.
func (p *parser) parseMessageElement() ast.MessageElement {
	switch {
	case p.isPunct(0, ';'):
		p.next()
		return nil
	case p.isKeyword(0, "message"):
		return p.parseMessage()
	case p.isKeyword(0, "enum"):
		return p.parseEnum()
	case p.isKeyword(0, "extend"):
		return p.parseExtend()
	case p.isKeyword(0, "option"):
		opt := p.parseOptionStatement()
		return &opt
	case p.isKeyword(0, "oneof"):
		return p.parseOneof()
	case p.isKeyword(0, "map") && p.peek(1).kind == tokPunct && p.peek(1).punct == '<':
		return p.parseMapField()
	case p.isKeyword(0, "extensions"):
		return p.parseExtensionRange()
	case p.isKeyword(0, "reserved"):
		return p.parseReserved()
	case p.isLabelKeyword(0) && p.isKeyword(1, "group"):
		return p.parseGroupField()
	case p.isKeyword(0, "group"):
		return p.parseGroupField()
	case p.isLabelKeyword(0), p.peek(0).kind == tokIdent:
		return p.parseField()
	default:
		t := p.peek(0)
		p.errorf(t, report.KindUnexpectedToken, "expected a message body declaration")
		p.synchronize()
		return nil
	}
}

func (p *parser) isLabelKeyword(n int) bool {
	t := p.peek(n)
	return t.kind == tokIdent && (t.ident == "optional" || t.ident == "required" || t.ident == "repeated")
}

func (p *parser) parseLabel() (ast.Label, ast.Span, bool) {
	if !p.isLabelKeyword(0) {
		return ast.LabelNone, ast.Span{}, false
	}
	t := p.next()
	switch t.ident {
	case "optional":
		return ast.LabelOptional, t.sp, true
	case "required":
		return ast.LabelRequired, t.sp, true
	default:
		return ast.LabelRepeated, t.sp, true
	}
}

// parseField parses a normal `[label] type name = number [options];` field.
func (p *parser) parseField() *ast.Field {
	startTok := p.peek(0)
	label, labelSp, hasLabel := p.parseLabel()
	typ := p.parseTypeName()
	name, _ := p.expectIdent("naming the field")
	p.expectPunct('=', "before field number")
	num := p.parseFieldNumber()
	opts := p.parseCompactOptions()
	endTok, _ := p.expectPunct(';', "to end field declaration")
	f := &ast.Field{
		Label:    label,
		Type:     typ,
		Name:     name,
		Number:   num,
		Options:  opts,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
	if hasLabel {
		f.LabelSp = labelSp
	}
	return f
}

func (p *parser) parseFieldNumber() ast.Int {
	t := p.peek(0)
	if t.kind != tokInt {
		p.errorf(t, report.KindUnexpectedToken, "expected field number")
		return ast.Int{Sp: t.sp}
	}
	p.next()
	return ast.Int{Value: t.intVal, Sp: t.sp}
}

// parseGroupField parses the proto2 `[label] group Name = N { ... }` sugar.
func (p *parser) parseGroupField() *ast.GroupField {
	startTok := p.peek(0)
	label, labelSp, hasLabel := p.parseLabel()
	p.next() // "group"
	name, _ := p.expectIdent("naming the group")
	if len(name.Name) > 0 && (name.Name[0] < 'A' || name.Name[0] > 'Z') {
		p.errorf(startTok, report.KindInvalidGroupName, "group name %q must start with a capital letter", name.Name)
	}
	p.expectPunct('=', "before field number")
	num := p.parseFieldNumber()
	opts := p.parseCompactOptions()
	body := &ast.Message{Name: name, IsGroupBody: true}
	body.Elements = p.parseMessageBody()
	endTok := p.lastConsumed()
	body.Sp = p.spanOf(startTok, endTok)
	body.Comments = p.nodeComments(startTok.tok, endTok.tok)
	g := &ast.GroupField{
		Label:    label,
		Name:     name,
		Number:   num,
		Options:  opts,
		Body:     body,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
	if hasLabel {
		g.LabelSp = labelSp
	}
	return g
}

// parseMapField parses `map<KeyType, ValueType> name = N [options];`.
func (p *parser) parseMapField() *ast.MapField {
	startTok := p.next() // "map"
	p.expectPunct('<', "to begin map key/value types")
	keyType, _ := p.expectIdent("naming the map key type")
	p.expectPunct(',', "between map key and value types")
	valType := p.parseTypeName()
	p.expectPunct('>', "to end map key/value types")
	name, _ := p.expectIdent("naming the map field")
	p.expectPunct('=', "before field number")
	num := p.parseFieldNumber()
	opts := p.parseCompactOptions()
	endTok, _ := p.expectPunct(';', "to end map field declaration")
	return &ast.MapField{
		KeyType:   keyType,
		ValueType: valType,
		Name:      name,
		Number:    num,
		Options:   opts,
		Sp:        p.spanOf(startTok, endTok),
		Comments:  p.nodeComments(startTok.tok, endTok.tok),
	}
}

// parseOneof parses `oneof name { field* }`.
func (p *parser) parseOneof() *ast.Oneof {
	startTok := p.next() // "oneof"
	name, _ := p.expectIdent("naming the oneof")
	p.expectPunct('{', "to begin oneof body")
	var fields []*ast.Field
	var opts []ast.Option
	for !p.isPunct(0, '}') && !p.atEOF() {
		switch {
		case p.isPunct(0, ';'):
			p.next()
		case p.isKeyword(0, "option"):
			opts = append(opts, p.parseOptionStatement())
		default:
			fields = append(fields, p.parseField())
		}
	}
	endTok, _ := p.expectPunct('}', "to end oneof body")
	if len(fields) == 0 {
		p.errorf(startTok, report.KindEmptyOneof, "oneof %q must contain at least one field", name.Name)
	}
	return &ast.Oneof{
		Name:     name,
		Fields:   fields,
		Options:  opts,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}

// parseExtend parses `extend Extendee { field* }`.
func (p *parser) parseExtend() *ast.Extend {
	startTok := p.next() // "extend"
	extendee := p.parseTypeName()
	elems := p.parseMessageBody()
	endTok := p.lastConsumed()
	for _, e := range elems {
		switch e.(type) {
		case *ast.Field, *ast.GroupField:
		default:
			p.errorf(startTok, report.KindInvalidExtendFieldKind, "extend blocks may only contain field declarations")
		}
		if f, ok := e.(*ast.Field); ok && f.Label == ast.LabelRequired {
			p.errorf(startTok, report.KindRequiredExtendField, "extension fields may not be required")
		}
	}
	return &ast.Extend{
		Extendee: extendee,
		Elements: elems,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}
