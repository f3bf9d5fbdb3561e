package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

// parseService parses a `service Name { ... }` declaration.
func (p *parser) parseService() *ast.Service {
	startTok := p.next() // "service"
	name, _ := p.expectIdent("naming the service")
	p.expectPunct('{', "to begin service body")

	s := &ast.Service{Name: name}
	for !p.isPunct(0, '}') && !p.atEOF() {
		switch {
		case p.isPunct(0, ';'):
			p.next()
		case p.isKeyword(0, "option"):
			s.Options = append(s.Options, p.parseOptionStatement())
		case p.isKeyword(0, "rpc"):
			s.Methods = append(s.Methods, p.parseMethod())
		default:
			t := p.peek(0)
			p.errorf(t, report.KindUnexpectedToken, "expected an rpc or option declaration")
			p.synchronize()
		}
	}
	endTok, _ := p.expectPunct('}', "to end service body")
	s.Sp = p.spanOf(startTok, endTok)
	s.Comments = p.nodeComments(startTok.tok, endTok.tok)
	return s
}

// parseMethod parses `rpc Name ([stream] In) returns ([stream] Out) (";" | "{" option* "}")`.
func (p *parser) parseMethod() *ast.Method {
	startTok := p.next() // "rpc"
	name, _ := p.expectIdent("naming the method")

	p.expectPunct('(', "before the request type")
	inStreaming, inSp := p.parseOptionalStream()
	inType := p.parseTypeName()
	p.expectPunct(')', "after the request type")

	if !p.isKeyword(0, "returns") {
		t := p.peek(0)
		p.errorf(t, report.KindUnexpectedToken, "expected \"returns\"")
	} else {
		p.next()
	}

	p.expectPunct('(', "before the response type")
	outStreaming, outSp := p.parseOptionalStream()
	outType := p.parseTypeName()
	p.expectPunct(')', "after the response type")

	var opts []ast.Option
	var endTok rawToken
	if p.isPunct(0, '{') {
		p.next()
		for !p.isPunct(0, '}') && !p.atEOF() {
			switch {
			case p.isPunct(0, ';'):
				p.next()
			case p.isKeyword(0, "option"):
				opts = append(opts, p.parseOptionStatement())
			default:
				t := p.peek(0)
				p.errorf(t, report.KindUnexpectedToken, "expected an option declaration")
				p.synchronize()
			}
		}
		endTok, _ = p.expectPunct('}', "to end method body")
	} else {
		endTok, _ = p.expectPunct(';', "to end method declaration")
	}

	return &ast.Method{
		Name:            name,
		InputType:       inType,
		InputStreaming:  inStreaming,
		InputStreamSp:   inSp,
		OutputType:      outType,
		OutputStreaming: outStreaming,
		OutputStreamSp:  outSp,
		Options:         opts,
		Sp:              p.spanOf(startTok, endTok),
		Comments:        p.nodeComments(startTok.tok, endTok.tok),
	}
}

func (p *parser) parseOptionalStream() (bool, ast.Span) {
	if p.isKeyword(0, "stream") {
		t := p.next()
		return true, t.sp
	}
	return false, ast.Span{}
}
