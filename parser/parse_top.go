package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

// parseFile parses an entire file: an optional leading `syntax` statement
// followed by any number of top-level declarations.
func (p *parser) parseFile() *ast.File {
	f := &ast.File{Name: p.file.Name(), Syntax: ast.SyntaxUnknown}

	startTok := p.peek(0).tok

	if p.isKeyword(0, "syntax") {
		p.parseSyntax(f)
	}

	for !p.atEOF() {
		p.parseFileElement(f)
	}

	endTok := startTok
	if len(p.buf) > 0 {
		endTok = p.buf[len(p.buf)-1].tok
	}
	f.Comments = p.nodeComments(startTok, endTok)
	return f
}

// parseSyntax parses `syntax = "proto2"|"proto3";`.
func (p *parser) parseSyntax(f *ast.File) {
	startTok := p.next() // "syntax"
	if _, ok := p.expectPunct('=', "after \"syntax\""); !ok {
		p.synchronize()
		return
	}
	t := p.peek(0)
	if t.kind != tokString {
		p.errorf(t, report.KindUnexpectedToken, "expected string literal naming the syntax")
		p.synchronize()
		return
	}
	p.next()
	switch string(t.strVal) {
	case "proto2":
		f.Syntax = ast.Proto2
	case "proto3":
		f.Syntax = ast.Proto3
	default:
		p.errorf(t, report.KindUnknownSyntax, "unknown syntax %q: must be \"proto2\" or \"proto3\"", t.strVal)
	}
	f.HasSyntax = true
	endTok, _ := p.expectPunct(';', "to end syntax statement")
	f.SyntaxSp = p.spanOf(startTok, endTok)
}

// parseFileElement parses one top-level declaration: import, package,
// option, message, enum, service, or extend.
func (p *parser) parseFileElement(f *ast.File) {
	switch {
	case p.isPunct(0, ';'):
		p.next() // empty statement
	case p.isKeyword(0, "import"):
		p.parseImport(f)
	case p.isKeyword(0, "package"):
		p.parsePackage(f)
	case p.isKeyword(0, "option"):
		f.Options = append(f.Options, p.parseOptionStatement())
	case p.isKeyword(0, "message"):
		f.Elements = append(f.Elements, p.parseMessage())
	case p.isKeyword(0, "enum"):
		f.Elements = append(f.Elements, p.parseEnum())
	case p.isKeyword(0, "service"):
		f.Elements = append(f.Elements, p.parseService())
	case p.isKeyword(0, "extend"):
		f.Elements = append(f.Elements, p.parseExtend())
	default:
		t := p.peek(0)
		p.errorf(t, report.KindUnexpectedToken, "expected a top-level declaration")
		p.synchronize()
	}
}

func (p *parser) parsePackage(f *ast.File) {
	startTok := p.next() // "package"
	name := p.parseTypeName()
	endTok, _ := p.expectPunct(';', "to end package declaration")
	if f.Package != nil {
		p.errorf(startTok, report.KindDuplicatePackage, "package name may only be declared once per file")
	}
	f.Package = &ast.Package{
		Name:     name,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}

func (p *parser) parseImport(f *ast.File) {
	startTok := p.next() // "import"
	qual := ast.ImportPlain
	qualSp := ast.Span{}
	if p.isKeyword(0, "public") {
		t := p.next()
		qual = ast.ImportPublic
		qualSp = t.sp
	} else if p.isKeyword(0, "weak") {
		t := p.next()
		qual = ast.ImportWeak
		qualSp = t.sp
	}
	t := p.peek(0)
	if t.kind != tokString {
		p.errorf(t, report.KindInvalidImport, "expected import path string")
		p.synchronize()
		return
	}
	p.next()
	endTok, _ := p.expectPunct(';', "to end import declaration")
	f.Imports = append(f.Imports, ast.Import{
		Path:        string(t.strVal),
		Qualifier:   qual,
		Sp:          p.spanOf(startTok, endTok),
		PathSp:      t.sp,
		QualifierSp: qualSp,
		Comments:    p.nodeComments(startTok.tok, endTok.tok),
	})
}

// parseOptionStatement parses `option name = value;` as used at file,
// message, enum, oneof, service, and method scope.
func (p *parser) parseOptionStatement() ast.Option {
	startTok := p.next() // "option"
	name := p.parseOptionName()
	if _, ok := p.expectPunct('=', "after option name"); !ok {
		p.synchronize()
		return ast.Option{Name: name, Sp: startTok.sp}
	}
	val := p.parseValue()
	endTok, _ := p.expectPunct(';', "to end option statement")
	return ast.Option{
		Name:     name,
		Value:    val,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}

// parseOptionName parses a dotted option name, e.g. `foo.bar` or
// `(custom.ext).field`.
func (p *parser) parseOptionName() ast.OptionName {
	var parts []ast.OptionNamePart
	startTok := p.peek(0)
	for {
		part := p.parseOptionNamePart()
		parts = append(parts, part)
		if p.isPunct(0, '.') {
			p.next()
			continue
		}
		break
	}
	endSp := startTok.sp
	if len(parts) > 0 {
		endSp = parts[len(parts)-1].Sp
	}
	return ast.OptionName{Parts: parts, Sp: ast.Span{Start: startTok.sp.Start, End: endSp.End}}
}

func (p *parser) parseOptionNamePart() ast.OptionNamePart {
	if p.isPunct(0, '(') {
		open := p.next()
		name := p.parseTypeName()
		close, _ := p.expectPunct(')', "to close extension option name")
		return ast.OptionNamePart{Name: name, IsExtension: true, Sp: p.spanOf(open, close)}
	}
	id, _ := p.expectIdent("in option name")
	return ast.OptionNamePart{Name: ast.TypeName{Parts: []ast.Ident{id}, Sp: id.Sp}, Sp: id.Sp}
}

// parseTypeName parses a (possibly leading-dot, possibly dotted) type name.
func (p *parser) parseTypeName() ast.TypeName {
	startTok := p.peek(0)
	leadingDot := false
	if p.isPunct(0, '.') {
		p.next()
		leadingDot = true
	}
	var parts []ast.Ident
	id, ok := p.expectIdent("in type name")
	if ok {
		parts = append(parts, id)
	}
	for p.isPunct(0, '.') && p.peek(1).kind == tokIdent {
		p.next()
		id, _ := p.expectIdent("in type name")
		parts = append(parts, id)
	}
	end := startTok.sp
	if len(parts) > 0 {
		end = parts[len(parts)-1].Sp
	}
	return ast.TypeName{LeadingDot: leadingDot, Parts: parts, Sp: ast.Span{Start: startTok.sp.Start, End: end.End}}
}
