package parser

import (
	"github.com/andrewhickman/protox-sub000/ast"
)

// parseExtensionRange parses `extensions 100 to 200, 1000 [options];`.
func (p *parser) parseExtensionRange() *ast.ExtensionRange {
	startTok := p.next() // "extensions"
	ranges := p.parseRangeList()
	opts := p.parseCompactOptions()
	endTok, _ := p.expectPunct(';', "to end extensions declaration")
	return &ast.ExtensionRange{
		Ranges:   ranges,
		Options:  opts,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}

// parseReserved parses `reserved 2, 9 to 11;` or `reserved "foo", "bar";`.
// The two forms may not be mixed in one declaration.
func (p *parser) parseReserved() ast.MessageElement {
	startTok := p.next() // "reserved"
	if p.peek(0).kind == tokString {
		var names []ast.StringLiteral
		for {
			t := p.peek(0)
			if t.kind != tokString {
				break
			}
			p.next()
			names = append(names, ast.StringLiteral{Value: t.strVal, Sp: t.sp})
			if p.isPunct(0, ',') {
				p.next()
				continue
			}
			break
		}
		endTok, _ := p.expectPunct(';', "to end reserved declaration")
		return &ast.ReservedNames{
			Names:    names,
			Sp:       p.spanOf(startTok, endTok),
			Comments: p.nodeComments(startTok.tok, endTok.tok),
		}
	}
	ranges := p.parseRangeList()
	endTok, _ := p.expectPunct(';', "to end reserved declaration")
	return &ast.ReservedRange{
		Ranges:   ranges,
		Sp:       p.spanOf(startTok, endTok),
		Comments: p.nodeComments(startTok.tok, endTok.tok),
	}
}

// parseRangeList parses a comma-separated list of `N` or `N to M` or
// `N to max` range entries.
func (p *parser) parseRangeList() []ast.Range {
	var ranges []ast.Range
	for {
		ranges = append(ranges, p.parseRange())
		if p.isPunct(0, ',') {
			p.next()
			continue
		}
		break
	}
	return ranges
}

func (p *parser) parseRange() ast.Range {
	startTok := p.peek(0)
	start := p.parseSignedInt()
	r := ast.Range{Start: start, Sp: start.Sp}
	if p.isKeyword(0, "to") {
		p.next()
		r.HasEnd = true
		if p.isKeyword(0, "max") {
			t := p.next()
			r.End = ast.RangeBound{IsMax: true, Sp: t.sp}
		} else {
			end := p.parseSignedInt()
			r.End = ast.RangeBound{Value: end.Int64(), Sp: end.Sp}
		}
		r.Sp = ast.Span{Start: startTok.sp.Start, End: r.End.Sp.End}
	}
	return r
}
