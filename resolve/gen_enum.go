// Copyright 2020-2022 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolve

import (
	"fmt"
	"math"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/internal"
	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/report"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func (g *generator) enum(e *ir.Enum) *descriptorpb.EnumDescriptorProto {
	savedScope := g.scope
	g.scope = qualify(g.scope, e.Name)
	defer func() { g.scope = savedScope }()

	if e.AST != nil {
		g.recordSpan(e.Span, e.AST.Comments)
	} else {
		g.recordSpan(e.Span, ast.EntityComments{})
	}

	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name)}

	var intervals []messageInterval

	g.push(internal.EnumValueTag)
	seen := map[int32]string{}
	seenSp := map[int32]ast.Span{}
	for i, v := range e.Values {
		g.pushIdx(i)
		ed.Value = append(ed.Value, g.enumValue(v))
		if prior, ok := seen[v.Number]; ok {
			g.errorfRelated(v.Span, report.KindDuplicateNumber, seenSp[v.Number], fmt.Sprintf("enum value %q", prior),
				"enum value number %d is already used by %q", v.Number, prior)
		} else {
			seen[v.Number] = v.Name
			seenSp[v.Number] = v.Span
			intervals = append(intervals, messageInterval{lo: int64(v.Number), hi: int64(v.Number), desc: fmt.Sprintf("enum value %q", v.Name), sp: v.Span})
		}
		g.pop()
	}
	g.pop()

	g.push(internal.EnumReservedRangeTag)
	for i, rr := range e.ReservedRanges {
		g.pushIdx(i)
		ranges, lo, hi, sps := g.enumReservedRange(rr)
		ed.ReservedRange = append(ed.ReservedRange, ranges...)
		for j := range lo {
			g.checkOverlap(sps[j], messageInterval{lo: lo[j], hi: hi[j], desc: fmt.Sprintf("reserved range %d to %d", lo[j], hi[j]), sp: sps[j]}, &intervals)
		}
		g.pop()
	}
	g.pop()

	for _, rn := range e.ReservedNames {
		for _, n := range rn.Names {
			ed.ReservedName = append(ed.ReservedName, string(n.Value))
		}
	}

	if opts := g.enumOptions(e.Options); opts != nil {
		ed.Options = opts
	}
	return ed
}

func (g *generator) enumValue(v *ir.EnumValue) *descriptorpb.EnumValueDescriptorProto {
	if v.AST != nil {
		g.recordSpan(v.Span, v.AST.Comments)
	}
	ev := &descriptorpb.EnumValueDescriptorProto{
		Name:   proto.String(v.Name),
		Number: proto.Int32(v.Number),
	}
	if opts := g.enumValueOptions(v.Options); opts != nil {
		ev.Options = opts
	}
	return ev
}

// enumReservedRange builds the descriptor ranges for one `reserved` clause,
// validating each range's bounds against the full int32 space (unlike
// message field numbers, enum numbers may be negative) and its ordering. It
// also returns the validated (lo, hi) pairs so the caller can check them
// for overlap against the enum's other reserved ranges and value numbers.
func (g *generator) enumReservedRange(r *ast.ReservedRange) (out []*descriptorpb.EnumDescriptorProto_EnumReservedRange, los, his []int64, sps []ast.Span) {
	g.recordSpan(r.Sp, r.Comments)
	for _, rg := range r.Ranges {
		lo := rg.Start.Int64()
		hi := lo
		if rg.HasEnd {
			if rg.End.IsMax {
				hi = math.MaxInt32
			} else {
				hi = rg.End.Value
			}
		}
		if lo < math.MinInt32 || lo > math.MaxInt32 || hi < math.MinInt32 || hi > math.MaxInt32 {
			g.errorf(rg.Sp, report.KindInvalidEnumNumber, "enum numbers must be between %d and %d", math.MinInt32, math.MaxInt32)
		} else if lo > hi {
			g.errorf(rg.Sp, report.KindInvalidRange, "range start %d is greater than range end %d", lo, hi)
		}
		out = append(out, &descriptorpb.EnumDescriptorProto_EnumReservedRange{Start: proto.Int32(int32(lo)), End: proto.Int32(int32(hi))})
		los = append(los, lo)
		his = append(his, hi)
		sps = append(sps, rg.Sp)
	}
	return out, los, his, sps
}
