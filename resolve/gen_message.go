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
	"strconv"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/internal"
	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/options"
	"github.com/andrewhickman/protox-sub000/report"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func (g *generator) message(m *ir.Message, syntax ast.Syntax) *descriptorpb.DescriptorProto {
	savedScope := g.scope
	g.scope = qualify(g.scope, m.Name)
	defer func() { g.scope = savedScope }()

	if m.AST != nil {
		g.recordSpan(m.Span, m.AST.Comments)
	} else {
		g.recordSpan(m.Span, ast.EntityComments{})
	}

	dp := &descriptorpb.DescriptorProto{Name: proto.String(m.Name)}

	g.push(internal.MessageFieldTag)
	for i, f := range m.Fields {
		g.pushIdx(i)
		dp.Field = append(dp.Field, g.field(f, syntax))
		g.pop()
	}
	g.pop()

	g.push(internal.MessageNestedMessagesTag)
	for i, nm := range m.NestedMessages {
		g.pushIdx(i)
		dp.NestedType = append(dp.NestedType, g.message(nm, syntax))
		g.pop()
	}
	g.pop()

	g.push(internal.MessageEnumsTag)
	for i, e := range m.NestedEnums {
		g.pushIdx(i)
		dp.EnumType = append(dp.EnumType, g.enum(e))
		g.pop()
	}
	g.pop()

	g.push(internal.MessageOneofsTag)
	for i, o := range m.OneofDecls {
		g.pushIdx(i)
		dp.OneofDecl = append(dp.OneofDecl, g.oneof(o))
		g.pop()
	}
	g.pop()

	g.push(internal.MessageExtensionRangeTag)
	for i, r := range m.ExtensionRanges {
		g.pushIdx(i)
		dp.ExtensionRange = append(dp.ExtensionRange, g.extensionRange(r)...)
		g.pop()
	}
	g.pop()

	g.push(internal.MessageReservedRangeTag)
	for i, rr := range m.ReservedRanges {
		g.pushIdx(i)
		dp.ReservedRange = append(dp.ReservedRange, g.reservedRange(rr)...)
		g.pop()
	}
	g.pop()

	for _, rn := range m.ReservedNames {
		for _, n := range rn.Names {
			dp.ReservedName = append(dp.ReservedName, string(n.Value))
		}
	}

	g.push(internal.MessageExtensionsTag)
	for i, ext := range m.Extensions {
		g.pushIdx(i)
		dp.Extension = append(dp.Extension, g.field(ext, syntax))
		g.pop()
	}
	g.pop()

	g.checkFieldNumbers(m)

	if opts := g.messageOptions(m.Options, m.IsMapEntry); opts != nil {
		dp.Options = opts
	}
	return dp
}

func fieldComments(f *ir.Field) ast.EntityComments {
	switch a := f.AST.(type) {
	case *ast.Field:
		return a.Comments
	case *ast.GroupField:
		return a.Comments
	case *ast.MapField:
		return a.Comments
	default:
		return ast.EntityComments{}
	}
}

func (g *generator) field(f *ir.Field, syntax ast.Syntax) *descriptorpb.FieldDescriptorProto {
	g.recordSpan(f.Span, fieldComments(f))

	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(f.Name),
		Number: proto.Int32(f.Number),
	}

	g.validateFieldNumber(f)

	switch f.Kind {
	case ir.FieldScalar:
		fd.Type = f.ScalarType.Enum()
	case ir.FieldGroup:
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_GROUP.Enum()
		g.resolveTypeName(f, fd)
	case ir.FieldNamed:
		g.resolveTypeName(f, fd)
	}

	fd.Label = g.fieldLabel(f, syntax)

	if f.IsExtension {
		fd.Extendee = proto.String(typeNameRef(f.Extendee, g.scope, g.names))
	}
	if f.OneofIndex >= 0 {
		fd.OneofIndex = proto.Int32(int32(f.OneofIndex))
	}
	if f.Proto3Optional {
		fd.Proto3Optional = proto.Bool(true)
	}

	special, rest := optionsSplit(f.Options, options.NameJSONName, options.NameDefault, options.NamePacked, options.NameDeprecated)
	if d, ok := special[options.NameJSONName]; ok {
		if s, ok2 := options.StringValue(d); ok2 {
			fd.JsonName = proto.String(s)
		}
	} else {
		fd.JsonName = proto.String(internal.JSONName(f.Name))
	}
	if d, ok := special[options.NameDefault]; ok {
		g.applyDefault(f, fd, d, syntax)
	}
	if opts := g.fieldOptions(rest, special); opts != nil {
		fd.Options = opts
	}

	return fd
}

// applyDefault records a field's explicit default value, after checking
// that a default is even legal here: proto3 forbids them entirely, as do
// repeated, map, group and message fields.
func (g *generator) applyDefault(f *ir.Field, fd *descriptorpb.FieldDescriptorProto, d ast.Option, syntax ast.Syntax) {
	if syntax == ast.Proto3 {
		g.errorf(f.Span, report.KindProto3DefaultValue, "default values are not allowed in proto3")
		return
	}
	if f.Label == ast.LabelRepeated || f.Kind == ir.FieldGroup {
		g.errorf(f.Span, report.KindInvalidDefault, "field %q may not have a default value", f.Name)
		return
	}
	if fd.Type != nil && *fd.Type == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE {
		g.errorf(f.Span, report.KindInvalidDefault, "message field %q may not have a default value", f.Name)
		return
	}

	v := d.Value
	switch {
	case fd.Type != nil && *fd.Type == descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		if v.Kind != ast.ValueIdent {
			g.errorf(f.Span, report.KindInvalidDefault, "enum default value must be an identifier")
			return
		}
		fd.DefaultValue = proto.String(v.Ident.Name)
	case v.Kind == ast.ValueString:
		fd.DefaultValue = proto.String(string(v.Str.Value))
	case v.Kind == ast.ValueBool:
		if v.Bool.Value {
			fd.DefaultValue = proto.String("true")
		} else {
			fd.DefaultValue = proto.String("false")
		}
	case v.Kind == ast.ValueInt:
		if v.Int.Negative {
			fd.DefaultValue = proto.String(itoa64(v.Int.Int64()))
		} else {
			fd.DefaultValue = proto.String(uitoa64(v.Int.Value))
		}
	case v.Kind == ast.ValueFloat:
		fd.DefaultValue = proto.String(ftoa(v.Float.Value))
	default:
		g.errorf(f.Span, report.KindInvalidDefault, "invalid default value for field %q", f.Name)
	}
}

func (g *generator) resolveTypeName(f *ir.Field, fd *descriptorpb.FieldDescriptorProto) {
	ref := f.TypeRef.String()
	fqn, entry, ok := lookup(g.names, g.scope, ref)
	if !ok {
		g.errorf(f.Span, report.KindTypeNameNotFound, "%q is not defined", ref)
		return
	}
	fd.TypeName = proto.String("." + fqn)
	if f.Kind == ir.FieldGroup {
		return
	}
	switch entry.Kind {
	case KindMessage:
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
	case KindEnum:
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
	default:
		g.errorf(f.Span, report.KindInvalidMessageFieldTypeName, "%q is not a message or enum", ref)
	}
}

func typeNameRef(t ast.TypeName, scope string, names NameMap) string {
	fqn, _, ok := lookup(names, scope, t.String())
	if !ok {
		return t.String()
	}
	return "." + fqn
}

func (g *generator) fieldLabel(f *ir.Field, syntax ast.Syntax) *descriptorpb.FieldDescriptorProto_Label {
	switch f.Label {
	case ast.LabelRequired:
		if syntax == ast.Proto3 {
			g.errorf(f.Span, report.KindProto3RequiredField, "required fields are not allowed in proto3")
		}
		if f.IsExtension {
			g.errorf(f.Span, report.KindRequiredExtendField, "extension fields may not be required")
		}
		return descriptorpb.FieldDescriptorProto_LABEL_REQUIRED.Enum()
	case ast.LabelRepeated:
		return descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	case ast.LabelOptional:
		return descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	default:
		if syntax == ast.Proto2 && f.OneofIndex < 0 {
			g.errorf(f.Span, report.KindProto2FieldMissingLabel, "field %q is missing a label (optional, required, or repeated)", f.Name)
		}
		return descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	}
}

func (g *generator) validateFieldNumber(f *ir.Field) {
	// Check the number as written in the source, not f.Number, which
	// ir.Lower has already truncated to int32.
	n := int64(f.Number)
	switch a := f.AST.(type) {
	case *ast.Field:
		n = a.Number.Int64()
	case *ast.GroupField:
		n = a.Number.Int64()
	case *ast.MapField:
		n = a.Number.Int64()
	}
	if n < 1 || n > internal.MaxFieldNumber {
		g.errorf(f.Span, report.KindInvalidMessageNumber, "field number %d is out of range [1, %d]", n, internal.MaxFieldNumber)
		return
	}
	if n >= internal.SpecialReservedStart && n < internal.SpecialReservedEnd {
		g.errorf(f.Span, report.KindReservedMessageNumber, "field number %d falls within the implementation-reserved range [%d, %d)", n, internal.SpecialReservedStart, internal.SpecialReservedEnd)
	}
}

// messageInterval is one numbered entity within a message: a single field
// number, or one bound of a reserved/extension range, reduced to an
// inclusive [lo, hi] span for overlap detection.
type messageInterval struct {
	lo, hi int64
	desc   string
	sp     ast.Span
}

// checkRangeBounds validates one reserved/extension range endpoint pair
// against the legal field-number interval, reporting InvalidMessageNumber
// if either bound falls outside [1, MaxFieldNumber] and InvalidRange if the
// range runs backwards (lo > hi). It reports at most one diagnostic per
// range, matching the reference implementation's extrema/ordering checks.
func (g *generator) checkRangeBounds(sp ast.Span, lo, hi int64) {
	if lo < 1 || lo > internal.MaxFieldNumber || hi < 1 || hi > internal.MaxFieldNumber {
		g.errorf(sp, report.KindInvalidMessageNumber, "message numbers must be between 1 and %d", internal.MaxFieldNumber)
		return
	}
	if lo > hi {
		g.errorf(sp, report.KindInvalidRange, "range start %d is greater than range end %d", lo, hi)
	}
}

func (g *generator) checkFieldNumbers(m *ir.Message) {
	var intervals []messageInterval

	seen := map[int32]string{}
	seenSp := map[int32]ast.Span{}
	for _, f := range m.Fields {
		if prior, ok := seen[f.Number]; ok {
			g.errorfRelated(f.Span, report.KindDuplicateNumber, seenSp[f.Number], "field "+strconv.Quote(prior),
				"field number %d is already used by %q", f.Number, prior)
			continue
		}
		seen[f.Number] = f.Name
		seenSp[f.Number] = f.Span
		intervals = append(intervals, messageInterval{lo: int64(f.Number), hi: int64(f.Number), desc: "field " + strconv.Quote(f.Name), sp: f.Span})
	}

	for _, r := range m.ReservedRanges {
		for _, rg := range r.Ranges {
			lo := rg.Start.Int64()
			hi := lo
			if rg.HasEnd {
				if rg.End.IsMax {
					hi = internal.MaxFieldNumber
				} else {
					hi = rg.End.Value
				}
			}
			g.checkRangeBounds(rg.Sp, lo, hi)
			g.checkOverlap(rg.Sp, messageInterval{lo: lo, hi: hi, desc: fmt.Sprintf("reserved range %d to %d", lo, hi), sp: rg.Sp}, &intervals)
		}
	}

	for _, r := range m.ExtensionRanges {
		for _, rg := range r.Ranges {
			lo := rg.Start.Int64()
			hi := lo
			if rg.HasEnd {
				if rg.End.IsMax {
					hi = internal.MaxFieldNumber
				} else {
					hi = rg.End.Value
				}
			}
			g.checkRangeBounds(rg.Sp, lo, hi)
			g.checkOverlap(rg.Sp, messageInterval{lo: lo, hi: hi, desc: fmt.Sprintf("extension range %d to %d", lo, hi), sp: rg.Sp}, &intervals)
		}
	}
}

// checkOverlap reports a DuplicateNumber diagnostic for every interval
// already seen that overlaps next, then appends next to seen so later
// ranges are checked against it too.
func (g *generator) checkOverlap(sp ast.Span, next messageInterval, seen *[]messageInterval) {
	for _, prior := range *seen {
		if next.lo <= prior.hi && prior.lo <= next.hi {
			g.errorfRelated(sp, report.KindDuplicateNumber, prior.sp, prior.desc, "%s overlaps with %s", next.desc, prior.desc)
		}
	}
	*seen = append(*seen, next)
}

func (g *generator) oneof(o *ir.Oneof) *descriptorpb.OneofDescriptorProto {
	if o.AST != nil {
		g.recordSpan(o.Span, o.AST.Comments)
	} else {
		g.recordSpan(o.Span, ast.EntityComments{})
	}
	od := &descriptorpb.OneofDescriptorProto{Name: proto.String(o.Name)}
	if opts := g.oneofOptions(o.Options); opts != nil {
		od.Options = opts
	}
	return od
}

func (g *generator) extensionRange(r *ast.ExtensionRange) []*descriptorpb.DescriptorProto_ExtensionRange {
	g.recordSpan(r.Sp, r.Comments)
	_, rest := optionsSplit(r.Options, options.NameDeprecated)
	var eo *descriptorpb.ExtensionRangeOptions
	if len(rest) > 0 {
		eo = &descriptorpb.ExtensionRangeOptions{UninterpretedOption: toUninterpreted(rest)}
	}
	var out []*descriptorpb.DescriptorProto_ExtensionRange
	for _, rg := range r.Ranges {
		lo := rg.Start.Int64()
		hi := lo + 1
		if rg.HasEnd {
			if rg.End.IsMax {
				hi = int64(internal.MaxFieldNumber) + 1
			} else {
				hi = rg.End.Value + 1
			}
		}
		er := &descriptorpb.DescriptorProto_ExtensionRange{Start: proto.Int32(int32(lo)), End: proto.Int32(int32(hi))}
		if eo != nil {
			er.Options = eo
		}
		out = append(out, er)
	}
	return out
}

func (g *generator) reservedRange(r *ast.ReservedRange) []*descriptorpb.DescriptorProto_ReservedRange {
	g.recordSpan(r.Sp, r.Comments)
	var out []*descriptorpb.DescriptorProto_ReservedRange
	for _, rg := range r.Ranges {
		lo := rg.Start.Int64()
		hi := lo + 1
		if rg.HasEnd {
			if rg.End.IsMax {
				hi = int64(internal.MaxFieldNumber) + 1
			} else {
				hi = rg.End.Value + 1
			}
		}
		out = append(out, &descriptorpb.DescriptorProto_ReservedRange{Start: proto.Int32(int32(lo)), End: proto.Int32(int32(hi))})
	}
	return out
}
