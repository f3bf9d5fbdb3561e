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

// Package options records the uninterpreted form of every option the
// descriptor generator encounters and validates the handful of built-in
// options whose value shapes the rest of the descriptor: map_entry,
// message_set_wire_format, json_name, and default. Full custom-option
// interpretation (resolving a name against an extension's defining
// descriptor and encoding its value into the option message's wire form)
// is out of scope here; every option that isn't one of the built-ins below
// is carried through as an UninterpretedOption, unresolved, exactly as the
// reference compiler's "--decode_raw"-style consumers expect to see it
// before a later interpretation pass.
package options

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"google.golang.org/protobuf/types/descriptorpb"
)

// These are the option names callers can ask Split to recognize
// structurally; everything else becomes an UninterpretedOption.
const (
	NameDeprecated           = "deprecated"
	NameMapEntry             = "map_entry"
	NameMessageSetWireFormat = "message_set_wire_format"
	NameJSONName             = "json_name"
	NameDefault              = "default"
	NamePacked               = "packed"
)

// simpleName reports the plain (non-extension, single-part) option name, or
// "" if opt is an extension option or a dotted path — those are never one
// of the built-ins this package special-cases.
func simpleName(opt ast.Option) string {
	if len(opt.Name.Parts) != 1 || opt.Name.Parts[0].IsExtension {
		return ""
	}
	return opt.Name.Parts[0].Name.String()
}

// Split partitions opts into the recognized built-ins (returned as a
// name->Option map for the caller to interpret) and the remainder, which
// the caller should record as UninterpretedOption via ToUninterpreted.
func Split(opts []ast.Option, recognized ...string) (special map[string]ast.Option, rest []ast.Option) {
	want := make(map[string]bool, len(recognized))
	for _, n := range recognized {
		want[n] = true
	}
	special = map[string]ast.Option{}
	for _, o := range opts {
		if n := simpleName(o); n != "" && want[n] {
			special[n] = o
			continue
		}
		rest = append(rest, o)
	}
	return special, rest
}

// ToUninterpreted converts an option whose name/value wasn't specially
// recognized into the wire representation the descriptor carries verbatim.
func ToUninterpreted(opt ast.Option) *descriptorpb.UninterpretedOption {
	u := &descriptorpb.UninterpretedOption{}
	for _, part := range opt.Name.Parts {
		name := part.Name.String()
		isExt := part.IsExtension
		u.Name = append(u.Name, &descriptorpb.UninterpretedOption_NamePart{
			NamePart:    &name,
			IsExtension: &isExt,
		})
	}
	setValue(u, opt.Value)
	return u
}

func setValue(u *descriptorpb.UninterpretedOption, v ast.Value) {
	switch v.Kind {
	case ast.ValueString:
		u.StringValue = append([]byte{}, v.Str.Value...)
	case ast.ValueIdent:
		s := v.Ident.Name
		u.IdentifierValue = &s
	case ast.ValueBool:
		s := "false"
		if v.Bool.Value {
			s = "true"
		}
		u.IdentifierValue = &s
	case ast.ValueInt:
		if v.Int.Negative {
			n := v.Int.Int64()
			u.NegativeIntValue = &n
		} else {
			n := v.Int.Value
			u.PositiveIntValue = &n
		}
	case ast.ValueFloat:
		f := v.Float.Value
		u.DoubleValue = &f
	case ast.ValueAggregate, ast.ValueArray:
		s := renderLiteral(v)
		u.AggregateValue = &s
	}
}

// renderLiteral produces a text-format rendering of an aggregate/array
// value, for the AggregateValue field of an UninterpretedOption (the form
// the reference compiler stores pending full interpretation).
func renderLiteral(v ast.Value) string {
	switch v.Kind {
	case ast.ValueAggregate:
		s := "{"
		for i, f := range v.Aggregate {
			if i > 0 {
				s += " "
			}
			s += f.Name.Name.String() + ":" + renderLiteral(f.Value)
		}
		return s + "}"
	case ast.ValueArray:
		s := "["
		for i, e := range v.Array {
			if i > 0 {
				s += ","
			}
			s += renderLiteral(e)
		}
		return s + "]"
	case ast.ValueString:
		return "\"" + string(v.Str.Value) + "\""
	case ast.ValueIdent:
		return v.Ident.Name
	case ast.ValueBool:
		if v.Bool.Value {
			return "true"
		}
		return "false"
	case ast.ValueInt:
		if v.Int.Negative {
			return "-" + itoa(v.Int.Value)
		}
		return itoa(v.Int.Value)
	default:
		return ""
	}
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// BoolValue reports the boolean an option's value holds, for the
// deprecated/map_entry/message_set_wire_format/packed built-ins which are
// always `true`/`false` identifiers.
func BoolValue(opt ast.Option) (bool, bool) {
	if opt.Value.Kind != ast.ValueBool {
		return false, false
	}
	return opt.Value.Bool.Value, true
}

// StringValue reports the string an option's value holds, for json_name.
func StringValue(opt ast.Option) (string, bool) {
	if opt.Value.Kind != ast.ValueString {
		return "", false
	}
	return string(opt.Value.Str.Value), true
}
