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
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/internal"
	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/report"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func (g *generator) service(s *ir.Service) *descriptorpb.ServiceDescriptorProto {
	if s.AST != nil {
		g.recordSpan(s.Span, s.AST.Comments)
	}
	sd := &descriptorpb.ServiceDescriptorProto{Name: proto.String(s.Name)}

	g.push(internal.ServiceMethodTag)
	for i, m := range s.Methods {
		g.pushIdx(i)
		sd.Method = append(sd.Method, g.method(m))
		g.pop()
	}
	g.pop()

	if opts := g.serviceOptions(s.Options); opts != nil {
		sd.Options = opts
	}
	return sd
}

func (g *generator) method(m *ir.Method) *descriptorpb.MethodDescriptorProto {
	if m.AST != nil {
		g.recordSpan(m.Span, m.AST.Comments)
	}

	md := &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(m.Name),
		InputType:  proto.String(g.methodTypeName(m.InputType, m.Span)),
		OutputType: proto.String(g.methodTypeName(m.OutputType, m.Span)),
	}
	if m.InputStreaming {
		md.ClientStreaming = proto.Bool(true)
	}
	if m.OutputStreaming {
		md.ServerStreaming = proto.Bool(true)
	}
	if opts := g.methodOptions(m.Options); opts != nil {
		md.Options = opts
	}
	return md
}

func (g *generator) methodTypeName(t ast.TypeName, sp ast.Span) string {
	fqn, entry, ok := lookup(g.names, g.scope, t.String())
	if !ok {
		g.errorf(sp, report.KindInvalidMethodTypeName, "%q is not defined", t.String())
		return t.String()
	}
	if entry.Kind != KindMessage {
		g.errorf(sp, report.KindInvalidMethodTypeName, "%q is not a message", t.String())
	}
	return "." + fqn
}
