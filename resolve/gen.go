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
	"slices"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/internal"
	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/report"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// generator walks one file's IR and emits its FileDescriptorProto. It also
// performs reference resolution: resolving is done lazily, field by field,
// against the NameMap built by CollectNames, rather than as a separate
// upfront pass — there is no observable difference, since every name in
// the map is already final by the time generation starts.
type generator struct {
	handler *report.Handler
	names   NameMap
	info    *ast.FileInfo
	scope   string

	path []int32
	locs []*descriptorpb.SourceCodeInfo_Location

	includeSourceInfo bool
}

// GenerateFile builds the FileDescriptorProto for f. names must already
// contain every definition f.Package's scope can reach (its own plus the
// public surface of its imports); includeSourceInfo mirrors the
// compiler-wide flag of the same name.
func GenerateFile(f *ir.File, names *NameMap, handler *report.Handler, includeSourceInfo bool) *descriptorpb.FileDescriptorProto {
	g := &generator{
		handler:           handler,
		names:             *names,
		info:              f.Info,
		scope:             f.Package,
		includeSourceInfo: includeSourceInfo,
	}

	fd := &descriptorpb.FileDescriptorProto{
		Name: proto.String(f.Name),
	}
	if f.Package != "" {
		fd.Package = proto.String(f.Package)
		g.push(internal.FilePackageTag)
		g.recordSpan(f.AST.Package.Sp, f.AST.Package.Comments)
		g.pop()
	}
	switch f.Syntax {
	case ast.Proto3:
		fd.Syntax = proto.String("proto3")
	default:
		fd.Syntax = proto.String("proto2")
	}
	if f.AST.HasSyntax {
		g.push(internal.FileSyntaxTag)
		g.recordSpan(f.AST.SyntaxSp, ast.EntityComments{})
		g.pop()
	}

	for i, imp := range f.Imports {
		fd.Dependency = append(fd.Dependency, imp.Path)
		g.push(internal.FileDependencyTag)
		g.pushIdx(i)
		g.recordSpan(imp.Sp, imp.Comments)
		g.pop2()
		switch imp.Qualifier {
		case ast.ImportPublic:
			fd.PublicDependency = append(fd.PublicDependency, int32(i))
		case ast.ImportWeak:
			fd.WeakDependency = append(fd.WeakDependency, int32(i))
		}
	}

	g.push(internal.FileMessagesTag)
	for i, m := range f.Messages {
		g.pushIdx(i)
		fd.MessageType = append(fd.MessageType, g.message(m, f.Syntax))
		g.pop()
	}
	g.pop()

	g.push(internal.FileEnumsTag)
	for i, e := range f.Enums {
		g.pushIdx(i)
		fd.EnumType = append(fd.EnumType, g.enum(e))
		g.pop()
	}
	g.pop()

	g.push(internal.FileServicesTag)
	for i, s := range f.Services {
		g.pushIdx(i)
		fd.Service = append(fd.Service, g.service(s))
		g.pop()
	}
	g.pop()

	g.push(internal.FileExtensionsTag)
	for i, ext := range f.Extensions {
		g.pushIdx(i)
		fd.Extension = append(fd.Extension, g.field(ext, f.Syntax))
		g.pop()
	}
	g.pop()

	special, rest := optionsSplit(f.Options)
	if opts := g.fileOptions(special, rest); opts != nil {
		fd.Options = opts
	}

	if includeSourceInfo {
		slices.SortFunc(g.locs, func(a, b *descriptorpb.SourceCodeInfo_Location) int {
			return comparePath(a.Path, b.Path)
		})
		fd.SourceCodeInfo = &descriptorpb.SourceCodeInfo{Location: g.locs}
	}
	return fd
}

func (g *generator) push(tag int32)  { g.path = append(g.path, tag) }
func (g *generator) pushIdx(i int)   { g.path = append(g.path, int32(i)) }
func (g *generator) pop()            { g.path = g.path[:len(g.path)-1] }
func (g *generator) pop2()           { g.path = g.path[:len(g.path)-2] }
func (g *generator) currentPath() []int32 { return append([]int32{}, g.path...) }

// recordSpan emits a SourceCodeInfo.Location for the current path, with
// comments if comments carries any (the zero value safely carries none).
func (g *generator) recordSpan(sp ast.Span, comments ast.EntityComments) {
	if !g.includeSourceInfo || g.info == nil {
		return
	}
	loc := &descriptorpb.SourceCodeInfo_Location{Path: g.currentPath(), Span: g.spanInts(sp)}
	if comments.Leading != nil {
		loc.LeadingComments = proto.String(comments.Leading.Text)
	}
	if comments.Trailing != nil {
		loc.TrailingComments = proto.String(comments.Trailing.Text)
	}
	for _, d := range comments.LeadingDetached {
		loc.LeadingDetachedComments = append(loc.LeadingDetachedComments, d.Text)
	}
	g.locs = append(g.locs, loc)
}

func (g *generator) spanInts(sp ast.Span) []int32 {
	start := g.info.SourcePos(sp.Start)
	end := g.info.SourcePos(sp.End)
	sl, sc := int32(start.Line-1), int32(start.Col-1)
	el, ec := int32(end.Line-1), int32(end.Col-1)
	if sl == el {
		return []int32{sl, sc, ec}
	}
	return []int32{sl, sc, el, ec}
}

func (g *generator) pos(sp ast.Span) ast.SourcePos {
	if g.info == nil {
		return ast.SourcePos{}
	}
	return g.info.SourcePos(sp.Start)
}

func (g *generator) errorf(sp ast.Span, kind report.Kind, format string, args ...interface{}) {
	_ = g.handler.HandleDiagnostic(report.New(kind, g.pos(sp), format, args...))
}

// errorfRelated is errorf but also calls out relatedSp (e.g. the other
// entity in a number collision) as a Related span on the diagnostic.
func (g *generator) errorfRelated(sp ast.Span, kind report.Kind, relatedSp ast.Span, relatedMsg string, format string, args ...interface{}) {
	d := report.New(kind, g.pos(sp), format, args...).WithRelated(g.pos(relatedSp), relatedMsg)
	_ = g.handler.HandleDiagnostic(d)
}

func comparePath(a, b []int32) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}
