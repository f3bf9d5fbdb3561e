// Package ir defines the desugared intermediate form that sits between the
// AST and the descriptor generator: groups, maps, and proto3 explicit
// optional fields are expanded into the synthetic fields/messages/oneofs
// the descriptor schema expects. Building the IR never
// mutates the AST; every IR node that corresponds to real source keeps a
// pointer back to the ast node it was built from, so the descriptor
// generator can still recover spans and comments for it.
package ir

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FieldKind says how a Field's descriptor type is determined.
type FieldKind int

const (
	// FieldScalar fields carry a known descriptorpb type directly.
	FieldScalar FieldKind = iota
	// FieldNamed fields reference a message or enum by name; the resolver
	// decides which and sets the descriptor's type accordingly (MESSAGE or
	// ENUM). ScalarType is left unset.
	FieldNamed
	// FieldGroup fields are the desugared half of a `group` declaration;
	// like FieldNamed they reference a message (the synthetic nested one),
	// but keep the TYPE_GROUP wire type instead of TYPE_MESSAGE.
	FieldGroup
)

// File is one compiled file's desugared form.
type File struct {
	AST     *ast.File
	Info    *ast.FileInfo
	Name    string
	Syntax  ast.Syntax
	Package string

	Imports []ast.Import
	Options []ast.Option

	Messages   []*Message
	Enums      []*Enum
	Services   []*Service
	Extensions []*Field // top-level `extend` fields
}

// Message is a desugared message (or map-entry / group-body synthetic
// message).
type Message struct {
	AST  *ast.Message // nil for a synthetic map-entry message
	Name string
	Span ast.Span

	Fields         []*Field
	OneofDecls     []*Oneof
	NestedMessages []*Message
	NestedEnums    []*Enum
	Extensions     []*Field // nested `extend` fields

	ExtensionRanges []*ast.ExtensionRange
	ReservedRanges  []*ast.ReservedRange
	ReservedNames   []*ast.ReservedNames
	Options         []ast.Option

	IsMapEntry bool
}

// Field is a desugared field: a plain field, or the field half of a
// desugared group/map declaration.
type Field struct {
	AST  ast.MessageElement // *ast.Field, *ast.GroupField, or *ast.MapField; nil for map key/value
	Name string
	Span ast.Span

	Number int32
	Label  ast.Label

	Kind       FieldKind
	ScalarType descriptorpb.FieldDescriptorProto_Type
	// TypeRef is the (as yet unresolved) reference for FieldNamed/FieldGroup
	// fields; the resolver fills in the fully-qualified name.
	TypeRef ast.TypeName

	Options []ast.Option

	// OneofIndex is the index into the containing message's OneofDecls, or
	// -1 if the field belongs to none.
	OneofIndex int
	// ExplicitOptional records the source-level `optional` label,
	// independent of syntax; Proto3Optional (set by Lower, only under
	// proto3) is what actually drives synthetic-oneof synthesis and the
	// proto3_optional descriptor flag.
	ExplicitOptional bool
	Proto3Optional   bool

	IsExtension bool
	Extendee    ast.TypeName
}

// Oneof is a desugared oneof: either user-declared or a compiler-synthesized
// single-field oneof backing a proto3 explicit-optional field.
type Oneof struct {
	AST       *ast.Oneof // nil if Synthetic
	Name      string
	Span      ast.Span
	Options   []ast.Option
	Synthetic bool
}

// Enum is a desugared enum (enums need no desugaring; this type exists for
// symmetry and to carry the AST pointer for comments/spans).
type Enum struct {
	AST  *ast.Enum
	Name string
	Span ast.Span

	Values         []*EnumValue
	ReservedRanges []*ast.ReservedRange
	ReservedNames  []*ast.ReservedNames
	Options        []ast.Option
}

type EnumValue struct {
	AST    *ast.EnumValue
	Name   string
	Span   ast.Span
	Number int32

	Options []ast.Option
}

type Service struct {
	AST     *ast.Service
	Name    string
	Span    ast.Span
	Methods []*Method
	Options []ast.Option
}

type Method struct {
	AST             *ast.Method
	Name            string
	Span            ast.Span
	InputType       ast.TypeName
	InputStreaming  bool
	OutputType      ast.TypeName
	OutputStreaming bool
	Options         []ast.Option
}
