// Package internal holds small tables and helpers shared across the
// compiler's stages: the descriptor field-tag constants that define the
// SourceCodeInfo path encoding, the scalar type table, and
// name-case conversions used for json_name and map-entry synthesis.
package internal

import "google.golang.org/protobuf/types/descriptorpb"

// Field tags for FileDescriptorProto. These are the
// contract the SourceCodeInfo path encoding relies on, not an implementation
// detail: they must match google/protobuf/descriptor.proto exactly.
const (
	FilePackageTag          = 2
	FileDependencyTag       = 3
	FileMessagesTag         = 4
	FileEnumsTag            = 5
	FileServicesTag         = 6
	FileExtensionsTag       = 7
	FileOptionsTag          = 8
	FileSourceCodeInfoTag   = 9
	FileWeakDependencyTag   = 11
	FilePublicDependencyTag = 10
	FileSyntaxTag           = 12
)

// DescriptorProto (message) tags.
const (
	MessageNameTag           = 1
	MessageFieldTag          = 2
	MessageNestedMessagesTag = 3
	MessageEnumsTag          = 4
	MessageExtensionRangeTag = 5
	MessageExtensionsTag     = 6
	MessageOptionsTag        = 7
	MessageOneofsTag         = 8
	MessageReservedRangeTag  = 9
	MessageReservedNameTag   = 10
)

// FieldDescriptorProto tags.
const (
	FieldNameTag           = 1
	FieldNumberTag         = 3
	FieldLabelTag          = 4
	FieldTypeTag           = 5
	FieldTypeNameTag       = 6
	FieldExtendeeTag       = 2
	FieldDefaultValueTag   = 7
	FieldOneofIndexTag     = 9
	FieldJSONNameTag       = 10
	FieldOptionsTag        = 8
	FieldProto3OptionalTag = 17
)

// EnumDescriptorProto tags.
const (
	EnumNameTag          = 1
	EnumValueTag         = 2
	EnumOptionsTag       = 3
	EnumReservedRangeTag = 4
	EnumReservedNameTag  = 5
)

// EnumValueDescriptorProto tags.
const (
	EnumValNameTag    = 1
	EnumValNumberTag  = 2
	EnumValOptionsTag = 3
)

// ServiceDescriptorProto tags.
const (
	ServiceNameTag    = 1
	ServiceMethodTag  = 2
	ServiceOptionsTag = 3
)

// MethodDescriptorProto tags.
const (
	MethodNameTag            = 1
	MethodInputTypeTag       = 2
	MethodOutputTypeTag      = 3
	MethodOptionsTag         = 4
	MethodClientStreamingTag = 5
	MethodServerStreamingTag = 6
)

// OneofDescriptorProto tags.
const (
	OneofNameTag    = 1
	OneofOptionsTag = 2
)

// DescriptorProto.ExtensionRange tags.
const (
	ExtensionRangeStartTag   = 1
	ExtensionRangeEndTag     = 2
	ExtensionRangeOptionsTag = 3
)

// DescriptorProto.ReservedRange / EnumDescriptorProto.EnumReservedRange tags.
const (
	ReservedRangeStartTag = 1
	ReservedRangeEndTag   = 2
)

// MaxFieldNumber is the largest legal field number, reserved range aside
// (the legal field-number range is [1, 536_870_911]).
const MaxFieldNumber = 536870911

// SpecialReservedStart and SpecialReservedEnd bound the field-number range
// reserved for the protobuf implementation, [19000, 20000).
const (
	SpecialReservedStart = 19000
	SpecialReservedEnd   = 20000 // exclusive
)

// ScalarFieldTypes maps the builtin scalar type keywords to their
// descriptor type enum value.
var ScalarFieldTypes = map[string]descriptorpb.FieldDescriptorProto_Type{
	"double":   descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	"float":    descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	"int32":    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	"int64":    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	"uint32":   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	"uint64":   descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	"sint32":   descriptorpb.FieldDescriptorProto_TYPE_SINT32,
	"sint64":   descriptorpb.FieldDescriptorProto_TYPE_SINT64,
	"fixed32":  descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
	"fixed64":  descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
	"sfixed32": descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
	"sfixed64": descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
	"bool":     descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	"string":   descriptorpb.FieldDescriptorProto_TYPE_STRING,
	"bytes":    descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

// MapKeyTypes is the restricted set of scalar types legal as a map key:
// floating-point types, bytes and enums are excluded.
var MapKeyTypes = map[string]bool{
	"int32": true, "int64": true, "uint32": true, "uint64": true,
	"sint32": true, "sint64": true,
	"fixed32": true, "fixed64": true, "sfixed32": true, "sfixed64": true,
	"bool": true, "string": true,
}
