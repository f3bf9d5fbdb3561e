// Package report contains the diagnostic types used throughout compilation:
// the error taxonomy, the ErrorWithPos/Reporter/Handler plumbing that lets
// each stage accumulate diagnostics without aborting, and helpers for
// attaching related spans to a primary error.
package report

// Kind identifies the category of a diagnostic. The string values are
// stable names for each diagnostic, not prose.
type Kind string

const (
	// Lexical
	KindInvalidToken                Kind = "InvalidToken"
	KindIntegerOutOfRange            Kind = "IntegerOutOfRange"
	KindInvalidStringCharacters      Kind = "InvalidStringCharacters"
	KindUnterminatedString           Kind = "UnterminatedString"
	KindInvalidStringEscape          Kind = "InvalidStringEscape"
	KindInvalidUTF8String            Kind = "InvalidUtf8String"
	KindNestedBlockComment           Kind = "NestedBlockComment"
	KindUnexpectedEOF                Kind = "UnexpectedEof"
	KindNoSpaceBetweenIntAndIdent    Kind = "NoSpaceBetweenIntAndIdent"
	KindHashCommentOutsideTextFormat Kind = "HashCommentOutsideTextFormat"
	KindFloatSuffixOutsideTextFormat Kind = "FloatSuffixOutsideTextFormat"

	// Syntactic
	KindUnexpectedToken Kind = "UnexpectedToken"
	KindUnknownSyntax   Kind = "UnknownSyntax"
	KindInvalidIdentifier Kind = "InvalidIdentifier"
	KindInvalidGroupName  Kind = "InvalidGroupName"
	KindInvalidImport     Kind = "InvalidImport"
	KindDuplicatePackage  Kind = "DuplicatePackage"

	// Semantic
	KindDuplicateName               Kind = "DuplicateName"
	KindDuplicateCamelCaseFieldName Kind = "DuplicateCamelCaseFieldName"
	KindDuplicateNumber             Kind = "DuplicateNumber"
	KindTypeNameNotFound            Kind = "TypeNameNotFound"
	KindInvalidMessageFieldTypeName Kind = "InvalidMessageFieldTypeName"
	KindInvalidMapFieldKeyType      Kind = "InvalidMapFieldKeyType"
	KindInvalidExtendeeTypeName     Kind = "InvalidExtendeeTypeName"
	KindInvalidExtensionNumber      Kind = "InvalidExtensionNumber"
	KindInvalidMethodTypeName       Kind = "InvalidMethodTypeName"
	KindInvalidMessageNumber        Kind = "InvalidMessageNumber"
	KindReservedMessageNumber       Kind = "ReservedMessageNumber"
	KindInvalidRange                Kind = "InvalidRange"
	KindInvalidEnumNumber           Kind = "InvalidEnumNumber"
	KindInvalidDefault              Kind = "InvalidDefault"
	KindProto3DefaultValue          Kind = "Proto3DefaultValue"
	KindInvalidExtendFieldKind      Kind = "InvalidExtendFieldKind"
	KindRequiredExtendField         Kind = "RequiredExtendField"
	KindMapFieldWithLabel           Kind = "MapFieldWithLabel"
	KindOneofFieldWithLabel         Kind = "OneofFieldWithLabel"
	KindProto2FieldMissingLabel     Kind = "Proto2FieldMissingLabel"
	KindProto3GroupField            Kind = "Proto3GroupField"
	KindProto3RequiredField         Kind = "Proto3RequiredField"
	KindInvalidOneofFieldKind       Kind = "InvalidOneofFieldKind"
	KindEmptyOneof                  Kind = "EmptyOneof"
	KindValueInvalidType            Kind = "ValueInvalidType"
	KindIntegerValueOutOfRange      Kind = "IntegerValueOutOfRange"
	KindStringValueInvalidUTF8      Kind = "StringValueInvalidUtf8"
	KindInvalidEnumValue            Kind = "InvalidEnumValue"
	KindNegativeIdentOutsideDefault Kind = "NegativeIdentOutsideDefault"
	KindOptionAlreadySet            Kind = "OptionAlreadySet"

	// Structural
	KindFileTooLarge Kind = "FileTooLarge"

	// Warning kind for an import whose symbols are never referenced. No
	// stage of this module performs that check, so nothing emits it.
	KindUnusedImport Kind = "UnusedImport"
)
