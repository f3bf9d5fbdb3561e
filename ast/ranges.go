package ast

// RangeBound is one endpoint of a numeric range: either a literal number or
// the `max` keyword (meaning the largest legal value for the range's kind).
// Value holds the full signed magnitude as written, not yet truncated to
// whatever width the range's kind (field number, enum number) requires, so
// callers can detect an out-of-width literal instead of silently wrapping it.
type RangeBound struct {
	Value int64
	IsMax bool
	Sp    Span
}

// Range is a single `N` or `N to M` (or `N to max`) span within an
// `extensions`/`reserved` declaration.
type Range struct {
	Start Int
	// HasEnd is false for a single-number range (`N`, not `N to M`); in
	// that case the range covers just Start.
	HasEnd bool
	End    RangeBound
	Sp     Span
}

// ExtensionRange is an `extensions 100 to 200 [ (opt) = v ];` declaration.
type ExtensionRange struct {
	Ranges   []Range
	Options  []Option
	Sp       Span
	Comments EntityComments
}

// ReservedRange is a `reserved 2, 9 to 11;` declaration of field/enum
// numbers that may never be (re)used.
type ReservedRange struct {
	Ranges   []Range
	Sp       Span
	Comments EntityComments
}

// ReservedNames is a `reserved "foo", "bar";` declaration.
type ReservedNames struct {
	Names    []StringLiteral
	Sp       Span
	Comments EntityComments
}
