package parsing

// ParseSuccess bundles a successfully-produced item with the exceptions
// gathered while producing it and whether the item may live inside an
// enclosing paragraph container (spec.md §3).
type ParseSuccess[T any] struct {
	Item          T
	Exceptions    []ParseException
	ParagraphSafe bool
}

// ParseResult is Ok(ParseSuccess[T]) | Err(ParseWarning). The teacher
// predates Go generics (go-rst targets an older toolchain) and encodes
// this shape with plain nil-checked return values; this module's go.mod
// floor (1.22) has had generics for four releases, so a parametrized
// result type is the idiomatic rendition of the Rust ParseResult<T>
// rather than a stringly-typed or interface{}-based stand-in.
type ParseResult[T any] struct {
	success *ParseSuccess[T]
	err     *ParseWarning
}

// Ok constructs a successful ParseResult.
func Ok[T any](item T, exceptions []ParseException, paragraphSafe bool) ParseResult[T] {
	return ParseResult[T]{success: &ParseSuccess[T]{
		Item:          item,
		Exceptions:    exceptions,
		ParagraphSafe: paragraphSafe,
	}}
}

// Err constructs a failed ParseResult.
func Err[T any](w ParseWarning) ParseResult[T] {
	return ParseResult[T]{err: &w}
}

// IsOk reports whether r is the Ok variant.
func (r ParseResult[T]) IsOk() bool { return r.success != nil }

// Unwrap returns the success payload and true, or the zero value and
// false if r is Err.
func (r ParseResult[T]) Unwrap() (ParseSuccess[T], bool) {
	if r.success == nil {
		var zero ParseSuccess[T]
		return zero, false
	}
	return *r.success, true
}

// UnwrapErr returns the warning and true, or the zero value and false if
// r is Ok.
func (r ParseResult[T]) UnwrapErr() (ParseWarning, bool) {
	if r.err == nil {
		return ParseWarning{}, false
	}
	return *r.err, true
}

// MapResult transforms the Ok payload, leaving Err untouched.
func MapResult[T, U any](r ParseResult[T], fn func(T) U) ParseResult[U] {
	if r.success != nil {
		return Ok(fn(r.success.Item), r.success.Exceptions, r.success.ParagraphSafe)
	}
	return Err[U](*r.err)
}
