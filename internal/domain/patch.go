package domain

import "encoding/json"

// Patch is a per-field update instruction with three states:
//
//   - Unchanged: the field was absent from the request body; leave it alone.
//   - SetTo:     the field carried a value; overwrite with it.
//   - Clear:     the field was an explicit JSON null; reset to empty/NULL.
//
// encoding/json only calls UnmarshalJSON for keys present in the body, which
// is what distinguishes Unchanged from Clear. Repos translate a Patch into
// the presence or absence of a SET clause.
type Patch[T any] struct {
	present bool
	valid   bool
	value   T
}

// SetTo returns a Patch carrying v. Mostly useful in tests; HTTP requests
// produce patches through JSON decoding.
func SetTo[T any](v T) Patch[T] {
	return Patch[T]{present: true, valid: true, value: v}
}

// Cleared returns a Patch representing an explicit null.
func Cleared[T any]() Patch[T] {
	return Patch[T]{present: true}
}

// Unchanged reports whether the field was absent from the request.
func (p Patch[T]) Unchanged() bool { return !p.present }

// Clear reports whether the field was an explicit null.
func (p Patch[T]) Clear() bool { return p.present && !p.valid }

// Get returns the carried value and whether one is present.
func (p Patch[T]) Get() (T, bool) {
	return p.value, p.present && p.valid
}

// UnmarshalJSON records that the key was present and decodes the value
// unless it is null.
func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.present = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &p.value); err != nil {
		return err
	}
	p.valid = true
	return nil
}
