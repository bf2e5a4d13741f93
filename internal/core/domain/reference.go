package domain

// Ref points at a related record that is either known only by id or has
// already been loaded (for example through a $lookup stage).
type Ref[T any] struct {
	id       string
	expanded *T
}

// Identifiable is implemented by records that can be referenced.
type Identifiable interface {
	Identity() string
}

// RefID builds a reference that carries only an id.
func RefID[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// RefTo builds a reference from a loaded record.
func RefTo[T Identifiable](v T) Ref[T] {
	return Ref[T]{id: v.Identity(), expanded: &v}
}

// ID returns the referenced id regardless of which variant is held.
func (r Ref[T]) ID() string {
	return r.id
}

// Expanded returns the loaded record, if any.
func (r Ref[T]) Expanded() (*T, bool) {
	return r.expanded, r.expanded != nil
}

// IsZero reports whether the reference points at nothing.
func (r Ref[T]) IsZero() bool {
	return r.id == "" && r.expanded == nil
}
