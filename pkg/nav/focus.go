package nav

// FocusParams describe the cell the host should focus.
type FocusParams struct {
	FocusedRow int
	FocusedCol int
	Rows       int
	Columns    int
}

// Focusable is a host handle that can take focus.
type Focusable interface {
	Focus()
}

// FocusResolver maps focus coordinates to a host handle. The host binds its
// container inside the resolver.
type FocusResolver interface {
	ResolveFocusTarget(p FocusParams) (Focusable, error)
}

// FocusResolverFunc adapts a function to FocusResolver.
type FocusResolverFunc func(p FocusParams) (Focusable, error)

// ResolveFocusTarget calls f.
func (f FocusResolverFunc) ResolveFocusTarget(p FocusParams) (Focusable, error) {
	return f(p)
}

// FocusFunc adapts a function to Focusable.
type FocusFunc func()

// Focus calls f.
func (f FocusFunc) Focus() {
	f()
}
