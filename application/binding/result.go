package binding

import (
	"context"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"
)

// Result holds wrapped handles: exactly one for single routes, an ordered
// (possibly empty) list for find-all routes.
type Result struct {
	handles []entities.Handle
	multi   bool
}

// Multi reports whether the result came from a find-all route
func (r Result) Multi() bool { return r.multi }

// Len returns the number of handles
func (r Result) Len() int { return len(r.handles) }

// One returns the first handle, nil when there is none
func (r Result) One() entities.Handle {
	if len(r.handles) == 0 {
		return nil
	}
	return r.handles[0]
}

// All returns the handles in document order
func (r Result) All() []entities.Handle {
	out := make([]entities.Handle, len(r.handles))
	copy(out, r.handles)
	return out
}

// HandleRoute searches from an anchor supplied by the caller and wraps the
// result. It is what explicit-anchor bindings produce.
type HandleRoute func(anchor interfaces.Anchor) (Result, error)

// ResultFunc is a self-anchored binding over a selector factory; calling it runs
// the factory and resolves from the owner.
type ResultFunc func(args ...string) (Result, error)

// RouteFunc is an explicit-anchor binding over a selector factory; calling it
// runs the factory and returns the route.
type RouteFunc func(args ...string) (HandleRoute, error)

// Value is what reading a descriptor produces: a Result, a HandleRoute, a
// ResultFunc, a RouteFunc, or the *Descriptor itself for a type-level read of
// a self-anchored binding.
type Value interface {
	isValue()
}

func (Result) isValue()      {}
func (HandleRoute) isValue() {}
func (ResultFunc) isValue()  {}
func (RouteFunc) isValue()   {}
func (*Descriptor) isValue() {}

// Waiter polls a route against an anchor until it succeeds or the wait times out
type Waiter interface {
	Until(ctx context.Context, route HandleRoute, anchor interfaces.Anchor) (Result, error)
}
