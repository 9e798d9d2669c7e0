package binding

import (
	"fmt"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"
)

// HandleType is a page-object type known at runtime: a name, a one-argument
// constructor and the bindings declared on it.
type HandleType struct {
	name      string
	construct func(ref interfaces.Reference) entities.Handle
	declared  map[string]*Descriptor
}

// NewHandleType - registers a page-object type built on ElementHandle
func NewHandleType[H entities.Handle](name string, construct func(entities.ElementHandle) H) *HandleType {
	return &HandleType{
		name: name,
		construct: func(ref interfaces.Reference) entities.Handle {
			return construct(entities.NewElementHandle(ref))
		},
		declared: make(map[string]*Descriptor),
	}
}

// Name returns the type name
func (t *HandleType) Name() string { return t.name }

func (t *HandleType) String() string { return t.name }

// New - wraps one reference, an element or a session root
func (t *HandleType) New(ref interfaces.Reference) entities.Handle {
	return t.construct(ref)
}

// Wrap - wraps a raw route result, keeping cardinality and order
func (t *HandleType) Wrap(raw RawResult) Result {
	handles := make([]entities.Handle, len(raw.Elements))
	for i, el := range raw.Elements {
		handles[i] = t.construct(el)
	}
	return Result{handles: handles, multi: raw.Multi}
}

// Declare - attaches a descriptor to this type under name. This is the owner
// resolution event: owner-destined descriptors bind to t here.
func (t *HandleType) Declare(name string, d *Descriptor) (*Descriptor, error) {
	if d == nil {
		return nil, &entities.TypeError{Value: d, Expected: "descriptor"}
	}
	if existing, ok := t.declared[name]; ok && existing != d {
		return nil, &entities.ConfigError{Reason: fmt.Sprintf("%s already declares a binding named", t.name), Value: name}
	}
	if err := d.Attach(t, name); err != nil {
		return nil, err
	}
	t.declared[name] = d
	return d, nil
}

// MustDeclare is like Declare but panics on error. It is meant for package-level
// page-object declarations.
func (t *HandleType) MustDeclare(name string, d *Descriptor) *Descriptor {
	d, err := t.Declare(name, d)
	if err != nil {
		panic(err)
	}
	return d
}

// Lookup returns the descriptor declared under name
func (t *HandleType) Lookup(name string) (*Descriptor, bool) {
	d, ok := t.declared[name]
	return d, ok
}

// Get - reads the binding declared under name. A nil owner reads at type level,
// which is enough for explicit-anchor bindings.
func (t *HandleType) Get(owner entities.Handle, name string) (Value, error) {
	d, ok := t.declared[name]
	if !ok {
		return nil, &entities.ConfigError{Reason: fmt.Sprintf("%s has no binding named", t.name), Value: name}
	}
	return d.Resolve(Context{Owner: owner, Type: t})
}
