package binding

import "declarative_elements/domain/entities"

const expectedWrappee = "selector, SelectorFunc or Source"

// Context is the read context of a binding: the owning handle (nil for a
// type-level read) and the type the binding is read from.
type Context struct {
	Owner entities.Handle
	Type  *HandleType
}

// Wrappee is the declared value a descriptor transforms. It is one of
// StaticSelector, SelectorFunc or Nested, decided once at declaration.
type Wrappee interface {
	isWrappee()
}

// StaticSelector is a fixed selector, resolved eagerly on read
type StaticSelector entities.Selector

// SelectorFunc produces a selector from the read context and call arguments
type SelectorFunc func(rc Context, args ...string) (entities.Selector, error)

// Source is a nested declaration resolved first, in the same read context, to
// the StaticSelector or SelectorFunc the descriptor then transforms.
type Source interface {
	Resolve(rc Context) (Wrappee, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(rc Context) (Wrappee, error)

// Resolve calls f(rc)
func (f SourceFunc) Resolve(rc Context) (Wrappee, error) { return f(rc) }

// Nested wraps a Source
type Nested struct {
	Source Source
}

func (StaticSelector) isWrappee() {}
func (SelectorFunc) isWrappee()   {}
func (Nested) isWrappee()         {}

// classifyWrappee maps a declared value to the wrappee union
func classifyWrappee(v any) (Wrappee, error) {
	switch w := v.(type) {
	case StaticSelector:
		return validStatic(entities.Selector(w))
	case entities.Selector:
		return validStatic(w)
	case SelectorFunc:
		if w != nil {
			return w, nil
		}
	case func(Context, ...string) (entities.Selector, error):
		if w != nil {
			return SelectorFunc(w), nil
		}
	case Nested:
		if w.Source != nil {
			return w, nil
		}
	case SourceFunc:
		if w != nil {
			return Nested{Source: w}, nil
		}
	case func(Context) (Wrappee, error):
		if w != nil {
			return Nested{Source: SourceFunc(w)}, nil
		}
	case Source:
		if w != nil {
			return Nested{Source: w}, nil
		}
	}
	return nil, &entities.TypeError{Value: v, Expected: expectedWrappee}
}

func validStatic(s entities.Selector) (Wrappee, error) {
	if _, err := entities.NewSelector(s.Kind, s.Value); err != nil {
		return nil, err
	}
	return StaticSelector(s), nil
}
