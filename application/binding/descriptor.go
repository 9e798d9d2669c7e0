package binding

import (
	"fmt"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Kind selects one of the four descriptor behaviors
type Kind int

const (
	// KindElement resolves one handle from the owner on read
	KindElement Kind = iota
	// KindElements resolves all matching handles from the owner on read
	KindElements
	// KindRoute produces a route to one handle from a caller-supplied anchor
	KindRoute
	// KindRoutes produces a route to all matching handles from a caller-supplied anchor
	KindRoutes
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindElements:
		return "elements"
	case KindRoute:
		return "route"
	case KindRoutes:
		return "routes"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FindAll reports whether the kind searches for all matches
func (k Kind) FindAll() bool { return k == KindElements || k == KindRoutes }

// SelfAnchored reports whether the kind anchors at the owner's reference
func (k Kind) SelfAnchored() bool { return k == KindElement || k == KindElements }

func (k Kind) anchoring() anchoring {
	if k.SelfAnchored() {
		return selfAnchored{findAll: k.FindAll()}
	}
	return explicitAnchor{findAll: k.FindAll()}
}

// Destination is the destination state of a descriptor: Pending or Bound
type Destination interface {
	isDestination()
}

// Pending is the state of a descriptor with no destination type yet
type Pending struct{}

// Bound is the state of a descriptor bound to a destination type
type Bound struct {
	Type *HandleType
}

func (Pending) isDestination() {}
func (Bound) isDestination()   {}

// UnboundError is returned when a pending descriptor is resolved. It carries
// the descriptor so the caller can bind it.
type UnboundError struct {
	Descriptor *Descriptor
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("%s is not bound to a destination type", e.Descriptor)
}

// Descriptor is one declared relationship between page objects. It is shared by
// every instance of the type it is declared on.
type Descriptor struct {
	kind               Kind
	ownerIsDestination bool
	destination        Destination
	owner              *HandleType
	name               string
	wrappee            Wrappee
}

func newDescriptor(kind Kind, ownerIsDestination bool, destination *HandleType, wrappee Wrappee) (*Descriptor, error) {
	d := &Descriptor{
		kind:               kind,
		ownerIsDestination: ownerIsDestination,
		destination:        Pending{},
		wrappee:            wrappee,
	}
	if destination != nil {
		if err := d.Bind(destination); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Kind returns the descriptor behavior
func (d *Descriptor) Kind() Kind { return d.kind }

// Destination returns the current destination state
func (d *Descriptor) Destination() Destination { return d.destination }

// Owner returns the type the descriptor is declared on, nil before Declare
func (d *Descriptor) Owner() *HandleType { return d.owner }

// Pending returns the descriptor itself while it has no destination. Use it to
// reach a forward-declared binding and Bind it later.
func (d *Descriptor) Pending() (*Descriptor, bool) {
	if _, ok := d.destination.(Pending); ok {
		return d, true
	}
	return nil, false
}

// Bind - sets the destination type. Binding again overwrites.
func (d *Descriptor) Bind(destination *HandleType) error {
	if destination == nil {
		return &entities.TypeError{Value: destination, Expected: "handle type"}
	}
	d.destination = Bound{Type: destination}
	logger.WithFields(logrus.Fields{
		"binding":     d.String(),
		"destination": destination.Name(),
	}).Debug("Bound descriptor")
	return nil
}

// MustBind is like Bind but panics on error
func (d *Descriptor) MustBind(destination *HandleType) *Descriptor {
	if err := d.Bind(destination); err != nil {
		panic(err)
	}
	return d
}

// Attach - the owner resolution event, fired by HandleType.Declare. A descriptor
// belongs to exactly one owner and name.
func (d *Descriptor) Attach(owner *HandleType, name string) error {
	if owner == nil {
		return &entities.TypeError{Value: owner, Expected: "owner handle type"}
	}
	if d.owner != nil {
		if d.owner == owner && d.name == name {
			return nil
		}
		return &entities.ConfigError{
			Reason: "descriptor is already declared",
			Value:  fmt.Sprintf("%s.%s", d.owner.Name(), d.name),
		}
	}
	if d.ownerIsDestination {
		if err := d.Bind(owner); err != nil {
			return err
		}
	}
	d.owner, d.name = owner, name
	logger.WithField("binding", d.String()).Debug("Declared descriptor")
	return nil
}

// Resolve - reads the descriptor in rc. Self-anchored kinds return a Result
// (static selector) or a ResultFunc (selector factory), and the descriptor
// itself when read at type level; explicit-anchor kinds return a HandleRoute
// or a RouteFunc.
func (d *Descriptor) Resolve(rc Context) (Value, error) {
	if d.kind.SelfAnchored() && rc.Owner == nil {
		return d, nil
	}
	bound, ok := d.destination.(Bound)
	if !ok {
		return nil, &UnboundError{Descriptor: d}
	}

	wrappee := d.wrappee
	if nested, ok := wrappee.(Nested); ok {
		inner, err := nested.Source.Resolve(rc)
		if err != nil {
			return nil, err
		}
		// sources are user code: nil and typed-nil factories fail here, not on call
		checked, err := classifyWrappee(inner)
		if err != nil {
			return nil, err
		}
		if _, again := checked.(Nested); again {
			return nil, &entities.TypeError{Value: inner, Expected: "selector or SelectorFunc from nested source"}
		}
		wrappee = checked
	}
	return d.modify(wrappee, rc, bound.Type)
}

func (d *Descriptor) modify(wrappee Wrappee, rc Context, destination *HandleType) (Value, error) {
	a := d.kind.anchoring()
	if err := a.check(rc); err != nil {
		return nil, err
	}
	locate := func(selector entities.Selector) (Value, error) {
		return a.locate(selector, rc, destination)
	}

	switch w := wrappee.(type) {
	case SelectorFunc:
		factory := func(args ...string) (entities.Selector, error) {
			return w(rc, args...)
		}
		return a.compose(factory, locate), nil
	case StaticSelector:
		return locate(entities.Selector(w))
	}
	return nil, &entities.TypeError{Value: wrappee, Expected: expectedWrappee}
}

func (d *Descriptor) String() string {
	name := "<undeclared>"
	if d.owner != nil {
		name = d.owner.Name() + "." + d.name
	}
	if s, ok := d.wrappee.(StaticSelector); ok {
		return fmt.Sprintf("%s %s (%s)", d.kind, name, entities.Selector(s))
	}
	return fmt.Sprintf("%s %s", d.kind, name)
}

// context returns the read context for owner
func (d *Descriptor) context(owner entities.Handle) Context {
	return Context{Owner: owner, Type: d.owner}
}

// anchoring is the variant-specific half of the transformation
type anchoring interface {
	// check validates the read context
	check(rc Context) error
	// locate turns a selector into the value a read produces
	locate(selector entities.Selector, rc Context, destination *HandleType) (Value, error)
	// compose chains a selector factory with locate
	compose(factory func(args ...string) (entities.Selector, error), locate func(entities.Selector) (Value, error)) Value
}

// selfAnchored resolves from the owner's reference on read
type selfAnchored struct {
	findAll bool
}

func (a selfAnchored) check(rc Context) error {
	if rc.Owner.Ref() == nil {
		return &entities.TypeError{Value: rc.Owner, Expected: "owning handle for a self-anchored binding"}
	}
	return nil
}

func (a selfAnchored) locate(selector entities.Selector, rc Context, destination *HandleType) (Value, error) {
	s := &stage{selector: selector}
	p := pipeline{anchorAt(rc.Owner.Ref()), toRoute(a.findAll)}.Then(execute, wrapInto(destination))
	if err := p.Run(s); err != nil {
		return nil, err
	}
	return s.result, nil
}

func (a selfAnchored) compose(factory func(args ...string) (entities.Selector, error), locate func(entities.Selector) (Value, error)) Value {
	return ResultFunc(func(args ...string) (Result, error) {
		selector, err := factory(args...)
		if err != nil {
			return Result{}, err
		}
		v, err := locate(selector)
		if err != nil {
			return Result{}, err
		}
		return v.(Result), nil
	})
}

// explicitAnchor builds the route on read and searches when it is called
type explicitAnchor struct {
	findAll bool
}

func (a explicitAnchor) check(Context) error { return nil }

func (a explicitAnchor) locate(selector entities.Selector, _ Context, destination *HandleType) (Value, error) {
	built := &stage{selector: selector}
	if err := (pipeline{toRoute(a.findAll)}).Run(built); err != nil {
		return nil, err
	}
	route := built.route

	return HandleRoute(func(anchor interfaces.Anchor) (Result, error) {
		s := &stage{selector: selector, route: route}
		if err := (pipeline{anchorAt(anchor), execute, wrapInto(destination)}).Run(s); err != nil {
			return Result{}, err
		}
		return s.result, nil
	}), nil
}

func (a explicitAnchor) compose(factory func(args ...string) (entities.Selector, error), locate func(entities.Selector) (Value, error)) Value {
	return RouteFunc(func(args ...string) (HandleRoute, error) {
		selector, err := factory(args...)
		if err != nil {
			return nil, err
		}
		v, err := locate(selector)
		if err != nil {
			return nil, err
		}
		return v.(HandleRoute), nil
	})
}
