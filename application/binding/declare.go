package binding

import (
	"declarative_elements/domain/entities"
)

type ownerMark struct{}

// Owner marks a declaration whose destination is the type it is declared on
var Owner = ownerMark{}

// Declaration is a parsed declaration call. It either holds a complete
// descriptor or waits for a wrappee via Decorate.
type Declaration struct {
	kind               Kind
	ownerIsDestination bool
	destination        *HandleType
	descriptor         *Descriptor
}

// Element declares a self-anchored binding to one handle
func Element(args ...any) (Declaration, error) { return declare(KindElement, args) }

// Elements declares a self-anchored binding to all matching handles
func Elements(args ...any) (Declaration, error) { return declare(KindElements, args) }

// Route declares an explicit-anchor binding to one handle
func Route(args ...any) (Declaration, error) { return declare(KindRoute, args) }

// Routes declares an explicit-anchor binding to all matching handles
func Routes(args ...any) (Declaration, error) { return declare(KindRoutes, args) }

// Descriptor returns the descriptor when the declaration carried a wrappee
func (d Declaration) Descriptor() (*Descriptor, bool) {
	return d.descriptor, d.descriptor != nil
}

// Decorate - completes a declaration made without a wrappee
func (d Declaration) Decorate(wrappee any) (*Descriptor, error) {
	if d.descriptor != nil {
		return nil, &entities.ConfigError{Reason: "declaration already has a wrappee", Value: d.descriptor.String()}
	}
	w, err := classifyWrappee(wrappee)
	if err != nil {
		return nil, err
	}
	return newDescriptor(d.kind, d.ownerIsDestination, d.destination, w)
}

// MustDecorate is like Decorate but panics on error
func (d Declaration) MustDecorate(wrappee any) *Descriptor {
	desc, err := d.Decorate(wrappee)
	if err != nil {
		panic(err)
	}
	return desc
}

// Must returns the complete descriptor of a declaration, panicking on a parse
// error or a declaration that still waits for a wrappee.
func Must(d Declaration, err error) *Descriptor {
	if err != nil {
		panic(err)
	}
	desc, ok := d.Descriptor()
	if !ok {
		panic(&entities.ConfigError{Reason: "declaration has no wrappee, use Decorate", Value: d.kind.String()})
	}
	return desc
}

// MustPartial returns a declaration waiting for a wrappee, panicking on error
func MustPartial(d Declaration, err error) Declaration {
	if err != nil {
		panic(err)
	}
	return d
}

// declare parses (destination mark)? (kind, value | wrappee)? in order
func declare(kind Kind, args []any) (Declaration, error) {
	ownerIsDestination, destination, rest := parseDestinationMark(args)
	decl := Declaration{
		kind:               kind,
		ownerIsDestination: ownerIsDestination,
		destination:        destination,
	}
	if len(rest) == 0 {
		return decl, nil
	}

	wrappee, rest, err := parseWrappee(rest)
	if err != nil {
		return Declaration{}, err
	}
	if len(rest) > 0 {
		return Declaration{}, &entities.ConfigError{Reason: "too many values passed", Value: rest}
	}

	desc, err := newDescriptor(kind, ownerIsDestination, destination, wrappee)
	if err != nil {
		return Declaration{}, err
	}
	decl.descriptor = desc
	return decl, nil
}

func parseDestinationMark(args []any) (bool, *HandleType, []any) {
	if len(args) == 0 {
		return false, nil, args
	}
	switch mark := args[0].(type) {
	case ownerMark:
		return true, nil, args[1:]
	case *HandleType:
		if mark != nil {
			return false, mark, args[1:]
		}
	}
	return false, nil, args
}

func parseWrappee(args []any) (Wrappee, []any, error) {
	if len(args) >= 2 {
		kind, kindOK := args[0].(string)
		value, valueOK := args[1].(string)
		if kindOK && valueOK && entities.IsSupportedSelectorKind(kind) {
			return StaticSelector{Kind: kind, Value: value}, args[2:], nil
		}
	}

	w, err := classifyWrappee(args[0])
	if err != nil {
		if kind, ok := args[0].(string); ok && len(args) >= 2 {
			if _, ok := args[1].(string); ok {
				_, err = entities.NewSelector(kind, "")
			}
		}
		return nil, nil, err
	}
	return w, args[1:], nil
}
