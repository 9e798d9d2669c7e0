package binding

import (
	"fmt"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"
)

// One - reads a self-anchored single binding from owner as H. Arguments are
// passed to the selector factory, if the binding has one.
func One[H entities.Handle](d *Descriptor, owner entities.Handle, args ...string) (H, error) {
	var zero H
	res, err := resolveResult(d, owner, args)
	if err != nil {
		return zero, err
	}
	return one[H](res)
}

// All - reads a self-anchored find-all binding from owner as []H
func All[H entities.Handle](d *Descriptor, owner entities.Handle, args ...string) ([]H, error) {
	res, err := resolveResult(d, owner, args)
	if err != nil {
		return nil, err
	}
	return all[H](res)
}

// RouteOf - reads an explicit-anchor binding and returns its route. The owner
// may be nil.
func RouteOf(d *Descriptor, owner entities.Handle, args ...string) (HandleRoute, error) {
	v, err := d.Resolve(d.context(owner))
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case HandleRoute:
		if len(args) > 0 {
			return nil, &entities.ConfigError{Reason: "static binding takes no arguments", Value: args}
		}
		return v, nil
	case RouteFunc:
		return v(args...)
	}
	return nil, &entities.TypeError{Value: v, Expected: "route or routes binding"}
}

// Find - calls route from anchor and returns the single handle as H
func Find[H entities.Handle](route HandleRoute, anchor interfaces.Anchor) (H, error) {
	var zero H
	res, err := route(anchor)
	if err != nil {
		return zero, err
	}
	return one[H](res)
}

// FindAll - calls route from anchor and returns all handles as []H
func FindAll[H entities.Handle](route HandleRoute, anchor interfaces.Anchor) ([]H, error) {
	res, err := route(anchor)
	if err != nil {
		return nil, err
	}
	return all[H](res)
}

// As converts a wrapped handle to the page-object type H
func As[H entities.Handle](h entities.Handle) (H, error) {
	v, ok := h.(H)
	if !ok {
		var zero H
		return zero, &entities.TypeError{Value: h, Expected: fmt.Sprintf("%T", zero)}
	}
	return v, nil
}

func resolveResult(d *Descriptor, owner entities.Handle, args []string) (Result, error) {
	v, err := d.Resolve(d.context(owner))
	if err != nil {
		return Result{}, err
	}
	switch v := v.(type) {
	case Result:
		if len(args) > 0 {
			return Result{}, &entities.ConfigError{Reason: "static binding takes no arguments", Value: args}
		}
		return v, nil
	case ResultFunc:
		return v(args...)
	}
	return Result{}, &entities.TypeError{Value: v, Expected: "element or elements binding"}
}

func one[H entities.Handle](res Result) (H, error) {
	if res.Multi() {
		var zero H
		return zero, &entities.TypeError{Value: res.All(), Expected: "single handle"}
	}
	return As[H](res.One())
}

func all[H entities.Handle](res Result) ([]H, error) {
	if !res.Multi() {
		return nil, &entities.TypeError{Value: res.One(), Expected: "handle list"}
	}
	out := make([]H, 0, res.Len())
	for _, h := range res.All() {
		v, err := As[H](h)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
