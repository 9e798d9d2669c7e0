// Package pageobjects holds page objects built from declared bindings: a
// generic DOM tree walker and the objects of a search form.
package pageobjects

import (
	"fmt"

	"declarative_elements/application/binding"
	"declarative_elements/domain/entities"
)

// DomNode is any element, navigated through the XPath axes
type DomNode struct {
	entities.ElementHandle
}

// DomNodeType is the runtime type of DomNode
var DomNodeType = binding.NewHandleType("DomNode", func(h entities.ElementHandle) DomNode {
	return DomNode{ElementHandle: h}
})

var (
	domParent = DomNodeType.MustDeclare("parent",
		binding.Must(binding.Element(binding.Owner, entities.ByXPATH, "./parent::*")))
	domChildren = DomNodeType.MustDeclare("children",
		binding.Must(binding.Elements(binding.Owner, entities.ByXPATH, "./child::*")))
	domRelative = DomNodeType.MustDeclare("relative",
		binding.Must(binding.Element(binding.Owner, binding.SelectorFunc(axisSelector))))
	domRelatives = DomNodeType.MustDeclare("relatives",
		binding.Must(binding.Elements(binding.Owner, binding.SelectorFunc(axisSelector))))
	domSiblings = DomNodeType.MustDeclare("siblings",
		binding.Must(binding.Elements(binding.Owner, binding.SourceFunc(sameTagSelector))))
)

// Parent - returns the parent element
func (n DomNode) Parent() (DomNode, error) {
	return binding.One[DomNode](domParent, n)
}

// Children - returns the child elements in document order
func (n DomNode) Children() ([]DomNode, error) {
	return binding.All[DomNode](domChildren, n)
}

// Relative - returns the first element on axis with tag. Empty axis means
// descendant, empty tag means any.
func (n DomNode) Relative(axis, tag string) (DomNode, error) {
	return binding.One[DomNode](domRelative, n, axis, tag)
}

// Relatives - returns all elements on axis with tag
func (n DomNode) Relatives(axis, tag string) ([]DomNode, error) {
	return binding.All[DomNode](domRelatives, n, axis, tag)
}

// Siblings - returns the children of the parent sharing this element's tag,
// this element included
func (n DomNode) Siblings() ([]DomNode, error) {
	return binding.All[DomNode](domSiblings, n)
}

func axisSelector(_ binding.Context, args ...string) (entities.Selector, error) {
	if len(args) > 2 {
		return entities.Selector{}, &entities.ConfigError{Reason: "expected axis and tag", Value: args}
	}
	axis, tag := "descendant", "*"
	if len(args) > 0 && args[0] != "" {
		axis = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		tag = args[1]
	}
	return entities.NewSelector(entities.ByXPATH, fmt.Sprintf("./%s::%s", axis, tag))
}

// sameTagSelector is computed per owner, so it is a nested source
func sameTagSelector(rc binding.Context) (binding.Wrappee, error) {
	if rc.Owner == nil {
		return nil, &entities.TypeError{Value: rc.Owner, Expected: "owning DomNode"}
	}
	tag, err := entities.NewElementHandle(rc.Owner.Ref()).TagName()
	if err != nil {
		return nil, err
	}
	return binding.StaticSelector{Kind: entities.ByXPATH, Value: "../" + tag}, nil
}
