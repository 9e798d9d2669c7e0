package binding

import (
	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// RawResult is what a route returns before wrapping: one element, or an ordered
// list when the route finds all matches.
type RawResult struct {
	Elements []interfaces.Element
	Multi    bool
}

// ElementRoute is a selector plus the find-all flag. Executing it is a pure, repeatable
// search from an anchor.
type ElementRoute struct {
	Selector entities.Selector
	FindAll  bool
}

// NewElementRoute - validates the selector kind and builds a route
func NewElementRoute(selector entities.Selector, findAll bool) (ElementRoute, error) {
	if _, err := entities.NewSelector(selector.Kind, selector.Value); err != nil {
		return ElementRoute{}, err
	}
	return ElementRoute{Selector: selector, FindAll: findAll}, nil
}

// Execute - searches from anchor. Errors from the automation layer are returned
// unchanged.
func (r ElementRoute) Execute(anchor interfaces.Anchor) (RawResult, error) {
	if anchor == nil {
		return RawResult{}, &entities.TypeError{Value: anchor, Expected: "anchor element or session root"}
	}

	logger.WithFields(logrus.Fields{
		"by":       r.Selector.Kind,
		"value":    r.Selector.Value,
		"find_all": r.FindAll,
	}).Debug("Executing route")

	if r.FindAll {
		elements, err := anchor.FindElements(r.Selector.Kind, r.Selector.Value)
		if err != nil {
			return RawResult{}, err
		}
		return RawResult{Elements: elements, Multi: true}, nil
	}

	element, err := anchor.FindElement(r.Selector.Kind, r.Selector.Value)
	if err != nil {
		return RawResult{}, err
	}
	return RawResult{Elements: []interfaces.Element{element}}, nil
}
