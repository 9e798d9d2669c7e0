package binding

import (
	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"
)

// stage carries one selector through the pipeline
type stage struct {
	selector entities.Selector
	route    ElementRoute
	anchor   interfaces.Anchor
	raw      RawResult
	result   Result
}

// step is one transformation of the stage
type step func(s *stage) error

// pipeline is an ordered list of steps applied left to right
type pipeline []step

// Then returns a new pipeline with steps appended
func (p pipeline) Then(steps ...step) pipeline {
	out := make(pipeline, 0, len(p)+len(steps))
	out = append(out, p...)
	return append(out, steps...)
}

// Run applies the steps in order, stopping at the first error
func (p pipeline) Run(s *stage) error {
	for _, fn := range p {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

// toRoute builds the route from the selector
func toRoute(findAll bool) step {
	return func(s *stage) error {
		route, err := NewElementRoute(s.selector, findAll)
		if err != nil {
			return err
		}
		s.route = route
		return nil
	}
}

// anchorAt fixes the anchor searches start from
func anchorAt(anchor interfaces.Anchor) step {
	return func(s *stage) error {
		s.anchor = anchor
		return nil
	}
}

// execute runs the route against the anchor
func execute(s *stage) error {
	raw, err := s.route.Execute(s.anchor)
	if err != nil {
		return err
	}
	s.raw = raw
	return nil
}

// wrapInto wraps the raw result in the destination type
func wrapInto(t *HandleType) step {
	return func(s *stage) error {
		s.result = t.Wrap(s.raw)
		return nil
	}
}
