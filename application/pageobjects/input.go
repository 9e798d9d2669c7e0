package pageobjects

import (
	"fmt"
	"strings"

	"declarative_elements/application/binding"
	"declarative_elements/domain/entities"
)

// Input is a form input
type Input struct {
	entities.ElementHandle
}

// InputType is the runtime type of Input
var InputType = binding.NewHandleType("Input", func(h entities.ElementHandle) Input {
	return Input{ElementHandle: h}
})

var (
	inputFound = InputType.MustDeclare("found",
		binding.Must(binding.Route(binding.Owner, binding.SelectorFunc(inputByNameAndValue))))
	inputFoundAllOfType = InputType.MustDeclare("found_all_of_type",
		binding.Must(binding.Routes(binding.Owner, binding.SelectorFunc(inputsByType))))
)

// FoundInput - route to the first input below the anchor with the given name
// and value. Empty strings match any.
func FoundInput(name, value string) (binding.HandleRoute, error) {
	return binding.RouteOf(inputFound, nil, name, value)
}

// FoundInputsOfType - route to all inputs below the anchor of one type
func FoundInputsOfType(inputType string) (binding.HandleRoute, error) {
	return binding.RouteOf(inputFoundAllOfType, nil, inputType)
}

// Name - returns the name attribute
func (i Input) Name() (string, error) { return i.Attribute("name") }

// Value - returns the current value
func (i Input) Value() (string, error) { return i.Attribute("value") }

// Type - returns the type attribute
func (i Input) Type() (string, error) { return i.Attribute("type") }

func inputByNameAndValue(_ binding.Context, args ...string) (entities.Selector, error) {
	if len(args) > 2 {
		return entities.Selector{}, &entities.ConfigError{Reason: "expected name and value", Value: args}
	}
	var predicates []string
	if len(args) > 0 && args[0] != "" {
		predicates = append(predicates, fmt.Sprintf("@name='%s'", args[0]))
	}
	if len(args) > 1 && args[1] != "" {
		predicates = append(predicates, fmt.Sprintf("@value='%s'", args[1]))
	}
	xpath := ".//input"
	if len(predicates) > 0 {
		xpath += "[" + strings.Join(predicates, " and ") + "]"
	}
	return entities.NewSelector(entities.ByXPATH, xpath)
}

func inputsByType(_ binding.Context, args ...string) (entities.Selector, error) {
	if len(args) != 1 {
		return entities.Selector{}, &entities.ConfigError{Reason: "expected input type", Value: args}
	}
	return entities.NewSelector(entities.ByCSSSelector, fmt.Sprintf("input[type='%s']", args[0]))
}
