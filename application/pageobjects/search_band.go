package pageobjects

import (
	"declarative_elements/application/binding"
	"declarative_elements/domain/entities"
)

// SearchBand is the table holding the search form controls
type SearchBand struct {
	entities.ElementHandle
}

// SearchBandType is the runtime type of SearchBand
var SearchBandType = binding.NewHandleType("SearchBand", func(h entities.ElementHandle) SearchBand {
	return SearchBand{ElementHandle: h}
})

var (
	searchBandFound = SearchBandType.MustDeclare("found",
		binding.Must(binding.Route(binding.Owner, entities.ByCSSSelector, "table[border='0']")))
	searchButton = SearchBandType.MustDeclare("search_button",
		binding.Must(binding.Element(InputType, entities.ByCSSSelector, "input[type='submit']")))
	// bound in init
	resetButton = SearchBandType.MustDeclare("reset_button",
		binding.Must(binding.Element(entities.ByCSSSelector, "input[type='reset']")))
	queryInput = SearchBandType.MustDeclare("query_input",
		binding.MustPartial(binding.Element(InputType)).MustDecorate(binding.SelectorFunc(
			func(binding.Context, ...string) (entities.Selector, error) {
				return entities.NewSelector(entities.ByCSSSelector, "input[name='query']")
			})))
)

func init() {
	resetButton.MustBind(InputType)
}

// FoundSearchBand - route to the search band below the anchor
func FoundSearchBand() (binding.HandleRoute, error) {
	return binding.RouteOf(searchBandFound, nil)
}

// SearchButton - returns the submit input
func (b SearchBand) SearchButton() (Input, error) {
	return binding.One[Input](searchButton, b)
}

// ResetButton - returns the reset input
func (b SearchBand) ResetButton() (Input, error) {
	return binding.One[Input](resetButton, b)
}

// QueryInput - returns the query text input
func (b SearchBand) QueryInput() (Input, error) {
	return binding.One[Input](queryInput, b)
}
