package entities

import "sort"

// Selector kinds supported by the automation layer. The values are the
// WebDriver location strategies.
const (
	ByID              = "id"
	ByName            = "name"
	ByTagName         = "tag name"
	ByClassName       = "class name"
	ByCSSSelector     = "css selector"
	ByLinkText        = "link text"
	ByPartialLinkText = "partial link text"
	ByXPATH           = "xpath"
)

var supportedSelectorKinds = map[string]struct{}{
	ByID:              {},
	ByName:            {},
	ByTagName:         {},
	ByClassName:       {},
	ByCSSSelector:     {},
	ByLinkText:        {},
	ByPartialLinkText: {},
	ByXPATH:           {},
}

// IsSupportedSelectorKind reports whether kind is a known location strategy
func IsSupportedSelectorKind(kind string) bool {
	_, ok := supportedSelectorKinds[kind]
	return ok
}

// SupportedSelectorKinds returns the supported kinds in sorted order
func SupportedSelectorKinds() []string {
	kinds := make([]string, 0, len(supportedSelectorKinds))
	for kind := range supportedSelectorKinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Selector names how to find elements: a location strategy and its expression
type Selector struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// NewSelector - validates kind and builds a selector
func NewSelector(kind, value string) (Selector, error) {
	if !IsSupportedSelectorKind(kind) {
		return Selector{}, &ConfigError{
			Reason: "selector kind is not supported",
			Value:  kind,
			Valid:  SupportedSelectorKinds(),
		}
	}
	return Selector{Kind: kind, Value: value}, nil
}

// MustSelector is like NewSelector but panics on an unsupported kind
func MustSelector(kind, value string) Selector {
	s, err := NewSelector(kind, value)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Selector) String() string {
	return s.Kind + "=" + s.Value
}
