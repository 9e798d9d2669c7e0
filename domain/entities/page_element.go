package entities

import "strings"

// PageElement is a printable snapshot of a resolved handle
type PageElement struct {
	Key        string            `json:"key"`
	TagName    string            `json:"tag_name"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
	IsRoot     bool              `json:"is_root"`
}

// snapshotAttributes are read for every described element
var snapshotAttributes = []string{"id", "name", "class", "type", "value", "href"}

// Describe - reads a snapshot of the handle. Read failures leave fields empty.
func Describe(h Handle) PageElement {
	pe := PageElement{
		Key:        KeyOf(h),
		Attributes: make(map[string]string),
	}

	if h == nil || h.Ref() == nil {
		return pe
	}

	el, err := NewElementHandle(h.Ref()).Element()
	if err != nil {
		pe.IsRoot = true
		return pe
	}

	pe.TagName, _ = el.TagName()
	text, _ := el.Text()
	pe.Text = truncateString(strings.Join(strings.Fields(text), " "), 60)

	for _, name := range snapshotAttributes {
		if v, err := el.GetAttribute(name); err == nil && v != "" {
			pe.Attributes[name] = v
		}
	}
	return pe
}

// truncateString - truncates string to maximum length in runes
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
