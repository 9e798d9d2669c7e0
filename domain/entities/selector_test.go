package entities

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelector(t *testing.T) {
	s, err := NewSelector(ByXPATH, "./parent::*")
	require.NoError(t, err)
	assert.Equal(t, Selector{Kind: ByXPATH, Value: "./parent::*"}, s)
	assert.Equal(t, "xpath=./parent::*", s.String())
}

func TestNewSelectorRejectsUnknownKind(t *testing.T) {
	_, err := NewSelector("jquery", "$('a')")
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "jquery", configErr.Value)
	assert.Equal(t, SupportedSelectorKinds(), configErr.Valid)
	assert.Contains(t, err.Error(), "jquery")
}

func TestSupportedSelectorKinds(t *testing.T) {
	kinds := SupportedSelectorKinds()
	assert.Len(t, kinds, 8)
	assert.True(t, sort.StringsAreSorted(kinds))
	for _, kind := range kinds {
		assert.True(t, IsSupportedSelectorKind(kind), kind)
	}
	assert.False(t, IsSupportedSelectorKind(""))
}

func TestMustSelectorPanics(t *testing.T) {
	assert.Panics(t, func() { MustSelector("bogus", "x") })
}
