package entities

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPermanent(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"config":           {&ConfigError{Reason: "selector kind is not supported", Value: "bogus"}, true},
		"wrapped type":     {fmt.Errorf("resolve: %w", &TypeError{Expected: "handle type"}), true},
		"invalid selector": {fmt.Errorf("%w: css %q", ErrInvalidSelector, "li["), true},
		"not found":        {errors.New("no such element"), false},
		"nil":              {nil, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsPermanent(tc.err))
		})
	}
}
