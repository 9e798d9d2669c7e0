package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is wrapped by backends for selector expressions that do
// not compile
var ErrInvalidSelector = errors.New("invalid selector")

// ConfigError reports a malformed declaration or route: an unsupported selector
// kind, bad declaration arguments, or a descriptor attached twice.
type ConfigError struct {
	Reason string
	Value  any
	Valid  []string
}

func (e *ConfigError) Error() string {
	msg := e.Reason
	if e.Value != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Value)
	}
	if len(e.Valid) > 0 {
		msg = fmt.Sprintf("%s (valid: %s)", msg, strings.Join(e.Valid, ", "))
	}
	return msg
}

// TypeError reports a value of the wrong shape: a destination that is not a
// handle type, or a wrappee that is neither a selector, a factory nor a source.
type TypeError struct {
	Value    any
	Expected string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unexpected %T (%v), expected %s", e.Value, e.Value, e.Expected)
}

// IsPermanent reports whether retrying the lookup that returned err cannot
// succeed: configuration and type errors, and selectors that do not compile.
// Waiters stop on these instead of polling until the timeout.
func IsPermanent(err error) bool {
	var configErr *ConfigError
	var typeErr *TypeError
	return errors.As(err, &configErr) || errors.As(err, &typeErr) || errors.Is(err, ErrInvalidSelector)
}
