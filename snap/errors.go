// SPDX-License-Identifier: Unlicense OR MIT

package snap

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by errors reporting an unusable
	// layout, such as a non-positive page width.
	ErrConfiguration = errors.New("snap: invalid configuration")
	// ErrInvalidInput is matched by errors reporting non-finite
	// scroll state or velocity.
	ErrInvalidInput = errors.New("snap: invalid input")
)

// ConfigError reports a layout measurement no page can be derived
// from.
type ConfigError struct {
	Field string
	Value float32
}

// InputError reports a scroll measurement or velocity that is not
// a finite number.
type InputError struct {
	Field string
	Value float32
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("snap: invalid %s %g", e.Field, e.Value)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *InputError) Error() string {
	return fmt.Sprintf("snap: invalid %s %g", e.Field, e.Value)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
