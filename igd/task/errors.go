// SPDX-License-Identifier: MIT

package task

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the task policies.
var (
	// ErrModelShape indicates a model that is not a features×1 column vector.
	ErrModelShape = errors.New("task: model must be a column vector")

	// ErrFeatureMismatch indicates a feature count different from the model length.
	ErrFeatureMismatch = errors.New("task: feature count does not match model")

	// ErrInvalidLabel indicates a label outside the domain of the task.
	ErrInvalidLabel = errors.New("task: invalid label")
)

func taskErrorf(tag string, err error) error {
	return fmt.Errorf("task.%s: %w", tag, err)
}
