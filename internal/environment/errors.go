package environment

import (
	"errors"
	"fmt"
)

const (
	invalidVariableNameMessageConstant     = "invalid environment variable name"
	missingVariableMessageTemplateConstant = "environment variable %s not found"
)

// ErrInvalidVariableName indicates a key that is not a valid environment variable name.
var ErrInvalidVariableName = errors.New(invalidVariableNameMessageConstant)

// MissingVariableError reports a required variable that is unset and could not be filled.
type MissingVariableError struct {
	Key string
}

// Error describes the missing variable.
func (missingError MissingVariableError) Error() string {
	return fmt.Sprintf(missingVariableMessageTemplateConstant, missingError.Key)
}
