package environment

import (
	"context"
	"fmt"
)

const (
	valuePromptTemplateConstant        = "Environment variable %s is not set. Enter a value: "
	descriptionPromptTemplateConstant  = "Describe %s for future reference: "
	promptValueErrorTemplateConstant   = "prompt for %s: %w"
	mirrorValueErrorTemplateConstant   = "record %s in yaml mirror: %w"
	describeValueErrorTemplateConstant = "record description for %s: %w"
)

// Filler supplies a value for a variable the Store does not provide.
type Filler interface {
	Fill(executionContext context.Context, key string) (string, error)
}

// ValuePrompter asks the operator for single-line responses.
type ValuePrompter interface {
	Ask(prompt string) (string, error)
	AskRequired(prompt string) (string, error)
}

// ValueMirror persists resolved values.
type ValueMirror interface {
	Merge(key string, value string) error
}

// DescriptionRecorder persists one description per variable.
type DescriptionRecorder interface {
	Has(key string) (bool, error)
	Record(key string, description string) error
}

// FatalFiller treats every missing variable as a configuration error.
type FatalFiller struct{}

// Fill always fails with MissingVariableError.
func (FatalFiller) Fill(executionContext context.Context, key string) (string, error) {
	return "", MissingVariableError{Key: key}
}

// InteractiveFiller prompts the operator for missing values, mirrors them, and records a description
// the first time a variable is seen.
type InteractiveFiller struct {
	prompter ValuePrompter
	mirror   ValueMirror
	journal  DescriptionRecorder
}

// NewInteractiveFiller constructs an InteractiveFiller.
func NewInteractiveFiller(prompter ValuePrompter, mirror ValueMirror, journal DescriptionRecorder) *InteractiveFiller {
	return &InteractiveFiller{prompter: prompter, mirror: mirror, journal: journal}
}

// Fill prompts for key and persists the answer.
func (filler *InteractiveFiller) Fill(executionContext context.Context, key string) (string, error) {
	if filler.prompter == nil {
		return "", MissingVariableError{Key: key}
	}

	value, promptError := filler.prompter.AskRequired(fmt.Sprintf(valuePromptTemplateConstant, key))
	if promptError != nil {
		return "", fmt.Errorf(promptValueErrorTemplateConstant, key, promptError)
	}

	if filler.mirror != nil {
		if mirrorError := filler.mirror.Merge(key, value); mirrorError != nil {
			return "", fmt.Errorf(mirrorValueErrorTemplateConstant, key, mirrorError)
		}
	}

	if filler.journal == nil {
		return value, nil
	}
	described, lookupError := filler.journal.Has(key)
	if lookupError != nil {
		return "", fmt.Errorf(describeValueErrorTemplateConstant, key, lookupError)
	}
	if described {
		return value, nil
	}
	description, describeError := filler.prompter.Ask(fmt.Sprintf(descriptionPromptTemplateConstant, key))
	if describeError != nil {
		return "", fmt.Errorf(describeValueErrorTemplateConstant, key, describeError)
	}
	if recordError := filler.journal.Record(key, description); recordError != nil {
		return "", fmt.Errorf(describeValueErrorTemplateConstant, key, recordError)
	}
	return value, nil
}
