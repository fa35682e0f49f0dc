package environment

import (
	"context"
	"fmt"
	"regexp"
)

const invalidVariableNameErrorTemplateConstant = "%w: %q"

var variableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Resolver is the single entry point for reading required variables. Values found in the Store are
// returned without side effects; missing values are filled once and kept in the Store for the rest of the run.
type Resolver struct {
	store  *Store
	filler Filler
}

// NewResolver constructs a Resolver. A nil store starts empty and a nil filler makes missing values fatal.
func NewResolver(store *Store, filler Filler) *Resolver {
	if store == nil {
		store = NewStore()
	}
	if filler == nil {
		filler = FatalFiller{}
	}
	return &Resolver{store: store, filler: filler}
}

// Resolve returns the value for key, filling it when the Store has no non-empty value.
func (resolver *Resolver) Resolve(executionContext context.Context, key string) (string, error) {
	if !variableNamePattern.MatchString(key) {
		return "", fmt.Errorf(invalidVariableNameErrorTemplateConstant, ErrInvalidVariableName, key)
	}

	if value, found := resolver.store.Lookup(key); found && len(value) > 0 {
		return value, nil
	}

	value, fillError := resolver.filler.Fill(executionContext, key)
	if fillError != nil {
		return "", fillError
	}
	resolver.store.set(key, value)
	return value, nil
}
