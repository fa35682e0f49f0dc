package utils

import "context"

const executionFlagsContextKeyConstant = commandContextKey("executionFlags")

type commandContextKey string

// ExecutionFlags captures standardized execution modifiers derived from CLI flags.
type ExecutionFlags struct {
	DryRun     bool
	DryRunSet  bool
	NoInput    bool
	NoInputSet bool
	EnvFile    string
	EnvFileSet bool
}

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithExecutionFlags attaches execution flag values to the provided context.
func (accessor CommandContextAccessor) WithExecutionFlags(parentContext context.Context, flags ExecutionFlags) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, executionFlagsContextKeyConstant, flags)
}

// ExecutionFlags extracts execution flag values from the provided context.
func (accessor CommandContextAccessor) ExecutionFlags(executionContext context.Context) (ExecutionFlags, bool) {
	if executionContext == nil {
		return ExecutionFlags{}, false
	}
	value, valueAvailable := executionContext.Value(executionFlagsContextKeyConstant).(ExecutionFlags)
	if !valueAvailable {
		return ExecutionFlags{}, false
	}
	return value, true
}
