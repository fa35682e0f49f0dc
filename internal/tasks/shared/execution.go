package shared

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/execshell"
)

const (
	executorMissingMessageConstant = "task command executor not configured"
	resolverMissingMessageConstant = "task variable resolver not configured"
	ignoredFailureMessageConstant  = "ignoring non-zero exit status"
	commandLineFieldNameConstant   = "command_line"
	exitCodeFieldNameConstant      = "exit_code"
)

var (
	// ErrExecutorNotConfigured indicates a task ran without a command executor.
	ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)
	// ErrResolverNotConfigured indicates a task ran without a variable resolver.
	ErrResolverNotConfigured = errors.New(resolverMissingMessageConstant)
)

// ExitPolicy controls how a non-zero exit status is treated.
type ExitPolicy int

const (
	// ExitPolicyConfigured follows Dependencies.StrictExitCodes.
	ExitPolicyConfigured ExitPolicy = iota
	// ExitPolicyStrict always fails on a non-zero exit status.
	ExitPolicyStrict
)

// RunCommand executes command with the Environment variables exported to it. A non-zero exit status is
// logged and ignored unless the policy or the shared configuration demands strictness. Runner failures
// are always returned.
func (dependencies Dependencies) RunCommand(executionContext context.Context, command execshell.ShellCommand, policy ExitPolicy) error {
	if dependencies.Executor == nil {
		return ErrExecutorNotConfigured
	}
	command.Details.EnvironmentVariables = dependencies.childEnvironment(command.Details.EnvironmentVariables)

	_, executionError := dependencies.Executor.Execute(executionContext, command)
	if executionError == nil {
		return nil
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) && policy != ExitPolicyStrict && !dependencies.StrictExitCodes {
		dependencies.logger().Warn(ignoredFailureMessageConstant,
			zap.String(commandLineFieldNameConstant, command.CommandLine()),
			zap.Int(exitCodeFieldNameConstant, failedError.Result.ExitCode),
		)
		return nil
	}
	return executionError
}

// Resolve looks a variable up through the configured resolver.
func (dependencies Dependencies) Resolve(executionContext context.Context, key string) (string, error) {
	if dependencies.Resolver == nil {
		return "", ErrResolverNotConfigured
	}
	return dependencies.Resolver.Resolve(executionContext, key)
}

// Printf writes a progress message line to the task output.
func (dependencies Dependencies) Printf(format string, arguments ...any) {
	if dependencies.Output == nil {
		return
	}
	fmt.Fprintf(dependencies.Output, format+"\n", arguments...)
}

// SummaryWriter returns the writer used for sequence summaries.
func (dependencies Dependencies) SummaryWriter() io.Writer {
	if dependencies.Errors != nil {
		return dependencies.Errors
	}
	return dependencies.Output
}

// childEnvironment overlays the command's own variables on the Environment variables.
func (dependencies Dependencies) childEnvironment(explicit map[string]string) map[string]string {
	if dependencies.Environment == nil {
		return explicit
	}
	keys := dependencies.Environment.Keys()
	if len(keys) == 0 {
		return explicit
	}
	variables := make(map[string]string, len(keys)+len(explicit))
	for _, key := range keys {
		if value, found := dependencies.Environment.Lookup(key); found {
			variables[key] = value
		}
	}
	for key, value := range explicit {
		variables[key] = value
	}
	return variables
}

func (dependencies Dependencies) logger() *zap.Logger {
	if dependencies.Logger == nil {
		return zap.NewNop()
	}
	return dependencies.Logger
}
