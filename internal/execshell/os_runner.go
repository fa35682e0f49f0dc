package execshell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner runs commands as child processes, streaming their output while capturing it.
type OSCommandRunner struct {
	standardInput  io.Reader
	standardOutput io.Writer
	standardError  io.Writer
}

// NewOSCommandRunnerWithStreams constructs a runner attached to the provided streams.
// Nil streams leave the corresponding child stream detached.
func NewOSCommandRunnerWithStreams(standardInput io.Reader, standardOutput io.Writer, standardError io.Writer) OSCommandRunner {
	return OSCommandRunner{
		standardInput:  standardInput,
		standardOutput: standardOutput,
		standardError:  standardError,
	}
}

// Run executes the command and blocks until the child process exits. A non-zero exit is reported through
// ExecutionResult.ExitCode; only failures to start or wait for the process are returned as errors.
func (runner OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if len(command.Name) == 0 {
		return ExecutionResult{}, ErrCommandNameMissing
	}
	if executionContext == nil {
		executionContext = context.Background()
	}

	childProcess := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	if len(command.Details.EnvironmentVariables) > 0 {
		childProcess.Env = mergeEnvironment(os.Environ(), command.Details.EnvironmentVariables)
	}

	switch {
	case command.Details.StandardInput != nil:
		childProcess.Stdin = bytes.NewReader(command.Details.StandardInput)
	case runner.standardInput != nil:
		childProcess.Stdin = runner.standardInput
	}

	var capturedOutput bytes.Buffer
	var capturedError bytes.Buffer
	childProcess.Stdout = teeWriter(&capturedOutput, runner.standardOutput)
	childProcess.Stderr = teeWriter(&capturedError, runner.standardError)

	runError := childProcess.Run()
	result := ExecutionResult{
		StandardOutput: capturedOutput.String(),
		StandardError:  capturedError.String(),
	}
	if runError == nil {
		return result, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) && executionContext.Err() == nil {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}

	return result, runError
}

func teeWriter(capture *bytes.Buffer, stream io.Writer) io.Writer {
	if stream == nil {
		return capture
	}
	return io.MultiWriter(capture, stream)
}

func mergeEnvironment(baseEnvironment []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(baseEnvironment)+len(overrides))
	for _, assignment := range baseEnvironment {
		key, _, _ := strings.Cut(assignment, environmentAssignmentSeparatorConstant)
		if _, overridden := overrides[key]; overridden {
			continue
		}
		merged = append(merged, assignment)
	}
	for key, value := range overrides {
		merged = append(merged, key+environmentAssignmentSeparatorConstant+value)
	}
	return merged
}
