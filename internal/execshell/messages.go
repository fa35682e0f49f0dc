package execshell

import (
	"fmt"
	"strings"
)

const (
	startedMessageTemplateConstant          = "Running %s"
	succeededMessageTemplateConstant        = "Completed %s"
	failedMessageTemplateConstant           = "%s failed with exit code %d"
	failedWithDetailMessageTemplateConstant = "%s failed with exit code %d: %s"
	executionFailureMessageTemplateConstant = "%s failed: %v"
)

// CommandMessageFormatter renders human-readable command lifecycle messages.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return fmt.Sprintf(startedMessageTemplateConstant, formatter.describe(command))
}

// BuildSuccessMessage describes a command that exited with status zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return fmt.Sprintf(succeededMessageTemplateConstant, formatter.describe(command))
}

// BuildFailureMessage describes a command that exited with a non-zero status.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	firstLine := firstNonEmptyLine(result.StandardError)
	if len(firstLine) == 0 {
		return fmt.Sprintf(failedMessageTemplateConstant, formatter.describe(command), result.ExitCode)
	}
	return fmt.Sprintf(failedWithDetailMessageTemplateConstant, formatter.describe(command), result.ExitCode, firstLine)
}

// BuildExecutionFailureMessage describes a command the runner could not start or finish.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return fmt.Sprintf(executionFailureMessageTemplateConstant, formatter.describe(command), failure)
}

func (formatter CommandMessageFormatter) describe(command ShellCommand) string {
	return command.CommandLine()
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 0 {
			return trimmed
		}
	}
	return ""
}
