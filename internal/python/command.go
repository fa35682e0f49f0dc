package python

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/dependencies"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	installShortDescriptionConstant    = "Install requirements.txt"
	installLongDescriptionConstant     = "install runs pip install -r against the base requirements manifest (default requirements.txt)."
	installDevShortDescriptionConstant = "Install requirements-dev.txt and requirements.txt"
	installDevLongDescriptionConstant  = "installdev runs pip install -r against the development manifest (default requirements-dev.txt) and then performs install."
	unknownTaskErrorTemplateConstant   = "%w: %q"
)

// ErrUnknownTask indicates the builder was asked for a task this package does not provide.
var ErrUnknownTask = errors.New("unknown python task")

// TaskName identifies a pip task.
type TaskName string

// Supported task names.
const (
	TaskInstall    TaskName = "install"
	TaskInstallDev TaskName = "installdev"
)

// TaskNames lists the tasks in registration order.
func TaskNames() []TaskName {
	return []TaskName{TaskInstall, TaskInstallDev}
}

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles one pip task command.
type CommandBuilder struct {
	Task                         TaskName
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	CommonConfigurationProvider  func() shared.CommonConfiguration
	CommandRunner                execshell.CommandRunner
	Executor                     shared.CommandExecutor
	Resolver                     shared.VariableResolver
}

// Build constructs the command for the configured task.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:  string(builder.Task),
		Args: cobra.NoArgs,
		RunE: builder.run,
	}

	switch builder.Task {
	case TaskInstall:
		command.Short = installShortDescriptionConstant
		command.Long = installLongDescriptionConstant
	case TaskInstallDev:
		command.Short = installDevShortDescriptionConstant
		command.Long = installDevLongDescriptionConstant
	default:
		return nil, fmt.Errorf(unknownTaskErrorTemplateConstant, ErrUnknownTask, builder.Task)
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	taskDependencies, dependenciesError := dependencies.BuildDependencies(dependencies.Config{
		LoggerProvider:               builder.LoggerProvider,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		CommonConfigurationProvider:  builder.CommonConfigurationProvider,
		CommandRunner:                builder.CommandRunner,
		Executor:                     builder.Executor,
		Resolver:                     builder.Resolver,
	}, dependencies.Options{Command: command})
	if dependenciesError != nil {
		return dependenciesError
	}

	service := NewService(taskDependencies, builder.resolveConfiguration())
	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	switch builder.Task {
	case TaskInstallDev:
		return service.InstallDev(executionContext)
	default:
		return service.Install(executionContext)
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
