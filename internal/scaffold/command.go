package scaffold

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/dependencies"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	commandUseNameConstant          = "cookiecutter"
	commandShortDescriptionConstant = "Scaffold a project from the cookiecutter template"
	commandLongDescriptionConstant  = "cookiecutter renders the configured template without prompting, passing PROJECT_NAME and PACKAGE_NAME as template context."
)

// CommandBuilder assembles the cookiecutter command.
type CommandBuilder struct {
	LoggerProvider               func() *zap.Logger
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	CommonConfigurationProvider  func() shared.CommonConfiguration
	CommandRunner                execshell.CommandRunner
	Executor                     shared.CommandExecutor
	Resolver                     shared.VariableResolver
}

// Build constructs the cookiecutter command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   commandUseNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}, nil
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

	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	return NewService(taskDependencies, configuration).Generate(executionContext)
}
