package cloudrun

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/docker"
	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/dependencies"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	commandUseNameConstant          = "gcrdeploy"
	commandShortDescriptionConstant = "Deploy the docker image to Google Cloud Run"
	commandLongDescriptionConstant  = "gcrdeploy regenerates the YAML env file and runs gcloud run deploy for <registry>/<DOCKER_USERNAME>/<image>:<tag> in the configured region and GCR_PROJECT_ID project. Unlike the other tasks, a non-zero gcloud exit fails the command."
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the gcrdeploy command.
type CommandBuilder struct {
	LoggerProvider                 LoggerProvider
	HumanReadableLoggingProvider   func() bool
	ConfigurationProvider          func() CommandConfiguration
	ContainerConfigurationProvider func() docker.CommandConfiguration
	CommonConfigurationProvider    func() shared.CommonConfiguration
	CommandRunner                  execshell.CommandRunner
	Executor                       shared.CommandExecutor
	Resolver                       shared.VariableResolver
}

// Build constructs the gcrdeploy command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
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

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	return NewService(taskDependencies, builder.resolveConfiguration(), builder.resolveContainerConfiguration()).Deploy(executionContext)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveContainerConfiguration() docker.CommandConfiguration {
	if builder.ContainerConfigurationProvider == nil {
		return docker.DefaultCommandConfiguration()
	}
	return builder.ContainerConfigurationProvider().Sanitize()
}
