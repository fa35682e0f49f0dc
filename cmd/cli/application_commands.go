package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/cloudrun"
	"github.com/tyemirov/devtasks/internal/docker"
	"github.com/tyemirov/devtasks/internal/envtasks"
	"github.com/tyemirov/devtasks/internal/python"
	"github.com/tyemirov/devtasks/internal/scaffold"
)

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

func (application *Application) registerCommands(cobraCommand *cobra.Command) {
	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	builders := make([]commandBuilder, 0, 16)

	for _, taskName := range python.TaskNames() {
		builders = append(builders, &python.CommandBuilder{
			Task:                         taskName,
			LoggerProvider:               loggerProvider,
			HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
			ConfigurationProvider:        application.pythonConfiguration,
			CommonConfigurationProvider:  application.commonConfiguration,
		})
	}

	for _, taskName := range docker.TaskNames() {
		builders = append(builders, &docker.CommandBuilder{
			Task:                         taskName,
			LoggerProvider:               loggerProvider,
			HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
			ConfigurationProvider:        application.dockerConfiguration,
			CommonConfigurationProvider:  application.commonConfiguration,
		})
	}

	builders = append(builders, &cloudrun.CommandBuilder{
		LoggerProvider:                 loggerProvider,
		HumanReadableLoggingProvider:   application.humanReadableLoggingEnabled,
		ConfigurationProvider:          application.cloudRunConfiguration,
		ContainerConfigurationProvider: application.dockerConfiguration,
		CommonConfigurationProvider:    application.commonConfiguration,
	})

	for _, taskName := range envtasks.TaskNames() {
		builders = append(builders, &envtasks.CommandBuilder{
			Task:                        taskName,
			LoggerProvider:              loggerProvider,
			CommonConfigurationProvider: application.commonConfiguration,
		})
	}

	builders = append(builders, &scaffold.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.scaffoldConfiguration,
		CommonConfigurationProvider:  application.commonConfiguration,
	})

	for _, builder := range builders {
		command, buildError := builder.Build()
		if buildError != nil {
			continue
		}
		cobraCommand.AddCommand(command)
	}
}
