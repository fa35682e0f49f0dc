package envtasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/tasks/dependencies"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	envToYAMLShortDescriptionConstant  = "Convert .env file to YAML file"
	envToYAMLLongDescriptionConstant   = "envtoyaml parses the env file and writes every variable, in file order, to the YAML file (default env.yaml)."
	buildEnvPyShortDescriptionConstant = "Generate a Python module exposing the .env variables"
	buildEnvPyLongDescriptionConstant  = "buildenvpy parses the env file and regenerates a Python stub (default env/env_auto.py) with one os.environ lookup per variable. Values are read when the stub is imported, not copied."
	unknownTaskErrorTemplateConstant   = "%w: %q"
)

// ErrUnknownTask indicates the builder was asked for a task this package does not provide.
var ErrUnknownTask = errors.New("unknown env file task")

// TaskName identifies an env file conversion task.
type TaskName string

// Supported task names.
const (
	TaskEnvToYAML  TaskName = "envtoyaml"
	TaskBuildEnvPy TaskName = "buildenvpy"
)

// TaskNames lists the tasks in registration order.
func TaskNames() []TaskName {
	return []TaskName{TaskEnvToYAML, TaskBuildEnvPy}
}

// CommandBuilder assembles one env file conversion command.
type CommandBuilder struct {
	Task                        TaskName
	LoggerProvider              func() *zap.Logger
	CommonConfigurationProvider func() shared.CommonConfiguration
}

// Build constructs the command for the configured task.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:  string(builder.Task),
		Args: cobra.NoArgs,
		RunE: builder.run,
	}

	switch builder.Task {
	case TaskEnvToYAML:
		command.Short = envToYAMLShortDescriptionConstant
		command.Long = envToYAMLLongDescriptionConstant
	case TaskBuildEnvPy:
		command.Short = buildEnvPyShortDescriptionConstant
		command.Long = buildEnvPyLongDescriptionConstant
	default:
		return nil, fmt.Errorf(unknownTaskErrorTemplateConstant, ErrUnknownTask, builder.Task)
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	taskDependencies, dependenciesError := dependencies.BuildDependencies(dependencies.Config{
		LoggerProvider:              builder.LoggerProvider,
		CommonConfigurationProvider: builder.CommonConfigurationProvider,
		Resolver:                    noVariables{},
	}, dependencies.Options{Command: command})
	if dependenciesError != nil {
		return dependenciesError
	}

	service := NewService(taskDependencies)
	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	if builder.Task == TaskBuildEnvPy {
		return service.BuildEnvPy(executionContext)
	}
	return service.EnvToYAML(executionContext)
}

// noVariables stands in for the resolver; conversions read the env file directly.
type noVariables struct{}

func (noVariables) Resolve(executionContext context.Context, key string) (string, error) {
	return "", shared.ErrResolverNotConfigured
}
