package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/dependencies"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
	flagutils "github.com/tyemirov/devtasks/internal/utils/flags"
)

const (
	buildFlagNameConstant            = "build"
	buildFlagShorthandConstant       = "b"
	buildFlagUsageConstant           = "Build the docker image"
	tagFlagNameConstant              = "tag"
	tagFlagShorthandConstant         = "t"
	tagFlagUsageConstant             = "Tag the docker image for DockerHub"
	pushFlagNameConstant             = "push"
	pushFlagShorthandConstant        = "p"
	pushFlagUsageConstant            = "Log in and push the docker image to DockerHub"
	composeExampleConstant           = "devtasks docker -b -t -p"
	unknownTaskErrorTemplateConstant = "%w: %q"
)

// ErrUnknownTask indicates the builder was asked for a task this package does not provide.
var ErrUnknownTask = errors.New("unknown docker task")

// TaskName identifies a container task.
type TaskName string

// Supported task names.
const (
	TaskBuild   TaskName = "dockerbuild"
	TaskTag     TaskName = "dockertag"
	TaskPush    TaskName = "dockerpush"
	TaskLogin   TaskName = "dockerlogin"
	TaskCompose TaskName = "docker"
	TaskPull    TaskName = "dockerpull"
	TaskRun     TaskName = "dockerrun"
)

type taskDescription struct {
	short string
	long  string
}

var taskDescriptions = map[TaskName]taskDescription{
	TaskBuild: {
		short: "Build the docker image",
		long:  "dockerbuild runs docker build -t <image> -f <dockerfile> <context> (defaults docker/Dockerfile and .).",
	},
	TaskTag: {
		short: "Tag the docker image",
		long:  "dockertag tags the local image as <DOCKER_USERNAME>/<image>:<tag>.",
	},
	TaskPush: {
		short: "Push the docker image to DockerHub",
		long:  "dockerpush performs dockerlogin and then pushes <DOCKER_USERNAME>/<image>:<tag>.",
	},
	TaskLogin: {
		short: "Log in to DockerHub",
		long:  "dockerlogin runs docker login for DOCKER_USERNAME, passing DOCKER_TOKEN on standard input.",
	},
	TaskCompose: {
		short: "Build, tag, and push the docker image",
		long:  "docker runs dockerbuild, dockertag, and dockerpush in that order for each selected flag. Without flags nothing runs.",
	},
	TaskPull: {
		short: "Pull the docker image from DockerHub",
		long:  "dockerpull pulls <DOCKER_USERNAME>/<image>:<tag>.",
	},
	TaskRun: {
		short: "Run the docker image with the env file",
		long:  "dockerrun runs the local image, passing every variable from the env file with --env-file.",
	},
}

// TaskNames lists the tasks in registration order.
func TaskNames() []TaskName {
	return []TaskName{TaskBuild, TaskTag, TaskPush, TaskLogin, TaskCompose, TaskPull, TaskRun}
}

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles one container task command.
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
	description, known := taskDescriptions[builder.Task]
	if !known {
		return nil, fmt.Errorf(unknownTaskErrorTemplateConstant, ErrUnknownTask, builder.Task)
	}

	command := &cobra.Command{
		Use:   string(builder.Task),
		Short: description.short,
		Long:  description.long,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	if builder.Task == TaskCompose {
		command.Example = composeExampleConstant
		command.Flags().BoolP(buildFlagNameConstant, buildFlagShorthandConstant, false, buildFlagUsageConstant)
		command.Flags().BoolP(tagFlagNameConstant, tagFlagShorthandConstant, false, tagFlagUsageConstant)
		command.Flags().BoolP(pushFlagNameConstant, pushFlagShorthandConstant, false, pushFlagUsageConstant)
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
	case TaskBuild:
		return service.Build(executionContext)
	case TaskTag:
		return service.Tag(executionContext)
	case TaskPush:
		return service.Push(executionContext)
	case TaskLogin:
		return service.Login(executionContext)
	case TaskCompose:
		selection, selectionError := resolveSelection(command)
		if selectionError != nil {
			return selectionError
		}
		return service.Compose(executionContext, selection)
	case TaskPull:
		return service.Pull(executionContext)
	case TaskRun:
		return service.Run(executionContext)
	default:
		return fmt.Errorf(unknownTaskErrorTemplateConstant, ErrUnknownTask, builder.Task)
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func resolveSelection(command *cobra.Command) (Selection, error) {
	buildSelected, _, buildError := flagutils.BoolFlag(command, buildFlagNameConstant)
	if buildError != nil {
		return Selection{}, buildError
	}
	tagSelected, _, tagError := flagutils.BoolFlag(command, tagFlagNameConstant)
	if tagError != nil {
		return Selection{}, tagError
	}
	pushSelected, _, pushError := flagutils.BoolFlag(command, pushFlagNameConstant)
	if pushError != nil {
		return Selection{}, pushError
	}
	return Selection{Build: buildSelected, Tag: tagSelected, Push: pushSelected}, nil
}
