package docker

import (
	"context"
	"fmt"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
	"github.com/tyemirov/devtasks/pkg/taskrunner"
)

// Variables resolved by the container tasks.
const (
	UsernameVariableName  = "DOCKER_USERNAME"
	TokenVariableName     = "DOCKER_TOKEN"
	ImageNameVariableName = "IMAGE_NAME"
)

const (
	remoteReferenceTemplateConstant = "%s/%s:%s"
	buildingMessageConstant         = "Building docker image..."
	taggingMessageConstant          = "Tagging docker image..."
	taggedMessageTemplateConstant   = "Tagged docker image: %s"
	loggingInMessageConstant        = "Logging into DockerHub..."
	pushingMessageConstant          = "Pushing docker image to DockerHub..."
	pullingMessageConstant          = "Pulling docker image from DockerHub..."
	pulledMessageTemplateConstant   = "Pulled docker image: %s"
	runningMessageTemplateConstant  = "Running docker image %s..."
	buildArgumentConstant           = "build"
	tagArgumentConstant             = "tag"
	loginArgumentConstant           = "login"
	pushArgumentConstant            = "push"
	pullArgumentConstant            = "pull"
	runArgumentConstant             = "run"
	tagFlagConstant                 = "-t"
	fileFlagConstant                = "-f"
	usernameFlagConstant            = "-u"
	passwordStdinFlagConstant       = "--password-stdin"
	envFileFlagConstant             = "--env-file"
)

// Selection chooses which composite steps run.
type Selection struct {
	Build bool
	Tag   bool
	Push  bool
}

// Service drives the container engine CLI.
type Service struct {
	dependencies  shared.Dependencies
	configuration CommandConfiguration
}

// NewService constructs a Service.
func NewService(dependencies shared.Dependencies, configuration CommandConfiguration) *Service {
	return &Service{dependencies: dependencies, configuration: configuration.Sanitize()}
}

// ImageName returns the configured image name, resolving IMAGE_NAME when none is configured.
func (service *Service) ImageName(executionContext context.Context) (string, error) {
	if len(service.configuration.Image) > 0 {
		return service.configuration.Image, nil
	}
	return service.dependencies.Resolve(executionContext, ImageNameVariableName)
}

// RemoteReference returns <DOCKER_USERNAME>/<image>:<tag>.
func (service *Service) RemoteReference(executionContext context.Context) (string, error) {
	username, usernameError := service.dependencies.Resolve(executionContext, UsernameVariableName)
	if usernameError != nil {
		return "", usernameError
	}
	imageName, imageError := service.ImageName(executionContext)
	if imageError != nil {
		return "", imageError
	}
	return fmt.Sprintf(remoteReferenceTemplateConstant, username, imageName, service.configuration.Tag), nil
}

// Build builds the local image from the configured Dockerfile and context.
func (service *Service) Build(executionContext context.Context) error {
	imageName, imageError := service.ImageName(executionContext)
	if imageError != nil {
		return imageError
	}
	service.dependencies.Printf(buildingMessageConstant)
	return service.docker(executionContext, nil,
		buildArgumentConstant, tagFlagConstant, imageName, fileFlagConstant, service.configuration.Dockerfile, service.configuration.BuildContext)
}

// Tag tags the local image with its remote reference.
func (service *Service) Tag(executionContext context.Context) error {
	imageName, imageError := service.ImageName(executionContext)
	if imageError != nil {
		return imageError
	}
	remoteReference, referenceError := service.RemoteReference(executionContext)
	if referenceError != nil {
		return referenceError
	}
	service.dependencies.Printf(taggingMessageConstant)
	if runError := service.docker(executionContext, nil, tagArgumentConstant, imageName, remoteReference); runError != nil {
		return runError
	}
	service.dependencies.Printf(taggedMessageTemplateConstant, remoteReference)
	return nil
}

// Login authenticates against the registry. The token is passed on standard input.
func (service *Service) Login(executionContext context.Context) error {
	username, usernameError := service.dependencies.Resolve(executionContext, UsernameVariableName)
	if usernameError != nil {
		return usernameError
	}
	token, tokenError := service.dependencies.Resolve(executionContext, TokenVariableName)
	if tokenError != nil {
		return tokenError
	}
	service.dependencies.Printf(loggingInMessageConstant)
	return service.docker(executionContext, []byte(token), loginArgumentConstant, usernameFlagConstant, username, passwordStdinFlagConstant)
}

// Push logs in and pushes the remote reference.
func (service *Service) Push(executionContext context.Context) error {
	sequence := taskrunner.NewSequence(service.dependencies.SummaryWriter(),
		taskrunner.Step{Name: string(TaskLogin), Run: service.Login},
		taskrunner.Step{Name: string(TaskPush), Run: service.pushImage},
	)
	_, runError := sequence.Run(executionContext)
	return runError
}

// Pull pulls the remote reference.
func (service *Service) Pull(executionContext context.Context) error {
	remoteReference, referenceError := service.RemoteReference(executionContext)
	if referenceError != nil {
		return referenceError
	}
	service.dependencies.Printf(pullingMessageConstant)
	if runError := service.docker(executionContext, nil, pullArgumentConstant, remoteReference); runError != nil {
		return runError
	}
	service.dependencies.Printf(pulledMessageTemplateConstant, remoteReference)
	return nil
}

// Run starts the local image with every variable from the env file.
func (service *Service) Run(executionContext context.Context) error {
	imageName, imageError := service.ImageName(executionContext)
	if imageError != nil {
		return imageError
	}
	service.dependencies.Printf(runningMessageTemplateConstant, imageName)
	return service.docker(executionContext, nil, runArgumentConstant, envFileFlagConstant, service.dependencies.Files.EnvFile, imageName)
}

// Compose runs the selected steps in build, tag, push order. An empty selection does nothing.
func (service *Service) Compose(executionContext context.Context, selection Selection) error {
	steps := make([]taskrunner.Step, 0, 3)
	if selection.Build {
		steps = append(steps, taskrunner.Step{Name: string(TaskBuild), Run: service.Build})
	}
	if selection.Tag {
		steps = append(steps, taskrunner.Step{Name: string(TaskTag), Run: service.Tag})
	}
	if selection.Push {
		steps = append(steps, taskrunner.Step{Name: string(TaskPush), Run: service.Push})
	}
	if len(steps) == 0 {
		return nil
	}
	_, runError := taskrunner.NewSequence(service.dependencies.SummaryWriter(), steps...).Run(executionContext)
	return runError
}

func (service *Service) pushImage(executionContext context.Context) error {
	remoteReference, referenceError := service.RemoteReference(executionContext)
	if referenceError != nil {
		return referenceError
	}
	service.dependencies.Printf(pushingMessageConstant)
	return service.docker(executionContext, nil, pushArgumentConstant, remoteReference)
}

func (service *Service) docker(executionContext context.Context, standardInput []byte, arguments ...string) error {
	return service.dependencies.RunCommand(executionContext, execshell.ShellCommand{
		Name:    execshell.CommandDocker,
		Details: execshell.CommandDetails{Arguments: arguments, StandardInput: standardInput},
	}, shared.ExitPolicyConfigured)
}
