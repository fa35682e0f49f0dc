package cloudrun

import (
	"context"

	"github.com/tyemirov/devtasks/internal/docker"
	"github.com/tyemirov/devtasks/internal/envtasks"
	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
	"github.com/tyemirov/devtasks/pkg/taskrunner"
)

// ProjectVariableName names the Google Cloud project variable.
const ProjectVariableName = "GCR_PROJECT_ID"

const (
	deployingMessageConstant         = "Deploying docker image to Google Cloud Run..."
	runArgumentConstant              = "run"
	deployArgumentConstant           = "deploy"
	imageFlagConstant                = "--image"
	regionFlagConstant               = "--region"
	projectFlagConstant              = "--project"
	envVarsFileFlagConstant          = "--env-vars-file"
	allowUnauthenticatedFlagConstant = "--allow-unauthenticated"
	denyUnauthenticatedFlagConstant  = "--no-allow-unauthenticated"
	imageReferenceSeparatorConstant  = "/"
	envToYAMLStepNameConstant        = "envtoyaml"
	deployStepNameConstant           = "gcrdeploy"
)

// Service deploys the pushed image to Cloud Run.
type Service struct {
	dependencies  shared.Dependencies
	configuration CommandConfiguration
	images        *docker.Service
	conversions   *envtasks.Service
}

// NewService constructs a Service. Image naming follows the container task configuration.
func NewService(dependencies shared.Dependencies, configuration CommandConfiguration, dockerConfiguration docker.CommandConfiguration) *Service {
	return &Service{
		dependencies:  dependencies,
		configuration: configuration.Sanitize(),
		images:        docker.NewService(dependencies, dockerConfiguration),
		conversions:   envtasks.NewService(dependencies),
	}
}

// Deploy regenerates the YAML env file and runs gcloud run deploy. A non-zero gcloud exit always fails.
func (service *Service) Deploy(executionContext context.Context) error {
	service.dependencies.Printf(deployingMessageConstant)

	deployCommand, commandError := service.deployCommand(executionContext)
	if commandError != nil {
		return commandError
	}

	sequence := taskrunner.NewSequence(service.dependencies.SummaryWriter(),
		taskrunner.Step{Name: envToYAMLStepNameConstant, Run: service.conversions.EnvToYAML},
		taskrunner.Step{
			Name: deployStepNameConstant,
			Run: func(stepContext context.Context) error {
				return service.dependencies.RunCommand(stepContext, deployCommand, shared.ExitPolicyStrict)
			},
		},
	)
	_, runError := sequence.Run(executionContext)
	return runError
}

func (service *Service) deployCommand(executionContext context.Context) (execshell.ShellCommand, error) {
	remoteReference, referenceError := service.images.RemoteReference(executionContext)
	if referenceError != nil {
		return execshell.ShellCommand{}, referenceError
	}
	serviceName := service.configuration.Service
	if len(serviceName) == 0 {
		imageName, imageError := service.images.ImageName(executionContext)
		if imageError != nil {
			return execshell.ShellCommand{}, imageError
		}
		serviceName = imageName
	}
	project := service.configuration.Project
	if len(project) == 0 {
		resolvedProject, projectError := service.dependencies.Resolve(executionContext, ProjectVariableName)
		if projectError != nil {
			return execshell.ShellCommand{}, projectError
		}
		project = resolvedProject
	}

	visibilityFlag := denyUnauthenticatedFlagConstant
	if service.configuration.AllowUnauthenticated {
		visibilityFlag = allowUnauthenticatedFlagConstant
	}

	return execshell.ShellCommand{
		Name: execshell.CommandGCloud,
		Details: execshell.CommandDetails{Arguments: []string{
			runArgumentConstant,
			deployArgumentConstant,
			serviceName,
			imageFlagConstant, service.configuration.Registry + imageReferenceSeparatorConstant + remoteReference,
			regionFlagConstant, service.configuration.Region,
			visibilityFlag,
			projectFlagConstant, project,
			envVarsFileFlagConstant, service.dependencies.Files.Sanitize().YAMLFile,
		}},
	}, nil
}
