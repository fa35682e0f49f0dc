package python

import (
	"context"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
	"github.com/tyemirov/devtasks/pkg/taskrunner"
)

const (
	installingMessageTemplateConstant = "Installing %s..."
	pipInstallArgumentConstant        = "install"
	pipRequirementFlagConstant        = "-r"
	installDevStepNameConstant        = "installdev"
	installStepNameConstant           = "install"
)

// Service installs Python dependencies with pip.
type Service struct {
	dependencies  shared.Dependencies
	configuration CommandConfiguration
}

// NewService constructs a Service.
func NewService(dependencies shared.Dependencies, configuration CommandConfiguration) *Service {
	return &Service{dependencies: dependencies, configuration: configuration.Sanitize()}
}

// Install installs the base requirements manifest.
func (service *Service) Install(executionContext context.Context) error {
	return service.installManifest(executionContext, service.configuration.Requirements)
}

// InstallDev installs the development manifest and then the base manifest.
func (service *Service) InstallDev(executionContext context.Context) error {
	sequence := taskrunner.NewSequence(service.dependencies.SummaryWriter(),
		taskrunner.Step{
			Name: installDevStepNameConstant,
			Run: func(stepContext context.Context) error {
				return service.installManifest(stepContext, service.configuration.DevRequirements)
			},
		},
		taskrunner.Step{Name: installStepNameConstant, Run: service.Install},
	)
	_, runError := sequence.Run(executionContext)
	return runError
}

func (service *Service) installManifest(executionContext context.Context, manifest string) error {
	service.dependencies.Printf(installingMessageTemplateConstant, manifest)
	return service.dependencies.RunCommand(executionContext, execshell.ShellCommand{
		Name:    execshell.CommandPip,
		Details: execshell.CommandDetails{Arguments: []string{pipInstallArgumentConstant, pipRequirementFlagConstant, manifest}},
	}, shared.ExitPolicyConfigured)
}
