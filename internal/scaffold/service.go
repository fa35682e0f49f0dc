package scaffold

import (
	"context"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

// Variables resolved by the cookiecutter task.
const (
	ProjectNameVariableName = "PROJECT_NAME"
	PackageNameVariableName = "PACKAGE_NAME"
)

const (
	generatingMessageTemplateConstant = "Generating project %s from %s..."
	noInputFlagConstant               = "--no-input"
	outputDirectoryFlagConstant       = "--output-dir"
	contextAssignmentConstant         = "="
)

// Service scaffolds projects with cookiecutter.
type Service struct {
	dependencies  shared.Dependencies
	configuration CommandConfiguration
}

// NewService constructs a Service.
func NewService(dependencies shared.Dependencies, configuration CommandConfiguration) *Service {
	return &Service{dependencies: dependencies, configuration: configuration.Sanitize()}
}

// Generate renders the configured template with the project and package names.
func (service *Service) Generate(executionContext context.Context) error {
	projectName, projectError := service.dependencies.Resolve(executionContext, ProjectNameVariableName)
	if projectError != nil {
		return projectError
	}
	packageName, packageError := service.dependencies.Resolve(executionContext, PackageNameVariableName)
	if packageError != nil {
		return packageError
	}

	arguments := []string{noInputFlagConstant}
	if len(service.configuration.OutputDirectory) > 0 {
		arguments = append(arguments, outputDirectoryFlagConstant, service.configuration.OutputDirectory)
	}
	arguments = append(arguments,
		service.configuration.Template,
		service.configuration.ProjectNameParameter+contextAssignmentConstant+projectName,
		service.configuration.PackageNameParameter+contextAssignmentConstant+packageName,
	)

	service.dependencies.Printf(generatingMessageTemplateConstant, projectName, service.configuration.Template)
	return service.dependencies.RunCommand(executionContext, execshell.ShellCommand{
		Name:    execshell.CommandCookiecutter,
		Details: execshell.CommandDetails{Arguments: arguments},
	}, shared.ExitPolicyConfigured)
}
