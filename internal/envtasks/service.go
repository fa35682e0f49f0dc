package envtasks

import (
	"context"

	"github.com/tyemirov/devtasks/internal/envfile"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	yamlCreatedMessageTemplateConstant = "YAML file '%s' created successfully."
	stubCreatedMessageTemplateConstant = "Environment stub '%s' generated with %d variables."
)

// Service converts the env file into derived formats.
type Service struct {
	dependencies shared.Dependencies
}

// NewService constructs a Service.
func NewService(dependencies shared.Dependencies) *Service {
	return &Service{dependencies: dependencies}
}

// EnvToYAML rewrites the YAML file from the env file.
func (service *Service) EnvToYAML(executionContext context.Context) error {
	files := service.dependencies.Files.Sanitize()
	entries, parseError := envfile.ParseFile(files.EnvFile)
	if parseError != nil {
		return parseError
	}
	if writeError := envfile.WriteYAML(files.YAMLFile, entries); writeError != nil {
		return writeError
	}
	service.dependencies.Printf(yamlCreatedMessageTemplateConstant, files.YAMLFile)
	return nil
}

// BuildEnvPy regenerates the Python environment stub from the env file.
func (service *Service) BuildEnvPy(executionContext context.Context) error {
	files := service.dependencies.Files.Sanitize()
	entries, parseError := envfile.ParseFile(files.EnvFile)
	if parseError != nil {
		return parseError
	}
	if generateError := envfile.GenerateStub(files.StubFile, entries, files.EnvFile); generateError != nil {
		return generateError
	}
	service.dependencies.Printf(stubCreatedMessageTemplateConstant, files.StubFile, len(entries))
	return nil
}
