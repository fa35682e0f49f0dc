package scaffold

import (
	"strings"

	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	defaultTemplateConstant             = "https://github.com/audreyfeldroy/cookiecutter-pypackage"
	defaultProjectNameParameterConstant = "project_name"
	defaultPackageNameParameterConstant = "package_name"
)

// CommandConfiguration captures configuration values for the cookiecutter task.
type CommandConfiguration struct {
	Template             string `mapstructure:"template"`
	ProjectNameParameter string `mapstructure:"project_name_parameter"`
	PackageNameParameter string `mapstructure:"package_name_parameter"`
	OutputDirectory      string `mapstructure:"output_dir"`
}

// DefaultCommandConfiguration returns the baseline configuration for the cookiecutter task.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Template:             defaultTemplateConstant,
		ProjectNameParameter: defaultProjectNameParameterConstant,
		PackageNameParameter: defaultPackageNameParameterConstant,
	}
}

// Sanitize trims textual values and restores defaults for blank ones.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	return CommandConfiguration{
		Template:             shared.ValueOrDefault(configuration.Template, defaultTemplateConstant),
		ProjectNameParameter: shared.ValueOrDefault(configuration.ProjectNameParameter, defaultProjectNameParameterConstant),
		PackageNameParameter: shared.ValueOrDefault(configuration.PackageNameParameter, defaultPackageNameParameterConstant),
		OutputDirectory:      strings.TrimSpace(configuration.OutputDirectory),
	}
}
