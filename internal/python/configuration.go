package python

import "github.com/tyemirov/devtasks/internal/tasks/shared"

const (
	defaultRequirementsFileConstant    = "requirements.txt"
	defaultDevRequirementsFileConstant = "requirements-dev.txt"
)

// CommandConfiguration captures configuration values for the install tasks.
type CommandConfiguration struct {
	Requirements    string `mapstructure:"requirements"`
	DevRequirements string `mapstructure:"dev_requirements"`
}

// DefaultCommandConfiguration returns the baseline configuration for the install tasks.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Requirements:    defaultRequirementsFileConstant,
		DevRequirements: defaultDevRequirementsFileConstant,
	}
}

// Sanitize trims manifest paths and restores defaults for blank values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	return CommandConfiguration{
		Requirements:    shared.ValueOrDefault(configuration.Requirements, defaultRequirementsFileConstant),
		DevRequirements: shared.ValueOrDefault(configuration.DevRequirements, defaultDevRequirementsFileConstant),
	}
}
