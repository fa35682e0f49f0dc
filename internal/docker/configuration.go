package docker

import (
	"strings"

	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	defaultDockerfilePathConstant = "docker/Dockerfile"
	defaultBuildContextConstant   = "."
	defaultImageTagConstant       = "latest"
)

// CommandConfiguration captures configuration values for the container tasks.
type CommandConfiguration struct {
	Image        string `mapstructure:"image"`
	Dockerfile   string `mapstructure:"dockerfile"`
	BuildContext string `mapstructure:"context"`
	Tag          string `mapstructure:"tag"`
}

// DefaultCommandConfiguration returns the baseline configuration for the container tasks.
// The image name is left empty so it is resolved from IMAGE_NAME.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Dockerfile:   defaultDockerfilePathConstant,
		BuildContext: defaultBuildContextConstant,
		Tag:          defaultImageTagConstant,
	}
}

// Sanitize trims textual values and restores defaults for blank ones.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	return CommandConfiguration{
		Image:        strings.TrimSpace(configuration.Image),
		Dockerfile:   shared.ValueOrDefault(configuration.Dockerfile, defaultDockerfilePathConstant),
		BuildContext: shared.ValueOrDefault(configuration.BuildContext, defaultBuildContextConstant),
		Tag:          shared.ValueOrDefault(configuration.Tag, defaultImageTagConstant),
	}
}
