package cloudrun

import (
	"strings"

	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const (
	defaultRegionConstant   = "us-east1"
	defaultRegistryConstant = "docker.io"
)

// CommandConfiguration captures configuration values for gcrdeploy.
type CommandConfiguration struct {
	Service              string `mapstructure:"service"`
	Region               string `mapstructure:"region"`
	Registry             string `mapstructure:"registry"`
	Project              string `mapstructure:"project"`
	AllowUnauthenticated bool   `mapstructure:"allow_unauthenticated"`
}

// DefaultCommandConfiguration returns the baseline configuration for gcrdeploy.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Region:   defaultRegionConstant,
		Registry: defaultRegistryConstant,
	}
}

// Sanitize trims textual values and restores defaults for blank ones.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	return CommandConfiguration{
		Service:              strings.TrimSpace(configuration.Service),
		Region:               shared.ValueOrDefault(configuration.Region, defaultRegionConstant),
		Registry:             strings.TrimSuffix(shared.ValueOrDefault(configuration.Registry, defaultRegistryConstant), "/"),
		Project:              strings.TrimSpace(configuration.Project),
		AllowUnauthenticated: configuration.AllowUnauthenticated,
	}
}
