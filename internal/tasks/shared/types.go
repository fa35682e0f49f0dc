package shared

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/execshell"
)

const (
	defaultEnvFilePathConstant          = ".env"
	defaultYAMLFilePathConstant         = "env.yaml"
	defaultMirrorFilePathConstant       = "environment.yaml"
	defaultDescriptionsFilePathConstant = "env_descriptions.json"
	defaultStubFilePathConstant         = "env/env_auto.py"
)

// CommandExecutor runs external programs.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// VariableResolver returns required configuration values, filling gaps according to the active policy.
type VariableResolver interface {
	Resolve(executionContext context.Context, key string) (string, error)
}

// VariableSource lists the variables every child process receives on top of the inherited environment.
type VariableSource interface {
	Keys() []string
	Lookup(key string) (string, bool)
}

// FileLocations names the files tasks read and write.
type FileLocations struct {
	EnvFile          string `mapstructure:"env_file"`
	YAMLFile         string `mapstructure:"yaml_file"`
	MirrorFile       string `mapstructure:"mirror_file"`
	DescriptionsFile string `mapstructure:"descriptions_file"`
	StubFile         string `mapstructure:"stub_file"`
}

// DefaultFileLocations returns the conventional file names relative to the working directory.
func DefaultFileLocations() FileLocations {
	return FileLocations{
		EnvFile:          defaultEnvFilePathConstant,
		YAMLFile:         defaultYAMLFilePathConstant,
		MirrorFile:       defaultMirrorFilePathConstant,
		DescriptionsFile: defaultDescriptionsFilePathConstant,
		StubFile:         defaultStubFilePathConstant,
	}
}

// Sanitize trims paths and restores defaults for blank entries.
func (locations FileLocations) Sanitize() FileLocations {
	defaults := DefaultFileLocations()
	return FileLocations{
		EnvFile:          valueOrDefault(locations.EnvFile, defaults.EnvFile),
		YAMLFile:         valueOrDefault(locations.YAMLFile, defaults.YAMLFile),
		MirrorFile:       valueOrDefault(locations.MirrorFile, defaults.MirrorFile),
		DescriptionsFile: valueOrDefault(locations.DescriptionsFile, defaults.DescriptionsFile),
		StubFile:         valueOrDefault(locations.StubFile, defaults.StubFile),
	}
}

// CommonConfiguration captures settings shared by every task.
type CommonConfiguration struct {
	Files                  FileLocations
	PromptMissingVariables bool
	StrictExitCodes        bool
}

// DefaultCommonConfiguration returns the baseline shared settings.
func DefaultCommonConfiguration() CommonConfiguration {
	return CommonConfiguration{
		Files:                  DefaultFileLocations(),
		PromptMissingVariables: true,
	}
}

// Dependencies bundles the collaborators a task needs.
type Dependencies struct {
	Logger          *zap.Logger
	Executor        CommandExecutor
	Resolver        VariableResolver
	Environment     VariableSource
	Output          io.Writer
	Errors          io.Writer
	Files           FileLocations
	StrictExitCodes bool
}

// ValueOrDefault returns the trimmed value, or fallback when the value is blank.
func ValueOrDefault(value string, fallback string) string {
	return valueOrDefault(value, fallback)
}

func valueOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}
