package cli

import (
	"errors"
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/cloudrun"
	"github.com/tyemirov/devtasks/internal/docker"
	"github.com/tyemirov/devtasks/internal/python"
	"github.com/tyemirov/devtasks/internal/scaffold"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
	"github.com/tyemirov/devtasks/internal/utils"
)

const (
	pythonOperationNameConstant                     = "python"
	dockerOperationNameConstant                     = "docker"
	cloudRunOperationNameConstant                   = "gcrdeploy"
	scaffoldOperationNameConstant                   = "cookiecutter"
	duplicateOperationConfigurationTemplateConstant = "duplicate configuration for operation %q"
	missingOperationConfigurationTemplateConstant   = "missing configuration for operation %q"
	operationDecodeErrorMessageConstant             = "unable to decode operation defaults"
	operationNameLogFieldConstant                   = "operation"
	mapstructureTagNameConstant                     = "mapstructure"
)

// DuplicateOperationConfigurationError indicates that the configuration file defines the same operation multiple times.
type DuplicateOperationConfigurationError struct {
	OperationName string
}

// Error implements the error interface.
func (errorDetails DuplicateOperationConfigurationError) Error() string {
	return fmt.Sprintf(duplicateOperationConfigurationTemplateConstant, errorDetails.OperationName)
}

// MissingOperationConfigurationError indicates that a referenced operation configuration is absent.
type MissingOperationConfigurationError struct {
	OperationName string
}

// Error implements the error interface.
func (errorDetails MissingOperationConfigurationError) Error() string {
	return fmt.Sprintf(missingOperationConfigurationTemplateConstant, errorDetails.OperationName)
}

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common     ApplicationCommonConfiguration      `mapstructure:"common"`
	Files      shared.FileLocations                `mapstructure:"files"`
	Operations []ApplicationOperationConfiguration `mapstructure:"operations"`
}

// ApplicationCommonConfiguration stores logging and execution defaults shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel               string `mapstructure:"log_level"`
	LogFormat              string `mapstructure:"log_format"`
	PromptMissingVariables bool   `mapstructure:"prompt_missing_variables"`
	StrictExitCodes        bool   `mapstructure:"strict_exit_codes"`
}

// ApplicationOperationConfiguration captures reusable operation defaults from the configuration file.
type ApplicationOperationConfiguration struct {
	Name    string         `mapstructure:"operation"`
	Options map[string]any `mapstructure:"with"`
}

// OperationConfigurations stores reusable operation defaults indexed by normalized operation name.
type OperationConfigurations struct {
	entries map[string]map[string]any
}

func newOperationConfigurations(definitions []ApplicationOperationConfiguration) (OperationConfigurations, error) {
	entries := make(map[string]map[string]any)
	for definitionIndex := range definitions {
		normalizedName := normalizeOperationName(definitions[definitionIndex].Name)
		if len(normalizedName) == 0 {
			continue
		}

		if _, exists := entries[normalizedName]; exists {
			return OperationConfigurations{}, DuplicateOperationConfigurationError{OperationName: normalizedName}
		}

		options := make(map[string]any, len(definitions[definitionIndex].Options))
		for optionKey, optionValue := range definitions[definitionIndex].Options {
			options[optionKey] = optionValue
		}
		entries[normalizedName] = options
	}

	return OperationConfigurations{entries: entries}, nil
}

// MergeDefaults ensures default operation configurations are available when not overridden.
func (configurations OperationConfigurations) MergeDefaults(defaults OperationConfigurations) OperationConfigurations {
	if len(defaults.entries) == 0 {
		return configurations
	}
	if configurations.entries == nil {
		configurations.entries = map[string]map[string]any{}
	}
	for defaultName, defaultOptions := range defaults.entries {
		if _, exists := configurations.entries[defaultName]; exists {
			continue
		}
		copiedOptions := make(map[string]any, len(defaultOptions))
		for optionKey, optionValue := range defaultOptions {
			copiedOptions[optionKey] = optionValue
		}
		configurations.entries[defaultName] = copiedOptions
	}
	return configurations
}

// Lookup returns the configuration options for the provided operation name or an error if the configuration is absent.
func (configurations OperationConfigurations) Lookup(operationName string) (map[string]any, error) {
	normalizedName := normalizeOperationName(operationName)
	if len(normalizedName) == 0 {
		return nil, MissingOperationConfigurationError{OperationName: operationName}
	}

	options, exists := configurations.entries[normalizedName]
	if !exists {
		return nil, MissingOperationConfigurationError{OperationName: normalizedName}
	}

	duplicatedOptions := make(map[string]any, len(options))
	for optionKey, optionValue := range options {
		duplicatedOptions[optionKey] = optionValue
	}

	return duplicatedOptions, nil
}

func (configurations OperationConfigurations) decode(operationName string, target any) error {
	if target == nil {
		return nil
	}

	options, lookupError := configurations.Lookup(operationName)
	if lookupError != nil {
		return lookupError
	}
	if len(options) == 0 {
		return nil
	}

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          mapstructureTagNameConstant,
		Result:           target,
		WeaklyTypedInput: true,
	})
	if decoderError != nil {
		return decoderError
	}

	return decoder.Decode(options)
}

func normalizeOperationName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func loadEmbeddedOperationConfigurations() OperationConfigurations {
	configurationData, configurationType := EmbeddedDefaultConfiguration()
	if len(configurationData) == 0 {
		return OperationConfigurations{}
	}

	loader := utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, environmentPrefixConstant, nil)
	loader.SetEmbeddedConfiguration(configurationData, configurationType)

	var configuration ApplicationConfiguration
	if _, loadError := loader.LoadConfiguration("", nil, &configuration); loadError != nil {
		return OperationConfigurations{}
	}

	embeddedConfigurations, configurationError := newOperationConfigurations(configuration.Operations)
	if configurationError != nil {
		return OperationConfigurations{}
	}

	return embeddedConfigurations
}

func (application *Application) commonConfiguration() shared.CommonConfiguration {
	return shared.CommonConfiguration{
		Files:                  application.configuration.Files.Sanitize(),
		PromptMissingVariables: application.configuration.Common.PromptMissingVariables,
		StrictExitCodes:        application.configuration.Common.StrictExitCodes,
	}
}

func (application *Application) pythonConfiguration() python.CommandConfiguration {
	configuration := python.DefaultCommandConfiguration()
	application.decodeOperationConfiguration(pythonOperationNameConstant, &configuration)
	return configuration.Sanitize()
}

func (application *Application) dockerConfiguration() docker.CommandConfiguration {
	configuration := docker.DefaultCommandConfiguration()
	application.decodeOperationConfiguration(dockerOperationNameConstant, &configuration)
	return configuration.Sanitize()
}

func (application *Application) cloudRunConfiguration() cloudrun.CommandConfiguration {
	configuration := cloudrun.DefaultCommandConfiguration()
	application.decodeOperationConfiguration(cloudRunOperationNameConstant, &configuration)
	return configuration.Sanitize()
}

func (application *Application) scaffoldConfiguration() scaffold.CommandConfiguration {
	configuration := scaffold.DefaultCommandConfiguration()
	application.decodeOperationConfiguration(scaffoldOperationNameConstant, &configuration)
	return configuration.Sanitize()
}

func (application *Application) decodeOperationConfiguration(operationName string, target any) {
	decodeError := application.operationConfigurations.decode(operationName, target)
	if decodeError == nil {
		return
	}
	var missingError MissingOperationConfigurationError
	if errors.As(decodeError, &missingError) {
		return
	}
	if application.logger == nil {
		return
	}
	application.logger.Warn(
		operationDecodeErrorMessageConstant,
		zap.String(operationNameLogFieldConstant, operationName),
		zap.Error(decodeError),
	)
}
