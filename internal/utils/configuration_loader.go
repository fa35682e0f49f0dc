package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorConstant                = "."
	environmentKeyReplacementConstant              = "_"
	embeddedConfigurationReadErrorTemplateConstant = "unable to read embedded configuration: %w"
	explicitConfigurationReadErrorTemplateConstant = "unable to read configuration file %s: %w"
	searchedConfigurationReadErrorTemplateConstant = "unable to read configuration from search paths: %w"
	configurationDecodeErrorTemplateConstant       = "unable to decode configuration: %w"
	configurationTargetMissingErrorMessageConstant = "configuration target not provided"
	configurationLoaderMissingErrorMessageConstant = "configuration loader not initialized"
)

// ErrConfigurationTargetMissing indicates that LoadConfiguration received a nil destination.
var ErrConfigurationTargetMissing = errors.New(configurationTargetMissingErrorMessageConstant)

// LoadedConfiguration describes where configuration values were sourced from.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// ConfigurationLoader merges embedded defaults, configuration files, and environment overrides.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	embeddedConfigurationData []byte
	embeddedConfigurationType string
}

// NewConfigurationLoader constructs a loader for the provided configuration name and search paths.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: strings.TrimSpace(configurationName),
		configurationType: strings.TrimSpace(configurationType),
		environmentPrefix: strings.TrimSpace(environmentPrefix),
		searchPaths:       append([]string{}, searchPaths...),
	}
}

// SetEmbeddedConfiguration registers configuration content applied before any file on disk.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	loader.embeddedConfigurationData = append([]byte{}, configurationData...)
	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)
}

// LoadConfiguration decodes configuration into target. Precedence from lowest to highest:
// defaults, embedded configuration, configuration file, environment variables.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, target any) (LoadedConfiguration, error) {
	if loader == nil {
		return LoadedConfiguration{}, errors.New(configurationLoaderMissingErrorMessageConstant)
	}
	if target == nil {
		return LoadedConfiguration{}, ErrConfigurationTargetMissing
	}

	configurationReader := viper.New()
	for defaultKey, defaultValue := range defaultValues {
		configurationReader.SetDefault(defaultKey, defaultValue)
	}

	if len(loader.embeddedConfigurationData) > 0 {
		embeddedType := loader.embeddedConfigurationType
		if len(embeddedType) == 0 {
			embeddedType = loader.configurationType
		}
		configurationReader.SetConfigType(embeddedType)
		if readError := configurationReader.ReadConfig(bytes.NewReader(loader.embeddedConfigurationData)); readError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationReadErrorTemplateConstant, readError)
		}
	}

	configFileUsed, mergeError := loader.mergeConfigurationFile(configurationReader, strings.TrimSpace(configurationFilePath))
	if mergeError != nil {
		return LoadedConfiguration{}, mergeError
	}

	if len(loader.environmentPrefix) > 0 {
		configurationReader.SetEnvPrefix(loader.environmentPrefix)
	}
	configurationReader.SetEnvKeyReplacer(strings.NewReplacer(environmentKeySeparatorConstant, environmentKeyReplacementConstant))
	configurationReader.AutomaticEnv()

	if decodeError := configurationReader.Unmarshal(target); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplateConstant, decodeError)
	}

	return LoadedConfiguration{ConfigFileUsed: configFileUsed}, nil
}

func (loader *ConfigurationLoader) mergeConfigurationFile(configurationReader *viper.Viper, configurationFilePath string) (string, error) {
	if len(configurationFilePath) > 0 {
		configurationReader.SetConfigFile(configurationFilePath)
		if mergeError := configurationReader.MergeInConfig(); mergeError != nil {
			return "", fmt.Errorf(explicitConfigurationReadErrorTemplateConstant, configurationFilePath, mergeError)
		}
		return configurationReader.ConfigFileUsed(), nil
	}

	if len(loader.searchPaths) == 0 {
		return "", nil
	}

	configurationReader.SetConfigName(loader.configurationName)
	configurationReader.SetConfigType(loader.configurationType)
	for _, searchPath := range loader.searchPaths {
		trimmedSearchPath := strings.TrimSpace(searchPath)
		if len(trimmedSearchPath) == 0 {
			continue
		}
		configurationReader.AddConfigPath(trimmedSearchPath)
	}

	if mergeError := configurationReader.MergeInConfig(); mergeError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if errors.As(mergeError, &notFoundError) {
			return "", nil
		}
		return "", fmt.Errorf(searchedConfigurationReadErrorTemplateConstant, mergeError)
	}

	return configurationReader.ConfigFileUsed(), nil
}
