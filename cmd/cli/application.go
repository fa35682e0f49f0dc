package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/utils"
	flagutils "github.com/tyemirov/devtasks/internal/utils/flags"
	"github.com/tyemirov/devtasks/internal/version"
)

const (
	applicationNameConstant                                          = "devtasks"
	applicationShortDescriptionConstant                              = "Project automation tasks for Python services"
	applicationLongDescriptionConstant                               = "devtasks installs dependencies, builds and publishes container images, deploys to Cloud Run, converts .env files, and scaffolds projects. Missing environment variables are prompted for and remembered."
	configFileFlagNameConstant                                       = "config"
	configFileFlagUsageConstant                                      = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                                         = "log-level"
	logLevelFlagUsageConstant                                        = "Override the configured log level."
	logFormatFlagNameConstant                                        = "log-format"
	logFormatFlagUsageConstant                                       = "Override the configured log format (structured or console)."
	configurationInitializationFlagNameConstant                      = "init"
	configurationInitializationFlagUsageConstant                     = "Write the embedded default configuration to LOCAL (./config.yaml) or user ($HOME/.devtasks/config.yaml)."
	configurationInitializationDefaultScopeConstant                  = "local"
	configurationInitializationForceFlagNameConstant                 = "force"
	configurationInitializationForceFlagUsageConstant                = "Overwrite an existing configuration file when initializing."
	configurationInitializationScopeLocalConstant                    = "local"
	configurationInitializationScopeUserConstant                     = "user"
	configurationInitializationUnsupportedScopeTemplateConstant      = "unsupported initialization scope %q"
	configurationInitializationWorkingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	configurationInitializationHomeDirectoryErrorTemplateConstant    = "unable to determine user home directory: %w"
	configurationInitializationContentUnavailableErrorConstant       = "embedded configuration content is unavailable"
	configurationInitializationDirectoryErrorTemplateConstant        = "unable to ensure configuration directory %s: %w"
	configurationInitializationExistingFileTemplateConstant          = "configuration file already exists at %s (use --force to overwrite)"
	configurationInitializationExistingDirectoryTemplateConstant     = "configuration path %s is a directory"
	configurationInitializationWriteErrorTemplateConstant            = "unable to write configuration file %s: %w"
	configurationInitializationSuccessMessageConstant                = "configuration file created"
	commonConfigurationKeyConstant                                   = "common"
	commonLogLevelConfigKeyConstant                                  = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant                                 = commonConfigurationKeyConstant + ".log_format"
	commonPromptMissingVariablesConfigKeyConstant                    = commonConfigurationKeyConstant + ".prompt_missing_variables"
	commonStrictExitCodesConfigKeyConstant                           = commonConfigurationKeyConstant + ".strict_exit_codes"
	environmentPrefixConstant                                        = "DEVTASKS"
	configurationNameConstant                                        = "config"
	configurationTypeConstant                                        = "yaml"
	configurationFileNameConstant                                    = configurationNameConstant + "." + configurationTypeConstant
	configurationDirectoryPermissionConstant                         = 0o755
	configurationFilePermissionConstant                              = 0o600
	configurationInitializedMessageConstant                          = "configuration initialized"
	configurationLogLevelFieldConstant                               = "log_level"
	configurationLogFormatFieldConstant                              = "log_format"
	configurationFileFieldConstant                                   = "config_file"
	xdgConfigHomeEnvironmentVariableConstant                         = "XDG_CONFIG_HOME"
	configurationLoadErrorTemplateConstant                           = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant                              = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                                  = "unable to flush logger: %w"
	configurationInitializedConsoleTemplateConstant                  = "%s | log level=%s | log format=%s | config file=%s"
	defaultConfigurationSearchPathConstant                           = "."
	applicationConfigurationDirectoryNameConstant                    = "devtasks"
	userConfigurationDirectoryNameConstant                           = ".devtasks"
	configurationSearchPathEnvironmentVariableConstant               = "DEVTASKS_CONFIG_SEARCH_PATH"
	versionFlagNameConstant                                          = "version"
	versionFlagUsageConstant                                         = "Print the application version and exit"
	versionOutputTemplateConstant                                    = "devtasks version: %s\n"
	versionCommandUseNameConstant                                    = "version"
	versionCommandShortDescriptionConstant                           = "Print the devtasks version"
	versionCommandLongDescriptionConstant                            = "version prints the current devtasks release identifier."
)

type loggerOutputsFactory interface {
	CreateLoggerOutputs(utils.LogLevel, utils.LogFormat) (utils.LoggerOutputs, error)
}

type configurationInitializationPlan struct {
	DirectoryPath string
	FilePath      string
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand                       *cobra.Command
	configurationLoader               *utils.ConfigurationLoader
	loggerFactory                     loggerOutputsFactory
	logger                            *zap.Logger
	consoleLogger                     *zap.Logger
	configuration                     ApplicationConfiguration
	configurationMetadata             utils.LoadedConfiguration
	configurationFilePath             string
	logLevelFlagValue                 string
	logFormatFlagValue                string
	commandContextAccessor            utils.CommandContextAccessor
	operationConfigurations           OperationConfigurations
	embeddedOperationConfigurations   OperationConfigurations
	configurationInitializationScope  string
	configurationInitializationForced bool
	versionFlag                       bool
	versionResolver                   func() string
	exitFunction                      func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	application := &Application{
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		consoleLogger:          zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}
	application.versionResolver = application.resolveVersion
	application.exitFunction = os.Exit

	application.configurationLoader = utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		application.resolveConfigurationSearchPaths(),
	)

	embeddedConfigurationData, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	application.configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationData, embeddedConfigurationType)
	application.embeddedOperationConfigurations = loadEmbeddedOperationConfigurations()

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if initializationError := application.initializeConfiguration(command); initializationError != nil {
				return initializationError
			}

			versionRequested := application.versionFlag
			if flagValue, flagChanged, flagError := flagutils.BoolFlag(command, versionFlagNameConstant); flagError == nil && flagChanged {
				versionRequested = flagValue
			}
			if versionRequested {
				application.printVersion(command.OutOrStdout())
				application.exitFunction(0)
			}

			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.configurationInitializationScope,
		configurationInitializationFlagNameConstant,
		configurationInitializationDefaultScopeConstant,
		flagutils.FormatChoiceUsage(
			configurationInitializationDefaultScopeConstant,
			[]string{configurationInitializationScopeLocalConstant, configurationInitializationScopeUserConstant},
			configurationInitializationFlagUsageConstant,
		),
	)
	cobraCommand.PersistentFlags().BoolVar(
		&application.configurationInitializationForced,
		configurationInitializationForceFlagNameConstant,
		false,
		configurationInitializationForceFlagUsageConstant,
	)

	flagutils.BindExecutionFlags(
		cobraCommand,
		flagutils.ExecutionDefaults{},
		flagutils.ExecutionFlagDefinitions{
			DryRun:  flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
			NoInput: flagutils.ExecutionFlagDefinition{Name: flagutils.NoInputFlagName, Usage: flagutils.NoInputFlagUsage, Enabled: true},
			EnvFile: flagutils.ExecutionFlagDefinition{Name: flagutils.EnvFileFlagName, Usage: flagutils.EnvFileFlagUsage, Enabled: true},
		},
	)

	cobraCommand.PersistentFlags().BoolVar(&application.versionFlag, versionFlagNameConstant, false, versionFlagUsageConstant)

	versionCommand := &cobra.Command{
		Use:           versionCommandUseNameConstant,
		Short:         versionCommandShortDescriptionConstant,
		Long:          versionCommandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			application.printVersion(command.OutOrStdout())
			return nil
		},
	}
	cobraCommand.AddCommand(versionCommand)

	application.registerCommands(cobraCommand)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the command hierarchy against the provided arguments.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	application.rootCommand.SetArgs(normalizeInitializationScopeArguments(arguments))

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// RootCommand exposes the configured Cobra root command.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func normalizeInitializationScopeArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return []string{}
	}

	normalizedArguments := make([]string, 0, len(arguments))
	flagPrefix := "--" + configurationInitializationFlagNameConstant
	defaultAssignment := flagPrefix + "=" + configurationInitializationDefaultScopeConstant

	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]

		if strings.HasPrefix(currentArgument, flagPrefix+"=") {
			if len(strings.TrimSpace(strings.TrimPrefix(currentArgument, flagPrefix+"="))) == 0 {
				normalizedArguments = append(normalizedArguments, defaultAssignment)
				continue
			}
			normalizedArguments = append(normalizedArguments, currentArgument)
			continue
		}

		if currentArgument == flagPrefix {
			nextIndex := index + 1
			if nextIndex >= len(arguments) || !isInitializationScope(arguments[nextIndex]) {
				normalizedArguments = append(normalizedArguments, defaultAssignment)
				continue
			}
		}

		normalizedArguments = append(normalizedArguments, currentArgument)
	}

	return normalizedArguments
}

func isInitializationScope(candidate string) bool {
	switch strings.ToLower(strings.TrimSpace(candidate)) {
	case configurationInitializationScopeLocalConstant, configurationInitializationScopeUserConstant:
		return true
	default:
		return false
	}
}

func (application *Application) resolveConfigurationSearchPaths() []string {
	overrideValue := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentVariableConstant))
	if len(overrideValue) == 0 {
		return append([]string{defaultConfigurationSearchPathConstant}, application.resolveUserConfigurationDirectoryPaths()...)
	}

	overridePaths := strings.FieldsFunc(overrideValue, func(candidate rune) bool {
		return candidate == os.PathListSeparator
	})

	cleanedPaths := make([]string, 0, len(overridePaths))
	for _, pathCandidate := range overridePaths {
		trimmedCandidate := strings.TrimSpace(pathCandidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		cleanedPaths = append(cleanedPaths, trimmedCandidate)
	}

	if len(cleanedPaths) == 0 {
		return []string{defaultConfigurationSearchPathConstant}
	}

	return cleanedPaths
}

func (application *Application) resolveUserConfigurationDirectoryPaths() []string {
	userConfigurationDirectoryPaths := make([]string, 0, 3)

	appendConfigurationDirectory := func(candidateDirectoryPath string) {
		for _, existingDirectoryPath := range userConfigurationDirectoryPaths {
			if existingDirectoryPath == candidateDirectoryPath {
				return
			}
		}
		userConfigurationDirectoryPaths = append(userConfigurationDirectoryPaths, candidateDirectoryPath)
	}

	if xdgConfigHome := strings.TrimSpace(os.Getenv(xdgConfigHomeEnvironmentVariableConstant)); len(xdgConfigHome) > 0 {
		appendConfigurationDirectory(filepath.Join(xdgConfigHome, applicationConfigurationDirectoryNameConstant))
	}

	if userConfigurationBaseDirectoryPath, userConfigurationDirectoryError := os.UserConfigDir(); userConfigurationDirectoryError == nil && len(strings.TrimSpace(userConfigurationBaseDirectoryPath)) > 0 {
		appendConfigurationDirectory(filepath.Join(userConfigurationBaseDirectoryPath, applicationConfigurationDirectoryNameConstant))
	}

	if userHomeDirectoryPath, userHomeDirectoryError := os.UserHomeDir(); userHomeDirectoryError == nil && len(strings.TrimSpace(userHomeDirectoryPath)) > 0 {
		appendConfigurationDirectory(filepath.Join(userHomeDirectoryPath, userConfigurationDirectoryNameConstant))
	}

	return userConfigurationDirectoryPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:               string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant:              string(utils.LogFormatStructured),
		commonPromptMissingVariablesConfigKeyConstant: true,
		commonStrictExitCodesConfigKeyConstant:        false,
	}

	application.configuration = ApplicationConfiguration{}
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	operationConfigurations, configurationBuildError := newOperationConfigurations(application.configuration.Operations)
	if configurationBuildError != nil {
		return configurationBuildError
	}
	application.operationConfigurations = operationConfigurations.MergeDefaults(application.embeddedOperationConfigurations)

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	if application.logger == nil {
		application.logger = zap.NewNop()
	}
	application.consoleLogger = loggerOutputs.ConsoleLogger
	if application.consoleLogger == nil {
		application.consoleLogger = zap.NewNop()
	}

	application.logConfigurationInitialization()

	if command != nil {
		parentContext := command.Context()
		if parentContext == nil {
			parentContext = context.Background()
		}
		updatedContext := application.commandContextAccessor.WithExecutionFlags(parentContext, flagutils.CollectExecutionFlags(command))

		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

// InitializeForCommand prepares application state for the provided command name without executing command logic.
func (application *Application) InitializeForCommand(commandUse string) error {
	command := &cobra.Command{Use: commandUse}
	return application.initializeConfiguration(command)
}

// ConfigFileUsed returns the configuration file path used during initialization.
func (application *Application) ConfigFileUsed() string {
	return application.configurationMetadata.ConfigFileUsed
}

// Configuration returns the configuration loaded during initialization.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

func (application *Application) humanReadableLoggingEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(application.configuration.Common.LogFormat), string(utils.LogFormatConsole))
}

func (application *Application) logConfigurationInitialization() {
	if !strings.EqualFold(strings.TrimSpace(application.configuration.Common.LogLevel), string(utils.LogLevelDebug)) {
		return
	}

	if application.humanReadableLoggingEnabled() {
		application.consoleLogger.Debug(fmt.Sprintf(
			configurationInitializedConsoleTemplateConstant,
			configurationInitializedMessageConstant,
			application.configuration.Common.LogLevel,
			application.configuration.Common.LogFormat,
			application.configurationMetadata.ConfigFileUsed,
		))
		return
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)
}

func (application *Application) resolveVersion() string {
	return strings.TrimSpace(version.Detect(version.Dependencies{}))
}

func (application *Application) printVersion(output io.Writer) {
	if output == nil {
		output = os.Stdout
	}
	fmt.Fprintf(output, versionOutputTemplateConstant, application.versionResolver())
}

func (application *Application) handleConfigurationInitialization(command *cobra.Command) (bool, error) {
	if !application.persistentFlagChanged(command, configurationInitializationFlagNameConstant) {
		return false, nil
	}

	initializationPlan, planError := resolveConfigurationInitializationPlan(application.configurationInitializationScope)
	if planError != nil {
		return true, planError
	}

	configurationContent, _ := EmbeddedDefaultConfiguration()
	if writeError := application.writeConfigurationFile(initializationPlan, configurationContent); writeError != nil {
		return true, writeError
	}

	application.logger.Info(
		configurationInitializationSuccessMessageConstant,
		zap.String(configurationFileFieldConstant, initializationPlan.FilePath),
	)

	return true, nil
}

func resolveConfigurationInitializationPlan(initializationScope string) (configurationInitializationPlan, error) {
	switch strings.ToLower(strings.TrimSpace(initializationScope)) {
	case "", configurationInitializationScopeLocalConstant:
		workingDirectoryPath, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationWorkingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		return configurationInitializationPlan{
			DirectoryPath: workingDirectoryPath,
			FilePath:      filepath.Join(workingDirectoryPath, configurationFileNameConstant),
		}, nil
	case configurationInitializationScopeUserConstant:
		userHomeDirectoryPath, userHomeDirectoryError := os.UserHomeDir()
		if userHomeDirectoryError != nil {
			return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationHomeDirectoryErrorTemplateConstant, userHomeDirectoryError)
		}
		configurationDirectoryPath := filepath.Join(userHomeDirectoryPath, userConfigurationDirectoryNameConstant)
		return configurationInitializationPlan{
			DirectoryPath: configurationDirectoryPath,
			FilePath:      filepath.Join(configurationDirectoryPath, configurationFileNameConstant),
		}, nil
	default:
		return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationUnsupportedScopeTemplateConstant, strings.TrimSpace(initializationScope))
	}
}

func (application *Application) writeConfigurationFile(initializationPlan configurationInitializationPlan, configurationContent []byte) error {
	if len(configurationContent) == 0 {
		return errors.New(configurationInitializationContentUnavailableErrorConstant)
	}

	if createError := os.MkdirAll(initializationPlan.DirectoryPath, configurationDirectoryPermissionConstant); createError != nil {
		return fmt.Errorf(configurationInitializationDirectoryErrorTemplateConstant, initializationPlan.DirectoryPath, createError)
	}

	fileInfo, fileStatError := os.Stat(initializationPlan.FilePath)
	switch {
	case fileStatError == nil:
		if fileInfo.IsDir() {
			return fmt.Errorf(configurationInitializationExistingDirectoryTemplateConstant, initializationPlan.FilePath)
		}
		if !application.configurationInitializationForced {
			return fmt.Errorf(configurationInitializationExistingFileTemplateConstant, initializationPlan.FilePath)
		}
	case errors.Is(fileStatError, os.ErrNotExist):
	default:
		return fmt.Errorf(configurationInitializationWriteErrorTemplateConstant, initializationPlan.FilePath, fileStatError)
	}

	if writeError := os.WriteFile(initializationPlan.FilePath, configurationContent, configurationFilePermissionConstant); writeError != nil {
		return fmt.Errorf(configurationInitializationWriteErrorTemplateConstant, initializationPlan.FilePath, writeError)
	}

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	initializationHandled, initializationError := application.handleConfigurationInitialization(command)
	if initializationError != nil {
		return initializationError
	}
	if initializationHandled {
		return nil
	}
	return command.Help()
}

func (application *Application) flushLogger() error {
	if syncError := syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return syncLoggerInstance(application.consoleLogger)
}

func syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP),
		errors.Is(syncError, syscall.EINVAL),
		errors.Is(syncError, syscall.EBADF),
		errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
