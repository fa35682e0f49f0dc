package flags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tyemirov/devtasks/internal/utils"
)

const (
	boolFlagParseErrorTemplate  = "unable to parse flag %q: %w"
	choiceUsageTemplateConstant = "%s (choices: %s; default: %s)"
	choiceSeparatorConstant     = ", "
)

// ErrFlagNotDefined indicates that the requested flag is not present on the command.
var ErrFlagNotDefined = errors.New("flag not defined")

// BoolFlag returns the flag value and whether the operator changed it.
func BoolFlag(command *cobra.Command, name string) (bool, bool, error) {
	flagSet, flag := locateFlag(command, name)
	if flag == nil {
		return false, false, ErrFlagNotDefined
	}
	value, err := flagSet.GetBool(name)
	if err == nil {
		return value, flag.Changed, nil
	}

	if flag.Value == nil {
		return false, false, err
	}

	parsedValue, parseError := strconv.ParseBool(strings.TrimSpace(flag.Value.String()))
	if parseError != nil {
		return false, false, fmt.Errorf(boolFlagParseErrorTemplate, name, parseError)
	}

	return parsedValue, flag.Changed, nil
}

// StringFlag returns the flag value and whether the operator changed it.
func StringFlag(command *cobra.Command, name string) (string, bool, error) {
	flagSet, flag := locateFlag(command, name)
	if flag == nil {
		return "", false, ErrFlagNotDefined
	}
	value, err := flagSet.GetString(name)
	if err != nil {
		return "", false, err
	}
	return value, flag.Changed, nil
}

// FormatChoiceUsage appends the accepted choices and the default to a flag usage string.
func FormatChoiceUsage(defaultValue string, choices []string, usage string) string {
	return fmt.Sprintf(choiceUsageTemplateConstant, usage, strings.Join(choices, choiceSeparatorConstant), defaultValue)
}

func locateFlag(command *cobra.Command, name string) (*pflag.FlagSet, *pflag.Flag) {
	if command == nil {
		return nil, nil
	}

	candidateSets := []*pflag.FlagSet{
		command.Flags(),
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if root := command.Root(); root != nil {
		candidateSets = append(candidateSets, root.PersistentFlags())
	}

	for _, set := range candidateSets {
		if set == nil {
			continue
		}
		if flag := set.Lookup(name); flag != nil {
			return set, flag
		}
	}

	return nil, nil
}

// CollectExecutionFlags inspects the command's flags to produce execution flag values.
func CollectExecutionFlags(command *cobra.Command) utils.ExecutionFlags {
	executionFlags := utils.ExecutionFlags{}
	if command == nil {
		return executionFlags
	}

	if dryRunValue, dryRunChanged, dryRunError := BoolFlag(command, DryRunFlagName); dryRunError == nil {
		executionFlags.DryRun = dryRunValue
		executionFlags.DryRunSet = dryRunChanged
	}

	if noInputValue, noInputChanged, noInputError := BoolFlag(command, NoInputFlagName); noInputError == nil {
		executionFlags.NoInput = noInputValue
		executionFlags.NoInputSet = noInputChanged
	}

	if envFileValue, envFileChanged, envFileError := StringFlag(command, EnvFileFlagName); envFileError == nil {
		trimmedEnvFile := strings.TrimSpace(envFileValue)
		executionFlags.EnvFile = trimmedEnvFile
		executionFlags.EnvFileSet = envFileChanged && len(trimmedEnvFile) > 0
	}

	return executionFlags
}

// ResolveExecutionFlags returns execution flags from context or flag values, indicating whether any overrides are provided.
func ResolveExecutionFlags(command *cobra.Command) (utils.ExecutionFlags, bool) {
	contextAccessor := utils.NewCommandContextAccessor()
	if command != nil {
		if flags, available := contextAccessor.ExecutionFlags(command.Context()); available {
			return flags, true
		}
	}

	executionFlags := CollectExecutionFlags(command)
	available := executionFlags.DryRunSet || executionFlags.NoInputSet || executionFlags.EnvFileSet
	return executionFlags, available
}
