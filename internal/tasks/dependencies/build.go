package dependencies

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
	flagutils "github.com/tyemirov/devtasks/internal/utils/flags"
)

const (
	executorErrorTemplateConstant = "tasks.dependencies.executor: %w"
	resolverErrorTemplateConstant = "tasks.dependencies.resolver: %w"
)

// Config captures providers and overrides used to build task dependencies.
type Config struct {
	LoggerProvider               func() *zap.Logger
	HumanReadableLoggingProvider func() bool
	CommonConfigurationProvider  func() shared.CommonConfiguration
	ProcessEnvironmentProvider   func() []string
	CommandRunner                execshell.CommandRunner
	Executor                     shared.CommandExecutor
	Resolver                     shared.VariableResolver
}

// Options carries per-invocation streams. Streams default to the command's streams, then the process streams.
type Options struct {
	Command *cobra.Command
	Input   io.Reader
	Output  io.Writer
	Errors  io.Writer
}

// BuildDependencies resolves the executor, resolver, and streams a task runs with.
func BuildDependencies(config Config, options Options) (shared.Dependencies, error) {
	logger := resolveLogger(config.LoggerProvider)
	humanReadable := false
	if config.HumanReadableLoggingProvider != nil {
		humanReadable = config.HumanReadableLoggingProvider()
	}

	common := shared.DefaultCommonConfiguration()
	if config.CommonConfigurationProvider != nil {
		common = config.CommonConfigurationProvider()
	}
	files := common.Files.Sanitize()

	dryRun := false
	promptingAllowed := common.PromptMissingVariables
	if executionFlags, available := flagutils.ResolveExecutionFlags(options.Command); available {
		if executionFlags.DryRunSet {
			dryRun = executionFlags.DryRun
		}
		if executionFlags.NoInputSet && executionFlags.NoInput {
			promptingAllowed = false
		}
		if executionFlags.EnvFileSet {
			files.EnvFile = executionFlags.EnvFile
		}
	}

	inputReader := resolveReader(options.Input, options.Command)
	outputWriter := resolveWriter(options.Output, options.Command, true)
	errorWriter := resolveWriter(options.Errors, options.Command, false)

	commandRunner := ResolveCommandRunner(config.CommandRunner, inputReader, outputWriter, errorWriter)
	executor, executorError := ResolveCommandExecutor(config.Executor, commandRunner, logger, humanReadable, dryRun, outputWriter)
	if executorError != nil {
		return shared.Dependencies{}, fmt.Errorf(executorErrorTemplateConstant, executorError)
	}

	processEnvironment := os.Environ
	if config.ProcessEnvironmentProvider != nil {
		processEnvironment = config.ProcessEnvironmentProvider
	}
	filler := ResolveFiller(promptingAllowed, inputReader, outputWriter, files)
	resolver, variables, resolverError := ResolveVariableResolver(config.Resolver, processEnvironment(), files, filler)
	if resolverError != nil {
		return shared.Dependencies{}, fmt.Errorf(resolverErrorTemplateConstant, resolverError)
	}

	return shared.Dependencies{
		Logger:          logger,
		Executor:        executor,
		Resolver:        resolver,
		Environment:     variables,
		Output:          outputWriter,
		Errors:          errorWriter,
		Files:           files,
		StrictExitCodes: common.StrictExitCodes,
	}, nil
}

func resolveLogger(provider func() *zap.Logger) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveReader(provided io.Reader, command *cobra.Command) io.Reader {
	if provided != nil {
		return provided
	}
	if command != nil {
		return command.InOrStdin()
	}
	return os.Stdin
}

func resolveWriter(provided io.Writer, command *cobra.Command, useStdout bool) io.Writer {
	if provided != nil {
		return provided
	}
	if command != nil {
		if useStdout {
			if writer := command.OutOrStdout(); writer != nil && writer != io.Discard {
				return writer
			}
		} else {
			if writer := command.ErrOrStderr(); writer != nil && writer != io.Discard {
				return writer
			}
		}
	}
	if useStdout {
		return os.Stdout
	}
	return os.Stderr
}
