package dependencies

import (
	"io"

	"go.uber.org/zap"

	"github.com/tyemirov/devtasks/internal/envfile"
	"github.com/tyemirov/devtasks/internal/environment"
	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/prompt"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

// ResolveCommandRunner returns the provided runner or an OS-backed default attached to the given streams.
func ResolveCommandRunner(existing execshell.CommandRunner, input io.Reader, output io.Writer, errorOutput io.Writer) execshell.CommandRunner {
	if existing != nil {
		return existing
	}
	return execshell.NewOSCommandRunnerWithStreams(input, output, errorOutput)
}

// ResolveCommandExecutor returns the provided executor or constructs a shell-backed default.
// When dryRun is set the default executor prints command lines to dryRunOutput instead of running them.
func ResolveCommandExecutor(existing shared.CommandExecutor, runner execshell.CommandRunner, logger *zap.Logger, humanReadableLogging bool, dryRun bool, dryRunOutput io.Writer) (shared.CommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	options := make([]execshell.ExecutorOption, 0, 1)
	if dryRun {
		options = append(options, execshell.WithDryRun(dryRunOutput))
	}
	shellExecutor, creationError := execshell.NewShellExecutor(logger, runner, humanReadableLogging, options...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveFiller selects how missing variables are filled. Prompting requires it to be allowed and
// an input that an operator can answer; otherwise missing variables are fatal.
func ResolveFiller(promptingAllowed bool, input io.Reader, output io.Writer, files shared.FileLocations) environment.Filler {
	if !promptingAllowed || !prompt.IsInteractive(input) {
		return environment.FatalFiller{}
	}
	return environment.NewInteractiveFiller(
		prompt.NewIOValuePrompter(input, output),
		envfile.NewMirror(files.MirrorFile),
		envfile.NewDescriptionJournal(files.DescriptionsFile),
	)
}

// ResolveVariableResolver returns the provided resolver or builds one over the process environment and env file.
// A built resolver also returns its Store, whose variables are exported to child processes; a provided
// resolver returns no Store.
func ResolveVariableResolver(existing shared.VariableResolver, processEnvironment []string, files shared.FileLocations, filler environment.Filler) (shared.VariableResolver, shared.VariableSource, error) {
	if existing != nil {
		return existing, nil, nil
	}

	entries, parseError := envfile.ParseFileIfExists(files.EnvFile)
	if parseError != nil {
		return nil, nil, parseError
	}
	store := environment.LoadStore(processEnvironment, entries)
	return environment.NewResolver(store, filler), store, nil
}
