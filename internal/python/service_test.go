package python_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/tyemirov/devtasks/internal/execshell"
	"github.com/tyemirov/devtasks/internal/python"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

type recordingExecutor struct {
	commands []string
	results  map[string]execshell.ExecutionResult
}

func (executor *recordingExecutor) Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	commandLine := command.CommandLine()
	executor.commands = append(executor.commands, commandLine)
	result := executor.results[commandLine]
	if result.ExitCode != 0 {
		return result, execshell.CommandFailedError{Command: command, Result: result}
	}
	return result, nil
}

func TestServiceInstall(testInstance *testing.T) {
	executor := &recordingExecutor{}
	output := &bytes.Buffer{}
	service := python.NewService(shared.Dependencies{Executor: executor, Output: output}, python.CommandConfiguration{})

	require.NoError(testInstance, service.Install(context.Background()))
	require.Equal(testInstance, []string{"pip install -r requirements.txt"}, executor.commands)
	require.Equal(testInstance, "Installing requirements.txt...\n", output.String())
}

func TestServiceInstallDevRunsDevManifestFirst(testInstance *testing.T) {
	testCases := []struct {
		name             string
		strict           bool
		results          map[string]execshell.ExecutionResult
		expectError      bool
		expectedCommands []string
	}{
		{
			name: "both_manifests",
			expectedCommands: []string{
				"pip install -r requirements-dev.txt",
				"pip install -r requirements.txt",
			},
		},
		{
			name:    "dev_failure_ignored",
			results: map[string]execshell.ExecutionResult{"pip install -r requirements-dev.txt": {ExitCode: 1}},
			expectedCommands: []string{
				"pip install -r requirements-dev.txt",
				"pip install -r requirements.txt",
			},
		},
		{
			name:             "dev_failure_strict",
			strict:           true,
			results:          map[string]execshell.ExecutionResult{"pip install -r requirements-dev.txt": {ExitCode: 1}},
			expectError:      true,
			expectedCommands: []string{"pip install -r requirements-dev.txt"},
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			executor := &recordingExecutor{results: testCase.results}
			service := python.NewService(shared.Dependencies{Executor: executor, StrictExitCodes: testCase.strict}, python.DefaultCommandConfiguration())

			installError := service.InstallDev(context.Background())
			if testCase.expectError {
				require.Error(subTest, installError)
			} else {
				require.NoError(subTest, installError)
			}
			require.Equal(subTest, testCase.expectedCommands, executor.commands)
		})
	}
}

func TestCommandBuilderUsesConfiguredManifests(testInstance *testing.T) {
	executor := &recordingExecutor{}
	output := &bytes.Buffer{}
	builder := python.CommandBuilder{
		Task: python.TaskInstallDev,
		ConfigurationProvider: func() python.CommandConfiguration {
			return python.CommandConfiguration{Requirements: " requirements/base.txt ", DevRequirements: "requirements/dev.txt"}
		},
		Executor: executor,
		Resolver: stubResolver{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, []string{
		"pip install -r requirements/dev.txt",
		"pip install -r requirements/base.txt",
	}, executor.commands)
	require.Contains(testInstance, output.String(), "Installing requirements/dev.txt...")
	require.Contains(testInstance, output.String(), "Summary: total.steps=2 completed=2")
}

func TestCommandBuilderRejectsUnknownTask(testInstance *testing.T) {
	builder := python.CommandBuilder{Task: "uninstall"}
	_, buildError := builder.Build()
	require.ErrorIs(testInstance, buildError, python.ErrUnknownTask)
}

func TestTaskNamesBuildCommands(testInstance *testing.T) {
	for _, taskName := range python.TaskNames() {
		builder := python.CommandBuilder{Task: taskName}
		command, buildError := builder.Build()
		require.NoError(testInstance, buildError)
		require.IsType(testInstance, &cobra.Command{}, command)
		require.Equal(testInstance, string(taskName), command.Name())
	}
}

type stubResolver struct{}

func (stubResolver) Resolve(executionContext context.Context, key string) (string, error) {
	return "", nil
}
