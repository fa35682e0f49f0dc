package execshell_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tyemirov/devtasks/internal/execshell"
)

const (
	testCommandArgumentConstant       = "--version"
	testRunnerFailureMessageConstant  = "runner failure"
	testStandardErrorMessageConstant  = "failure"
	testImageBuildArgumentsConstant   = "build -t price-updater ."
	testDryRunExpectedOutputConstant  = "+ docker build -t price-updater .\n"
	testInitializationCaseNameLogger  = "missing_logger"
	testInitializationCaseNameRunner  = "missing_runner"
	testInitializationCaseNameSuccess = "valid_configuration"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	if runner.executionError != nil {
		return execshell.ExecutionResult{}, runner.executionError
	}
	return runner.executionResult, nil
}

func versionCommand() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name:    execshell.CommandDocker,
		Details: execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}},
	}
}

func TestNewShellExecutorValidatesDependencies(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectedError error
	}{
		{
			name:          testInitializationCaseNameLogger,
			logger:        nil,
			runner:        &recordingCommandRunner{},
			expectedError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:          testInitializationCaseNameRunner,
			logger:        zap.NewNop(),
			runner:        nil,
			expectedError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:   testInitializationCaseNameSuccess,
			logger: zap.NewNop(),
			runner: &recordingCommandRunner{},
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner, false)
			if testCase.expectedError != nil {
				require.ErrorIs(subTest, creationError, testCase.expectedError)
				require.Nil(subTest, executor)
				return
			}
			require.NoError(subTest, creationError)
			require.NotNil(subTest, executor)
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name               string
		runnerResult       execshell.ExecutionResult
		runnerError        error
		expectedLevels     []zapcore.Level
		expectFailedError  bool
		expectRunnerError  bool
		expectedResultCode int
	}{
		{
			name:           "success",
			runnerResult:   execshell.ExecutionResult{ExitCode: 0, StandardOutput: "Docker version 27"},
			expectedLevels: []zapcore.Level{zapcore.InfoLevel, zapcore.InfoLevel},
		},
		{
			name:               "non_zero_exit",
			runnerResult:       execshell.ExecutionResult{ExitCode: 1, StandardError: testStandardErrorMessageConstant},
			expectedLevels:     []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel},
			expectFailedError:  true,
			expectedResultCode: 1,
		},
		{
			name:              "runner_error",
			runnerError:       errors.New(testRunnerFailureMessageConstant),
			expectedLevels:    []zapcore.Level{zapcore.InfoLevel, zapcore.ErrorLevel},
			expectRunnerError: true,
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			runner := &recordingCommandRunner{executionResult: testCase.runnerResult, executionError: testCase.runnerError}
			executor, creationError := execshell.NewShellExecutor(zap.New(observerCore), runner, false)
			require.NoError(subTest, creationError)

			result, executionError := executor.Execute(context.Background(), versionCommand())

			switch {
			case testCase.expectFailedError:
				var failedError execshell.CommandFailedError
				require.ErrorAs(subTest, executionError, &failedError)
				require.Equal(subTest, testCase.expectedResultCode, failedError.Result.ExitCode)
				require.Equal(subTest, testCase.expectedResultCode, result.ExitCode)
				require.Contains(subTest, failedError.Error(), testStandardErrorMessageConstant)
			case testCase.expectRunnerError:
				var runnerError execshell.CommandExecutionError
				require.ErrorAs(subTest, executionError, &runnerError)
				require.Contains(subTest, runnerError.Error(), testRunnerFailureMessageConstant)
			default:
				require.NoError(subTest, executionError)
			}

			require.Len(subTest, runner.recordedCommands, 1)
			require.Equal(subTest, execshell.CommandDocker, runner.recordedCommands[0].Name)

			observedEntries := observedLogs.All()
			require.Len(subTest, observedEntries, len(testCase.expectedLevels))
			for entryIndex, expectedLevel := range testCase.expectedLevels {
				require.Equal(subTest, expectedLevel, observedEntries[entryIndex].Level)
			}
		})
	}
}

func TestShellExecutorHumanReadableMessages(testInstance *testing.T) {
	testCases := []struct {
		name             string
		runnerResult     execshell.ExecutionResult
		runnerError      error
		expectedMessages []string
	}{
		{
			name:         "success",
			runnerResult: execshell.ExecutionResult{ExitCode: 0},
			expectedMessages: []string{
				"Running docker --version",
				"Completed docker --version",
			},
		},
		{
			name:         "failure_with_stderr",
			runnerResult: execshell.ExecutionResult{ExitCode: 1, StandardError: "\n" + testStandardErrorMessageConstant + "\nsecond line"},
			expectedMessages: []string{
				"Running docker --version",
				"docker --version failed with exit code 1: failure",
			},
		},
		{
			name:         "failure_without_stderr",
			runnerResult: execshell.ExecutionResult{ExitCode: 2},
			expectedMessages: []string{
				"Running docker --version",
				"docker --version failed with exit code 2",
			},
		},
		{
			name:        "runner_error",
			runnerError: errors.New(testRunnerFailureMessageConstant),
			expectedMessages: []string{
				"Running docker --version",
				"docker --version failed: runner failure",
			},
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			runner := &recordingCommandRunner{executionResult: testCase.runnerResult, executionError: testCase.runnerError}
			executor, creationError := execshell.NewShellExecutor(zap.New(observerCore), runner, true)
			require.NoError(subTest, creationError)

			_, _ = executor.Execute(context.Background(), versionCommand())

			observedEntries := observedLogs.All()
			require.Len(subTest, observedEntries, len(testCase.expectedMessages))
			for entryIndex, expectedMessage := range testCase.expectedMessages {
				require.Equal(subTest, expectedMessage, observedEntries[entryIndex].Message)
			}
		})
	}
}

func TestShellExecutorDryRunPrintsWithoutRunning(testInstance *testing.T) {
	var output bytes.Buffer
	runner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), runner, false, execshell.WithDryRun(&output))
	require.NoError(testInstance, creationError)

	result, executionError := executor.Execute(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandDocker,
		Details: execshell.CommandDetails{Arguments: []string{"build", "-t", "price-updater", "."}},
	})

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, execshell.ExecutionResult{}, result)
	require.Empty(testInstance, runner.recordedCommands)
	require.Equal(testInstance, testDryRunExpectedOutputConstant, output.String())
}

func TestShellExecutorRejectsMissingCommandName(testInstance *testing.T) {
	runner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), runner, false)
	require.NoError(testInstance, creationError)

	_, executionError := executor.Execute(context.Background(), execshell.ShellCommand{})
	require.ErrorIs(testInstance, executionError, execshell.ErrCommandNameMissing)
	require.Empty(testInstance, runner.recordedCommands)
}

func TestShellCommandCommandLine(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name:    execshell.CommandDocker,
		Details: execshell.CommandDetails{Arguments: []string{"build", "-t", "price-updater", "."}},
	}
	require.Equal(testInstance, "docker "+testImageBuildArgumentsConstant, command.CommandLine())
}
