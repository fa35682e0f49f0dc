package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/devtasks/internal/utils"
)

const (
	testCommandStartedMessageConstant  = "command execution starting"
	testCommandFailureMessageConstant  = "command execution error"
	testConsoleProgressMessageConstant = "Tagged docker image: alice/price-updater:latest"
)

// captureStandardError redirects os.Stderr while create builds the loggers, so the returned
// loggers write into the pipe.
func captureStandardError(testInstance *testing.T, create func() (utils.LoggerOutputs, error)) (utils.LoggerOutputs, func() string, error) {
	pipeReader, pipeWriter, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)

	originalStandardError := os.Stderr
	os.Stderr = pipeWriter
	loggerOutputs, creationError := create()
	os.Stderr = originalStandardError

	return loggerOutputs, func() string {
		require.NoError(testInstance, pipeWriter.Close())
		captured, readError := io.ReadAll(pipeReader)
		require.NoError(testInstance, readError)
		require.NoError(testInstance, pipeReader.Close())
		return string(bytes.TrimSpace(captured))
	}, creationError
}

func requireBenignSync(testInstance *testing.T, syncError error) {
	if syncError == nil {
		return
	}
	require.True(
		testInstance,
		errors.Is(syncError, syscall.ENOTSUP) ||
			errors.Is(syncError, syscall.EINVAL) ||
			errors.Is(syncError, syscall.EBADF) ||
			errors.Is(syncError, syscall.ENOTTY),
	)
}

func TestLoggerFactoryCreateLoggerOutputs(testInstance *testing.T) {
	testCases := []struct {
		name                string
		logLevel            utils.LogLevel
		logFormat           utils.LogFormat
		expectInfoEntry     bool
		expectStructuredLog bool
		expectConsoleOutput bool
	}{
		{
			name:                "configured_defaults_keep_errors_only",
			logLevel:            utils.LogLevelError,
			logFormat:           utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:                "debug_structured",
			logLevel:            utils.LogLevelDebug,
			logFormat:           utils.LogFormatStructured,
			expectInfoEntry:     true,
			expectStructuredLog: true,
		},
		{
			name:                "console_values_normalized",
			logLevel:            utils.LogLevel(" Info "),
			logFormat:           utils.LogFormat("CONSOLE"),
			expectInfoEntry:     true,
			expectConsoleOutput: true,
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			loggerOutputs, readOutput, creationError := captureStandardError(subTest, func() (utils.LoggerOutputs, error) {
				return utils.NewLoggerFactory().CreateLoggerOutputs(testCase.logLevel, testCase.logFormat)
			})
			require.NoError(subTest, creationError)

			loggerOutputs.DiagnosticLogger.Info(testCommandStartedMessageConstant)
			loggerOutputs.DiagnosticLogger.Error(testCommandFailureMessageConstant)
			requireBenignSync(subTest, loggerOutputs.DiagnosticLogger.Sync())
			loggerOutputs.ConsoleLogger.Info(testConsoleProgressMessageConstant)
			_ = loggerOutputs.ConsoleLogger.Sync()

			output := readOutput()
			require.Contains(subTest, output, testCommandFailureMessageConstant)
			if testCase.expectInfoEntry {
				require.Contains(subTest, output, testCommandStartedMessageConstant)
			} else {
				require.NotContains(subTest, output, testCommandStartedMessageConstant)
			}
			if testCase.expectConsoleOutput {
				require.Contains(subTest, output, testConsoleProgressMessageConstant)
			} else {
				require.NotContains(subTest, output, testConsoleProgressMessageConstant)
			}

			firstLine, _, _ := bytes.Cut([]byte(output), []byte("\n"))
			require.Equal(subTest, testCase.expectStructuredLog, json.Valid(firstLine))
		})
	}
}

func TestLoggerFactoryRejectsUnsupportedValues(testInstance *testing.T) {
	testCases := []struct {
		name      string
		logLevel  utils.LogLevel
		logFormat utils.LogFormat
		expected  string
	}{
		{name: "unsupported_level", logLevel: utils.LogLevel("verbose"), logFormat: utils.LogFormatStructured, expected: "unsupported log level \"verbose\""},
		{name: "unsupported_format", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormat("xml"), expected: "unsupported log format \"xml\""},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			loggerOutputs, creationError := utils.NewLoggerFactory().CreateLoggerOutputs(testCase.logLevel, testCase.logFormat)
			require.EqualError(subTest, creationError, testCase.expected)
			require.Zero(subTest, loggerOutputs)
		})
	}
}
