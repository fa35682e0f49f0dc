package prompt_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/devtasks/internal/prompt"
)

type failingReader struct {
	err error
}

func (reader failingReader) Read(target []byte) (int, error) {
	return 0, reader.err
}

type recordingWriter struct {
	buffer bytes.Buffer
	err    error
	writes int
}

func (writer *recordingWriter) Write(data []byte) (int, error) {
	writer.writes++
	if writer.err != nil {
		return 0, writer.err
	}
	return writer.buffer.Write(data)
}

const (
	promptMessageConstant = "Enter a value for DOCKER_USERNAME: "
)

func TestIOValuePrompterAsk(testInstance *testing.T) {
	testCases := []struct {
		name             string
		reader           io.Reader
		writer           *recordingWriter
		expectedResponse string
		expectedError    error
		expectPromptEcho bool
	}{
		{
			name:             "trims_response",
			reader:           strings.NewReader("  alice \n"),
			writer:           &recordingWriter{},
			expectedResponse: "alice",
			expectPromptEcho: true,
		},
		{
			name:             "final_line_without_newline",
			reader:           strings.NewReader("alice"),
			writer:           &recordingWriter{},
			expectedResponse: "alice",
			expectPromptEcho: true,
		},
		{
			name:             "blank_response",
			reader:           strings.NewReader("\n"),
			writer:           &recordingWriter{},
			expectedResponse: "",
			expectPromptEcho: true,
		},
		{
			name:             "closed_input",
			reader:           strings.NewReader(""),
			writer:           &recordingWriter{},
			expectedError:    prompt.ErrInputClosed,
			expectPromptEcho: true,
		},
		{
			name:             "read_error",
			reader:           failingReader{err: errors.New("read failure")},
			writer:           &recordingWriter{},
			expectedError:    errors.New("read failure"),
			expectPromptEcho: true,
		},
		{
			name:          "write_error",
			reader:        strings.NewReader("alice\n"),
			writer:        &recordingWriter{err: errors.New("write failure")},
			expectedError: errors.New("write failure"),
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			prompter := prompt.NewIOValuePrompter(testCase.reader, testCase.writer)
			response, askError := prompter.Ask(promptMessageConstant)

			if testCase.expectedError != nil {
				require.Error(subTest, askError)
				require.Equal(subTest, testCase.expectedError.Error(), askError.Error())
			} else {
				require.NoError(subTest, askError)
				require.Equal(subTest, testCase.expectedResponse, response)
			}

			require.Equal(subTest, 1, testCase.writer.writes)
			if testCase.expectPromptEcho {
				require.Equal(subTest, promptMessageConstant, testCase.writer.buffer.String())
			}
		})
	}
}

func TestIOValuePrompterReadsSuccessiveLines(testInstance *testing.T) {
	prompter := prompt.NewIOValuePrompter(strings.NewReader("alice\nDocker Hub account\n"), nil)

	first, firstError := prompter.Ask(promptMessageConstant)
	require.NoError(testInstance, firstError)
	second, secondError := prompter.Ask("Describe DOCKER_USERNAME: ")
	require.NoError(testInstance, secondError)

	require.Equal(testInstance, "alice", first)
	require.Equal(testInstance, "Docker Hub account", second)
}

func TestIOValuePrompterAskRequiredRejectsBlank(testInstance *testing.T) {
	prompter := prompt.NewIOValuePrompter(strings.NewReader("   \n"), nil)

	_, askError := prompter.AskRequired(promptMessageConstant)
	require.ErrorIs(testInstance, askError, prompt.ErrEmptyValue)
}

func TestIsInteractive(testInstance *testing.T) {
	require.True(testInstance, prompt.IsInteractive(strings.NewReader("")))
	require.False(testInstance, prompt.IsInteractive(nil))

	pipeReader, pipeWriter, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)
	defer pipeReader.Close()
	defer pipeWriter.Close()
	require.False(testInstance, prompt.IsInteractive(pipeReader))
}
