package prompt

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	inputClosedMessageConstant = "input closed before a response was read"
	emptyValueMessageConstant  = "a non-empty value is required"
)

var (
	// ErrInputClosed indicates the input stream ended before any response was entered.
	ErrInputClosed = errors.New(inputClosedMessageConstant)
	// ErrEmptyValue indicates a required response was blank.
	ErrEmptyValue = errors.New(emptyValueMessageConstant)
)

// IOValuePrompter reads single-line responses from an io.Reader.
type IOValuePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOValuePrompter constructs a prompter from the provided reader and writer.
func NewIOValuePrompter(input io.Reader, output io.Writer) *IOValuePrompter {
	return &IOValuePrompter{reader: bufio.NewReader(input), writer: output}
}

// Ask writes the prompt and returns the trimmed response line. A blank response is returned as is.
func (prompter *IOValuePrompter) Ask(prompt string) (string, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return "", writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil {
		if !errors.Is(readError, io.EOF) {
			return "", readError
		}
		if len(response) == 0 {
			return "", ErrInputClosed
		}
	}
	return strings.TrimSpace(response), nil
}

// AskRequired behaves like Ask but rejects blank responses with ErrEmptyValue.
func (prompter *IOValuePrompter) AskRequired(prompt string) (string, error) {
	response, askError := prompter.Ask(prompt)
	if askError != nil {
		return "", askError
	}
	if len(response) == 0 {
		return "", ErrEmptyValue
	}
	return response, nil
}
