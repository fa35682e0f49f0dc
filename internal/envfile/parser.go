package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	commentPrefixConstant               = "#"
	exportPrefixConstant                = "export "
	assignmentSeparatorConstant         = "="
	missingSeparatorReasonConstant      = "expected KEY=VALUE"
	emptyKeyReasonConstant              = "variable name is empty"
	parseErrorMessageTemplateConstant   = "line %d: %s"
	openEnvFileErrorTemplateConstant    = "open env file %s: %w"
	parseEnvFileErrorTemplateConstant   = "parse env file %s: %w"
	readEnvContentErrorTemplateConstant = "read env content: %w"
)

// Entry is a single KEY=VALUE assignment read from an env file.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// ParseError reports a line that is neither blank, a comment, nor an assignment.
type ParseError struct {
	Line   int
	Reason string
}

// Error describes the offending line.
func (parseError ParseError) Error() string {
	return fmt.Sprintf(parseErrorMessageTemplateConstant, parseError.Line, parseError.Reason)
}

// Parse reads KEY=VALUE lines from reader. Lines are trimmed; blank lines and lines starting with '#'
// are skipped; each remaining line is split on its first '=' and a leading "export " is dropped from the
// key. A key assigned more than once keeps its first position and takes the last value.
func Parse(reader io.Reader) ([]Entry, error) {
	entries := make([]Entry, 0)
	positions := make(map[string]int)

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, commentPrefixConstant) {
			continue
		}

		key, value, found := strings.Cut(line, assignmentSeparatorConstant)
		if !found {
			return nil, ParseError{Line: lineNumber, Reason: missingSeparatorReasonConstant}
		}
		key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), exportPrefixConstant))
		if len(key) == 0 {
			return nil, ParseError{Line: lineNumber, Reason: emptyKeyReasonConstant}
		}

		if position, seen := positions[key]; seen {
			entries[position].Value = value
			entries[position].Line = lineNumber
			continue
		}
		positions[key] = len(entries)
		entries = append(entries, Entry{Key: key, Value: value, Line: lineNumber})
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(readEnvContentErrorTemplateConstant, scanError)
	}
	return entries, nil
}

// ParseFile parses the env file at path.
func ParseFile(path string) ([]Entry, error) {
	file, openError := os.Open(path)
	if openError != nil {
		return nil, fmt.Errorf(openEnvFileErrorTemplateConstant, path, openError)
	}
	defer file.Close()

	entries, parseError := Parse(file)
	if parseError != nil {
		return nil, fmt.Errorf(parseEnvFileErrorTemplateConstant, path, parseError)
	}
	return entries, nil
}

// ParseFileIfExists parses the env file at path and reports an absent file as an empty entry list.
func ParseFileIfExists(path string) ([]Entry, error) {
	entries, parseError := ParseFile(path)
	if errors.Is(parseError, os.ErrNotExist) {
		return nil, nil
	}
	return entries, parseError
}
