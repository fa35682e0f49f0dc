package envfile

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"
)

const (
	stubTemplateNameConstant             = "stub"
	renderStubErrorTemplateConstant      = "render environment stub: %w"
	invalidStubKeyReasonTemplateConstant = "%q is not a valid identifier"
	stubTemplateConstant                 = `# Generated by devtasks buildenvpy from {{ .Source }}. Do not edit.
# Each name is read from the process environment when this module is imported;
# load {{ .Source }} into the environment before importing it.
import os

{{ range .Keys }}{{ . }} = os.environ.get("{{ . }}")
{{ end }}`
)

var stubIdentifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var stubTemplate = template.Must(template.New(stubTemplateNameConstant).Parse(stubTemplateConstant))

type stubTemplateData struct {
	Source string
	Keys   []string
}

// RenderStub renders a Python module exposing one environment lookup per distinct key, in entry order.
// Values are never copied into the stub. A key that cannot be a module attribute is reported as a ParseError.
func RenderStub(entries []Entry, source string) ([]byte, error) {
	seen := make(map[string]struct{}, len(entries))
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !stubIdentifierPattern.MatchString(entry.Key) {
			return nil, fmt.Errorf(renderStubErrorTemplateConstant, ParseError{Line: entry.Line, Reason: fmt.Sprintf(invalidStubKeyReasonTemplateConstant, entry.Key)})
		}
		if _, duplicate := seen[entry.Key]; duplicate {
			continue
		}
		seen[entry.Key] = struct{}{}
		keys = append(keys, entry.Key)
	}

	var buffer bytes.Buffer
	if executeError := stubTemplate.Execute(&buffer, stubTemplateData{Source: source, Keys: keys}); executeError != nil {
		return nil, fmt.Errorf(renderStubErrorTemplateConstant, executeError)
	}
	return buffer.Bytes(), nil
}

// GenerateStub rebuilds the stub at path from entries, creating the parent directory when absent.
func GenerateStub(path string, entries []Entry, source string) error {
	content, renderError := RenderStub(entries, source)
	if renderError != nil {
		return renderError
	}
	return writeOutputFile(path, content)
}
