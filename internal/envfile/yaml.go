package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	yamlIndentationConstant            = 2
	yamlStringTagConstant              = "!!str"
	outputFilePermissionsConstant      = fs.FileMode(0o644)
	outputDirectoryPermissionsConstant = fs.FileMode(0o755)
	encodeYAMLErrorTemplateConstant    = "encode yaml: %w"
	writeFileErrorTemplateConstant     = "write %s: %w"
	readFileErrorTemplateConstant      = "read %s: %w"
	decodeMirrorErrorTemplateConstant  = "decode yaml mirror %s: %w"
	mirrorNotMappingMessageConstant    = "yaml mirror is not a mapping"
)

// ErrMirrorNotMapping indicates the YAML mirror holds a document other than a flat mapping.
var ErrMirrorNotMapping = errors.New(mirrorNotMappingMessageConstant)

// RenderYAML serializes entries as a YAML mapping in entry order. Every value is a double-quoted string.
func RenderYAML(entries []Entry) ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range entries {
		setMappingValue(mapping, entry.Key, entry.Value)
	}
	return encodeMapping(mapping)
}

// WriteYAML writes entries to path as a YAML mapping, replacing any previous content.
func WriteYAML(path string, entries []Entry) error {
	content, renderError := RenderYAML(entries)
	if renderError != nil {
		return renderError
	}
	return writeOutputFile(path, content)
}

// Mirror keeps a YAML file of resolved variables. Existing keys keep their position and new keys are appended.
type Mirror struct {
	path string
}

// NewMirror constructs a Mirror for the YAML file at path.
func NewMirror(path string) Mirror {
	return Mirror{path: path}
}

// Merge records key=value in the mirror file, creating the file when absent.
func (mirror Mirror) Merge(key string, value string) error {
	mapping, loadError := mirror.load()
	if loadError != nil {
		return loadError
	}
	setMappingValue(mapping, key, value)

	content, encodeError := encodeMapping(mapping)
	if encodeError != nil {
		return encodeError
	}
	return writeOutputFile(mirror.path, content)
}

func (mirror Mirror) load() (*yaml.Node, error) {
	content, readError := os.ReadFile(mirror.path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return &yaml.Node{Kind: yaml.MappingNode}, nil
		}
		return nil, fmt.Errorf(readFileErrorTemplateConstant, mirror.path, readError)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}

	var document yaml.Node
	if decodeError := yaml.Unmarshal(content, &document); decodeError != nil {
		return nil, fmt.Errorf(decodeMirrorErrorTemplateConstant, mirror.path, decodeError)
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}
	mapping := document.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf(decodeMirrorErrorTemplateConstant, mirror.path, ErrMirrorNotMapping)
	}
	for index := 1; index < len(mapping.Content); index += 2 {
		normalizeValueNode(mapping.Content[index])
	}
	return mapping, nil
}

func setMappingValue(mapping *yaml.Node, key string, value string) {
	for index := 0; index+1 < len(mapping.Content); index += 2 {
		if mapping.Content[index].Value == key {
			mapping.Content[index+1] = newStringNode(value)
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStringTagConstant, Value: key},
		newStringNode(value),
	)
}

func newStringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStringTagConstant, Style: yaml.DoubleQuotedStyle, Value: value}
}

func normalizeValueNode(node *yaml.Node) {
	if node.Kind != yaml.ScalarNode {
		return
	}
	node.Tag = yamlStringTagConstant
	node.Style = yaml.DoubleQuotedStyle
}

func encodeMapping(mapping *yaml.Node) ([]byte, error) {
	if len(mapping.Content) == 0 {
		return []byte("{}\n"), nil
	}
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlIndentationConstant)
	if encodeError := encoder.Encode(mapping); encodeError != nil {
		return nil, fmt.Errorf(encodeYAMLErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return nil, fmt.Errorf(encodeYAMLErrorTemplateConstant, closeError)
	}
	return buffer.Bytes(), nil
}

func writeOutputFile(path string, content []byte) error {
	if directory := filepath.Dir(path); len(directory) > 0 {
		if mkdirError := os.MkdirAll(directory, outputDirectoryPermissionsConstant); mkdirError != nil {
			return fmt.Errorf(writeFileErrorTemplateConstant, path, mkdirError)
		}
	}
	if writeError := os.WriteFile(path, content, outputFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeFileErrorTemplateConstant, path, writeError)
	}
	return nil
}
