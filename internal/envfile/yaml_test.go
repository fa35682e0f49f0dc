package envfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tyemirov/devtasks/internal/envfile"
)

func TestWriteYAMLPreservesFileOrderAndQuotesValues(testInstance *testing.T) {
	yamlPath := filepath.Join(testInstance.TempDir(), "env.yaml")
	entries := []envfile.Entry{
		{Key: "FOO", Value: "bar"},
		{Key: "BAZ", Value: "qux"},
		{Key: "PORT", Value: "8080"},
		{Key: "DEBUG", Value: "true"},
	}

	require.NoError(testInstance, envfile.WriteYAML(yamlPath, entries))

	content, readError := os.ReadFile(yamlPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "FOO: \"bar\"\nBAZ: \"qux\"\nPORT: \"8080\"\nDEBUG: \"true\"\n", string(content))

	var decoded map[string]any
	require.NoError(testInstance, yaml.Unmarshal(content, &decoded))
	require.Equal(testInstance, map[string]any{"FOO": "bar", "BAZ": "qux", "PORT": "8080", "DEBUG": "true"}, decoded)
}

func TestWriteYAMLIsIdempotent(testInstance *testing.T) {
	yamlPath := filepath.Join(testInstance.TempDir(), "env.yaml")
	entries := []envfile.Entry{{Key: "B", Value: "2"}, {Key: "A", Value: "x=y"}}

	require.NoError(testInstance, envfile.WriteYAML(yamlPath, entries))
	first, firstReadError := os.ReadFile(yamlPath)
	require.NoError(testInstance, firstReadError)

	require.NoError(testInstance, envfile.WriteYAML(yamlPath, entries))
	second, secondReadError := os.ReadFile(yamlPath)
	require.NoError(testInstance, secondReadError)

	require.Equal(testInstance, first, second)
}

func TestWriteYAMLWithoutEntries(testInstance *testing.T) {
	content, renderError := envfile.RenderYAML(nil)
	require.NoError(testInstance, renderError)
	require.Equal(testInstance, "{}\n", string(content))
}

func TestMirrorMergeCreatesUpdatesAndAppends(testInstance *testing.T) {
	mirrorPath := filepath.Join(testInstance.TempDir(), "config", "env.yaml")
	mirror := envfile.NewMirror(mirrorPath)

	require.NoError(testInstance, mirror.Merge("DOCKER_USERNAME", "alice"))
	require.NoError(testInstance, mirror.Merge("IMAGE_NAME", "price-updater"))
	require.NoError(testInstance, mirror.Merge("DOCKER_USERNAME", "bob"))

	content, readError := os.ReadFile(mirrorPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "DOCKER_USERNAME: \"bob\"\nIMAGE_NAME: \"price-updater\"\n", string(content))
}

func TestMirrorMergeKeepsExistingUnquotedKeys(testInstance *testing.T) {
	mirrorPath := filepath.Join(testInstance.TempDir(), "env.yaml")
	require.NoError(testInstance, os.WriteFile(mirrorPath, []byte("PORT: 8080\nNAME: service\n"), 0o644))

	require.NoError(testInstance, envfile.NewMirror(mirrorPath).Merge("REGION", "us-east1"))

	content, readError := os.ReadFile(mirrorPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "PORT: \"8080\"\nNAME: \"service\"\nREGION: \"us-east1\"\n", string(content))
}

func TestMirrorMergeRejectsNonMappingDocument(testInstance *testing.T) {
	mirrorPath := filepath.Join(testInstance.TempDir(), "env.yaml")
	require.NoError(testInstance, os.WriteFile(mirrorPath, []byte("- one\n- two\n"), 0o644))

	mergeError := envfile.NewMirror(mirrorPath).Merge("KEY", "value")
	require.ErrorIs(testInstance, mergeError, envfile.ErrMirrorNotMapping)
}
