package envtasks_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/devtasks/internal/envtasks"
	"github.com/tyemirov/devtasks/internal/tasks/shared"
)

const testEnvContentConstant = "FOO=bar\n# comment\n\nBAZ=qux"

func fileLocationsIn(directory string) shared.FileLocations {
	return shared.FileLocations{
		EnvFile:          filepath.Join(directory, ".env"),
		YAMLFile:         filepath.Join(directory, "env.yaml"),
		DescriptionsFile: filepath.Join(directory, "env_descriptions.json"),
		StubFile:         filepath.Join(directory, "env", "env_auto.py"),
	}
}

func TestEnvToYAML(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	files := fileLocationsIn(workingDirectory)
	require.NoError(testInstance, os.WriteFile(files.EnvFile, []byte(testEnvContentConstant), 0o644))

	output := &bytes.Buffer{}
	service := envtasks.NewService(shared.Dependencies{Files: files, Output: output})

	require.NoError(testInstance, service.EnvToYAML(context.Background()))
	content, readError := os.ReadFile(files.YAMLFile)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "FOO: \"bar\"\nBAZ: \"qux\"\n", string(content))
	require.Equal(testInstance, "YAML file '"+files.YAMLFile+"' created successfully.\n", output.String())

	require.NoError(testInstance, service.EnvToYAML(context.Background()))
	rerun, rerunError := os.ReadFile(files.YAMLFile)
	require.NoError(testInstance, rerunError)
	require.Equal(testInstance, content, rerun)
}

func TestEnvToYAMLFailsWithoutEnvFile(testInstance *testing.T) {
	files := fileLocationsIn(testInstance.TempDir())
	service := envtasks.NewService(shared.Dependencies{Files: files})

	require.ErrorIs(testInstance, service.EnvToYAML(context.Background()), os.ErrNotExist)
	_, statError := os.Stat(files.YAMLFile)
	require.ErrorIs(testInstance, statError, os.ErrNotExist)
}

func TestBuildEnvPy(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	files := fileLocationsIn(workingDirectory)
	require.NoError(testInstance, os.WriteFile(files.EnvFile, []byte(testEnvContentConstant), 0o644))

	output := &bytes.Buffer{}
	service := envtasks.NewService(shared.Dependencies{Files: files, Output: output})

	require.NoError(testInstance, service.BuildEnvPy(context.Background()))
	content, readError := os.ReadFile(files.StubFile)
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(content), "FOO = os.environ.get(\"FOO\")\nBAZ = os.environ.get(\"BAZ\")\n")
	require.Equal(testInstance, "Environment stub '"+files.StubFile+"' generated with 2 variables.\n", output.String())
}

func TestCommandBuilderRunsConversions(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	files := fileLocationsIn(workingDirectory)
	require.NoError(testInstance, os.WriteFile(files.EnvFile, []byte(testEnvContentConstant), 0o644))

	for _, taskName := range envtasks.TaskNames() {
		builder := envtasks.CommandBuilder{
			Task: taskName,
			CommonConfigurationProvider: func() shared.CommonConfiguration {
				common := shared.DefaultCommonConfiguration()
				common.Files = files
				return common
			},
		}
		command, buildError := builder.Build()
		require.NoError(testInstance, buildError)
		command.SetOut(&bytes.Buffer{})
		command.SetArgs([]string{})
		require.NoError(testInstance, command.Execute())
	}

	_, yamlError := os.Stat(files.YAMLFile)
	require.NoError(testInstance, yamlError)
	_, stubError := os.Stat(files.StubFile)
	require.NoError(testInstance, stubError)

	_, unknownError := (&envtasks.CommandBuilder{Task: "envtojson"}).Build()
	require.ErrorIs(testInstance, unknownError, envtasks.ErrUnknownTask)
}
