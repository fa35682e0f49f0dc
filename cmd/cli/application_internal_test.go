package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeInitializationScopeArguments(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{name: "empty", arguments: nil, expected: []string{}},
		{name: "bare_flag", arguments: []string{"--init"}, expected: []string{"--init=local"}},
		{name: "blank_assignment", arguments: []string{"--init="}, expected: []string{"--init=local"}},
		{name: "explicit_user", arguments: []string{"--init", "user"}, expected: []string{"--init", "user"}},
		{name: "followed_by_flag", arguments: []string{"--init", "--force"}, expected: []string{"--init=local", "--force"}},
		{name: "followed_by_task", arguments: []string{"--init", "install"}, expected: []string{"--init=local", "install"}},
		{name: "unrelated", arguments: []string{"--dry-run", "docker", "-b"}, expected: []string{"--dry-run", "docker", "-b"}},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, normalizeInitializationScopeArguments(testCase.arguments))
		})
	}
}

func TestOperationConfigurationsMergeDefaults(testInstance *testing.T) {
	configured, configuredError := newOperationConfigurations([]ApplicationOperationConfiguration{
		{Name: " Docker ", Options: map[string]any{"image": "price-updater"}},
		{Name: "", Options: map[string]any{"ignored": true}},
	})
	require.NoError(testInstance, configuredError)

	defaults, defaultsError := newOperationConfigurations([]ApplicationOperationConfiguration{
		{Name: "docker", Options: map[string]any{"tag": "latest"}},
		{Name: "python", Options: map[string]any{"requirements": "requirements.txt"}},
	})
	require.NoError(testInstance, defaultsError)

	merged := configured.MergeDefaults(defaults)

	dockerOptions, dockerError := merged.Lookup("docker")
	require.NoError(testInstance, dockerError)
	require.Equal(testInstance, map[string]any{"image": "price-updater"}, dockerOptions)

	pythonOptions, pythonError := merged.Lookup("PYTHON")
	require.NoError(testInstance, pythonError)
	require.Equal(testInstance, map[string]any{"requirements": "requirements.txt"}, pythonOptions)

	_, missingError := merged.Lookup("cookiecutter")
	require.ErrorAs(testInstance, missingError, &MissingOperationConfigurationError{})
}

func TestEmbeddedDefaultsProvideTaskConfigurations(testInstance *testing.T) {
	application := &Application{operationConfigurations: loadEmbeddedOperationConfigurations()}

	pythonConfiguration := application.pythonConfiguration()
	require.Equal(testInstance, "requirements.txt", pythonConfiguration.Requirements)
	require.Equal(testInstance, "requirements-dev.txt", pythonConfiguration.DevRequirements)

	dockerConfiguration := application.dockerConfiguration()
	require.Empty(testInstance, dockerConfiguration.Image)
	require.Equal(testInstance, "docker/Dockerfile", dockerConfiguration.Dockerfile)
	require.Equal(testInstance, "latest", dockerConfiguration.Tag)

	cloudRunConfiguration := application.cloudRunConfiguration()
	require.Equal(testInstance, "us-east1", cloudRunConfiguration.Region)
	require.Equal(testInstance, "docker.io", cloudRunConfiguration.Registry)
	require.False(testInstance, cloudRunConfiguration.AllowUnauthenticated)

	scaffoldConfiguration := application.scaffoldConfiguration()
	require.Equal(testInstance, "https://github.com/audreyfeldroy/cookiecutter-pypackage", scaffoldConfiguration.Template)
}

func TestVersionFlagPrintsAndExits(testInstance *testing.T) {
	testInstance.Setenv("DEVTASKS_CONFIG_SEARCH_PATH", testInstance.TempDir())

	application := NewApplication()
	output := &bytes.Buffer{}
	application.rootCommand.SetOut(output)
	application.versionResolver = func() string { return "v9.9.9" }
	exitCodes := make([]int, 0, 1)
	application.exitFunction = func(code int) { exitCodes = append(exitCodes, code) }

	require.NoError(testInstance, application.ExecuteWithArguments([]string{"--version"}))
	require.Equal(testInstance, []int{0}, exitCodes)
	require.Contains(testInstance, output.String(), "devtasks version: v9.9.9\n")
}

func TestVersionCommandPrintsVersion(testInstance *testing.T) {
	testInstance.Setenv("DEVTASKS_CONFIG_SEARCH_PATH", testInstance.TempDir())

	application := NewApplication()
	output := &bytes.Buffer{}
	application.rootCommand.SetOut(output)
	application.versionResolver = func() string { return "v1.0.0" }

	require.NoError(testInstance, application.ExecuteWithArguments([]string{"version"}))
	require.Equal(testInstance, "devtasks version: v1.0.0\n", output.String())
}
