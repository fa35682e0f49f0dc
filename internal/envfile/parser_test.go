package envfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/devtasks/internal/envfile"
)

const testSampleEnvContentConstant = "FOO=bar\n# comment\n\nBAZ=qux"

func TestParse(testInstance *testing.T) {
	testCases := []struct {
		name            string
		content         string
		expectedEntries []envfile.Entry
		expectedLine    int
	}{
		{
			name:    "skips_comments_and_blank_lines",
			content: testSampleEnvContentConstant,
			expectedEntries: []envfile.Entry{
				{Key: "FOO", Value: "bar", Line: 1},
				{Key: "BAZ", Value: "qux", Line: 4},
			},
		},
		{
			name:    "splits_on_first_separator",
			content: "DATABASE_URL=postgres://user:pw@host/db?sslmode=require\n",
			expectedEntries: []envfile.Entry{
				{Key: "DATABASE_URL", Value: "postgres://user:pw@host/db?sslmode=require", Line: 1},
			},
		},
		{
			name:    "trims_lines_and_keeps_values_verbatim",
			content: "   TOKEN = \"quoted value\"  \n\t# indented comment\nEMPTY=\n",
			expectedEntries: []envfile.Entry{
				{Key: "TOKEN", Value: " \"quoted value\"", Line: 1},
				{Key: "EMPTY", Value: "", Line: 3},
			},
		},
		{
			name:    "later_duplicates_keep_first_position",
			content: "A=1\nB=2\nA=3\n",
			expectedEntries: []envfile.Entry{
				{Key: "A", Value: "3", Line: 3},
				{Key: "B", Value: "2", Line: 2},
			},
		},
		{
			name:    "drops_export_prefix",
			content: "export FOO=bar\nexport   BAZ=qux\nexport=kept\n",
			expectedEntries: []envfile.Entry{
				{Key: "FOO", Value: "bar", Line: 1},
				{Key: "BAZ", Value: "qux", Line: 2},
				{Key: "export", Value: "kept", Line: 3},
			},
		},
		{
			name:         "missing_separator",
			content:      "A=1\n\nNOT_AN_ASSIGNMENT\n",
			expectedLine: 3,
		},
		{
			name:         "empty_key",
			content:      "=value\n",
			expectedLine: 1,
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			entries, parseError := envfile.Parse(strings.NewReader(testCase.content))
			if testCase.expectedLine > 0 {
				var lineError envfile.ParseError
				require.ErrorAs(subTest, parseError, &lineError)
				require.Equal(subTest, testCase.expectedLine, lineError.Line)
				return
			}
			require.NoError(subTest, parseError)
			require.Equal(subTest, testCase.expectedEntries, entries)
		})
	}
}

func TestParseFileIfExistsToleratesMissingFile(testInstance *testing.T) {
	entries, parseError := envfile.ParseFileIfExists(filepath.Join(testInstance.TempDir(), ".env"))
	require.NoError(testInstance, parseError)
	require.Empty(testInstance, entries)
}

func TestParseFileReportsMissingFile(testInstance *testing.T) {
	_, parseError := envfile.ParseFile(filepath.Join(testInstance.TempDir(), ".env"))
	require.ErrorIs(testInstance, parseError, os.ErrNotExist)
}

func TestParseFileReadsEntries(testInstance *testing.T) {
	envPath := filepath.Join(testInstance.TempDir(), ".env")
	require.NoError(testInstance, os.WriteFile(envPath, []byte(testSampleEnvContentConstant), 0o644))

	entries, parseError := envfile.ParseFile(envPath)
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, []envfile.Entry{
		{Key: "FOO", Value: "bar", Line: 1},
		{Key: "BAZ", Value: "qux", Line: 4},
	}, entries)
}
