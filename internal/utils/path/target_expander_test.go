package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/winopen/internal/utils/path"
)

const (
	testHomeDirectoryConstant              = "/home/winopen"
	testProfileDirectoryConstant           = `C:\Users\winopen`
	testTildeCaseNameConstant              = "tilde_prefix"
	testBareTildeCaseNameConstant          = "bare_tilde"
	testEnvironmentCaseNameConstant        = "environment_reference"
	testUnknownEnvironmentCaseNameConstant = "unknown_environment_reference"
	testURLCaseNameConstant                = "url_untouched"
	testPlainCaseNameConstant              = "plain_path"
)

func newTestTargetExpander() *pathutils.TargetExpander {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})
	environment := map[string]string{"USERPROFILE": testProfileDirectoryConstant}
	return pathutils.NewTargetExpanderWithLookup(homeExpander, func(name string) (string, bool) {
		value, found := environment[name]
		return value, found
	})
}

func TestTargetExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: testTildeCaseNameConstant, input: "~/notes.txt", expected: filepath.Join(testHomeDirectoryConstant, "notes.txt")},
		{name: testBareTildeCaseNameConstant, input: "~", expected: testHomeDirectoryConstant},
		{name: testEnvironmentCaseNameConstant, input: `%USERPROFILE%\Desktop`, expected: testProfileDirectoryConstant + `\Desktop`},
		{name: testUnknownEnvironmentCaseNameConstant, input: `%MISSING%\file.txt`, expected: `%MISSING%\file.txt`},
		{name: testURLCaseNameConstant, input: "https://example.org/~user/%USERPROFILE%", expected: "https://example.org/~user/%USERPROFILE%"},
		{name: testPlainCaseNameConstant, input: `C:\My Folder\file.txt`, expected: `C:\My Folder\file.txt`},
	}

	expander := newTestTargetExpander()
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, expander.Expand(testCase.input))
		})
	}
}

func TestTargetExpanderExpandAllPreservesOrder(testInstance *testing.T) {
	expander := newTestTargetExpander()
	expanded := expander.ExpandAll([]string{"https://example.org", "~", "plain"})
	require.Equal(testInstance, []string{"https://example.org", testHomeDirectoryConstant, "plain"}, expanded)
}
