//go:build windows

package launcher_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"

	"github.com/temirov/winopen/internal/winshell"
)

func TestBuilderNushellCommandLineOnWindows(testInstance *testing.T) {
	testCases := []struct {
		name                string
		application         string
		expectedCommandLine string
	}{
		{
			name:                testNushellCaseNameConstant,
			expectedCommandLine: `nu -c "open \"http://example.org\""`,
		},
		{
			name:                testApplicationConstant,
			application:         testApplicationConstant,
			expectedCommandLine: `nu -c "open \"http://example.org\" \"notepad\""`,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			builder := newTestBuilder(testInstance, winshell.Nushell)

			command := builder.Commands(context.Background(), testURLConstant)[0]
			if len(testCase.application) > 0 {
				command = builder.WithCommand(context.Background(), testURLConstant, testCase.application)
			}

			require.Empty(testInstance, command.Details.RawArguments)
			commandLine := windows.ComposeCommandLine(append([]string{string(command.Name)}, command.Details.Arguments...))
			require.Equal(testInstance, testCase.expectedCommandLine, commandLine)
		})
	}
}
