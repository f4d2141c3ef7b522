//go:build windows

package execshell

import (
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	rawArgumentsSeparatorConstant = " "
)

func applyPlatformAttributes(executable *exec.Cmd, command ShellCommand) error {
	attributes := &syscall.SysProcAttr{
		HideWindow:    command.Details.HideWindow,
		CreationFlags: command.Details.CreationFlags,
	}

	if len(command.Details.RawArguments) > 0 {
		attributes.CmdLine = composeCommandLine(command)
	}

	executable.SysProcAttr = attributes
	return nil
}

// composeCommandLine escapes the executable and regular arguments and appends raw arguments untouched.
func composeCommandLine(command ShellCommand) string {
	escapedParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	commandLineParts := []string{windows.ComposeCommandLine(escapedParts)}
	commandLineParts = append(commandLineParts, command.Details.RawArguments...)
	return strings.Join(commandLineParts, rawArgumentsSeparatorConstant)
}
