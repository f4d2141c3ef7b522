//go:build !windows

package execshell

import (
	"errors"
	"os/exec"
)

const (
	unsupportedPlatformMessageConstant = "opening targets through a Windows shell is only supported on Windows"
)

// ErrUnsupportedPlatform indicates the OS runner was used outside Windows.
var ErrUnsupportedPlatform = errors.New(unsupportedPlatformMessageConstant)

func applyPlatformAttributes(*exec.Cmd, ShellCommand) error {
	return ErrUnsupportedPlatform
}
