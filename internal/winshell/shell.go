package winshell

import (
	"github.com/temirov/winopen/internal/execshell"
	"github.com/temirov/winopen/internal/openerr"
	"github.com/temirov/winopen/internal/utils"
)

const (
	powerShellExecutableConstant    = "pwsh"
	nushellExecutableConstant       = "nu"
	commandPromptExecutableConstant = "cmd"
	powerShellAliasConstant         = "powershell"
	nushellAliasConstant            = "nushell"
	commandPromptAliasConstant      = "commandprompt"
)

// Shell enumerates the interactive shells used to reach the operating system's open verb.
type Shell int

// Supported shells, in probing preference order.
const (
	PowerShell Shell = iota
	Nushell
	CommandPrompt
)

// ExecutableName returns the executable looked up on the search path for the shell.
func (shell Shell) ExecutableName() string {
	switch shell {
	case PowerShell:
		return powerShellExecutableConstant
	case Nushell:
		return nushellExecutableConstant
	default:
		return commandPromptExecutableConstant
	}
}

// CommandName converts the shell into an execshell command name.
func (shell Shell) CommandName() execshell.CommandName {
	return execshell.CommandName(shell.ExecutableName())
}

// String implements fmt.Stringer.
func (shell Shell) String() string {
	return shell.ExecutableName()
}

// ParseShell resolves a shell from a name or alias, ignoring surrounding space and ASCII case.
// Unknown names, including look-alikes that only match under Unicode case folding,
// yield an openerr ShellNotFound error carrying the rejected name.
func ParseShell(name string) (Shell, error) {
	switch utils.NormalizeKeyword(name) {
	case powerShellExecutableConstant, powerShellAliasConstant:
		return PowerShell, nil
	case nushellExecutableConstant, nushellAliasConstant:
		return Nushell, nil
	case commandPromptExecutableConstant, commandPromptAliasConstant:
		return CommandPrompt, nil
	default:
		return CommandPrompt, openerr.New(openerr.KindShellNotFound, name)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so shells decode from configuration.
func (shell *Shell) UnmarshalText(text []byte) error {
	parsedShell, parseError := ParseShell(string(text))
	if parseError != nil {
		return parseError
	}
	*shell = parsedShell
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (shell Shell) MarshalText() ([]byte, error) {
	return []byte(shell.ExecutableName()), nil
}
