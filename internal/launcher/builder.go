package launcher

import (
	"context"
	"fmt"

	"github.com/temirov/winopen/internal/execshell"
	"github.com/temirov/winopen/internal/winshell"
)

const (
	quotedValueTemplateConstant              = `"%s"`
	emptyTitlePlaceholderConstant            = `""`
	powerShellNoProfileFlagConstant          = "-NoProfile"
	powerShellCommandFlagConstant            = "-Command"
	powerShellStartProcessCommandConstant    = "Start-Process"
	nushellCommandFlagConstant               = "-c"
	nushellOpenScriptTemplateConstant        = "open %s"
	nushellOpenWithScriptTemplateConstant    = "open %s %s"
	commandPromptRunFlagConstant             = "/c"
	commandPromptStartBuiltinCommandConstant = "start"
)

// Builder produces shell invocations that open a target through the resolved shell.
type Builder struct {
	resolver winshell.ShellResolver
	// candidates replaces the single shell invocation when set.
	candidates func(shell winshell.Shell, target string) []execshell.ShellCommand
}

// NewBuilder constructs a Builder backed by the provided resolver.
func NewBuilder(resolver winshell.ShellResolver) (*Builder, error) {
	if resolver == nil {
		return nil, ErrResolverNotConfigured
	}
	return &Builder{resolver: resolver}, nil
}

// Commands returns the candidate invocations that open target with its default application.
// Each invocation is a launcher to try in order.
func (builder *Builder) Commands(executionContext context.Context, target string) []execshell.ShellCommand {
	shell := builder.resolver.Resolve(executionContext)
	if builder.candidates != nil {
		return builder.candidates(shell, target)
	}
	return []execshell.ShellCommand{buildOpenCommand(shell, target, "", false)}
}

// WithCommand returns the invocation that opens target with application.
func (builder *Builder) WithCommand(executionContext context.Context, target string, application string) execshell.ShellCommand {
	shell := builder.resolver.Resolve(executionContext)
	return buildOpenCommand(shell, target, application, true)
}

// buildOpenCommand wraps target and application in double quotes. Embedded quotes are not escaped.
func buildOpenCommand(shell winshell.Shell, target string, application string, withApplication bool) execshell.ShellCommand {
	details := execshell.CommandDetails{
		CreationFlags: execshell.CreateNoWindowFlag,
		HideWindow:    true,
		Purpose:       execshell.CommandPurposeOpen,
		Target:        target,
	}
	if withApplication {
		details.Application = application
	}

	quotedTarget := wrapInQuotes(target)
	quotedApplication := wrapInQuotes(application)

	switch shell {
	case winshell.PowerShell:
		details.Arguments = []string{powerShellNoProfileFlagConstant, powerShellCommandFlagConstant, powerShellStartProcessCommandConstant, quotedTarget}
		if withApplication {
			details.Arguments = append(details.Arguments, quotedApplication)
		}
	case winshell.Nushell:
		script := fmt.Sprintf(nushellOpenScriptTemplateConstant, quotedTarget)
		if withApplication {
			script = fmt.Sprintf(nushellOpenWithScriptTemplateConstant, quotedTarget, quotedApplication)
		}
		details.Arguments = []string{nushellCommandFlagConstant, script}
	default:
		// start treats the first quoted argument as a window title, so an empty title must precede the target.
		details.Arguments = []string{commandPromptRunFlagConstant, commandPromptStartBuiltinCommandConstant}
		details.RawArguments = []string{emptyTitlePlaceholderConstant, quotedTarget}
		if withApplication {
			details.RawArguments = append(details.RawArguments, quotedApplication)
		}
	}

	return execshell.ShellCommand{Name: shell.CommandName(), Details: details}
}

func wrapInQuotes(value string) string {
	return fmt.Sprintf(quotedValueTemplateConstant, value)
}
