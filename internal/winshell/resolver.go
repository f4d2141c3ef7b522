package winshell

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/temirov/winopen/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "shell resolver executor not configured"
	powerShellCommandFlagConstant        = "-Command"
	powerShellVersionQueryConstant       = "$PSVersionTable.PSVersion"
	nushellCommandFlagConstant           = "-c"
	nushellVersionQueryConstant          = "version"
)

// ErrExecutorNotConfigured indicates a Resolver was created without a shell executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ShellResolver yields the shell used to build invocations.
type ShellResolver interface {
	Resolve(executionContext context.Context) Shell
}

// Resolver probes for an installed shell once and caches the answer for its lifetime.
// Concurrent first callers wait for the same probe and observe the same shell.
type Resolver struct {
	executor       *execshell.ShellExecutor
	resolutionOnce sync.Once
	resolved       atomic.Bool
	shell          Shell
}

// NewResolver constructs a Resolver that runs probes through the provided executor.
func NewResolver(executor *execshell.ShellExecutor) (*Resolver, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Resolver{executor: executor}, nil
}

// Resolve returns the cached shell, probing PowerShell then Nushell on first use
// and falling back to Command Prompt, which is never probed.
// The probe keeps the values of executionContext but ignores its cancellation.
func (resolver *Resolver) Resolve(executionContext context.Context) Shell {
	resolver.resolutionOnce.Do(func() {
		if executionContext == nil {
			executionContext = context.Background()
		}
		resolver.shell = resolver.probe(context.WithoutCancel(executionContext))
		resolver.resolved.Store(true)
	})
	return resolver.shell
}

// Resolved reports the cached shell without probing.
func (resolver *Resolver) Resolved() (Shell, bool) {
	if !resolver.resolved.Load() {
		return CommandPrompt, false
	}
	return resolver.shell, true
}

func (resolver *Resolver) probe(executionContext context.Context) Shell {
	for _, candidate := range probeCommands() {
		if _, probeError := resolver.executor.Execute(executionContext, candidate.command); probeError == nil {
			return candidate.shell
		}
	}
	return CommandPrompt
}

type probeCandidate struct {
	shell   Shell
	command execshell.ShellCommand
}

func probeCommands() []probeCandidate {
	return []probeCandidate{
		{shell: PowerShell, command: buildProbeCommand(PowerShell, powerShellCommandFlagConstant, powerShellVersionQueryConstant)},
		{shell: Nushell, command: buildProbeCommand(Nushell, nushellCommandFlagConstant, nushellVersionQueryConstant)},
	}
}

func buildProbeCommand(shell Shell, arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: shell.CommandName(),
		Details: execshell.CommandDetails{
			Arguments:     arguments,
			CreationFlags: execshell.CreateNoWindowFlag,
			HideWindow:    true,
			Purpose:       execshell.CommandPurposeProbe,
		},
	}
}

// FixedResolver always resolves to the configured shell without probing.
type FixedResolver struct {
	shell Shell
}

// NewFixedResolver constructs a resolver pinned to the provided shell.
func NewFixedResolver(shell Shell) FixedResolver {
	return FixedResolver{shell: shell}
}

// Resolve implements ShellResolver.
func (resolver FixedResolver) Resolve(context.Context) Shell {
	return resolver.shell
}

var (
	defaultResolverOnce sync.Once
	defaultResolver     *Resolver
)

// Default returns the process-wide resolver backed by the operating system runner.
func Default() *Resolver {
	defaultResolverOnce.Do(func() {
		executor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
		if executorError != nil {
			panic(executorError)
		}
		defaultResolver = &Resolver{executor: executor}
	})
	return defaultResolver
}
