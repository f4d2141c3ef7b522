package launcher

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/winopen/internal/execshell"
	"github.com/temirov/winopen/internal/openerr"
	"github.com/temirov/winopen/internal/utils"
)

const (
	detachedBackendShellNameConstant        = "shell"
	detachedBackendShellExecuteNameConstant = "shellexecute"
	unknownDetachedBackendMessageConstant   = "unknown detached backend"
	unknownDetachedBackendTemplateConstant  = "%w: %q"
)

// ErrUnknownDetachedBackend indicates an unsupported detached backend name.
var ErrUnknownDetachedBackend = errors.New(unknownDetachedBackendMessageConstant)

// DetachedBackend names the implementation used for detached opens.
type DetachedBackend string

// Supported detached backends.
const (
	// DetachedBackendShell spawns the shell invocation in a new process group.
	DetachedBackendShell DetachedBackend = detachedBackendShellNameConstant
	// DetachedBackendShellExecute asks the Windows shell API to open the target directly.
	DetachedBackendShellExecute DetachedBackend = detachedBackendShellExecuteNameConstant
)

// ParseDetachedBackend resolves a backend name case-insensitively. Empty selects the shell backend.
func ParseDetachedBackend(name string) (DetachedBackend, error) {
	switch utils.NormalizeKeyword(name) {
	case "", detachedBackendShellNameConstant:
		return DetachedBackendShell, nil
	case detachedBackendShellExecuteNameConstant:
		return DetachedBackendShellExecute, nil
	default:
		return DetachedBackendShell, fmt.Errorf(unknownDetachedBackendTemplateConstant, ErrUnknownDetachedBackend, name)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so backends decode from configuration.
func (backend *DetachedBackend) UnmarshalText(text []byte) error {
	parsedBackend, parseError := ParseDetachedBackend(string(text))
	if parseError != nil {
		return parseError
	}
	*backend = parsedBackend
	return nil
}

// DetachedStrategy opens targets without waiting for the opener to finish.
type DetachedStrategy interface {
	OpenDetached(executionContext context.Context, target string) error
	OpenDetachedWith(executionContext context.Context, target string, application string) error
}

func newDetachedStrategy(backend DetachedBackend, builder *Builder, executor *execshell.ShellExecutor, logger *zap.Logger) (DetachedStrategy, error) {
	switch backend {
	case DetachedBackendShell:
		return NewShellSpawnStrategy(builder, executor), nil
	case DetachedBackendShellExecute:
		return NewNativeExecuteStrategy(logger)
	default:
		return nil, fmt.Errorf(unknownDetachedBackendTemplateConstant, ErrUnknownDetachedBackend, string(backend))
	}
}

// ShellSpawnStrategy spawns the regular shell invocations in their own process group.
type ShellSpawnStrategy struct {
	builder  *Builder
	executor *execshell.ShellExecutor
}

// NewShellSpawnStrategy constructs the default detached strategy.
func NewShellSpawnStrategy(builder *Builder, executor *execshell.ShellExecutor) *ShellSpawnStrategy {
	return &ShellSpawnStrategy{builder: builder, executor: executor}
}

// OpenDetached spawns each candidate in turn until one starts.
func (strategy *ShellSpawnStrategy) OpenDetached(executionContext context.Context, target string) error {
	var lastFailure error
	for _, command := range strategy.builder.Commands(executionContext, target) {
		spawnError := strategy.executor.Spawn(executionContext, command.WithCreationFlags(execshell.CreateNewProcessGroupFlag))
		if spawnError == nil {
			return nil
		}
		lastFailure = spawnError
	}

	if lastFailure == nil {
		return openerr.New(openerr.KindNoLauncher, "")
	}
	return translateExecutionError(lastFailure)
}

// OpenDetachedWith spawns the single invocation that opens target with application.
func (strategy *ShellSpawnStrategy) OpenDetachedWith(executionContext context.Context, target string, application string) error {
	command := strategy.builder.WithCommand(executionContext, target, application)
	if spawnError := strategy.executor.Spawn(executionContext, command.WithCreationFlags(execshell.CreateNewProcessGroupFlag)); spawnError != nil {
		return translateExecutionError(spawnError)
	}
	return nil
}
