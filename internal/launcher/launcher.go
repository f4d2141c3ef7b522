package launcher

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/winopen/internal/execshell"
	"github.com/temirov/winopen/internal/openerr"
	"github.com/temirov/winopen/internal/winshell"
)

const (
	resolverNotConfiguredMessageConstant       = "launcher shell resolver not configured"
	launcherInitializedMessageConstant         = "launcher initialized"
	launcherCandidatesExhaustedMessageConstant = "no launcher candidate succeeded"
	logFieldDetachedBackendConstant            = "detached_backend"
	logFieldTargetConstant                     = "target"
	logFieldCandidateCountConstant             = "candidate_count"
)

// ErrResolverNotConfigured indicates a Builder was created without a shell resolver.
var ErrResolverNotConfigured = errors.New(resolverNotConfiguredMessageConstant)

// Dependencies enumerates collaborators used by a Launcher. Nil members fall back to defaults.
type Dependencies struct {
	Logger           *zap.Logger
	Runner           execshell.CommandRunner
	Resolver         winshell.ShellResolver
	Observer         execshell.CommandEventObserver
	DetachedBackend  DetachedBackend
	DetachedStrategy DetachedStrategy
}

// Launcher opens targets with the default or a named application under several blocking policies.
type Launcher struct {
	logger   *zap.Logger
	builder  *Builder
	executor *execshell.ShellExecutor
	detached DetachedStrategy
}

// NewLauncher constructs a Launcher from the provided dependencies.
// The detached strategy is fixed at construction.
func NewLauncher(dependencies Dependencies) (*Launcher, error) {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runner := dependencies.Runner
	if runner == nil {
		runner = execshell.NewOSCommandRunner()
	}

	executor, executorError := execshell.NewShellExecutor(logger, runner)
	if executorError != nil {
		return nil, executorError
	}
	if dependencies.Observer != nil {
		executor = executor.WithObserver(dependencies.Observer)
	}

	resolver := dependencies.Resolver
	if resolver == nil {
		probingResolver, resolverError := winshell.NewResolver(executor)
		if resolverError != nil {
			return nil, resolverError
		}
		resolver = probingResolver
	}

	builder, builderError := NewBuilder(resolver)
	if builderError != nil {
		return nil, builderError
	}

	detachedStrategy := dependencies.DetachedStrategy
	if detachedStrategy == nil {
		backend := dependencies.DetachedBackend
		if len(backend) == 0 {
			backend = DetachedBackendShell
		}
		selectedStrategy, strategyError := newDetachedStrategy(backend, builder, executor, logger)
		if strategyError != nil {
			return nil, strategyError
		}
		detachedStrategy = selectedStrategy
		logger.Debug(launcherInitializedMessageConstant, zap.String(logFieldDetachedBackendConstant, string(backend)))
	}

	return &Launcher{
		logger:   logger,
		builder:  builder,
		executor: executor,
		detached: detachedStrategy,
	}, nil
}

// Builder exposes the invocation builder for callers wanting manual control.
func (launcher *Launcher) Builder() *Builder {
	return launcher.builder
}

// That opens target with its default application and waits for the launcher to exit.
// Every candidate is tried in order and the first zero exit wins. When all fail the last
// failure is returned; NoLauncher is returned only when no candidate was attempted.
func (launcher *Launcher) That(executionContext context.Context, target string) error {
	candidates := launcher.builder.Commands(executionContext, target)

	var lastFailure error
	for _, command := range candidates {
		if _, executionError := launcher.executor.Execute(executionContext, command); executionError != nil {
			lastFailure = translateExecutionError(executionError)
			continue
		}
		return nil
	}

	launcher.logger.Debug(launcherCandidatesExhaustedMessageConstant, zap.String(logFieldTargetConstant, target), zap.Int(logFieldCandidateCountConstant, len(candidates)))
	if lastFailure == nil {
		return openerr.New(openerr.KindNoLauncher, "")
	}
	return lastFailure
}

// With opens target with application and waits for the launcher to exit.
// Exactly one invocation is attempted.
func (launcher *Launcher) With(executionContext context.Context, target string, application string) error {
	command := launcher.builder.WithCommand(executionContext, target, application)
	if _, executionError := launcher.executor.Execute(executionContext, command); executionError != nil {
		return translateExecutionError(executionError)
	}
	return nil
}

// ThatInBackground runs That on a dedicated goroutine and returns a joinable handle.
func (launcher *Launcher) ThatInBackground(executionContext context.Context, target string) *Handle {
	return runInBackground(func() error {
		return launcher.That(executionContext, target)
	})
}

// WithInBackground runs With on a dedicated goroutine and returns a joinable handle.
func (launcher *Launcher) WithInBackground(executionContext context.Context, target string, application string) *Handle {
	return runInBackground(func() error {
		return launcher.With(executionContext, target, application)
	})
}

// ThatDetached opens target with its default application without waiting.
// Success means the process was created; its exit status is never observed.
func (launcher *Launcher) ThatDetached(executionContext context.Context, target string) error {
	return launcher.detached.OpenDetached(executionContext, target)
}

// WithDetached opens target with application without waiting.
func (launcher *Launcher) WithDetached(executionContext context.Context, target string, application string) error {
	return launcher.detached.OpenDetachedWith(executionContext, target, application)
}

// translateExecutionError maps executor failures onto openerr kinds.
func translateExecutionError(executionError error) error {
	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		return openerr.New(openerr.KindCommandFailed, failedError.Error())
	}

	var runError execshell.CommandExecutionError
	if errors.As(executionError, &runError) {
		return openerr.Wrap(runError.Cause)
	}

	return openerr.Wrap(executionError)
}
