package winopen

import (
	"go.uber.org/zap"

	"github.com/temirov/winopen/internal/launcher"
	"github.com/temirov/winopen/internal/winshell"
)

// Option customizes a Launcher built by New.
type Option func(*launcher.Dependencies)

// WithLogger routes invocation logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(dependencies *launcher.Dependencies) {
		dependencies.Logger = logger
	}
}

// WithShell pins the shell and skips probing.
func WithShell(shell Shell) Option {
	return func(dependencies *launcher.Dependencies) {
		dependencies.Resolver = winshell.NewFixedResolver(shell)
	}
}

// WithRunner replaces the operating system runner.
func WithRunner(runner CommandRunner) Option {
	return func(dependencies *launcher.Dependencies) {
		dependencies.Runner = runner
	}
}

// WithDetachedBackend selects a built-in detached strategy.
func WithDetachedBackend(backend DetachedBackend) Option {
	return func(dependencies *launcher.Dependencies) {
		dependencies.DetachedBackend = backend
	}
}

// WithDetachedStrategy installs a custom detached strategy. It takes precedence over WithDetachedBackend.
func WithDetachedStrategy(strategy DetachedStrategy) Option {
	return func(dependencies *launcher.Dependencies) {
		dependencies.DetachedStrategy = strategy
	}
}

// New builds a Launcher. Without WithShell, WithRunner, or WithLogger the process-wide
// shell resolution is shared with the package-level functions. Otherwise the Launcher
// probes once on its own, through its runner, and logs the probes to its logger.
func New(options ...Option) (*Launcher, error) {
	dependencies := launcher.Dependencies{}
	for _, option := range options {
		if option != nil {
			option(&dependencies)
		}
	}
	if dependencies.Resolver == nil && dependencies.Runner == nil && dependencies.Logger == nil {
		dependencies.Resolver = winshell.Default()
	}
	return launcher.NewLauncher(dependencies)
}
