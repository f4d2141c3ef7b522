package winopen

import (
	"context"
	"sync"

	"github.com/temirov/winopen/internal/execshell"
	"github.com/temirov/winopen/internal/launcher"
	"github.com/temirov/winopen/internal/openerr"
	"github.com/temirov/winopen/internal/winshell"
)

// Error reports a failure to open a target. Errors compare equal under errors.Is when their kinds match.
type Error = openerr.Error

// Kind classifies an Error.
type Kind = openerr.Kind

// Shell identifies the shell used to reach the open verb.
type Shell = winshell.Shell

// Handle joins an open started in the background.
type Handle = launcher.Handle

// Launcher opens targets with a fixed set of collaborators.
type Launcher = launcher.Launcher

// Command describes a single shell invocation.
type Command = execshell.ShellCommand

// CommandRunner runs or spawns invocations; tests and embedders may replace the operating system runner.
type CommandRunner = execshell.CommandRunner

// ExecutionResult carries the exit code of a completed invocation.
type ExecutionResult = execshell.ExecutionResult

// DetachedStrategy opens targets without waiting.
type DetachedStrategy = launcher.DetachedStrategy

// DetachedBackend names a built-in DetachedStrategy.
type DetachedBackend = launcher.DetachedBackend

// Error kinds.
const (
	KindShellNotFound = openerr.KindShellNotFound
	KindCommandFailed = openerr.KindCommandFailed
	KindNoLauncher    = openerr.KindNoLauncher
	KindIo            = openerr.KindIo
)

// Shells.
const (
	PowerShell    = winshell.PowerShell
	Nushell       = winshell.Nushell
	CommandPrompt = winshell.CommandPrompt
)

// Detached backends.
const (
	DetachedBackendShell        = launcher.DetachedBackendShell
	DetachedBackendShellExecute = launcher.DetachedBackendShellExecute
)

// Sentinel errors for errors.Is.
var (
	ErrShellNotFound = openerr.ErrShellNotFound
	ErrCommandFailed = openerr.ErrCommandFailed
	ErrNoLauncher    = openerr.ErrNoLauncher
	ErrIo            = openerr.ErrIo
)

var (
	defaultLauncherOnce sync.Once
	defaultLauncher     *Launcher
)

func sharedLauncher() *Launcher {
	defaultLauncherOnce.Do(func() {
		openLauncher, launcherError := launcher.NewLauncher(launcher.Dependencies{Resolver: winshell.Default()})
		if launcherError != nil {
			panic(launcherError)
		}
		defaultLauncher = openLauncher
	})
	return defaultLauncher
}

// That opens target with its default application and blocks until the launcher exits.
// The launcher may or may not return before the opened application exits.
func That(target string) error {
	return sharedLauncher().That(context.Background(), target)
}

// With opens target with the named application and blocks until the launcher exits.
func With(target string, application string) error {
	return sharedLauncher().With(context.Background(), target, application)
}

// ThatInBackground runs That on its own goroutine.
func ThatInBackground(target string) *Handle {
	return sharedLauncher().ThatInBackground(context.Background(), target)
}

// WithInBackground runs With on its own goroutine.
func WithInBackground(target string, application string) *Handle {
	return sharedLauncher().WithInBackground(context.Background(), target, application)
}

// ThatDetached opens target in a process that outlives the caller. It returns once the process is created.
func ThatDetached(target string) error {
	return sharedLauncher().ThatDetached(context.Background(), target)
}

// WithDetached opens target with application in a process that outlives the caller.
func WithDetached(target string, application string) error {
	return sharedLauncher().WithDetached(context.Background(), target, application)
}

// Commands returns the invocations That would try, without running them.
func Commands(target string) []Command {
	return sharedLauncher().Builder().Commands(context.Background(), target)
}

// WithCommand returns the invocation With would run, without running it.
func WithCommand(target string, application string) Command {
	return sharedLauncher().Builder().WithCommand(context.Background(), target, application)
}

// DetectShell returns the shell chosen for this process, probing on first use.
func DetectShell() Shell {
	return winshell.Default().Resolve(context.Background())
}

// ParseShell resolves a shell from a case-insensitive name or alias.
func ParseShell(name string) (Shell, error) {
	return winshell.ParseShell(name)
}
