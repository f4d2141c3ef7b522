// Package execshell provides structured helpers for invoking shell executables.
//
// It describes invocations as ShellCommand values, runs them through a
// CommandRunner (OSCommandRunner by default) with stdio bound to the null
// device, and wraps execution in ShellExecutor, which logs every lifecycle
// stage through zap and notifies registered observers. Invocations either
// run to completion or are spawned detached without waiting.
package execshell
