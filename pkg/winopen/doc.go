// Package winopen opens files, directories, and URLs with their default or a chosen
// application on Windows by delegating to pwsh, nu, or cmd.
//
// The first open in a process probes for PowerShell, then Nushell, and falls back to
// Command Prompt. Package-level functions block with context.Background; build a
// Launcher with New to pass contexts, attach a zap logger, or pin a shell.
//
//	if openError := winopen.That(`C:\Users\me\report.pdf`); errors.Is(openError, winopen.ErrCommandFailed) {
//		// the launcher ran and exited with a non-zero status
//	}
package winopen
