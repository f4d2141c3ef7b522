// Package winshell identifies the interactive shell used to reach the Windows
// "open" verb. Shells are probed in a fixed order (pwsh, nu) with Command
// Prompt as the unprobed fallback, and the result is cached for the lifetime
// of the Resolver.
package winshell
