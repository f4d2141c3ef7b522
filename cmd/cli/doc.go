// Package cli constructs the winopen command-line interface, wiring the Cobra
// command hierarchy, configuration loader, structured logging, and the
// launcher used by the open, commands, and shell subcommands.
package cli
