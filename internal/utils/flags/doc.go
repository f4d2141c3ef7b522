// Package flags provides helpers for registering validated command-line flags on Cobra commands.
package flags
