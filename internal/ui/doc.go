// Package ui renders command lifecycle events as short console messages.
//
// Structured telemetry continues to flow through the executor's zap logger;
// this package only adds the human-readable view used by the console log format.
package ui
