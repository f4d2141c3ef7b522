// Package openerr defines the error taxonomy shared by the shell resolver,
// the invocation builder, and the launchers.
//
// Every failure is an *Error carrying one of four kinds. Equality is defined by
// kind alone, so callers classify failures with errors.Is against the exported
// sentinels and read the informational message through errors.As.
package openerr
