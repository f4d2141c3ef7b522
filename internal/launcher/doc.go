// Package launcher builds shell invocations that open files, directories, and URLs
// and runs them as blocking, background, or detached operations.
package launcher
