// Package pathutils normalizes user-supplied open targets before they reach a shell.
package pathutils
