package pathutils

import (
	"os"
	"regexp"
	"strings"
)

const urlSchemeSeparatorConstant = "://"

var windowsEnvironmentReferencePattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%`)

// EnvironmentLookup resolves an environment variable by name.
type EnvironmentLookup func(name string) (string, bool)

// TargetExpander rewrites open targets typed on a command line into paths the shell can open.
// URLs pass through untouched. Unknown %NAME% references are left as written.
type TargetExpander struct {
	homeExpander      *HomeExpander
	environmentLookup EnvironmentLookup
}

// NewTargetExpander constructs a TargetExpander backed by the process environment.
func NewTargetExpander(homeExpander *HomeExpander) *TargetExpander {
	return NewTargetExpanderWithLookup(homeExpander, os.LookupEnv)
}

// NewTargetExpanderWithLookup constructs a TargetExpander with a custom environment lookup.
func NewTargetExpanderWithLookup(homeExpander *HomeExpander, lookup EnvironmentLookup) *TargetExpander {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &TargetExpander{homeExpander: homeExpander, environmentLookup: lookup}
}

// Expand resolves %NAME% references and a leading tilde.
func (expander *TargetExpander) Expand(target string) string {
	if expander == nil || strings.Contains(target, urlSchemeSeparatorConstant) {
		return target
	}

	expanded := windowsEnvironmentReferencePattern.ReplaceAllStringFunc(target, func(reference string) string {
		name := strings.Trim(reference, "%")
		if value, found := expander.environmentLookup(name); found {
			return value
		}
		return reference
	})

	return expander.homeExpander.Expand(expanded)
}

// ExpandAll expands every target, preserving order.
func (expander *TargetExpander) ExpandAll(targets []string) []string {
	expanded := make([]string, 0, len(targets))
	for _, target := range targets {
		expanded = append(expanded, expander.Expand(target))
	}
	return expanded
}
