package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tildeSymbolConstant = "~"

// Both separators are accepted on every platform because targets are typed for Windows.
var tildeSeparatorPrefixes = []string{tildeSymbolConstant + "/", tildeSymbolConstant + `\`}

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander replaces a leading tilde with the user's home directory.
// The directory is looked up once; a failed lookup leaves targets unchanged.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	lookupOnce            sync.Once
	homeDirectory         string
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves "~", "~/rest", and "~\rest". Other targets, including "~user", are returned as given.
func (expander *HomeExpander) Expand(target string) string {
	if expander == nil || !strings.HasPrefix(target, tildeSymbolConstant) {
		return target
	}

	homeDirectory := expander.lookupHomeDirectory()
	if len(homeDirectory) == 0 {
		return target
	}

	if target == tildeSymbolConstant {
		return homeDirectory
	}
	for _, prefix := range tildeSeparatorPrefixes {
		if remainder, found := strings.CutPrefix(target, prefix); found {
			return filepath.Join(homeDirectory, remainder)
		}
	}
	return target
}

func (expander *HomeExpander) lookupHomeDirectory() string {
	expander.lookupOnce.Do(func() {
		homeDirectory, lookupError := expander.homeDirectoryProvider()
		if lookupError == nil {
			expander.homeDirectory = homeDirectory
		}
	})
	return expander.homeDirectory
}
