//go:build !windows

package launcher

import (
	"errors"

	"go.uber.org/zap"
)

const nativeBackendUnavailableMessageConstant = "shellexecute backend is only available on windows"

// ErrNativeBackendUnavailable indicates the native detached backend cannot be used on this platform.
var ErrNativeBackendUnavailable = errors.New(nativeBackendUnavailableMessageConstant)

// NewNativeExecuteStrategy reports ErrNativeBackendUnavailable outside Windows.
func NewNativeExecuteStrategy(logger *zap.Logger) (DetachedStrategy, error) {
	return nil, ErrNativeBackendUnavailable
}
