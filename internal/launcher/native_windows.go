//go:build windows

package launcher

import (
	"context"
	"errors"
	"os"
	"runtime"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/temirov/winopen/internal/openerr"
)

const (
	nativeBackendUnavailableMessageConstant = "shellexecute backend is only available on windows"
	shell32LibraryNameConstant              = "shell32.dll"
	createItemListProcedureConstant         = "ILCreateFromPathW"
	openFolderProcedureConstant             = "SHOpenFolderAndSelectItems"
	freeItemListProcedureConstant           = "ILFree"
	itemListCreationFailedMessageConstant   = "unable to resolve folder item"
	nativeOpenMessageConstant               = "Opening via ShellExecute"
	nativeFolderOpenMessageConstant         = "Opening folder via SHOpenFolderAndSelectItems"
	logFieldApplicationConstant             = "application"
)

// comAlreadyInitializedStatus is S_FALSE, returned when COM is already initialized on the thread.
const comAlreadyInitializedStatus windows.Errno = 1

// ErrNativeBackendUnavailable is never returned on Windows; it exists so callers compile on every platform.
var ErrNativeBackendUnavailable = errors.New(nativeBackendUnavailableMessageConstant)

var (
	shell32Library          = windows.NewLazySystemDLL(shell32LibraryNameConstant)
	createItemListProcedure = shell32Library.NewProc(createItemListProcedureConstant)
	openFolderProcedure     = shell32Library.NewProc(openFolderProcedureConstant)
	freeItemListProcedure   = shell32Library.NewProc(freeItemListProcedureConstant)
)

// NativeExecuteStrategy opens targets through the Windows shell API without a console shell.
// Directories are shown in Explorer with the folder itself selected.
type NativeExecuteStrategy struct {
	logger *zap.Logger
}

// NewNativeExecuteStrategy constructs the ShellExecute backed detached strategy.
func NewNativeExecuteStrategy(logger *zap.Logger) (DetachedStrategy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NativeExecuteStrategy{logger: logger}, nil
}

// OpenDetached opens target with its registered handler.
func (strategy *NativeExecuteStrategy) OpenDetached(executionContext context.Context, target string) error {
	if contextError := contextFailure(executionContext); contextError != nil {
		return contextError
	}

	if information, statError := os.Stat(target); statError == nil && information.IsDir() {
		strategy.logger.Info(nativeFolderOpenMessageConstant, zap.String(logFieldTargetConstant, target))
		return openFolder(target)
	}

	strategy.logger.Info(nativeOpenMessageConstant, zap.String(logFieldTargetConstant, target))
	return shellExecute(target, "")
}

// OpenDetachedWith starts application with target as its parameter.
func (strategy *NativeExecuteStrategy) OpenDetachedWith(executionContext context.Context, target string, application string) error {
	if contextError := contextFailure(executionContext); contextError != nil {
		return contextError
	}

	strategy.logger.Info(nativeOpenMessageConstant, zap.String(logFieldTargetConstant, target), zap.String(logFieldApplicationConstant, application))
	return shellExecute(application, wrapInQuotes(target))
}

func contextFailure(executionContext context.Context) error {
	if executionContext == nil {
		return nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return openerr.Wrap(contextError)
	}
	return nil
}

func shellExecute(file string, parameters string) error {
	filePointer, fileError := windows.UTF16PtrFromString(file)
	if fileError != nil {
		return openerr.Wrap(fileError)
	}

	var parametersPointer *uint16
	if len(parameters) > 0 {
		convertedParameters, parametersError := windows.UTF16PtrFromString(parameters)
		if parametersError != nil {
			return openerr.Wrap(parametersError)
		}
		parametersPointer = convertedParameters
	}

	if executeError := windows.ShellExecute(0, nil, filePointer, parametersPointer, nil, windows.SW_SHOWNORMAL); executeError != nil {
		return openerr.Wrap(executeError)
	}
	return nil
}

// openFolder runs on a locked OS thread because COM initialization is per thread.
func openFolder(directory string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	initializeError := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED)
	if initializeError == nil || initializeError == comAlreadyInitializedStatus {
		defer windows.CoUninitialize()
	}

	directoryPointer, directoryError := windows.UTF16PtrFromString(directory)
	if directoryError != nil {
		return openerr.Wrap(directoryError)
	}

	itemList, _, _ := createItemListProcedure.Call(uintptr(unsafe.Pointer(directoryPointer)))
	if itemList == 0 {
		return openerr.New(openerr.KindIo, itemListCreationFailedMessageConstant)
	}
	defer freeItemListProcedure.Call(itemList)

	selectedItems := [1]uintptr{itemList}
	result, _, _ := openFolderProcedure.Call(itemList, uintptr(len(selectedItems)), uintptr(unsafe.Pointer(&selectedItems[0])), 0)
	if int32(result) < 0 {
		return openerr.Wrap(windows.Errno(result))
	}
	return nil
}
