package launcher

// Handle joins a background open. Wait may be called any number of times from any goroutine.
type Handle struct {
	done   chan struct{}
	result error
}

func runInBackground(operation func() error) *Handle {
	handle := &Handle{done: make(chan struct{})}
	go func() {
		defer close(handle.done)
		handle.result = operation()
	}()
	return handle
}

// Wait blocks until the open finishes and returns its result.
func (handle *Handle) Wait() error {
	<-handle.done
	return handle.result
}

// Done is closed once the open finishes.
func (handle *Handle) Done() <-chan struct{} {
	return handle.done
}
