package ocl

import (
	"github.com/pkg/errors"
)

// Event references the completion of an enqueued kernel. It is returned by RunAsync.
//
// Errors in the execution on the device are only reported when waiting for the event.
type Event struct {
	toolchain Toolchain
	native    NativeEvent

	// Kernel that was enqueued.
	Kernel *Kernel
}

func newEvent(toolchain Toolchain, native NativeEvent, kernel *Kernel) *Event {
	return &Event{toolchain: toolchain, native: native, Kernel: kernel}
}

// Native returns the toolchain's event object, it may be nil if the toolchain doesn't report events.
func (e *Event) Native() NativeEvent {
	return e.native
}

// Await blocks until the kernel execution is complete, and returns an ErrDispatch error if it failed.
// If the toolchain returned no event, it returns immediately.
func (e *Event) Await() error {
	if e == nil {
		return errors.New("Event is nil")
	}
	if e.native == nil {
		return nil
	}
	status := e.toolchain.WaitForEvent(e.native)
	if err := toError(ErrDispatch, "WaitForEvent", status); err != nil {
		return errors.WithMessagef(err, "waiting for %s", e.Kernel)
	}
	return nil
}
