package ocl

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// KernelKey identifies a kernel in a KernelPool: the compute context, the project (program unit) name and
// the kernel entry point name.
type KernelKey struct {
	Context Context
	Project string
	Name    string
}

// String implements fmt.Stringer.
func (k KernelKey) String() string {
	return fmt.Sprintf("%s/%s", k.Project, k.Name)
}

// Kernel is a compiled, dispatch-ready kernel entry point.
//
// It is immutable once created, except for the argument slots held by the native kernel object, which are
// overwritten on each dispatch.
type Kernel struct {
	key       KernelKey
	toolchain Toolchain
	native    NativeKernel

	// mu serializes the binding of arguments and the enqueueing, since the argument slots are
	// state of the native kernel.
	mu sync.Mutex
}

var numKernelsAlive atomic.Int64

// KernelsAlive returns the number of kernels created and not yet released.
func KernelsAlive() int64 {
	return numKernelsAlive.Load()
}

func newKernel(key KernelKey, toolchain Toolchain, native NativeKernel) *Kernel {
	numKernelsAlive.Add(1)
	return &Kernel{key: key, toolchain: toolchain, native: native}
}

// Name of the kernel entry point.
func (k *Kernel) Name() string { return k.key.Name }

// Project (program unit) name that defines the kernel.
func (k *Kernel) Project() string { return k.key.Project }

// Context where the kernel was compiled.
func (k *Kernel) Context() Context { return k.key.Context }

// Key returns the KernelPool key of the kernel.
func (k *Kernel) Key() KernelKey { return k.key }

// Native returns the toolchain's kernel object. It is nil after Release.
func (k *Kernel) Native() NativeKernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.native
}

// String implements fmt.Stringer.
func (k *Kernel) String() string {
	return fmt.Sprintf("Kernel(%s)", k.key)
}

// Release frees the native kernel. The Kernel is no longer valid afterwards, and calling Release again is a no-op.
//
// Kernels held by a KernelPool are released with KernelPool.Evict.
func (k *Kernel) Release() error {
	if k == nil {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.native == nil {
		return nil
	}
	status := k.toolchain.ReleaseKernel(k.native)
	k.native = nil
	numKernelsAlive.Add(-1)
	if status != Success {
		return errors.WithMessagef(toError(ErrDispatch, "ReleaseKernel", status), "releasing kernel %s", k.key)
	}
	return nil
}
