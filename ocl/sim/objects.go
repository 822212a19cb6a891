package sim

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/gokernel/ocl"
	"github.com/pkg/errors"
)

// Context is a simulated compute context. It implements ocl.Context.
type Context struct {
	toolchain *Toolchain
	limits    ocl.DeviceLimits
}

var _ ocl.Context = (*Context)(nil)

// NewContextWithLimits creates a context of the toolchain for a device with the given limits.
func (tc *Toolchain) NewContextWithLimits(limits ocl.DeviceLimits) *Context {
	limits.MaxWorkItemSizes = slices.Clone(limits.MaxWorkItemSizes)
	return &Context{toolchain: tc, limits: limits}
}

// Toolchain implements ocl.Context.
func (c *Context) Toolchain() ocl.Toolchain {
	return c.toolchain
}

// Limits implements ocl.Context.
func (c *Context) Limits() ocl.DeviceLimits {
	return c.limits
}

// Launch is the record of an enqueued kernel.
type Launch struct {
	Kernel   string
	Args     []ocl.ArgValue
	WorkDims int
	Global   []int
	Local    []int
}

// Event is the (always complete) event of a Launch.
type Event struct {
	// Index of the launch in its Queue.
	Index int
}

// Queue is a simulated execution queue: it records the launches in order of submission.
type Queue struct {
	ctx *Context

	mu       sync.Mutex
	launches []Launch
	reject   ocl.Status
}

// NewQueue creates a queue for the context.
func NewQueue(ctx *Context) *Queue {
	return &Queue{ctx: ctx}
}

// Launches returns a copy of the launches recorded so far.
func (q *Queue) Launches() []Launch {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.launches)
}

// Reject makes the following submissions to the queue fail with status, until called again with ocl.Success.
func (q *Queue) Reject(status ocl.Status) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.reject = status
}

// Finish blocks until all launches are complete. Simulated launches complete when they are submitted.
func (q *Queue) Finish() ocl.Status {
	return ocl.Success
}

func (q *Queue) record(launch Launch) (*Event, ocl.Status) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.reject != ocl.Success {
		return nil, q.reject
	}
	q.launches = append(q.launches, launch)
	return &Event{Index: len(q.launches) - 1}, ocl.Success
}

// Kernel is the simulated native kernel object.
type Kernel struct {
	decl *KernelDecl

	mu       sync.Mutex
	args     []ocl.ArgValue
	set      []bool
	released bool
}

// Name of the kernel entry point.
func (k *Kernel) Name() string {
	return k.decl.Name
}

// Params returns the parameter declarations of the kernel.
func (k *Kernel) Params() []Param {
	return k.decl.Params
}

var nextBufferID atomic.Int64

// Buffer is a simulated device memory object. It implements ocl.Memory.
type Buffer struct {
	ID   int64
	Size int

	released atomic.Bool
}

var _ ocl.Memory = (*Buffer)(nil)

// NewBuffer allocates a simulated buffer of sizeBytes in the context.
func NewBuffer(ctx *Context, sizeBytes int) (*Buffer, error) {
	if ctx == nil {
		return nil, errors.New("sim.NewBuffer: nil context")
	}
	if sizeBytes <= 0 {
		return nil, errors.Errorf("sim.NewBuffer: invalid buffer size %d (%s)", sizeBytes, ocl.InvalidBufferSize)
	}
	return &Buffer{ID: nextBufferID.Add(1), Size: sizeBytes}, nil
}

// NativeMemory implements ocl.Memory.
func (b *Buffer) NativeMemory() ocl.NativeMemory {
	return b
}

// Release the buffer: it can no longer be bound to kernels.
func (b *Buffer) Release() {
	b.released.Store(true)
}

// Released returns whether Release was called.
func (b *Buffer) Released() bool {
	return b.released.Load()
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	return fmt.Sprintf("sim.Buffer(#%d, %s)", b.ID, humanize.IBytes(uint64(b.Size)))
}
