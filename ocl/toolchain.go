package ocl

// NativeProgram, NativeKernel, NativeQueue, NativeMemory and NativeEvent are opaque handles owned by a Toolchain.
// The package never looks inside them, it only passes them back to the Toolchain that created them.
type (
	NativeProgram any
	NativeKernel  any
	NativeQueue   any
	NativeMemory  any
	NativeEvent   any
)

// Toolchain is the narrow interface to the native device primitives: compile, create-kernel, set-argument
// and enqueue. Each returns a Status from the native error enumeration.
//
// A Toolchain wrapping an OpenCL driver maps these one-to-one to clBuildProgram, clGetProgramInfo
// (CL_PROGRAM_KERNEL_NAMES), clCreateKernel, clGetKernelInfo (CL_KERNEL_NUM_ARGS), clSetKernelArg and
// clEnqueueNDRangeKernel.
// See package ocl/sim for a pure Go implementation.
//
// Implementations must be safe for concurrent use: different program units may be compiled concurrently.
type Toolchain interface {
	// Name of the toolchain, used by the registry.
	Name() string

	// BuildProgram compiles source for the given context. On failure it returns a non-Success status,
	// and the build log (if any) with the compiler diagnostics.
	BuildProgram(ctx Context, source string, options []string) (program NativeProgram, buildLog string, status Status)

	// KernelNames enumerates the names of all kernel entry points defined by the program.
	KernelNames(program NativeProgram) ([]string, Status)

	// CreateKernel creates the native kernel object for the entry point name.
	CreateKernel(program NativeProgram, name string) (NativeKernel, Status)

	// NumArgs returns the number of parameters declared by the kernel.
	NumArgs(kernel NativeKernel) (int, Status)

	// SetKernelArg binds arg to the parameter slot index of the kernel.
	SetKernelArg(kernel NativeKernel, index int, arg ArgValue) Status

	// EnqueueNDRange submits the kernel for asynchronous execution on the queue.
	// local may be nil, in which case the toolchain chooses the work-group size.
	EnqueueNDRange(queue NativeQueue, kernel NativeKernel, workDims int, global, local []int) (NativeEvent, Status)

	// WaitForEvent blocks until the event is complete.
	WaitForEvent(event NativeEvent) Status

	// ReleaseKernel and ReleaseProgram free the native objects.
	ReleaseKernel(kernel NativeKernel) Status
	ReleaseProgram(program NativeProgram) Status
}

// Context is the compute context: an externally owned handle to a device/driver session.
//
// The package never creates or destroys contexts, it only uses them as a component of the KernelPool keys
// and as input to the Toolchain calls. Implementations must be comparable (typically pointers), since they
// are used as map keys.
type Context interface {
	// Toolchain used to compile and dispatch kernels in this context.
	Toolchain() Toolchain

	// Limits of the device, used to validate launch geometries. A zero DeviceLimits means unknown limits.
	Limits() DeviceLimits
}

// ContextFactory is optionally implemented by a Toolchain that can create its own contexts and queues.
// It is used by command line tools; applications usually acquire contexts themselves.
type ContextFactory interface {
	NewContext() (Context, NativeQueue, error)
}

// MemoryAllocator is optionally implemented by a Toolchain that can allocate device buffers.
type MemoryAllocator interface {
	NewBuffer(ctx Context, sizeBytes int) (Memory, error)
}
