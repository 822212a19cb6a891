package ocl

import (
	"fmt"
	"sync"
)

// FrameChain is the frame context of a dispatch: the compute context, its execution queue, the current
// program unit (project and source) and the KernelPool where compiled kernels are cached.
//
// It is safe for concurrent use, but changing the project or source while kernels are being dispatched
// affects which unit a concurrent cache miss compiles.
type FrameChain struct {
	queue NativeQueue

	mu   sync.Mutex
	unit *ProgramUnit
	pool *KernelPool
}

// NewFrameChain creates a FrameChain for the project, dispatching on queue of the context ctx.
// It uses the DefaultPool, see WithPool to change it.
func NewFrameChain(ctx Context, queue NativeQueue, project string) *FrameChain {
	return &FrameChain{
		queue: queue,
		unit:  NewProgramUnit(ctx, project),
		pool:  DefaultPool(),
	}
}

// WithPool configures the KernelPool used to cache kernels. It returns itself to allow cascading calls.
func (fc *FrameChain) WithPool(pool *KernelPool) *FrameChain {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.pool = pool
	return fc
}

// Context returns the compute context.
func (fc *FrameChain) Context() Context {
	return fc.Unit().Context()
}

// Queue returns the execution queue kernels are submitted to.
func (fc *FrameChain) Queue() NativeQueue {
	return fc.queue
}

// Pool returns the KernelPool used by the frame chain.
func (fc *FrameChain) Pool() *KernelPool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.pool
}

// Unit returns the current program unit.
func (fc *FrameChain) Unit() *ProgramUnit {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.unit
}

// ProjectName returns the name of the current project.
func (fc *FrameChain) ProjectName() string {
	return fc.Unit().Project()
}

// SetProjectName switches the frame chain to another project of the same context. The new unit inherits the
// source provider and build options, but not the source set with SetSource.
func (fc *FrameChain) SetProjectName(project string) *FrameChain {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.unit.Project() != project {
		fc.unit = fc.unit.withProject(project)
	}
	return fc
}

// SetSource sets the source of the current project. It only has effect on the next compilation of the
// project, kernels already in the pool are not affected.
func (fc *FrameChain) SetSource(source string) *FrameChain {
	fc.Unit().SetSource(source)
	return fc
}

// SetSourceProvider sets where the source of the projects comes from when not given with SetSource.
func (fc *FrameChain) SetSourceProvider(provider SourceProvider) *FrameChain {
	fc.Unit().SetSourceProvider(provider)
	return fc
}

// AddBuildOptions appends build options to the current project.
func (fc *FrameChain) AddBuildOptions(options ...string) *FrameChain {
	fc.Unit().AddBuildOptions(options...)
	return fc
}

// Run dispatches the kernel, see the package function Run.
func (fc *FrameChain) Run(kernelName string, workDims int, global, local []int, args ...any) error {
	return Run(fc, kernelName, workDims, global, local, args...)
}

// String implements fmt.Stringer.
func (fc *FrameChain) String() string {
	return fmt.Sprintf("FrameChain(project=%q)", fc.ProjectName())
}
