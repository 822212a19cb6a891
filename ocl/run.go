package ocl

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Run dispatches the kernel kernelName of the frame chain's current project with the given launch geometry
// and arguments, see ArgsOf for the supported argument types.
//
// If the kernel is not in the pool, the project is compiled and the pool populated with every kernel it
// defines, so later calls to any of them don't compile again. Then the arguments are bound, the geometry
// validated and the kernel submitted to the frame chain's queue. Run doesn't wait for the execution.
//
// On failure nothing is enqueued: the failure is logged (once) and returned. The pool is left valid,
// possibly partially populated.
func Run(frame *FrameChain, kernelName string, workDims int, global, local []int, args ...any) error {
	_, err := RunAsync(frame, kernelName, NDRange{WorkDims: workDims, Global: global, Local: local}, ArgsOf(args...))
	return err
}

// RunAsync is like Run, but takes the geometry as an NDRange, the arguments as an Args and returns the Event
// of the enqueued execution.
func RunAsync(frame *FrameChain, kernelName string, ndrange NDRange, args *Args) (*Event, error) {
	event, err := dispatch(frame, kernelName, ndrange, args)
	if err != nil {
		project := ""
		if frame != nil {
			project = frame.ProjectName()
		}
		klog.Errorf("Failed to run kernel %q of project %q: %v", kernelName, project, err)
		return nil, err
	}
	return event, nil
}

func dispatch(frame *FrameChain, kernelName string, ndrange NDRange, args *Args) (*Event, error) {
	if frame == nil {
		return nil, newError(ErrDispatch, "nil FrameChain")
	}
	unit := frame.Unit()
	pool := frame.Pool()
	ctx, project := unit.Context(), unit.Project()

	kernel, found := pool.Lookup(ctx, project, kernelName)
	if found {
		klog.V(2).Infof("kernel %q of project %q found in pool", kernelName, project)
	} else {
		klog.V(1).Infof("kernel %q of project %q not in pool, compiling project", kernelName, project)
		result, err := pool.compileUnit(unit, kernelName)
		if result != nil {
			kernel = result.kernels[kernelName]
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to compile %q", kernelName)
		}
	}
	if kernel == nil {
		return nil, newError(ErrKernelNotFound, "kernel %q is not defined by project %q (available: %v)",
			kernelName, project, pool.Kernels(ctx, project))
	}

	kernel.mu.Lock()
	defer kernel.mu.Unlock()
	if err := BindArgs(kernel, args); err != nil {
		return nil, err
	}
	var limits DeviceLimits
	if ctx != nil {
		limits = ctx.Limits()
	}
	if err := ndrange.Validate(limits); err != nil {
		return nil, errors.WithMessagef(err, "invalid NDRange of kernel %q", kernelName)
	}
	native, status := kernel.toolchain.EnqueueNDRange(frame.Queue(), kernel.native, ndrange.WorkDims, ndrange.Global, ndrange.Local)
	if err := toError(ErrDispatch, "EnqueueNDRange", status); err != nil {
		return nil, errors.WithMessagef(err, "failed to enqueue kernel %q", kernelName)
	}
	return newEvent(kernel.toolchain, native, kernel), nil
}
