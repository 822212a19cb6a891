// Package gokernel manages the lifecycle of compiled GPU compute kernels: it compiles a program unit (the
// kernel source of a project) once per compute context, caches every kernel it defines in a pool, and
// dispatches kernels by name after binding their arguments and validating the launch geometry.
//
// The implementation lives in the subpackages:
//
//   - ocl: the kernel pool, program compiler, argument binder, launch validator and dispatch.
//   - ocl/sim: a simulated device toolchain, registered as "sim", used for tests and tools.
//   - dtypes: the scalar types that can be passed to kernels.
//
// Example:
//
//	import (
//		"github.com/gomlx/gokernel/ocl"
//		_ "github.com/gomlx/gokernel/ocl/sim"
//	)
//
//	toolchain := must.M1(ocl.GetToolchain(""))
//	ctx, queue := must.M2(toolchain.(ocl.ContextFactory).NewContext())
//	frame := ocl.NewFrameChain(ctx, queue, "projA").SetSourceProvider(ocl.SourceDir("kernels/"))
//	err := frame.Run("kernelX", 1, []int{1024}, []int{64}, buf, int32(1024))
package gokernel
