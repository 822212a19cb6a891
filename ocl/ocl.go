// Package ocl manages the lifecycle of compiled GPU compute kernels: it compiles the source of a program unit
// once per (context, project), caches every kernel the compilation produces in a KernelPool, binds typed
// arguments, validates the launch geometry and submits kernels for execution.
//
// The device primitives are abstracted by the Toolchain interface, and the compute context by Context, both
// provided by the application (or by a toolchain package, like ocl/sim).
//
// Typical use:
//
//	frame := ocl.NewFrameChain(ctx, queue, "projA")
//	frame.SetSource(source)
//	err := frame.Run("kernelX", 1, []int{1024}, []int{64}, buffer, int32(1024))
//
// The first Run for a project compiles its source and caches all its kernels, following calls for any kernel of
// the same project are served from the cache.
package ocl
