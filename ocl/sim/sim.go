// Package sim implements ocl.Toolchain in pure Go, simulating a device.
//
// It "compiles" OpenCL C source by scanning its kernel entry points and parameter declarations (see
// ParseKernels), checks the arguments bound to each parameter slot the way an OpenCL driver would
// (sizes, memory objects, local memory), and records every enqueued launch in the Queue instead of
// executing it. It is used for testing, and by command line tools when no device is available.
//
// Importing the package registers the Default toolchain under the name "sim":
//
//	import _ "github.com/gomlx/gokernel/ocl/sim"
package sim

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gomlx/gokernel/ocl"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Name of the toolchain.
const Name = "sim"

// DefaultLimits of the simulated device.
var DefaultLimits = ocl.DeviceLimits{
	MaxWorkGroupSize: 1024,
	MaxWorkItemSizes: []int{1024, 1024, 64},
}

// Default is the toolchain registered under the name "sim".
var Default = New()

func init() {
	ocl.MustRegisterToolchain(Default)
}

// Toolchain is a simulated device toolchain. Create it with New.
type Toolchain struct {
	builds, failedBuilds atomic.Int64
	kernelsAlive         atomic.Int64

	mu         sync.Mutex
	buildDelay time.Duration
}

var (
	_ ocl.Toolchain       = (*Toolchain)(nil)
	_ ocl.ContextFactory  = (*Toolchain)(nil)
	_ ocl.MemoryAllocator = (*Toolchain)(nil)
)

// New creates a new simulated toolchain. It is not registered, see Default.
func New() *Toolchain {
	return &Toolchain{}
}

// Name implements ocl.Toolchain.
func (tc *Toolchain) Name() string {
	return Name
}

// Builds returns the number of calls to BuildProgram, successful or not.
func (tc *Toolchain) Builds() int {
	return int(tc.builds.Load())
}

// FailedBuilds returns the number of calls to BuildProgram that failed.
func (tc *Toolchain) FailedBuilds() int {
	return int(tc.failedBuilds.Load())
}

// KernelsAlive returns the number of kernels created and not released.
func (tc *Toolchain) KernelsAlive() int {
	return int(tc.kernelsAlive.Load())
}

// SetBuildDelay makes every BuildProgram call take at least d, to simulate slow compilers.
func (tc *Toolchain) SetBuildDelay(d time.Duration) *Toolchain {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.buildDelay = d
	return tc
}

// program is the simulated NativeProgram.
type program struct {
	source  string
	options []string
	decls   []KernelDecl

	mu       sync.Mutex
	released bool
}

// BuildProgram implements ocl.Toolchain.
func (tc *Toolchain) BuildProgram(ctx ocl.Context, source string, options []string) (ocl.NativeProgram, string, ocl.Status) {
	tc.builds.Add(1)
	tc.mu.Lock()
	delay := tc.buildDelay
	tc.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	simCtx, ok := ctx.(*Context)
	if !ok || simCtx == nil || simCtx.toolchain != tc {
		tc.failedBuilds.Add(1)
		return nil, "", ocl.InvalidContext
	}
	if strings.TrimSpace(source) == "" {
		tc.failedBuilds.Add(1)
		return nil, "", ocl.InvalidValue
	}
	if msg := checkOptions(options); msg != "" {
		tc.failedBuilds.Add(1)
		return nil, msg, ocl.InvalidBuildOptions
	}
	decls, buildLog, err := ParseKernels(source)
	if err != nil {
		tc.failedBuilds.Add(1)
		return nil, buildLog, ocl.BuildProgramFailure
	}
	klog.V(2).Infof("sim: built program with %d kernels", len(decls))
	return &program{source: source, options: options, decls: decls}, buildLog, ocl.Success
}

func asProgram(native ocl.NativeProgram) (*program, ocl.Status) {
	p, ok := native.(*program)
	if !ok || p == nil {
		return nil, ocl.InvalidProgram
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return nil, ocl.InvalidProgram
	}
	return p, ocl.Success
}

// KernelNames implements ocl.Toolchain.
func (tc *Toolchain) KernelNames(native ocl.NativeProgram) ([]string, ocl.Status) {
	p, status := asProgram(native)
	if status != ocl.Success {
		return nil, status
	}
	names := make([]string, len(p.decls))
	for ii, decl := range p.decls {
		names[ii] = decl.Name
	}
	return names, ocl.Success
}

// CreateKernel implements ocl.Toolchain.
func (tc *Toolchain) CreateKernel(native ocl.NativeProgram, name string) (ocl.NativeKernel, ocl.Status) {
	p, status := asProgram(native)
	if status != ocl.Success {
		return nil, status
	}
	for ii := range p.decls {
		if p.decls[ii].Name == name {
			decl := &p.decls[ii]
			tc.kernelsAlive.Add(1)
			return &Kernel{
				decl: decl,
				args: make([]ocl.ArgValue, len(decl.Params)),
				set:  make([]bool, len(decl.Params)),
			}, ocl.Success
		}
	}
	return nil, ocl.InvalidKernelName
}

// ReleaseProgram implements ocl.Toolchain.
func (tc *Toolchain) ReleaseProgram(native ocl.NativeProgram) ocl.Status {
	p, status := asProgram(native)
	if status != ocl.Success {
		return status
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released = true
	return ocl.Success
}

// ReleaseKernel implements ocl.Toolchain.
func (tc *Toolchain) ReleaseKernel(native ocl.NativeKernel) ocl.Status {
	k, ok := native.(*Kernel)
	if !ok || k == nil {
		return ocl.InvalidKernel
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.released {
		return ocl.InvalidKernel
	}
	k.released = true
	tc.kernelsAlive.Add(-1)
	return ocl.Success
}

// NumArgs implements ocl.Toolchain.
func (tc *Toolchain) NumArgs(native ocl.NativeKernel) (int, ocl.Status) {
	k, ok := native.(*Kernel)
	if !ok || k == nil {
		return 0, ocl.InvalidKernel
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.released {
		return 0, ocl.InvalidKernel
	}
	return len(k.decl.Params), ocl.Success
}

// SetKernelArg implements ocl.Toolchain.
func (tc *Toolchain) SetKernelArg(native ocl.NativeKernel, index int, arg ocl.ArgValue) ocl.Status {
	k, ok := native.(*Kernel)
	if !ok || k == nil {
		return ocl.InvalidKernel
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.released {
		return ocl.InvalidKernel
	}
	if index < 0 || index >= len(k.decl.Params) {
		return ocl.InvalidArgIndex
	}
	param := k.decl.Params[index]
	switch param.Kind {
	case ParamGlobal:
		if arg.Kind != ocl.ArgMemory {
			return ocl.InvalidArgValue
		}
		if arg.Size != param.Size {
			return ocl.InvalidArgSize
		}
		buf, ok := arg.Memory.(*Buffer)
		if !ok || buf == nil || buf.Released() {
			return ocl.InvalidMemObject
		}
	case ParamLocal:
		if arg.Kind != ocl.ArgLocal {
			return ocl.InvalidArgValue
		}
		if arg.Size <= 0 {
			return ocl.InvalidArgSize
		}
	case ParamScalar:
		if arg.Kind != ocl.ArgScalar {
			return ocl.InvalidArgValue
		}
		if arg.Size != param.Size || len(arg.Bytes) != param.Size {
			return ocl.InvalidArgSize
		}
		arg.Bytes = append([]byte(nil), arg.Bytes...)
	}
	k.args[index] = arg
	k.set[index] = true
	return ocl.Success
}

// EnqueueNDRange implements ocl.Toolchain. The launch is recorded in the Queue, and the returned event
// is already complete.
func (tc *Toolchain) EnqueueNDRange(queue ocl.NativeQueue, native ocl.NativeKernel, workDims int, global, local []int) (ocl.NativeEvent, ocl.Status) {
	q, ok := queue.(*Queue)
	if !ok || q == nil {
		return nil, ocl.InvalidCommandQueue
	}
	k, ok := native.(*Kernel)
	if !ok || k == nil {
		return nil, ocl.InvalidKernel
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.released {
		return nil, ocl.InvalidKernel
	}
	for _, set := range k.set {
		if !set {
			return nil, ocl.InvalidKernelArgs
		}
	}
	var limits ocl.DeviceLimits
	if q.ctx != nil {
		limits = q.ctx.limits
	}
	if status := checkRange(limits, workDims, global, local); status != ocl.Success {
		return nil, status
	}
	launch := Launch{
		Kernel:   k.decl.Name,
		Args:     append([]ocl.ArgValue(nil), k.args...),
		WorkDims: workDims,
		Global:   append([]int(nil), global[:workDims]...),
	}
	if local != nil {
		launch.Local = append([]int(nil), local[:workDims]...)
	}
	event, status := q.record(launch)
	if status != ocl.Success {
		return nil, status
	}
	return event, ocl.Success
}

// WaitForEvent implements ocl.Toolchain.
func (tc *Toolchain) WaitForEvent(native ocl.NativeEvent) ocl.Status {
	if e, ok := native.(*Event); !ok || e == nil {
		return ocl.InvalidEvent
	}
	return ocl.Success
}

// checkRange does the device side checks of the launch geometry.
func checkRange(limits ocl.DeviceLimits, workDims int, global, local []int) ocl.Status {
	if workDims < 1 || workDims > ocl.MaxWorkDims {
		return ocl.InvalidWorkDimension
	}
	if len(global) < workDims {
		return ocl.InvalidGlobalWorkSize
	}
	if local != nil && len(local) < workDims {
		return ocl.InvalidWorkGroupSize
	}
	groupSize := 1
	for ii := range workDims {
		if global[ii] <= 0 {
			return ocl.InvalidGlobalWorkSize
		}
		if local == nil {
			continue
		}
		if local[ii] <= 0 || global[ii]%local[ii] != 0 {
			return ocl.InvalidWorkGroupSize
		}
		if ii < len(limits.MaxWorkItemSizes) && limits.MaxWorkItemSizes[ii] > 0 && local[ii] > limits.MaxWorkItemSizes[ii] {
			return ocl.InvalidWorkItemSize
		}
		if limits.MaxWorkGroupSize > 0 {
			if local[ii] > limits.MaxWorkGroupSize/groupSize {
				return ocl.InvalidWorkGroupSize
			}
			groupSize *= local[ii]
		}
	}
	return ocl.Success
}

// NewContext implements ocl.ContextFactory: it returns a new context with DefaultLimits and a queue for it.
func (tc *Toolchain) NewContext() (ocl.Context, ocl.NativeQueue, error) {
	ctx := tc.NewContextWithLimits(DefaultLimits)
	return ctx, NewQueue(ctx), nil
}

// NewBuffer implements ocl.MemoryAllocator.
func (tc *Toolchain) NewBuffer(ctx ocl.Context, sizeBytes int) (ocl.Memory, error) {
	simCtx, ok := ctx.(*Context)
	if !ok || simCtx == nil || simCtx.toolchain != tc {
		return nil, errors.Errorf("sim.NewBuffer: context %v was not created by this toolchain", ctx)
	}
	return NewBuffer(simCtx, sizeBytes)
}
