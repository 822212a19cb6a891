package ocl

// Common initialization and testing tools for all test files.

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

type errTester[T any] struct {
	value T
	err   error
}

// capture is a shortcut to test that there is no error and return the value.
func capture[T any](value T, err error) errTester[T] {
	return errTester[T]{value, err}
}

func (e errTester[T]) Test(t *testing.T) T {
	require.NoError(t, e.err)
	return e.value
}

// fakeToolchain records the calls made by the package, and can be configured to fail.
type fakeToolchain struct {
	mu sync.Mutex

	// kernelNames defined by any program built.
	kernelNames []string

	// numArgs declared by each kernel, kernels not listed take no arguments.
	numArgs map[string]int

	buildStatus   Status
	buildLog      string
	failArgIndex  int
	failArgStatus Status
	createStatus  map[string]Status
	enqueueStatus Status

	builds      int
	lastOptions []string
	setArgCalls []int
	enqueued    []string
	released    []string

	releasedPrograms int
}

func newFakeToolchain(kernelNames ...string) *fakeToolchain {
	return &fakeToolchain{kernelNames: kernelNames, failArgIndex: -1}
}

type fakeProgram struct {
	names []string
}

type fakeKernel struct {
	name string
}

type fakeEvent struct{}

func (tc *fakeToolchain) Name() string { return "fake" }

func (tc *fakeToolchain) BuildProgram(_ Context, _ string, options []string) (NativeProgram, string, Status) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.builds++
	tc.lastOptions = slices.Clone(options)
	if tc.buildStatus != Success {
		return nil, tc.buildLog, tc.buildStatus
	}
	return &fakeProgram{names: slices.Clone(tc.kernelNames)}, tc.buildLog, Success
}

func (tc *fakeToolchain) KernelNames(program NativeProgram) ([]string, Status) {
	return program.(*fakeProgram).names, Success
}

func (tc *fakeToolchain) CreateKernel(program NativeProgram, name string) (NativeKernel, Status) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if status, found := tc.createStatus[name]; found {
		return nil, status
	}
	if !slices.Contains(program.(*fakeProgram).names, name) {
		return nil, InvalidKernelName
	}
	return &fakeKernel{name: name}, Success
}

func (tc *fakeToolchain) NumArgs(kernel NativeKernel) (int, Status) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.numArgs[kernel.(*fakeKernel).name], Success
}

func (tc *fakeToolchain) SetKernelArg(_ NativeKernel, index int, _ ArgValue) Status {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.setArgCalls = append(tc.setArgCalls, index)
	if index == tc.failArgIndex {
		return tc.failArgStatus
	}
	return Success
}

func (tc *fakeToolchain) EnqueueNDRange(_ NativeQueue, kernel NativeKernel, _ int, _, _ []int) (NativeEvent, Status) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.enqueueStatus != Success {
		return nil, tc.enqueueStatus
	}
	tc.enqueued = append(tc.enqueued, kernel.(*fakeKernel).name)
	return &fakeEvent{}, Success
}

func (tc *fakeToolchain) WaitForEvent(NativeEvent) Status { return Success }

func (tc *fakeToolchain) ReleaseKernel(kernel NativeKernel) Status {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.released = append(tc.released, kernel.(*fakeKernel).name)
	return Success
}

func (tc *fakeToolchain) ReleaseProgram(NativeProgram) Status {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.releasedPrograms++
	return Success
}

func (tc *fakeToolchain) numBuilds() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.builds
}

func (tc *fakeToolchain) numReleasedPrograms() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.releasedPrograms
}

func (tc *fakeToolchain) enqueuedKernels() []string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return slices.Clone(tc.enqueued)
}

func (tc *fakeToolchain) setArgIndices() []int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return slices.Clone(tc.setArgCalls)
}

type fakeContext struct {
	toolchain *fakeToolchain
	limits    DeviceLimits
}

func (c *fakeContext) Toolchain() Toolchain { return c.toolchain }
func (c *fakeContext) Limits() DeviceLimits { return c.limits }

// fakeMemory implements Memory.
type fakeMemory struct {
	id int
}

func (m *fakeMemory) NativeMemory() NativeMemory { return m }

// newFakeFrame returns a frame chain for project on a new fake toolchain, with its own pool.
func newFakeFrame(project string, kernelNames ...string) (*FrameChain, *fakeToolchain) {
	tc := newFakeToolchain(kernelNames...)
	ctx := &fakeContext{toolchain: tc}
	frame := NewFrameChain(ctx, "queue", project).WithPool(NewKernelPool())
	frame.SetSource("// source of " + project)
	return frame, tc
}
