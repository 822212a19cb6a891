package ocl

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX", "kernelY")
	tc.numArgs = map[string]int{"kernelX": 2, "kernelY": 1}
	buf := &fakeMemory{id: 1}

	// First dispatch compiles projA and populates the pool with both kernels.
	require.NoError(t, frame.Run("kernelX", 1, []int{1024}, []int{64}, buf, int32(1024)))
	require.Equal(t, 1, tc.numBuilds())
	require.Equal(t, 2, frame.Pool().Len())
	require.Equal(t, 1, tc.numReleasedPrograms(), "program is released once its kernels are created")

	// kernelY comes from the pool, without compiling again.
	require.NoError(t, Run(frame, "kernelY", 2, []int{8, 9}, []int{4, 3}, buf))
	require.Equal(t, 1, tc.numBuilds())
	require.Equal(t, []string{"kernelX", "kernelY"}, tc.enqueuedKernels())

	// Cache hits keep not compiling.
	for ii := range 5 {
		require.NoError(t, frame.Run("kernelX", 1, []int{1024}, nil, buf, int32(ii)))
	}
	require.Equal(t, 1, tc.numBuilds())
	require.Len(t, tc.enqueuedKernels(), 7)
}

func TestRunAsync(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX")
	tc.numArgs = map[string]int{"kernelX": 1}
	event, err := RunAsync(frame, "kernelX", Range1D(16, 4), NewArgs().Float32(1))
	require.NoError(t, err)
	require.Equal(t, "kernelX", event.Kernel.Name())
	require.NotNil(t, event.Native())
	require.NoError(t, event.Await())
	require.Equal(t, []string{"kernelX"}, tc.enqueuedKernels())

	require.Error(t, (*Event)(nil).Await())
}

func TestRunKernelNotFound(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX", "kernelY")
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil))

	// A typo: the project compiles fine but doesn't define the kernel.
	err := frame.Run("kernelZ", 1, []int{16}, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrKernelNotFound))
	require.ErrorContains(t, err, "kernelX kernelY")
	require.Equal(t, []string{"kernelX"}, tc.enqueuedKernels(), "nothing else should be enqueued")
	require.Equal(t, 2, frame.Pool().Len())

	// Typo on a fresh frame: compiles once, populates the pool, and fails.
	frame, tc = newFakeFrame("projB", "kernelX")
	err = frame.Run("kernelx", 1, []int{16}, nil)
	require.True(t, errors.Is(err, ErrKernelNotFound))
	require.Equal(t, 1, tc.numBuilds())
	require.Empty(t, tc.enqueuedKernels())
	_, found := frame.Pool().Lookup(frame.Context(), "projB", "kernelX")
	require.True(t, found)
}

func TestRunCompilationFailure(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX")
	tc.buildStatus, tc.buildLog = BuildProgramFailure, "2: error: missing ';'"
	err := frame.Run("kernelX", 1, []int{16}, nil)
	require.True(t, errors.Is(err, ErrCompilation))
	require.Equal(t, BuildProgramFailure, StatusOf(err))
	require.ErrorContains(t, err, "missing ';'")
	require.Empty(t, tc.enqueuedKernels())
	require.Equal(t, 0, frame.Pool().Len())

	// Fixing the source (and the compiler) makes the next call work.
	tc.buildStatus = Success
	frame.SetSource("fixed source")
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil))
	require.Equal(t, 2, tc.numBuilds())
}

func TestRunKernelCreationFailure(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelA", "kernelB", "kernelC")
	tc.createStatus = map[string]Status{"kernelB": OutOfResources}
	err := frame.Run("kernelA", 1, []int{16}, nil)
	require.True(t, errors.Is(err, ErrCompilation))
	require.Equal(t, OutOfResources, StatusOf(err))
	require.Empty(t, tc.enqueuedKernels())

	// Kernels created before the failure remain in the pool.
	require.Equal(t, []string{"kernelA"}, frame.Pool().Kernels(frame.Context(), "projA"))
	require.NoError(t, frame.Run("kernelA", 1, []int{16}, nil))
	require.Equal(t, 1, tc.numBuilds())
}

func TestRunBindingFailure(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX")
	tc.numArgs = map[string]int{"kernelX": 3}
	tc.failArgIndex, tc.failArgStatus = 1, InvalidArgSize
	err := frame.Run("kernelX", 1, []int{16}, nil, int32(1), float64(2), int32(3))
	require.True(t, errors.Is(err, ErrBinding))
	require.Equal(t, 1, ArgIndexOf(err))
	require.Equal(t, InvalidArgSize, StatusOf(err))
	require.Equal(t, []int{0, 1}, tc.setArgIndices())
	require.Empty(t, tc.enqueuedKernels())

	// The kernel remains pooled and usable.
	tc.failArgIndex = -1
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil, int32(1), float32(2), int32(3)))
	require.Equal(t, 1, tc.numBuilds())
}

func TestRunGeometryFailure(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX")
	err := frame.Run("kernelX", 2, []int{8, 9}, []int{4, 4})
	require.True(t, errors.Is(err, ErrGeometry))
	require.Empty(t, tc.enqueuedKernels())

	err = frame.Run("kernelX", 4, []int{8, 8, 8, 8}, nil)
	require.True(t, errors.Is(err, ErrGeometry))
	require.Equal(t, InvalidWorkDimension, StatusOf(err))

	// Device limits from the context.
	frame.Context().(*fakeContext).limits = DeviceLimits{MaxWorkGroupSize: 64}
	err = frame.Run("kernelX", 1, []int{1024}, []int{128})
	require.True(t, errors.Is(err, ErrGeometry))
	require.Equal(t, InvalidWorkGroupSize, StatusOf(err))
	require.Empty(t, tc.enqueuedKernels())
	require.NoError(t, frame.Run("kernelX", 1, []int{1024}, []int{64}))
}

func TestRunDispatchFailure(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX")
	tc.enqueueStatus = OutOfResources
	err := frame.Run("kernelX", 1, []int{16}, nil)
	require.True(t, errors.Is(err, ErrDispatch))
	require.Equal(t, OutOfResources, StatusOf(err))

	require.True(t, errors.Is(Run(nil, "kernelX", 1, []int{16}, nil), ErrDispatch))
}

func TestRunConcurrent(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX", "kernelY", "kernelZ")
	tc.numArgs = map[string]int{"kernelX": 1, "kernelY": 1, "kernelZ": 1}
	names := []string{"kernelX", "kernelY", "kernelZ"}
	const numWorkers = 30
	var wg sync.WaitGroup
	errs := make([]error, numWorkers)
	for ii := range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[ii] = frame.Run(names[ii%len(names)], 1, []int{32}, []int{8}, int32(ii))
		}()
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
	require.Equal(t, 1, tc.numBuilds(), "concurrent misses should share one compilation")
	require.Len(t, tc.enqueuedKernels(), numWorkers)
	require.Equal(t, 3, frame.Pool().Len())
}

func TestRunPreinsertedConflict(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX", "kernelY")
	ctx := frame.Context()

	// kernelY is inserted by someone else before projA is compiled through the frame.
	preinserted := newKernel(KernelKey{ctx, "projA", "kernelY"}, tc, &fakeKernel{name: "kernelY"})
	require.NoError(t, frame.Pool().Insert(ctx, "projA", "kernelY", preinserted))

	// Compiling projA conflicts on kernelY: it is tolerated, and the original stays.
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil))
	kernel, found := frame.Pool().Lookup(ctx, "projA", "kernelY")
	require.True(t, found)
	require.Same(t, preinserted, kernel)
	require.Equal(t, []string{"kernelY"}, tc.released, "the duplicate is released")
	require.NoError(t, frame.Run("kernelY", 1, []int{16}, nil))
	require.Equal(t, 1, tc.numBuilds())
}

func TestFrameChainProjects(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX")
	frame.SetSourceProvider(SourceMap{"projB": "source B"})
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil))

	// Switching project: same kernel name, different key, compiled from the provider.
	frame.SetProjectName("projB")
	require.Equal(t, "projB", frame.ProjectName())
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil))
	require.Equal(t, 2, tc.numBuilds())
	require.Equal(t, 2, frame.Pool().Len())

	// Switching back hits the pool.
	frame.SetProjectName("projA")
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil))
	require.Equal(t, 2, tc.numBuilds())
	require.Equal(t, 2, tc.numReleasedPrograms())
	require.Equal(t, `FrameChain(project="projA")`, frame.String())
}

func TestRunArgumentCount(t *testing.T) {
	frame, tc := newFakeFrame("projA", "k")
	tc.numArgs = map[string]int{"k": 3}
	buf := &fakeMemory{id: 1}
	require.NoError(t, frame.Run("k", 1, []int{16}, nil, buf, int32(1), float32(2)))
	require.Equal(t, []int{0, 1, 2}, tc.setArgIndices())

	// Too few: the last slot still holds the value of the previous dispatch, it must not be launched.
	err := frame.Run("k", 1, []int{16}, nil, buf, int32(7))
	require.True(t, errors.Is(err, ErrBinding))
	require.Equal(t, InvalidKernelArgs, StatusOf(err))
	require.ErrorContains(t, err, "takes 3 arguments, got 2")

	// Too many.
	err = frame.Run("k", 1, []int{16}, nil, buf, int32(7), float32(2), int32(0))
	require.True(t, errors.Is(err, ErrBinding))
	require.Equal(t, InvalidKernelArgs, StatusOf(err))
	require.Equal(t, -1, ArgIndexOf(err))

	require.Equal(t, []int{0, 1, 2}, tc.setArgIndices(), "mismatched counts bind nothing")
	require.Equal(t, []string{"k"}, tc.enqueuedKernels())
}

func TestRunReleasesPrograms(t *testing.T) {
	frame, tc := newFakeFrame("projA", "kernelX")
	require.NoError(t, frame.Run("kernelX", 1, []int{16}, nil))

	// Each typo misses the pool and compiles the project again, every program is released.
	for range 5 {
		err := frame.Run("kernelx", 1, []int{16}, nil)
		require.True(t, errors.Is(err, ErrKernelNotFound))
	}
	require.Equal(t, 6, tc.numBuilds())
	require.Equal(t, 6, tc.numReleasedPrograms())
	require.Equal(t, 1, frame.Pool().Len())

	// Also when kernel creation fails half way.
	frame, tc = newFakeFrame("projA", "kernelA", "kernelB")
	tc.createStatus = map[string]Status{"kernelB": OutOfResources}
	require.Error(t, frame.Run("kernelA", 1, []int{16}, nil))
	require.Equal(t, 1, tc.numReleasedPrograms())

	// Warm does not keep the program either.
	tc.createStatus = nil
	names, err := frame.Pool().Warm(NewProgramUnit(frame.Context(), "projB").SetSource("source B"))
	require.NoError(t, err)
	require.Equal(t, []string{"kernelA", "kernelB"}, names)
	require.Equal(t, 2, tc.numReleasedPrograms())

	// Kernels remain usable after their program is released.
	require.NoError(t, frame.Run("kernelA", 1, []int{16}, nil))
}
