package ocl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tc := newFakeToolchain("kernelY", "kernelX")
	ctx := &fakeContext{toolchain: tc}
	unit := NewProgramUnit(ctx, "projA").SetSource("__kernel void kernelX() {}")

	before := ProgramsCompiled()
	program := capture(Compile(unit)).Test(t)
	require.Equal(t, before+1, ProgramsCompiled())
	require.Same(t, unit, program.Unit())
	names := capture(program.KernelNames()).Test(t)
	require.Equal(t, []string{"kernelY", "kernelX"}, names)

	kernel := capture(program.CreateKernel("kernelX")).Test(t)
	require.Equal(t, "kernelX", kernel.Name())
	require.Equal(t, "projA", kernel.Project())
	require.Equal(t, KernelKey{ctx, "projA", "kernelX"}, kernel.Key())
	require.Equal(t, "Kernel(projA/kernelX)", kernel.String())

	_, err := program.CreateKernel("kernelZ")
	require.True(t, errors.Is(err, ErrCompilation))
	require.Equal(t, InvalidKernelName, StatusOf(err))

	require.NoError(t, program.Release())
	_, err = program.KernelNames()
	require.True(t, errors.Is(err, ErrCompilation))
	require.NoError(t, kernel.Release())
}

func TestCompileFailures(t *testing.T) {
	tc := newFakeToolchain("k")
	ctx := &fakeContext{toolchain: tc}

	// No source.
	_, err := Compile(NewProgramUnit(ctx, "noSource"))
	require.True(t, errors.Is(err, ErrCompilation))
	require.ErrorContains(t, err, "no source set")
	require.Equal(t, 0, tc.numBuilds())

	// Source provider without the project.
	_, err = Compile(NewProgramUnit(ctx, "missing").SetSourceProvider(SourceMap{"other": "x"}))
	require.True(t, errors.Is(err, ErrCompilation))
	require.ErrorContains(t, err, `no source for project "missing"`)

	// Empty source.
	_, err = Compile(NewProgramUnit(ctx, "empty").SetSource(""))
	require.True(t, errors.Is(err, ErrCompilation))
	require.Equal(t, InvalidValue, StatusOf(err))

	// No context.
	_, err = Compile(NewProgramUnit(nil, "noContext").SetSource("x"))
	require.True(t, errors.Is(err, ErrCompilation))
	require.Equal(t, InvalidContext, StatusOf(err))
	_, err = Compile(nil)
	require.True(t, errors.Is(err, ErrCompilation))

	// Build failure carries the native code and the build log.
	tc.buildStatus, tc.buildLog = BuildProgramFailure, "1: error: unexpected token"
	_, err = Compile(NewProgramUnit(ctx, "broken").SetSource("x"))
	require.True(t, errors.Is(err, ErrCompilation))
	require.Equal(t, BuildProgramFailure, StatusOf(err))
	require.ErrorContains(t, err, "unexpected token")
	require.ErrorContains(t, err, `project "broken"`)
	require.Equal(t, 1, tc.numBuilds())
}

func TestCompileConfig(t *testing.T) {
	t.Setenv(BuildOptionsEnvVar, "-cl-fast-relaxed-math  -DA=1")
	tc := newFakeToolchain("k")
	ctx := &fakeContext{toolchain: tc}
	unit := NewProgramUnit(ctx, "proj").SetSource("unit source").AddBuildOptions("-DB=2")
	require.Equal(t, []string{"-cl-fast-relaxed-math", "-DA=1", "-DB=2"}, unit.BuildOptions())

	cc := unit.Compile().WithSource("other source").WithOptions("-DC=3")
	_ = capture(cc.Done()).Test(t)
	require.Equal(t, []string{"-cl-fast-relaxed-math", "-DA=1", "-DB=2", "-DC=3"}, tc.lastOptions)

	// A CompileConfig can only be used once.
	_, err := cc.Done()
	require.Error(t, err)

	// Source given twice is a programming error.
	assert.Panics(t, func() { unit.Compile().WithSource("a").WithSource("b") })
}

func TestSourceProviders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projA"+SourceExtension), []byte("source A"), 0o644))
	source := capture(SourceDir(dir).Source(nil, "projA")).Test(t)
	require.Equal(t, "source A", source)
	_, err := SourceDir(dir).Source(nil, "projB")
	require.ErrorContains(t, err, `reading source of project "projB"`)

	provider := SourceFunc(func(_ Context, project string) (string, error) {
		return "// " + project, nil
	})
	unit := NewProgramUnit(nil, "projC").SetSourceProvider(provider)
	require.Equal(t, "// projC", capture(unit.Source()).Test(t))

	// SetSource takes precedence.
	unit.SetSource("explicit")
	require.Equal(t, "explicit", capture(unit.Source()).Test(t))
}
