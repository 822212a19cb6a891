package ocl

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ProgramUnit is a named group of kernel source compiled together, identified by (Context, Project).
//
// The source is either set explicitly with SetSource or fetched from a SourceProvider at compilation time.
type ProgramUnit struct {
	ctx     Context
	project string

	mu        sync.Mutex
	source    string
	hasSource bool
	provider  SourceProvider
	options   []string
}

// NewProgramUnit creates the program unit for project in the given context.
func NewProgramUnit(ctx Context, project string) *ProgramUnit {
	return &ProgramUnit{ctx: ctx, project: project}
}

// Context of the program unit.
func (u *ProgramUnit) Context() Context { return u.ctx }

// Project name of the program unit.
func (u *ProgramUnit) Project() string { return u.project }

// SetSource sets the source to compile. It takes precedence over the SourceProvider.
// It returns itself to allow cascading calls.
func (u *ProgramUnit) SetSource(source string) *ProgramUnit {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.source = source
	u.hasSource = true
	return u
}

// SetSourceProvider configures where the source comes from, if it is not set with SetSource.
func (u *ProgramUnit) SetSourceProvider(provider SourceProvider) *ProgramUnit {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.provider = provider
	return u
}

// AddBuildOptions appends options passed to the toolchain on compilation (e.g. "-DTILE=16").
func (u *ProgramUnit) AddBuildOptions(options ...string) *ProgramUnit {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.options = append(u.options, options...)
	return u
}

// BuildOptions returns the options configured in the environment (see BuildOptionsEnvVar) followed by
// the ones added with AddBuildOptions.
func (u *ProgramUnit) BuildOptions() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append(defaultBuildOptions(), u.options...)
}

// Source returns the source of the unit: the one set with SetSource, or else the one from the SourceProvider.
func (u *ProgramUnit) Source() (string, error) {
	u.mu.Lock()
	source, hasSource, provider := u.source, u.hasSource, u.provider
	u.mu.Unlock()
	if hasSource {
		return source, nil
	}
	if provider == nil {
		return "", errors.Errorf("no source set for project %q, and no SourceProvider configured", u.project)
	}
	return provider.Source(u.ctx, u.project)
}

// withProject returns a new unit for another project with the same context, source provider and build options.
func (u *ProgramUnit) withProject(project string) *ProgramUnit {
	u.mu.Lock()
	defer u.mu.Unlock()
	return &ProgramUnit{
		ctx:      u.ctx,
		project:  project,
		provider: u.provider,
		options:  slices.Clone(u.options),
	}
}

// String implements fmt.Stringer.
func (u *ProgramUnit) String() string {
	return fmt.Sprintf("ProgramUnit(%q)", u.project)
}

// Compile returns a CompileConfig, a "builder pattern" to configure and trigger the compilation of the unit.
//
// Call CompileConfig.Done to compile:
//
//	program, err := unit.Compile().WithOptions("-cl-mad-enable").Done()
func (u *ProgramUnit) Compile() *CompileConfig {
	return &CompileConfig{unit: u}
}

// CompileConfig is created with ProgramUnit.Compile, and configures one compilation.
//
// Once finished call CompileConfig.Done to trigger the compilation and get back a Program or an error.
type CompileConfig struct {
	unit      *ProgramUnit
	source    string
	hasSource bool
	options   []string
}

// WithSource overrides the source of the unit for this compilation.
// It panics if called more than once.
func (cc *CompileConfig) WithSource(source string) *CompileConfig {
	if cc.hasSource {
		exceptions.Panicf("ocl.ProgramUnit.Compile() was given the source more than once with WithSource")
	}
	cc.source = source
	cc.hasSource = true
	return cc
}

// WithOptions appends build options for this compilation, after the unit's own options.
func (cc *CompileConfig) WithOptions(options ...string) *CompileConfig {
	cc.options = append(cc.options, options...)
	return cc
}

var numProgramsCompiled atomic.Int64

// ProgramsCompiled returns the number of successful compilations since the start of the program.
func ProgramsCompiled() int64 {
	return numProgramsCompiled.Load()
}

// Compile compiles the unit with its own source and build options.
// It is a shortcut to unit.Compile().Done().
func Compile(unit *ProgramUnit) (*Program, error) {
	if unit == nil {
		return nil, errors.WithStack(&Error{Kind: ErrCompilation, Op: "BuildProgram", Code: InvalidValue, Index: -1,
			Detail: "nil ProgramUnit"})
	}
	return unit.Compile().Done()
}

// Done compiles the program. On failure it returns an ErrCompilation error with the native status code,
// and the build log as its detail.
func (cc *CompileConfig) Done() (*Program, error) {
	if cc.unit == nil {
		return nil, errors.New("misconfigured CompileConfig, or an attempt of using it more than once, which is not supported -- call ProgramUnit.Compile() again")
	}
	unit := cc.unit
	// CompileConfig can only be used once.
	defer func() { cc.unit = nil }()

	ctx := unit.Context()
	if ctx == nil || ctx.Toolchain() == nil {
		return nil, errors.WithStack(&Error{Kind: ErrCompilation, Op: "BuildProgram", Code: InvalidContext, Index: -1,
			Detail: fmt.Sprintf("project %q has no valid context or toolchain", unit.Project())})
	}
	toolchain := ctx.Toolchain()

	source := cc.source
	if !cc.hasSource {
		var err error
		source, err = unit.Source()
		if err != nil {
			return nil, errors.WithStack(&Error{Kind: ErrCompilation, Op: "source", Code: InvalidValue, Index: -1,
				Detail: err.Error()})
		}
	}
	if source == "" {
		return nil, errors.WithStack(&Error{Kind: ErrCompilation, Op: "source", Code: InvalidValue, Index: -1,
			Detail: fmt.Sprintf("empty source for project %q", unit.Project())})
	}

	options := append(unit.BuildOptions(), cc.options...)
	native, buildLog, status := toolchain.BuildProgram(ctx, source, options)
	if status != Success {
		return nil, errors.WithStack(&Error{Kind: ErrCompilation, Op: "BuildProgram", Code: status, Index: -1,
			Detail: fmt.Sprintf("project %q: %s", unit.Project(), buildLog)})
	}
	numProgramsCompiled.Add(1)
	klog.V(1).Infof("compiled project %q with toolchain %q (%d bytes of source, options=%q)",
		unit.Project(), toolchain.Name(), len(source), options)
	if buildLog != "" {
		klog.V(2).Infof("build log of project %q:\n%s", unit.Project(), buildLog)
	}
	return &Program{unit: unit, toolchain: toolchain, native: native, BuildLog: buildLog}, nil
}

// Program is a compiled program unit.
type Program struct {
	unit      *ProgramUnit
	toolchain Toolchain
	native    NativeProgram

	// BuildLog with the compiler messages, possibly empty.
	BuildLog string
}

// Unit returns the program unit that was compiled.
func (p *Program) Unit() *ProgramUnit { return p.unit }

// Native returns the toolchain's program object.
func (p *Program) Native() NativeProgram { return p.native }

// KernelNames enumerates every kernel entry point defined by the program.
func (p *Program) KernelNames() ([]string, error) {
	if p == nil || p.native == nil {
		return nil, errors.WithStack(&Error{Kind: ErrCompilation, Op: "KernelNames", Code: InvalidProgram, Index: -1})
	}
	names, status := p.toolchain.KernelNames(p.native)
	if err := toError(ErrCompilation, "KernelNames", status); err != nil {
		return nil, errors.WithMessagef(err, "project %q", p.unit.Project())
	}
	return names, nil
}

// CreateKernel creates the Kernel for the entry point name. The kernel is not inserted in any pool.
func (p *Program) CreateKernel(name string) (*Kernel, error) {
	if p == nil || p.native == nil {
		return nil, errors.WithStack(&Error{Kind: ErrCompilation, Op: "CreateKernel", Code: InvalidProgram, Index: -1})
	}
	native, status := p.toolchain.CreateKernel(p.native, name)
	if err := toError(ErrCompilation, "CreateKernel", status); err != nil {
		return nil, errors.WithMessagef(err, "kernel %q of project %q", name, p.unit.Project())
	}
	key := KernelKey{Context: p.unit.Context(), Project: p.unit.Project(), Name: name}
	return newKernel(key, p.toolchain, native), nil
}

// Release frees the native program. Kernels already created remain valid.
func (p *Program) Release() error {
	if p == nil || p.native == nil {
		return nil
	}
	status := p.toolchain.ReleaseProgram(p.native)
	p.native = nil
	return toError(ErrCompilation, "ReleaseProgram", status)
}
