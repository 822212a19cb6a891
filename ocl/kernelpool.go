package ocl

import (
	"fmt"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
	"k8s.io/klog/v2"
)

// KernelPool maps (Context, Project, Name) to compiled kernels.
//
// There is at most one Kernel per key: inserting a second one is reported as an ErrCacheConflict, and
// the original stays in the pool. Entries are never evicted implicitly, use Evict when a context is
// about to be destroyed.
//
// It is safe for concurrent use. Concurrent compilations of the same program unit through the pool
// (see Warm and Run) are merged into one.
type KernelPool struct {
	mu      sync.RWMutex
	kernels map[KernelKey]*Kernel

	// contextIDs give each context a number, used to build the keys of compiles.
	contextIDs    map[Context]uint64
	nextContextID uint64

	// compiles deduplicates concurrent compilations of the same (context, project).
	compiles singleflight.Group
}

// NewKernelPool creates an empty KernelPool.
func NewKernelPool() *KernelPool {
	return &KernelPool{
		kernels:    make(map[KernelKey]*Kernel),
		contextIDs: make(map[Context]uint64),
	}
}

var defaultPool = NewKernelPool()

// DefaultPool returns the process wide KernelPool, used by FrameChain objects not configured with their own pool.
func DefaultPool() *KernelPool {
	return defaultPool
}

// Lookup returns the kernel for the key, and whether it was found. It never triggers a compilation.
func (p *KernelPool) Lookup(ctx Context, project, name string) (*Kernel, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	kernel, found := p.kernels[KernelKey{Context: ctx, Project: project, Name: name}]
	return kernel, found
}

// Insert adds the kernel under the key (ctx, project, name).
// It fails with ErrCacheConflict if there is already a kernel for the key, in which case the pool is unchanged.
func (p *KernelPool) Insert(ctx Context, project, name string, kernel *Kernel) error {
	if kernel == nil {
		return errors.Errorf("KernelPool.Insert(%q, %q) given a nil kernel", project, name)
	}
	key := KernelKey{Context: ctx, Project: project, Name: name}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, found := p.kernels[key]; found {
		return errors.WithStack(&Error{Kind: ErrCacheConflict, Op: "Insert", Index: -1, Detail: key.String()})
	}
	p.kernels[key] = kernel
	if _, found := p.contextIDs[ctx]; !found {
		p.contextIDs[ctx] = p.nextContextID
		p.nextContextID++
	}
	return nil
}

// Len returns the number of kernels in the pool.
func (p *KernelPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.kernels)
}

// Kernels returns the sorted names of the kernels cached for (ctx, project).
func (p *KernelPool) Kernels(ctx Context, project string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var names []string
	for key := range p.kernels {
		if key.Context == ctx && key.Project == project {
			names = append(names, key.Name)
		}
	}
	slices.Sort(names)
	return names
}

// Range calls fn for each kernel in the pool, in no particular order, until fn returns false.
// fn must not call methods of the pool that modify it.
func (p *KernelPool) Range(fn func(key KernelKey, kernel *Kernel) bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for key, kernel := range p.kernels {
		if !fn(key, kernel) {
			return
		}
	}
}

// Evict removes all kernels of the context from the pool and releases them.
// It returns the number of kernels removed.
//
// The pool doesn't know when contexts are destroyed: the owner of the context should call Evict before
// destroying it.
func (p *KernelPool) Evict(ctx Context) int {
	p.mu.Lock()
	var evicted []*Kernel
	for key, kernel := range p.kernels {
		if key.Context == ctx {
			evicted = append(evicted, kernel)
			delete(p.kernels, key)
		}
	}
	delete(p.contextIDs, ctx)
	p.mu.Unlock()

	for _, kernel := range evicted {
		if err := kernel.Release(); err != nil {
			klog.Errorf("KernelPool.Evict failed to release %s: %v", kernel, err)
		}
	}
	return len(evicted)
}

// unitKey returns the key used to deduplicate compilations of the unit.
func (p *KernelPool) unitKey(unit *ProgramUnit) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, found := p.contextIDs[unit.Context()]
	if !found {
		id = p.nextContextID
		p.nextContextID++
		p.contextIDs[unit.Context()] = id
	}
	return fmt.Sprintf("%d/%s", id, unit.Project())
}

// unitKernels is the result of compiling a unit and populating the pool with its kernels.
// The program itself is released as soon as its kernels are created.
type unitKernels struct {
	kernels map[string]*Kernel
}

// Warm compiles the program unit and inserts all its kernels in the pool, without dispatching anything.
// It returns the names of the kernels defined by the unit.
//
// Kernels already in the pool are kept (the newly compiled duplicates are released), and it is not an error.
func (p *KernelPool) Warm(unit *ProgramUnit) ([]string, error) {
	result, err := p.compileUnit(unit, "")
	var names []string
	if result != nil {
		names = keys(result.kernels)
		slices.Sort(names)
	}
	return names, err
}

// compileUnit compiles the unit and populates the pool with every kernel it defines.
//
// Concurrent calls for the same unit share one compilation. If requested is not empty and it is already
// in the pool when the compilation would start (another caller just populated it), the unit is not compiled
// again, and the pooled kernels of the unit are returned. Kernels that fail to insert (because they
// are already in the pool) are released, and the pooled version is returned instead.
// If it fails creating a kernel, the kernels created so far remain in the pool, and a partial result is
// returned along with the error.
func (p *KernelPool) compileUnit(unit *ProgramUnit, requested string) (*unitKernels, error) {
	v, err, shared := p.compiles.Do(p.unitKey(unit), func() (any, error) {
		if requested != "" {
			if _, found := p.Lookup(unit.Context(), unit.Project(), requested); found {
				return p.pooledUnit(unit), nil
			}
		}
		return p.compileAndPopulate(unit)
	})
	if shared {
		klog.V(2).Infof("compilation of project %q shared with concurrent callers", unit.Project())
	}
	result, _ := v.(*unitKernels)
	return result, err
}

// pooledUnit returns the kernels of the unit currently in the pool.
func (p *KernelPool) pooledUnit(unit *ProgramUnit) *unitKernels {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := &unitKernels{kernels: make(map[string]*Kernel)}
	for key, kernel := range p.kernels {
		if key.Context == unit.Context() && key.Project == unit.Project() {
			result.kernels[key.Name] = kernel
		}
	}
	return result
}

func (p *KernelPool) compileAndPopulate(unit *ProgramUnit) (*unitKernels, error) {
	program, err := unit.Compile().Done()
	if err != nil {
		return nil, err
	}
	// Kernels hold their own reference to the native program, the pool never needs it again.
	defer func() {
		if errRelease := program.Release(); errRelease != nil {
			klog.Errorf("failed to release program of project %q: %v", unit.Project(), errRelease)
		}
	}()
	names, err := program.KernelNames()
	if err != nil {
		return nil, err
	}

	ctx, project := unit.Context(), unit.Project()
	result := &unitKernels{kernels: make(map[string]*Kernel, len(names))}
	for _, name := range names {
		kernel, err := program.CreateKernel(name)
		if err != nil {
			return result, err
		}
		err = p.Insert(ctx, project, name, kernel)
		if err != nil {
			klog.Warningf("Failed to insert kernel %q of project %q to kernel pool: %v", name, project, err)
			if errRelease := kernel.Release(); errRelease != nil {
				klog.Errorf("failed to release duplicate kernel %q: %v", name, errRelease)
			}
			if pooled, found := p.Lookup(ctx, project, name); found {
				result.kernels[name] = pooled
			}
			continue
		}
		result.kernels[name] = kernel
	}
	klog.V(1).Infof("kernel pool populated with %d kernels of project %q", len(result.kernels), project)
	return result, nil
}
