package ocl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/gomlx/gokernel/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// ArgKind is the kind of value bound to a kernel parameter slot.
type ArgKind int

//go:generate go tool enumer -type=ArgKind -trimprefix=Arg -transform=lower args.go

const (
	// ArgScalar is a value passed by copy: Bytes holds exactly DType.Size() bytes.
	ArgScalar ArgKind = iota

	// ArgMemory is a device memory object (a buffer or image), passed as its native handle.
	ArgMemory

	// ArgLocal is a work-group local memory allocation of Size bytes, with no value.
	ArgLocal
)

// PointerSize is the size in bytes of memory object handles passed as kernel arguments.
const PointerSize = int(unsafe.Sizeof(uintptr(0)))

// ArgValue is one argument as handed to Toolchain.SetKernelArg.
type ArgValue struct {
	Kind ArgKind

	// Size in bytes of the argument: DType.Size() for scalars, PointerSize for memory objects and
	// the requested allocation for local memory.
	Size int

	// DType and Bytes for ArgScalar. Bytes are in the host's native byte order.
	DType dtypes.DType
	Bytes []byte

	// Memory for ArgMemory.
	Memory NativeMemory
}

// String implements fmt.Stringer.
func (v ArgValue) String() string {
	switch v.Kind {
	case ArgScalar:
		return fmt.Sprintf("%s(%d bytes)", v.DType, v.Size)
	case ArgMemory:
		return fmt.Sprintf("memory(%v)", v.Memory)
	case ArgLocal:
		return fmt.Sprintf("local(%d bytes)", v.Size)
	default:
		return v.Kind.String()
	}
}

// Memory is implemented by device memory objects (buffers, images) that can be bound to kernel parameters.
type Memory interface {
	NativeMemory() NativeMemory
}

// LocalMemory is an argument that requests a work-group local memory allocation of the given number of bytes.
// Use it with ArgsOf, or use Args.Local directly.
type LocalMemory int

// Args is an ordered list of typed kernel arguments, bound positionally starting at index 0.
//
// It is a "builder" object, created with NewArgs or ArgsOf, e.g.:
//
//	args := ocl.NewArgs().Memory(input).Memory(output).Int32(n).Float32(alpha)
//
// Values are not converted: a float32 is bound as 4 bytes, a float64 as 8 bytes, and so on, and it is up to
// the caller to use the exact types the kernel declares.
// Errors during building (unsupported types) are kept and reported by BindArgs.
type Args struct {
	values []ArgValue

	// err saves the first error during building, and errIndex the index of the argument that caused it.
	err      error
	errIndex int
}

// NewArgs returns an empty argument list.
func NewArgs() *Args {
	return &Args{}
}

// ArgsOf creates an argument list from the values, in order.
// Supported values are the scalars in dtypes.Supported, Memory objects, LocalMemory and ArgValue.
// Other types (including int, uint and bool, which have no fixed kernel size) are reported as an error
// when the arguments are bound.
func ArgsOf(values ...any) *Args {
	a := &Args{values: make([]ArgValue, 0, len(values))}
	for _, value := range values {
		a.Add(value)
	}
	return a
}

// Len returns the number of arguments.
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// Values returns the arguments. The returned slice is owned by Args, don't change it.
func (a *Args) Values() []ArgValue {
	if a == nil {
		return nil
	}
	return a.values
}

// Err returns the error recorded while building the arguments, if any.
func (a *Args) Err() error {
	if a == nil {
		return nil
	}
	return a.err
}

// String implements fmt.Stringer.
func (a *Args) String() string {
	parts := make([]string, len(a.Values()))
	for ii, v := range a.Values() {
		parts[ii] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Add appends one value of any supported type. See ArgsOf.
// It returns itself to allow cascading calls.
func (a *Args) Add(value any) *Args {
	switch v := value.(type) {
	case int8:
		return appendScalar(a, dtypes.Int8, v)
	case int16:
		return appendScalar(a, dtypes.Int16, v)
	case int32:
		return appendScalar(a, dtypes.Int32, v)
	case int64:
		return appendScalar(a, dtypes.Int64, v)
	case uint8:
		return appendScalar(a, dtypes.Uint8, v)
	case uint16:
		return appendScalar(a, dtypes.Uint16, v)
	case uint32:
		return appendScalar(a, dtypes.Uint32, v)
	case uint64:
		return appendScalar(a, dtypes.Uint64, v)
	case float16.Float16:
		return appendScalar(a, dtypes.Float16, v)
	case float32:
		return appendScalar(a, dtypes.Float32, v)
	case float64:
		return appendScalar(a, dtypes.Float64, v)
	case LocalMemory:
		return a.Local(int(v))
	case ArgValue:
		a.values = append(a.values, v)
		return a
	case Memory:
		return a.Memory(v)
	default:
		if a.err == nil {
			a.errIndex = len(a.values)
			a.err = errors.Errorf("argument #%d has unsupported type %T (value=%v): only the fixed size types "+
				"int8 to int64, uint8 to uint64, float16.Float16, float32, float64, ocl.Memory and ocl.LocalMemory are supported",
				len(a.values), value, value)
		}
		// Keep a placeholder so the indices of the following arguments are preserved.
		a.values = append(a.values, ArgValue{Kind: ArgScalar, DType: dtypes.Invalid})
		return a
	}
}

// appendScalar appends the raw bytes of value.
func appendScalar[T dtypes.Supported](a *Args, dtype dtypes.DType, value T) *Args {
	size := int(unsafe.Sizeof(value))
	raw := make([]byte, size)
	copy(raw, unsafe.Slice((*byte)(unsafe.Pointer(&value)), size))
	a.values = append(a.values, ArgValue{Kind: ArgScalar, Size: size, DType: dtype, Bytes: raw})
	return a
}

// Scalar appends a scalar value of any supported type.
func Scalar[T dtypes.Supported](a *Args, value T) *Args {
	return appendScalar(a, dtypes.FromGenericsType[T](), value)
}

// Int32 appends an int32 ("int" in OpenCL C).
func (a *Args) Int32(v int32) *Args { return appendScalar(a, dtypes.Int32, v) }

// Uint32 appends an uint32 ("uint" in OpenCL C).
func (a *Args) Uint32(v uint32) *Args { return appendScalar(a, dtypes.Uint32, v) }

// Int64 appends an int64 ("long" in OpenCL C).
func (a *Args) Int64(v int64) *Args { return appendScalar(a, dtypes.Int64, v) }

// Uint64 appends an uint64 ("ulong" in OpenCL C).
func (a *Args) Uint64(v uint64) *Args { return appendScalar(a, dtypes.Uint64, v) }

// Float16 appends a half precision float ("half" in OpenCL C).
func (a *Args) Float16(v float16.Float16) *Args { return appendScalar(a, dtypes.Float16, v) }

// Float32 appends a float32 ("float" in OpenCL C).
func (a *Args) Float32(v float32) *Args { return appendScalar(a, dtypes.Float32, v) }

// Float64 appends a float64 ("double" in OpenCL C).
func (a *Args) Float64(v float64) *Args { return appendScalar(a, dtypes.Float64, v) }

// Memory appends a device memory object.
func (a *Args) Memory(m Memory) *Args {
	if m == nil {
		if a.err == nil {
			a.errIndex = len(a.values)
			a.err = errors.Errorf("argument #%d is a nil memory object", len(a.values))
		}
		a.values = append(a.values, ArgValue{Kind: ArgMemory, Size: PointerSize})
		return a
	}
	a.values = append(a.values, ArgValue{Kind: ArgMemory, Size: PointerSize, Memory: m.NativeMemory()})
	return a
}

// Local appends a request for a work-group local memory allocation of sizeBytes.
func (a *Args) Local(sizeBytes int) *Args {
	a.values = append(a.values, ArgValue{Kind: ArgLocal, Size: sizeBytes})
	return a
}

// BindArgs binds the arguments to the kernel's parameter slots, in order, starting at index 0.
//
// The number of arguments must match the number of parameters declared by the kernel, otherwise nothing is
// bound and an ErrBinding error with code InvalidKernelArgs is returned.
//
// It stops at the first failure, and returns an ErrBinding error with the index of the failing argument and
// the native status code. Failures are not logged here, the caller decides how to report them.
// Arguments already bound are not rolled back: since binding always restarts at
// index 0, the next dispatch overwrites them.
func BindArgs(kernel *Kernel, args *Args) error {
	if kernel == nil || kernel.native == nil {
		return errors.WithStack(&Error{Kind: ErrBinding, Op: "SetKernelArg", Code: InvalidKernel, Index: 0,
			Detail: "kernel is nil or has been released"})
	}
	if err := args.Err(); err != nil {
		return errors.WithStack(&Error{Kind: ErrBinding, Op: "SetKernelArg", Code: InvalidArgValue, Index: args.errIndex,
			Detail: err.Error()})
	}
	numArgs, status := kernel.toolchain.NumArgs(kernel.native)
	if status != Success {
		return errors.WithStack(&Error{Kind: ErrBinding, Op: "GetKernelInfo", Code: status, Index: -1,
			Detail: fmt.Sprintf("kernel %q, number of arguments", kernel.Name())})
	}
	if args.Len() != numArgs {
		return errors.WithStack(&Error{Kind: ErrBinding, Op: "SetKernelArg", Code: InvalidKernelArgs, Index: -1,
			Detail: fmt.Sprintf("kernel %q takes %d arguments, got %d", kernel.Name(), numArgs, args.Len())})
	}
	for index, value := range args.Values() {
		status := kernel.toolchain.SetKernelArg(kernel.native, index, value)
		if status != Success {
			return errors.WithStack(&Error{Kind: ErrBinding, Op: "SetKernelArg", Code: status, Index: index,
				Detail: fmt.Sprintf("kernel %q, argument %s", kernel.Name(), value)})
		}
	}
	return nil
}
