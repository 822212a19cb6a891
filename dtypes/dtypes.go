// Package dtypes defines the scalar data types that can be passed by value to a compiled kernel.
//
// Each DType has an exact byte size and a name in the kernel language (OpenCL C), which is used to
// match Go values against the parameters declared by a kernel entry point.
package dtypes

import (
	"reflect"
	"strings"

	"github.com/x448/float16"
)

// DType enumerates the scalar types accepted as kernel arguments.
type DType int

//go:generate go tool enumer -type=DType dtypes.go

const (
	// Invalid represents an invalid (or not set) dtype.
	Invalid DType = iota

	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64

	// Float16 is the IEEE 754 half-precision type ("half" in OpenCL C), see github.com/x448/float16.
	Float16
	Float32
	Float64
)

// kernelTypeNames are the names of the scalar types in OpenCL C.
var kernelTypeNames = [...]string{
	Invalid: "",
	Int8:    "char",
	Int16:   "short",
	Int32:   "int",
	Int64:   "long",
	Uint8:   "uchar",
	Uint16:  "ushort",
	Uint32:  "uint",
	Uint64:  "ulong",
	Float16: "half",
	Float32: "float",
	Float64: "double",
}

var sizes = [...]int{
	Invalid: 0,
	Int8:    1,
	Int16:   2,
	Int32:   4,
	Int64:   8,
	Uint8:   1,
	Uint16:  2,
	Uint32:  4,
	Uint64:  8,
	Float16: 2,
	Float32: 4,
	Float64: 8,
}

// IsValid returns whether dtype is one of the supported types (Invalid is not).
func (dtype DType) IsValid() bool {
	return dtype > Invalid && dtype <= Float64
}

// Size returns the number of bytes used by one value of the dtype, or 0 for invalid dtypes.
func (dtype DType) Size() int {
	if !dtype.IsValid() {
		return 0
	}
	return sizes[dtype]
}

// KernelTypeName returns the name of the dtype in OpenCL C, e.g.: "float" for Float32.
func (dtype DType) KernelTypeName() string {
	if !dtype.IsValid() {
		return ""
	}
	return kernelTypeNames[dtype]
}

// IsFloat returns whether dtype is a floating point type.
func (dtype DType) IsFloat() bool {
	return dtype == Float16 || dtype == Float32 || dtype == Float64
}

// MapOfNames maps the Go names (in original and lower case), short names ("f32", "i8", ...) and the
// OpenCL C names ("float", "uchar", ...) to the DType.
var MapOfNames = map[string]DType{}

func init() {
	short := map[DType]string{
		Int8: "i8", Int16: "i16", Int32: "i32", Int64: "i64",
		Uint8: "u8", Uint16: "u16", Uint32: "u32", Uint64: "u64",
		Float16: "f16", Float32: "f32", Float64: "f64",
	}
	for dtype := Int8; dtype <= Float64; dtype++ {
		MapOfNames[dtype.String()] = dtype
		MapOfNames[strings.ToLower(dtype.String())] = dtype
		MapOfNames[short[dtype]] = dtype
		MapOfNames[strings.ToUpper(short[dtype])] = dtype
		MapOfNames[dtype.KernelTypeName()] = dtype
	}
}

// FromKernelTypeName returns the DType for an OpenCL C scalar type name, e.g.: "uint" -> Uint32.
// It returns Invalid if the name is not a supported scalar type.
func FromKernelTypeName(name string) DType {
	for dtype := Int8; dtype <= Float64; dtype++ {
		if kernelTypeNames[dtype] == name {
			return dtype
		}
	}
	return Invalid
}

var float16Type = reflect.TypeOf(float16.Float16(0))

// FromGoType returns the DType for the given Go type, or Invalid if not supported.
//
// Notice float16.Float16 is checked before its underlying uint16.
func FromGoType(t reflect.Type) DType {
	if t == float16Type {
		return Float16
	}
	switch t.Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	default:
		// int, uint and uintptr have platform dependent sizes, and bool has no kernel equivalent.
		return Invalid
	}
}

// FromAny returns the DType of the value, or Invalid if it is not a supported scalar.
func FromAny(value any) DType {
	if value == nil {
		return Invalid
	}
	return FromGoType(reflect.TypeOf(value))
}

// Supported lists the Go types that can be passed by value to kernels.
type Supported interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float16.Float16 | float32 | float64
}

// FromGenericsType returns the DType of the generic type T.
func FromGenericsType[T Supported]() DType {
	var t T
	return FromAny(t)
}
