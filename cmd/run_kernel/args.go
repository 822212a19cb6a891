package main

import (
	"strconv"
	"strings"

	"github.com/gomlx/gokernel/dtypes"
	"github.com/gomlx/gokernel/ocl"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// parseSizes parses a comma separated list of positive sizes, e.g. "1024,64". An empty string returns nil.
func parseSizes(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for ii, part := range parts {
		size, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid size %q in %q", part, s)
		}
		sizes[ii] = size
	}
	return sizes, nil
}

// bufferAllocator creates device buffers for "buf:<bytes>" arguments.
type bufferAllocator func(sizeBytes int) (ocl.Memory, error)

// parseArg converts one command line argument "<type>:<value>" to a kernel argument.
//
// <type> is any name in dtypes.MapOfNames (e.g. "int", "f32", "Float64", "half"), or:
//
//   - "buf:<bytes>": a newly allocated device buffer.
//   - "local:<bytes>": a local memory allocation.
func parseArg(arg string, newBuffer bufferAllocator) (any, error) {
	typeName, value, found := strings.Cut(arg, ":")
	if !found {
		return nil, errors.Errorf("argument %q should be in the format <type>:<value>", arg)
	}
	switch typeName {
	case "buf", "local":
		size, err := strconv.Atoi(value)
		if err != nil || size <= 0 {
			return nil, errors.Errorf("argument %q: invalid size in bytes %q", arg, value)
		}
		if typeName == "local" {
			return ocl.LocalMemory(size), nil
		}
		if newBuffer == nil {
			return nil, errors.Errorf("argument %q: the toolchain can't allocate buffers", arg)
		}
		return newBuffer(size)
	}

	dtype, found := dtypes.MapOfNames[typeName]
	if !found {
		return nil, errors.Errorf("argument %q: unknown type %q", arg, typeName)
	}
	bits := dtype.Size() * 8
	switch dtype {
	case dtypes.Float16, dtypes.Float32, dtypes.Float64:
		if dtype == dtypes.Float16 {
			bits = 32
		}
		f, err := strconv.ParseFloat(value, bits)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %q", arg)
		}
		switch dtype {
		case dtypes.Float16:
			return float16.Fromfloat32(float32(f)), nil
		case dtypes.Float32:
			return float32(f), nil
		}
		return f, nil

	case dtypes.Uint8, dtypes.Uint16, dtypes.Uint32, dtypes.Uint64:
		u, err := strconv.ParseUint(value, 0, bits)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %q", arg)
		}
		switch dtype {
		case dtypes.Uint8:
			return uint8(u), nil
		case dtypes.Uint16:
			return uint16(u), nil
		case dtypes.Uint32:
			return uint32(u), nil
		}
		return u, nil
	}

	i, err := strconv.ParseInt(value, 0, bits)
	if err != nil {
		return nil, errors.Wrapf(err, "argument %q", arg)
	}
	switch dtype {
	case dtypes.Int8:
		return int8(i), nil
	case dtypes.Int16:
		return int16(i), nil
	case dtypes.Int32:
		return int32(i), nil
	}
	return i, nil
}
