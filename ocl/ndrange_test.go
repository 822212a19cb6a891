package ocl

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNDRange(t *testing.T) {
	assert.True(t, ValidateNDRange(2, []int{8, 9}, []int{4, 3}))
	assert.False(t, ValidateNDRange(2, []int{8, 9}, []int{4, 4}), "9 is not divisible by 4")
	assert.False(t, ValidateNDRange(4, []int{8, 9, 1, 1}, nil), "work dimensions out of range")
	assert.False(t, ValidateNDRange(0, []int{8}, nil))

	// Without local size there is no divisibility check.
	assert.True(t, ValidateNDRange(1, []int{1000}, nil))
	assert.True(t, ValidateNDRange(3, []int{7, 11, 13}, nil))

	// Malformed sizes.
	assert.False(t, ValidateNDRange(2, []int{8}, nil))
	assert.False(t, ValidateNDRange(1, nil, nil))
	assert.False(t, ValidateNDRange(1, []int{0}, nil))
	assert.False(t, ValidateNDRange(2, []int{8, 8}, []int{4}))
	assert.False(t, ValidateNDRange(1, []int{8}, []int{0}))
	assert.False(t, ValidateNDRange(1, []int{8}, []int{-2}))

	// Extra entries beyond workDims are ignored.
	assert.True(t, ValidateNDRange(1, []int{64, 3}, []int{16, 2}))
}

func TestNDRange_Validate(t *testing.T) {
	limits := DeviceLimits{MaxWorkGroupSize: 256, MaxWorkItemSizes: []int{256, 256, 64}}
	require.NoError(t, Range1D(1024, 64).Validate(limits))
	require.NoError(t, Range1D(1000, 0).Validate(limits))
	require.NoError(t, Range2D([]int{64, 64}, []int{16, 16}).Validate(limits))
	require.NoError(t, Range2D([]int{64, 64}, []int{16, 16}).Validate(DeviceLimits{}))

	err := Range2D([]int{64, 64}, []int{32, 16}).Validate(limits)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrGeometry))
	require.Equal(t, InvalidWorkGroupSize, StatusOf(err))

	err = Range3D([]int{128, 1, 128}, []int{1, 1, 128}).Validate(limits)
	require.True(t, errors.Is(err, ErrGeometry))
	require.Equal(t, InvalidWorkItemSize, StatusOf(err))

	err = NDRange{WorkDims: 4, Global: []int{1, 1, 1, 1}}.Validate(limits)
	require.True(t, errors.Is(err, ErrGeometry))
	require.Equal(t, InvalidWorkDimension, StatusOf(err))
	require.ErrorContains(t, err, "between 1 and 3")

	err = Range2D([]int{8, 9}, []int{4, 4}).Validate(DeviceLimits{})
	require.ErrorContains(t, err, "not divisible")
}

func TestNDRange_ValidateHugeLocalSizes(t *testing.T) {
	// The product of the local sizes doesn't fit an int: it must still be rejected.
	huge := math.MaxInt/2 + 1
	limits := DeviceLimits{MaxWorkGroupSize: 1024}
	err := Range2D([]int{huge, huge}, []int{huge, huge}).Validate(limits)
	require.True(t, errors.Is(err, ErrGeometry))
	require.Equal(t, InvalidWorkGroupSize, StatusOf(err))

	err = Range3D([]int{huge, 2, 2}, []int{huge, 2, 2}).Validate(limits)
	require.Equal(t, InvalidWorkGroupSize, StatusOf(err))
	err = ValidateNDRangeWithLimits(Range3D([]int{4, 1 << 20, 1 << 20}, []int{4, 1 << 20, 1 << 20}), limits)
	require.Equal(t, InvalidWorkGroupSize, StatusOf(err))

	// Exactly at the limit is fine, and without limits huge sizes are not the validator's business.
	require.NoError(t, Range3D([]int{8, 8, 16}, []int{8, 8, 16}).Validate(limits))
	require.NoError(t, Range2D([]int{huge, huge}, []int{huge, huge}).Validate(DeviceLimits{}))
}

func TestNDRange_String(t *testing.T) {
	require.Equal(t, "NDRange(dims=1, global=[1024], local=[64])", Range1D(1024, 64).String())
	require.Equal(t, "NDRange(dims=1, global=[10])", Range1D(10, 0).String())
}
