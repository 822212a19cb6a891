package ocl

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxWorkDims is the maximum number of work dimensions of an NDRange.
const MaxWorkDims = 3

// NDRange is the launch geometry of a kernel: the number of work dimensions and the global and (optional)
// local work sizes for each dimension.
type NDRange struct {
	WorkDims int

	// Global work size per dimension. It must have WorkDims elements.
	Global []int

	// Local work size (work-group size) per dimension. If nil the toolchain chooses the work-group size.
	Local []int
}

// Range1D returns a 1-dimensional NDRange. If local <= 0 the toolchain chooses the work-group size.
func Range1D(global, local int) NDRange {
	r := NDRange{WorkDims: 1, Global: []int{global}}
	if local > 0 {
		r.Local = []int{local}
	}
	return r
}

// Range2D returns a 2-dimensional NDRange, local may be nil.
func Range2D(global, local []int) NDRange {
	return NDRange{WorkDims: 2, Global: global, Local: local}
}

// Range3D returns a 3-dimensional NDRange, local may be nil.
func Range3D(global, local []int) NDRange {
	return NDRange{WorkDims: 3, Global: global, Local: local}
}

// String implements fmt.Stringer.
func (r NDRange) String() string {
	if r.Local == nil {
		return fmt.Sprintf("NDRange(dims=%d, global=%v)", r.WorkDims, r.Global)
	}
	return fmt.Sprintf("NDRange(dims=%d, global=%v, local=%v)", r.WorkDims, r.Global, r.Local)
}

// DeviceLimits are the device constraints on the launch geometry. Zero values mean "unknown", and are not checked.
type DeviceLimits struct {
	// MaxWorkGroupSize is the maximum number of work-items in a work-group (product of the local sizes).
	MaxWorkGroupSize int

	// MaxWorkItemSizes is the maximum local size for each dimension.
	MaxWorkItemSizes []int
}

// ValidateNDRange checks the launch geometry:
//
//   - workDims must be in 1..MaxWorkDims.
//   - global must hold workDims positive sizes.
//   - If local is given, it must hold workDims positive sizes and global[i] must be divisible by local[i].
//
// It has no side effects and never panics: it returns false on any violation.
func ValidateNDRange(workDims int, global, local []int) bool {
	return checkNDRange(workDims, global, local) == nil
}

// Validate checks the NDRange with the rules of ValidateNDRange, and additionally that the local size does
// not exceed the given device limits. It returns an ErrGeometry error describing the first violation.
func (r NDRange) Validate(limits DeviceLimits) error {
	if err := checkNDRange(r.WorkDims, r.Global, r.Local); err != nil {
		return err
	}
	if r.Local == nil {
		return nil
	}
	for ii := range r.WorkDims {
		if ii < len(limits.MaxWorkItemSizes) && limits.MaxWorkItemSizes[ii] > 0 && r.Local[ii] > limits.MaxWorkItemSizes[ii] {
			return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidWorkItemSize, Index: -1,
				Detail: fmt.Sprintf("local size %d for dimension %d exceeds device maximum %d", r.Local[ii], ii, limits.MaxWorkItemSizes[ii])})
		}
	}
	if limits.MaxWorkGroupSize <= 0 {
		return nil
	}
	// groupSize never exceeds MaxWorkGroupSize, so the product can't overflow.
	groupSize := 1
	for ii := range r.WorkDims {
		if r.Local[ii] > limits.MaxWorkGroupSize/groupSize {
			return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidWorkGroupSize, Index: -1,
				Detail: fmt.Sprintf("work-group size of local=%v exceeds device maximum %d", r.Local[:r.WorkDims], limits.MaxWorkGroupSize)})
		}
		groupSize *= r.Local[ii]
	}
	return nil
}

// ValidateNDRangeWithLimits is an alias to r.Validate(limits).
func ValidateNDRangeWithLimits(r NDRange, limits DeviceLimits) error {
	return r.Validate(limits)
}

func checkNDRange(workDims int, global, local []int) error {
	if workDims < 1 || workDims > MaxWorkDims {
		return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidWorkDimension, Index: -1,
			Detail: fmt.Sprintf("work dimensions must be between 1 and %d, got %d", MaxWorkDims, workDims)})
	}
	if len(global) < workDims {
		return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidGlobalWorkSize, Index: -1,
			Detail: fmt.Sprintf("global work size %v has fewer than %d dimensions", global, workDims)})
	}
	for ii := range workDims {
		if global[ii] <= 0 {
			return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidGlobalWorkSize, Index: -1,
				Detail: fmt.Sprintf("global work size %v must be positive", global[:workDims])})
		}
	}
	if local == nil {
		return nil
	}
	if len(local) < workDims {
		return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidWorkGroupSize, Index: -1,
			Detail: fmt.Sprintf("local work size %v has fewer than %d dimensions", local, workDims)})
	}
	for ii := range workDims {
		if local[ii] <= 0 {
			return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidWorkGroupSize, Index: -1,
				Detail: fmt.Sprintf("local work size %v must be positive", local[:workDims])})
		}
		if global[ii]%local[ii] != 0 {
			return errors.WithStack(&Error{Kind: ErrGeometry, Code: InvalidWorkGroupSize, Index: -1,
				Detail: fmt.Sprintf("global work size %d is not divisible by local work size %d in dimension %d",
					global[ii], local[ii], ii)})
		}
	}
	return nil
}
