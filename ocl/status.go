package ocl

// Status is the native status code returned by the device toolchain primitives.
//
// Values follow the OpenCL error enumeration (cl.h), so toolchains wrapping a real OpenCL driver can
// pass the driver codes through unchanged.
type Status int32

//go:generate go tool enumer -type=Status -transform=snake-upper -addprefix=CL_ status.go

const (
	Success                    Status = 0
	DeviceNotFound             Status = -1
	DeviceNotAvailable         Status = -2
	CompilerNotAvailable       Status = -3
	MemObjectAllocationFailure Status = -4
	OutOfResources             Status = -5
	OutOfHostMemory            Status = -6
	BuildProgramFailure        Status = -11
	InvalidValue               Status = -30
	InvalidDevice              Status = -33
	InvalidContext             Status = -34
	InvalidCommandQueue        Status = -36
	InvalidMemObject           Status = -38
	InvalidBinary              Status = -42
	InvalidBuildOptions        Status = -43
	InvalidProgram             Status = -44
	InvalidProgramExecutable   Status = -45
	InvalidKernelName          Status = -46
	InvalidKernelDefinition    Status = -47
	InvalidKernel              Status = -48
	InvalidArgIndex            Status = -49
	InvalidArgValue            Status = -50
	InvalidArgSize             Status = -51
	InvalidKernelArgs          Status = -52
	InvalidWorkDimension       Status = -53
	InvalidWorkGroupSize       Status = -54
	InvalidWorkItemSize        Status = -55
	InvalidGlobalOffset        Status = -56
	InvalidEventWaitList       Status = -57
	InvalidEvent               Status = -58
	InvalidOperation           Status = -59
	InvalidBufferSize          Status = -61
	InvalidGlobalWorkSize      Status = -63
)

// Ok returns whether the status is Success.
func (s Status) Ok() bool {
	return s == Success
}
