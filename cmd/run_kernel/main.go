// run_kernel compiles a kernel source file and dispatches one of its kernels with the arguments given in
// the command line. It is useful to check that a source compiles with a toolchain and that the arguments
// bind to the kernel parameters.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomlx/gokernel/ocl"
	_ "github.com/gomlx/gokernel/ocl/sim"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagToolchain = flag.String("toolchain", "", "Kernel toolchain name. If empty uses $"+ocl.ToolchainEnvVar+" or \""+ocl.DefaultToolchainName+"\".")
	flagSource    = flag.String("source", "", "File with the kernel source (OpenCL C).")
	flagProject   = flag.String("project", "", "Project name of the program unit. Defaults to the source file name without extension.")
	flagKernel    = flag.String("kernel", "", "Name of the kernel to run. If empty, list the kernels defined by the source.")
	flagGlobal    = flag.String("global", "1", "Comma separated global work sizes, one per work dimension.")
	flagLocal     = flag.String("local", "", "Comma separated local work sizes. If empty the toolchain chooses.")
	flagOptions   = flag.String("options", "", "Extra build options, space separated.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `run_kernel compiles a kernel source and dispatches one kernel.

$ run_kernel -source=<file.cl> -kernel=<name> -global=1024 -local=64 buf:4096 buf:4096 int:1024

Arguments are given as <type>:<value>, where <type> is a scalar type name (e.g. "int", "uint", "float",
"half", "f32", "Int64"), "buf" for a new device buffer of <value> bytes or "local" for <value> bytes of
local memory.

Usage:
`)
		flag.PrintDefaults()
	}
	klog.InitFlags(flag.CommandLine)
	flag.Parse()

	if *flagSource == "" {
		fmt.Fprintln(os.Stderr, "The kernel source file must be given with the --source flag!")
		fmt.Fprintln(os.Stderr)
		flag.Usage()
		return
	}
	if err := run(); err != nil {
		klog.Errorf("run_kernel failed: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	toolchain, err := ocl.GetToolchain(*flagToolchain)
	if err != nil {
		return err
	}
	factory, ok := toolchain.(ocl.ContextFactory)
	if !ok {
		return errors.Errorf("toolchain %q can't create contexts", toolchain.Name())
	}
	ctx, queue, err := factory.NewContext()
	if err != nil {
		return err
	}

	project := *flagProject
	if project == "" {
		project = strings.TrimSuffix(filepath.Base(*flagSource), filepath.Ext(*flagSource))
	}
	source := must.M1(os.ReadFile(*flagSource))
	frame := ocl.NewFrameChain(ctx, queue, project).
		SetSource(string(source)).
		AddBuildOptions(strings.Fields(*flagOptions)...)

	if *flagKernel == "" {
		names, err := frame.Pool().Warm(frame.Unit())
		if err != nil {
			return err
		}
		fmt.Printf("Kernels of project %q:\n", project)
		for _, name := range names {
			fmt.Printf("\t%s\n", name)
		}
		return nil
	}

	global, err := parseSizes(*flagGlobal)
	if err != nil {
		return err
	}
	local, err := parseSizes(*flagLocal)
	if err != nil {
		return err
	}
	var newBuffer bufferAllocator
	if allocator, ok := toolchain.(ocl.MemoryAllocator); ok {
		newBuffer = func(sizeBytes int) (ocl.Memory, error) {
			return allocator.NewBuffer(ctx, sizeBytes)
		}
	}
	args := ocl.NewArgs()
	for _, arg := range flag.Args() {
		args.Add(must.M1(parseArg(arg, newBuffer)))
	}

	ndrange := ocl.NDRange{WorkDims: len(global), Global: global, Local: local}
	event, err := ocl.RunAsync(frame, *flagKernel, ndrange, args)
	if err != nil {
		return err
	}
	if err := event.Await(); err != nil {
		return err
	}
	fmt.Printf("\t%s(%s) dispatched with %s\n", *flagKernel, args, ndrange)
	return nil
}
