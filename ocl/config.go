package ocl

import (
	"os"
	"strings"
)

// BuildOptionsEnvVar holds the name of the environment variable with extra build options passed to every
// compilation, e.g.: GOKERNEL_BUILD_OPTIONS="-cl-fast-relaxed-math -DUSE_HALF=1".
const BuildOptionsEnvVar = "GOKERNEL_BUILD_OPTIONS"

// defaultBuildOptions returns the build options configured in the environment.
func defaultBuildOptions() []string {
	return strings.Fields(os.Getenv(BuildOptionsEnvVar))
}
