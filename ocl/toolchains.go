package ocl

import (
	"os"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ToolchainEnvVar holds the name of the environment variable used to select the default toolchain.
const ToolchainEnvVar = "GOKERNEL_TOOLCHAIN"

// DefaultToolchainName is used if ToolchainEnvVar is not set.
const DefaultToolchainName = "sim"

var (
	toolchainsMu sync.Mutex

	// registeredToolchains are singletons per name.
	registeredToolchains = make(map[string]Toolchain)
)

// RegisterToolchain makes the toolchain available under its name.
// It returns an error if a toolchain with the same name was already registered.
//
// Toolchain packages usually call it (or MustRegisterToolchain) from their init function,
// see package ocl/sim for an example.
func RegisterToolchain(toolchain Toolchain) error {
	if toolchain == nil {
		return errors.New("RegisterToolchain given a nil toolchain")
	}
	name := toolchain.Name()
	toolchainsMu.Lock()
	defer toolchainsMu.Unlock()
	if _, found := registeredToolchains[name]; found {
		return errors.Errorf("toolchain %q already registered", name)
	}
	registeredToolchains[name] = toolchain
	klog.V(1).Infof("registered kernel toolchain %q", name)
	return nil
}

// MustRegisterToolchain is like RegisterToolchain, but panics on error.
func MustRegisterToolchain(toolchain Toolchain) {
	if err := RegisterToolchain(toolchain); err != nil {
		panic(err)
	}
}

// GetToolchain returns the registered toolchain with the given name.
// If name is empty, the value of $GOKERNEL_TOOLCHAIN is used, and if that is not set, DefaultToolchainName.
func GetToolchain(name string) (Toolchain, error) {
	if name == "" {
		name = os.Getenv(ToolchainEnvVar)
		if name == "" {
			name = DefaultToolchainName
		}
	}
	toolchainsMu.Lock()
	defer toolchainsMu.Unlock()
	toolchain, found := registeredToolchains[name]
	if !found {
		return nil, errors.Errorf("kernel toolchain %q not registered (available: %v) -- did you forget to import its package?",
			name, availableToolchainsLocked())
	}
	return toolchain, nil
}

// AvailableToolchains returns the sorted names of the registered toolchains.
func AvailableToolchains() []string {
	toolchainsMu.Lock()
	defer toolchainsMu.Unlock()
	return availableToolchainsLocked()
}

func availableToolchainsLocked() []string {
	names := keys(registeredToolchains)
	slices.Sort(names)
	return names
}
