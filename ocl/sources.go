package ocl

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SourceProvider supplies the source of a project (program unit) for a context.
type SourceProvider interface {
	Source(ctx Context, project string) (string, error)
}

// SourceMap is a SourceProvider backed by a map of project name to source. The context is ignored.
type SourceMap map[string]string

// Source implements SourceProvider.
func (m SourceMap) Source(_ Context, project string) (string, error) {
	source, found := m[project]
	if !found {
		return "", errors.Errorf("no source for project %q", project)
	}
	return source, nil
}

// SourceExtension is the file extension used by SourceDir.
const SourceExtension = ".cl"

// SourceDir is a SourceProvider that reads the source of project from the file "<dir>/<project>.cl".
type SourceDir string

// Source implements SourceProvider.
func (d SourceDir) Source(_ Context, project string) (string, error) {
	path := filepath.Join(string(d), project+SourceExtension)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading source of project %q", project)
	}
	return string(content), nil
}

// SourceFunc adapts a function to a SourceProvider.
type SourceFunc func(ctx Context, project string) (string, error)

// Source implements SourceProvider.
func (f SourceFunc) Source(ctx Context, project string) (string, error) {
	return f(ctx, project)
}
