package comment

import "path/filepath"

// Locator resolves the source file documenting a resource, either inside a
// folder or through a caller-supplied function.
type Locator struct {
	fn  func(resource string) string
	dir string
}

// Dir locates files by conventional name inside dir.
func Dir(dir string) Locator {
	return Locator{dir: dir}
}

// Func locates files with fn, which receives the singular resource name
// (for example "widget") and returns a path.
func Func(fn func(resource string) string) Locator {
	return Locator{fn: fn}
}

// Resolve returns the path for resource. name is the conventional file name
// used when the locator is a folder.
func (l Locator) Resolve(resource, name string) string {
	if l.fn != nil {
		return l.fn(resource)
	}

	return filepath.Join(l.dir, name)
}
