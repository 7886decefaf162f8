package vfs

import "errors"

var (
	// ErrNotFound means the path does not resolve to a node of the expected kind.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the target name is already taken.
	ErrConflict = errors.New("already exists")

	// ErrInvalidParent means the parent is missing, is a file, or lies inside
	// the node being moved.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrInvalidPath means a path, name, kind or pattern is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrRootImmutable means the operation would remove or move the root.
	ErrRootImmutable = errors.New("root cannot be modified")

	// ErrStorage means the snapshot could not be written. The mutation that
	// triggered the write has been rolled back.
	ErrStorage = errors.New("storage failure")
)

// PathError records a failed operation and the path it addressed.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return "vfs: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
