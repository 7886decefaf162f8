package vfs

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/paths"
)

// split turns a path into its non-empty segments. "/", "//" and "" all
// yield the root.
func split(p string) []string {
	raw := strings.Split(p, paths.Separator)
	segs := raw[:0]
	for _, seg := range raw {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// join renders segments as a canonical absolute path.
func join(segs []string) string {
	return paths.Separator + strings.Join(segs, paths.Separator)
}

// Clean returns the canonical form of p as the store resolves it.
func Clean(p string) string {
	return join(split(p))
}

// ValidName checks a single child name.
func ValidName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidPath)
	case name == "." || name == "..":
		return fmt.Errorf("%w: reserved name %q", ErrInvalidPath, name)
	case strings.Contains(name, paths.Separator):
		return fmt.Errorf("%w: name %q contains separator", ErrInvalidPath, name)
	}
	return nil
}

// resolve walks segs from root through folders only.
func resolve(root *Folder, segs []string) (Node, bool) {
	var current Node = root
	for _, seg := range segs {
		switch n := current.(type) {
		case *Folder:
			child, ok := n.Children[seg]
			if !ok {
				return nil, false
			}
			current = child
		case *File:
			return nil, false
		default:
			return nil, false
		}
	}
	return current, true
}

func resolveFolder(root *Folder, segs []string) (*Folder, bool) {
	n, ok := resolve(root, segs)
	if !ok {
		return nil, false
	}
	folder, ok := n.(*Folder)
	return folder, ok
}

func hasPrefix(segs, prefix []string) bool {
	if len(prefix) > len(segs) {
		return false
	}
	for i := range prefix {
		if segs[i] != prefix[i] {
			return false
		}
	}
	return true
}
