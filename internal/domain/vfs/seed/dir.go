package seed

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/domain/vfs"
)

type hostEntry struct {
	rel      string
	dir      bool
	content  []byte
	modified time.Time
}

// FromDir imports a host directory as a tree. Regular files and folders are
// copied with their modification times; symlinks and special files are
// skipped.
func FromDir(ctx context.Context, dir string) (*vfs.Folder, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat seed dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("seed dir %s is not a directory", dir)
	}

	var (
		mu      sync.Mutex
		entries []hostEntry
	)

	// fastwalk calls the walk function from several goroutines.
	err = fastwalk.Walk(&fastwalk.Config{Follow: false}, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		entry := hostEntry{rel: filepath.ToSlash(rel)}
		switch {
		case d.IsDir():
			entry.dir = true
		case d.Type().IsRegular():
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			entry.content = content
		default:
			return nil
		}

		if fi, err := d.Info(); err == nil {
			entry.modified = fi.ModTime().UTC()
		}

		mu.Lock()
		entries = append(entries, entry)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk seed dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	root := vfs.NewFolder(info.ModTime().UTC())
	for _, e := range entries {
		segs := strings.Split(e.rel, "/")
		for _, seg := range segs {
			if err := vfs.ValidName(seg); err != nil {
				return nil, fmt.Errorf("seed dir entry %s: %w", e.rel, err)
			}
		}

		parent := mkdirAll(root, segs[:len(segs)-1], e.modified)
		name := segs[len(segs)-1]
		if e.dir {
			folder := mkdirAll(parent, []string{name}, e.modified)
			folder.Modified = e.modified
			continue
		}
		parent.Children[name] = vfs.NewFile(e.content, e.modified)
	}
	return root, nil
}

func mkdirAll(root *vfs.Folder, segs []string, now time.Time) *vfs.Folder {
	current := root
	for _, seg := range segs {
		next, ok := current.Children[seg].(*vfs.Folder)
		if !ok {
			next = vfs.NewFolder(now)
			current.Children[seg] = next
		}
		current = next
	}
	return current
}
