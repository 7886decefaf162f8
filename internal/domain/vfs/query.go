package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// NodeInfo describes a node. MIME and Charset are filled by Stat for files
// only.
type NodeInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Kind     Kind      `json:"type"`
	Size     int       `json:"size"`
	Children int       `json:"children"`
	Modified time.Time `json:"modified"`
	MIME     string    `json:"mime,omitempty"`
	Charset  string    `json:"charset,omitempty"`
}

// WalkFunc is called for each node visited by Walk. Returning fs.SkipDir
// from a folder skips its subtree; any other error stops the walk.
type WalkFunc func(info NodeInfo) error

func describe(segs []string, n Node) NodeInfo {
	sum := summarize(n)
	name := "/"
	if len(segs) > 0 {
		name = segs[len(segs)-1]
	}
	return NodeInfo{
		Name:     name,
		Path:     join(segs),
		Kind:     sum.Kind,
		Size:     sum.Size,
		Children: sum.Children,
		Modified: sum.Modified,
	}
}

// Stat describes the node at path, detecting content type for files.
func (s *Store) Stat(path string) (NodeInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	segs := split(path)
	n, ok := resolve(s.root, segs)
	if !ok {
		return NodeInfo{}, s.record("stat", pathErr("stat", path, ErrNotFound))
	}

	info := describe(segs, n)
	if file, ok := n.(*File); ok {
		info.MIME, info.Charset = detect(file.Content)
	}
	s.metrics.RecordVFSOperation("stat", nil)
	return info, nil
}

// detect sniffs the MIME type and, for text, the character set.
func detect(content []byte) (string, string) {
	mt := mimetype.Detect(content)
	if len(content) == 0 || !strings.HasPrefix(mt.String(), "text/") {
		return mt.String(), ""
	}

	best, err := chardet.NewTextDetector().DetectBest(content)
	if err != nil {
		return mt.String(), ""
	}
	return mt.String(), best.Charset
}

// Exists reports whether path resolves to any node.
func (s *Store) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := resolve(s.root, split(path))
	return ok
}

// Glob returns the sorted paths of every node matching pattern, e.g.
// "/home/**/*.txt".
func (s *Store) Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, s.record("glob", pathErr("glob", pattern, fmt.Errorf("%w: bad pattern", ErrInvalidPath)))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	collect(s.root, nil, func(segs []string, _ Node) bool {
		if len(segs) == 0 {
			return true
		}
		p := join(segs)
		if ok, _ := doublestar.Match(pattern, p); ok {
			matches = append(matches, p)
		}
		return true
	})

	sort.Strings(matches)
	s.metrics.RecordVFSOperation("glob", nil)
	return matches, nil
}

// Walk visits the subtree rooted at path depth-first, children in name
// order. The tree is captured before fn runs, so fn may call back into the
// store.
func (s *Store) Walk(path string, fn WalkFunc) error {
	s.mu.RLock()
	segs := split(path)
	start, ok := resolve(s.root, segs)
	if !ok {
		s.mu.RUnlock()
		return s.record("walk", pathErr("walk", path, ErrNotFound))
	}

	var infos []NodeInfo
	collect(start, segs, func(at []string, n Node) bool {
		infos = append(infos, describe(at, n))
		return true
	})
	s.mu.RUnlock()

	var skip string
	for _, info := range infos {
		if skip != "" && strings.HasPrefix(info.Path, skip) {
			continue
		}
		skip = ""

		err := fn(info)
		switch {
		case err == nil:
		case errors.Is(err, fs.SkipDir) && info.Kind == KindFolder:
			skip = strings.TrimSuffix(info.Path, "/") + "/"
		case errors.Is(err, fs.SkipDir):
		default:
			return err
		}
	}
	s.metrics.RecordVFSOperation("walk", nil)
	return nil
}

// collect visits n and its descendants in name order. visit returns false to
// prune a folder.
func collect(n Node, segs []string, visit func([]string, Node) bool) {
	if !visit(segs, n) {
		return
	}
	switch n := n.(type) {
	case *Folder:
		for _, name := range n.Names() {
			child := append(segs[:len(segs):len(segs)], name)
			collect(n.Children[name], child, visit)
		}
	case *File:
	}
}
