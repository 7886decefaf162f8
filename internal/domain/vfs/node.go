package vfs

import (
	"sort"
	"time"
)

// Kind discriminates the two node variants.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Valid reports whether k names a node variant.
func (k Kind) Valid() bool {
	return k == KindFile || k == KindFolder
}

// Node is a File or a Folder. The set is closed: no other package can
// implement it.
type Node interface {
	Kind() Kind
	ModifiedAt() time.Time
	node()
}

// File is a leaf holding raw content.
type File struct {
	Content  []byte
	Modified time.Time
}

// Folder owns its children by name.
type Folder struct {
	Children map[string]Node
	Modified time.Time
}

func (*File) Kind() Kind              { return KindFile }
func (f *File) ModifiedAt() time.Time { return f.Modified }
func (*File) node()                   {}

func (*Folder) Kind() Kind              { return KindFolder }
func (f *Folder) ModifiedAt() time.Time { return f.Modified }
func (*Folder) node()                   {}

// NewFile creates a file holding a copy of content.
func NewFile(content []byte, modified time.Time) *File {
	return &File{Content: append([]byte(nil), content...), Modified: modified}
}

// NewFolder creates an empty folder.
func NewFolder(modified time.Time) *Folder {
	return &Folder{Children: make(map[string]Node), Modified: modified}
}

// Names returns the child names in lexical order.
func (f *Folder) Names() []string {
	names := make([]string, 0, len(f.Children))
	for name := range f.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the folder and its subtree.
func (f *Folder) Clone() *Folder {
	return cloneNode(f).(*Folder)
}

func cloneNode(n Node) Node {
	switch n := n.(type) {
	case *File:
		return NewFile(n.Content, n.Modified)
	case *Folder:
		out := &Folder{Children: make(map[string]Node, len(n.Children)), Modified: n.Modified}
		for name, child := range n.Children {
			out.Children[name] = cloneNode(child)
		}
		return out
	default:
		panic("vfs: unknown node type")
	}
}

// NodeSummary describes one directory entry.
type NodeSummary struct {
	Kind     Kind      `json:"type"`
	Size     int       `json:"size"`
	Children int       `json:"children"`
	Modified time.Time `json:"modified"`
}

func summarize(n Node) NodeSummary {
	switch n := n.(type) {
	case *File:
		return NodeSummary{Kind: KindFile, Size: len(n.Content), Modified: n.Modified}
	case *Folder:
		return NodeSummary{Kind: KindFolder, Children: len(n.Children), Modified: n.Modified}
	default:
		panic("vfs: unknown node type")
	}
}
