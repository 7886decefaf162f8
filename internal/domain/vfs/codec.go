package vfs

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/utils"
)

// SnapshotVersion is the envelope version written by this package.
const SnapshotVersion = 1

const encodingBase64 = "base64"

var (
	errChecksum = errors.New("snapshot checksum mismatch")
	errVersion  = errors.New("unsupported snapshot version")
)

// Sorted keys keep the encoding deterministic, so equal trees produce equal
// bytes and equal checksums.
var snapshotAPI = sonic.Config{SortMapKeys: true}.Froze()

type envelope struct {
	Version  int             `json:"version"`
	Checksum string          `json:"checksum"`
	Tree     json.RawMessage `json:"tree"`
}

type wireNode struct {
	Type     Kind                 `json:"type"`
	Modified time.Time            `json:"modified"`
	Content  *string              `json:"content,omitempty"`
	Encoding string               `json:"encoding,omitempty"`
	Children map[string]*wireNode `json:"children,omitempty"`
}

type codec struct {
	hasher *utils.Hasher
}

func newCodec(hasher *utils.Hasher) *codec {
	if hasher == nil {
		hasher = utils.DefaultHasher()
	}
	return &codec{hasher: hasher}
}

func (c *codec) encode(root *Folder) ([]byte, error) {
	tree, err := snapshotAPI.Marshal(toWire(root))
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	data, err := snapshotAPI.Marshal(envelope{
		Version:  SnapshotVersion,
		Checksum: c.hasher.Hash(tree),
		Tree:     tree,
	})
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

// decode accepts the versioned envelope and the bare {"/": node} layout
// written by earlier releases, which carries no checksum.
func (c *codec) decode(data []byte) (*Folder, error) {
	var env envelope
	if err := snapshotAPI.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	if env.Version == 0 && len(env.Tree) == 0 {
		return decodeLegacy(data)
	}
	if env.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", errVersion, env.Version)
	}
	if !c.hasher.Verify(env.Checksum, env.Tree) {
		return nil, errChecksum
	}

	var root wireNode
	if err := snapshotAPI.Unmarshal(env.Tree, &root); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return rootFromWire(&root)
}

func decodeLegacy(data []byte) (*Folder, error) {
	var legacy map[string]*wireNode
	if err := snapshotAPI.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("decode legacy tree: %w", err)
	}
	root, ok := legacy["/"]
	if !ok || root == nil {
		return nil, errors.New("snapshot has no root")
	}
	return rootFromWire(root)
}

func rootFromWire(w *wireNode) (*Folder, error) {
	n, err := fromWire(w)
	if err != nil {
		return nil, err
	}
	root, ok := n.(*Folder)
	if !ok {
		return nil, errors.New("snapshot root is not a folder")
	}
	return root, nil
}

func toWire(n Node) *wireNode {
	switch n := n.(type) {
	case *File:
		w := &wireNode{Type: KindFile, Modified: n.Modified}
		content := string(n.Content)
		if !utf8.Valid(n.Content) {
			content = base64.StdEncoding.EncodeToString(n.Content)
			w.Encoding = encodingBase64
		}
		w.Content = &content
		return w
	case *Folder:
		w := &wireNode{
			Type:     KindFolder,
			Modified: n.Modified,
			Children: make(map[string]*wireNode, len(n.Children)),
		}
		for name, child := range n.Children {
			w.Children[name] = toWire(child)
		}
		return w
	default:
		panic("vfs: unknown node type")
	}
}

func fromWire(w *wireNode) (Node, error) {
	if w == nil {
		return nil, errors.New("null node")
	}

	switch w.Type {
	case KindFile:
		file := &File{Modified: w.Modified}
		if w.Content != nil {
			switch w.Encoding {
			case "":
				file.Content = []byte(*w.Content)
			case encodingBase64:
				raw, err := base64.StdEncoding.DecodeString(*w.Content)
				if err != nil {
					return nil, fmt.Errorf("decode file content: %w", err)
				}
				file.Content = raw
			default:
				return nil, fmt.Errorf("unknown content encoding %q", w.Encoding)
			}
		}
		return file, nil
	case KindFolder:
		folder := &Folder{Children: make(map[string]Node, len(w.Children)), Modified: w.Modified}
		for name, child := range w.Children {
			if err := ValidName(name); err != nil {
				return nil, err
			}
			n, err := fromWire(child)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			folder.Children[name] = n
		}
		return folder, nil
	default:
		return nil, fmt.Errorf("unknown node type %q", w.Type)
	}
}
