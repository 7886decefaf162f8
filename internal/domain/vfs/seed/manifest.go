package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/domain/vfs"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown manifest extension %q", filepath.Ext(path))
	}
}

// FromManifest builds a tree from a manifest document. Mappings become
// folders, strings become files and null becomes an empty file:
//
//	home:
//	  limitless-user:
//	    Documents: {}
//	    README.txt: "hello"
func FromManifest(data []byte, format Format) (*vfs.Folder, error) {
	doc := make(map[string]any)

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml manifest: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse toml manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}

	now := time.Now().UTC()
	root := vfs.NewFolder(now)
	if err := fill(root, doc, "", now); err != nil {
		return nil, err
	}
	return root, nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*vfs.Folder, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return FromManifest(data, format)
}

func fill(folder *vfs.Folder, entries map[string]any, at string, now time.Time) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := at + "/" + name
		if err := vfs.ValidName(name); err != nil {
			return fmt.Errorf("manifest %s: %w", path, err)
		}

		n, err := node(entries[name], path, now)
		if err != nil {
			return err
		}
		folder.Children[name] = n
	}
	return nil
}

func node(value any, path string, now time.Time) (vfs.Node, error) {
	switch v := value.(type) {
	case nil:
		return vfs.NewFile(nil, now), nil
	case string:
		return vfs.NewFile([]byte(v), now), nil
	case bool, int, int64, uint64, float64:
		return vfs.NewFile([]byte(fmt.Sprint(v)), now), nil
	case map[string]any:
		folder := vfs.NewFolder(now)
		return folder, fill(folder, v, path, now)
	case map[any]any:
		converted := make(map[string]any, len(v))
		for k, child := range v {
			converted[fmt.Sprint(k)] = child
		}
		folder := vfs.NewFolder(now)
		return folder, fill(folder, converted, path, now)
	default:
		return nil, fmt.Errorf("manifest %s: unsupported value of type %T", path, value)
	}
}
