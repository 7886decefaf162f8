package vfs

import (
	"time"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/paths"
)

// DefaultSlotKey is the storage slot holding the serialized tree.
const DefaultSlotKey = "limitlessos_vfs"

// WelcomeText is the content of the seeded README.
const WelcomeText = "Welcome to LimitlessOS!\n\n" +
	"This is a web-based simulation of a universal, elite-grade operating system.\n\n" +
	"- Use the terminal to create files (`touch test.txt`) and folders (`mkdir my_folder`).\n" +
	"- Your changes will be saved in this browser's localStorage, so they will persist across sessions."

// DefaultSeed builds the tree a fresh store starts from:
//
//	/home/limitless-user/Documents/
//	/home/limitless-user/Downloads/
//	/home/limitless-user/README.txt
func DefaultSeed(now time.Time) *Folder {
	root := NewFolder(now)
	for _, dir := range paths.StandardDirectories() {
		mkdirAll(root, split(dir), now)
	}

	segs := split(paths.Readme)
	parent := mkdirAll(root, segs[:len(segs)-1], now)
	parent.Children[segs[len(segs)-1]] = NewFile([]byte(WelcomeText), now)
	return root
}

// mkdirAll returns the folder at segs, creating missing folders. Existing
// files on the way are replaced.
func mkdirAll(root *Folder, segs []string, now time.Time) *Folder {
	current := root
	for _, seg := range segs {
		next, ok := current.Children[seg].(*Folder)
		if !ok {
			next = NewFolder(now)
			current.Children[seg] = next
		}
		current = next
	}
	return current
}
