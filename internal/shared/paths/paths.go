package paths

import "path"

// Username is the single simulated desktop user.
const Username = "limitless-user"

// Separator delimits path segments in the virtual tree.
const Separator = "/"

// Well-known locations of the seed tree.
const (
	Root      = "/"
	Home      = "/home"
	User      = "/home/" + Username
	Documents = User + "/Documents"
	Downloads = User + "/Downloads"
	Readme    = User + "/README.txt"
)

// UserPath joins elements under the user's home folder.
func UserPath(elem ...string) string {
	return path.Join(append([]string{User}, elem...)...)
}

// StandardDirectories returns the folders every seed tree provides.
func StandardDirectories() []string {
	return []string{
		Home,
		User,
		Documents,
		Downloads,
	}
}
