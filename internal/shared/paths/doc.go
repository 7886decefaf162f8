// Package paths names the well-known locations of the virtual file tree.
//
// # Directory Structure
//
//	/
//	└── home/
//	    └── limitless-user/
//	        ├── Documents/
//	        ├── Downloads/
//	        └── README.txt
//
// # Usage
//
//	docs := paths.Documents                // /home/limitless-user/Documents
//	notes := paths.UserPath("notes.txt")   // /home/limitless-user/notes.txt
package paths
