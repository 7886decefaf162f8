// Package vfs implements the virtual file store: a tree of files and
// folders addressed by slash-delimited paths and mirrored to one storage
// slot after every mutation.
//
// All operations resolve paths the same way. Segments are split on "/",
// empty segments are dropped and the walk descends through folders only.
// "/a//b/" and "/a/b" address the same node.
//
// Mutations are serialized by a single lock held across the snapshot write.
// If the write fails the mutation is undone and ErrStorage is returned, so
// the in-memory tree and the slot never disagree.
package vfs
