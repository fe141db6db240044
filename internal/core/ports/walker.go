package ports

import "iter"

// FileWalker defines the interface for enumerating files below a directory.
//
//go:generate mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type FileWalker interface {
	// WalkFiles yields every regular file below root, recursively. Directories
	// whose name is in skipDirs are not entered. A missing root yields nothing.
	WalkFiles(root string, skipDirs ...string) iter.Seq2[string, error]
}
