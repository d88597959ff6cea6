package filesystem

// Filesystem is an abstraction for the underlying file system. It is
// the only boundary through which the operations in this package
// perform side effects. Pathnames cross this boundary as plain
// strings; all path arithmetic happens in terms of path.Path before a
// call is made.
//
// By placing this in a separate interface, it's easier to stub out
// file system handling as part of unit tests entirely.
type Filesystem interface {
	// Existence predicates. These do not follow symbolic links.
	Exists(path string) bool
	IsFile(path string) bool
	IsDir(path string) bool

	// CreateDir creates a single directory. Parent directories
	// are assumed to exist already.
	CreateDir(path string) error
	// RemoveFile removes a single file.
	RemoveFile(path string) error
	// RemoveDirRecursive removes a directory and all of its
	// contents.
	RemoveDirRecursive(path string) error

	// ListFiles and ListDirs return the full pathname strings of
	// the files, respectively directories, contained in a
	// directory, either directly or transitively.
	ListFiles(path string, recursive bool) ([]string, error)
	ListDirs(path string, recursive bool) ([]string, error)

	// CopyFile copies a single file byte for byte. When overwrite
	// is false, copying fails if the destination already exists.
	CopyFile(src, dst string, overwrite bool) error
	// WriteBytes creates a file with the provided contents,
	// truncating any file already present at the pathname.
	WriteBytes(path string, data []byte) error
}
