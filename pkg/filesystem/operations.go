package filesystem

import (
	"strconv"

	"github.com/naruse/NiceIO/pkg/filesystem/path"
	"github.com/naruse/NiceIO/pkg/random"
	"github.com/naruse/NiceIO/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DeleteMode controls how Delete() responds to failures while removing
// a directory recursively.
type DeleteMode int

const (
	// DeleteModeNormal propagates failures to remove a directory.
	DeleteModeNormal DeleteMode = iota
	// DeleteModeSoft swallows failures to remove a directory, such
	// as those caused by files that are still held open. Removal
	// of whatever could be removed will already have taken place.
	DeleteModeSoft
)

func requireAbsolute(p path.Path) error {
	if p.IsRelative() {
		return status.Errorf(codes.FailedPrecondition, "Path %#v is relative, while an absolute path was expected", p.String())
	}
	return nil
}

// ensureDirectoryExists creates a directory together with any missing
// ancestors. The ancestor chain is walked iteratively until a
// directory is found that already exists, after which the missing ones
// are created from the top down. Running out of ancestors without
// finding an existing directory indicates a misconfigured file system
// capability and is surfaced as an error.
func ensureDirectoryExists(fs Filesystem, d path.Path) error {
	var missing []path.Path
	current := d
	for !fs.IsDir(current.String()) {
		missing = append(missing, current)
		parent, err := current.Parent()
		if err != nil {
			return util.StatusWrapf(err, "Failed to locate an existing ancestor of %#v", d.String())
		}
		current = parent
	}
	for i := len(missing) - 1; i >= 0; i-- {
		if err := fs.CreateDir(missing[i].String()); err != nil {
			return util.StatusWrapf(err, "Failed to create directory %#v", missing[i].String())
		}
	}
	return nil
}

// CreateFile creates an empty file, creating any missing parent
// directories along the way. A file already present at the pathname is
// truncated. The provided path is returned to allow call chaining.
func CreateFile(fs Filesystem, p path.Path) (path.Path, error) {
	if err := requireAbsolute(p); err != nil {
		return path.Path{}, err
	}
	parent, err := p.Parent()
	if err != nil {
		return path.Path{}, util.StatusWrapf(err, "Failed to determine parent directory of %#v", p.String())
	}
	if err := ensureDirectoryExists(fs, parent); err != nil {
		return path.Path{}, err
	}
	if err := fs.WriteBytes(p.String(), nil); err != nil {
		return path.Path{}, util.StatusWrapf(err, "Failed to create file %#v", p.String())
	}
	return p, nil
}

// CreateDirectory creates a single directory. Parent directories must
// already exist. Whether creating an already existing directory
// succeeds is up to the file system capability.
func CreateDirectory(fs Filesystem, p path.Path) error {
	if err := requireAbsolute(p); err != nil {
		return err
	}
	if err := fs.CreateDir(p.String()); err != nil {
		return util.StatusWrapf(err, "Failed to create directory %#v", p.String())
	}
	return nil
}

// Copy copies a file or a directory tree. Files are copied byte for
// byte, overwriting any file already present at the destination.
// Directories are copied recursively, reproducing the source's
// relative structure at the destination, including empty
// subdirectories. Missing ancestors of the destination are created.
func Copy(fs Filesystem, src, dst path.Path) error {
	return CopyFiltered(fs, src, dst, nil)
}

// CopyFiltered is identical to Copy, except that a predicate over the
// destination path gates which entries are copied. When the predicate
// rejects a directory destination, the entire subtree underneath it is
// skipped. A nil predicate admits everything.
func CopyFiltered(fs Filesystem, src, dst path.Path, shouldCopy func(destination path.Path) bool) error {
	if err := requireAbsolute(src); err != nil {
		return err
	}
	if err := requireAbsolute(dst); err != nil {
		return err
	}
	return copyTree(fs, src, dst, shouldCopy)
}

func copyTree(fs Filesystem, src, dst path.Path, shouldCopy func(destination path.Path) bool) error {
	if shouldCopy != nil && !shouldCopy(dst) {
		return nil
	}
	if fs.IsFile(src.String()) {
		parent, err := dst.Parent()
		if err != nil {
			return util.StatusWrapf(err, "Failed to determine parent directory of %#v", dst.String())
		}
		if err := ensureDirectoryExists(fs, parent); err != nil {
			return err
		}
		if err := fs.CopyFile(src.String(), dst.String(), true); err != nil {
			return util.StatusWrapf(err, "Failed to copy file %#v to %#v", src.String(), dst.String())
		}
		return nil
	}
	if !fs.IsDir(src.String()) {
		return status.Errorf(codes.NotFound, "Source %#v is neither a file nor a directory", src.String())
	}

	if err := ensureDirectoryExists(fs, dst); err != nil {
		return err
	}
	files, err := fs.ListFiles(src.String(), false)
	if err != nil {
		return util.StatusWrapf(err, "Failed to list files in %#v", src.String())
	}
	dirs, err := fs.ListDirs(src.String(), false)
	if err != nil {
		return util.StatusWrapf(err, "Failed to list directories in %#v", src.String())
	}
	for _, child := range append(files, dirs...) {
		childSrc := path.Parse(child)
		relativeChild, err := childSrc.RelativeTo(src)
		if err != nil {
			return util.StatusWrapf(err, "Failed to relativize %#v against %#v", childSrc.String(), src.String())
		}
		childDst, err := dst.Combine(relativeChild)
		if err != nil {
			return util.StatusWrapf(err, "Failed to construct destination for %#v", childSrc.String())
		}
		if err := copyTree(fs, childSrc, childDst, shouldCopy); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a file or a directory tree. Deleting a pathname at
// which neither a file nor a directory exists fails. The mode controls
// whether failures to remove a directory recursively are propagated or
// swallowed.
func Delete(fs Filesystem, p path.Path, mode DeleteMode) error {
	if err := requireAbsolute(p); err != nil {
		return err
	}
	value := p.String()
	switch {
	case fs.IsFile(value):
		if err := fs.RemoveFile(value); err != nil {
			return util.StatusWrapf(err, "Failed to remove file %#v", value)
		}
	case fs.IsDir(value):
		if err := fs.RemoveDirRecursive(value); err != nil && mode != DeleteModeSoft {
			return util.StatusWrapf(err, "Failed to remove directory %#v", value)
		}
	default:
		return status.Errorf(codes.NotFound, "No file or directory exists at %#v", value)
	}
	return nil
}

// Files returns the files contained in a directory, either directly or
// transitively.
func Files(fs Filesystem, p path.Path, recursive bool) ([]path.Path, error) {
	return FilesFiltered(fs, p, recursive, nil)
}

// FilesFiltered is identical to Files, except that only files admitted
// by the predicate are returned. A nil predicate admits everything.
func FilesFiltered(fs Filesystem, p path.Path, recursive bool, include func(file path.Path) bool) ([]path.Path, error) {
	if err := requireAbsolute(p); err != nil {
		return nil, err
	}
	values, err := fs.ListFiles(p.String(), recursive)
	if err != nil {
		return nil, util.StatusWrapf(err, "Failed to list files in %#v", p.String())
	}
	files := make([]path.Path, 0, len(values))
	for _, value := range values {
		file := path.Parse(value)
		if include == nil || include(file) {
			files = append(files, file)
		}
	}
	return files, nil
}

// Directories returns the directories contained in a directory, either
// directly or transitively.
func Directories(fs Filesystem, p path.Path, recursive bool) ([]path.Path, error) {
	if err := requireAbsolute(p); err != nil {
		return nil, err
	}
	values, err := fs.ListDirs(p.String(), recursive)
	if err != nil {
		return nil, util.StatusWrapf(err, "Failed to list directories in %#v", p.String())
	}
	dirs := make([]path.Path, 0, len(values))
	for _, value := range values {
		dirs = append(dirs, path.Parse(value))
	}
	return dirs, nil
}

// Contents returns the files contained in a directory, followed by the
// directories contained in it.
func Contents(fs Filesystem, p path.Path, recursive bool) ([]path.Path, error) {
	files, err := Files(fs, p, recursive)
	if err != nil {
		return nil, err
	}
	dirs, err := Directories(fs, p, recursive)
	if err != nil {
		return nil, err
	}
	return append(files, dirs...), nil
}

// CreateTempDirectory creates a directory underneath base whose name
// consists of the provided prefix followed by a random integer. Names
// are drawn until one is found that does not exist yet. There is an
// inherent race between the existence check and the creation call,
// which is accepted as part of randomized temporary path allocation.
func CreateTempDirectory(fs Filesystem, base path.Path, prefix string, generator random.ThreadSafeGenerator) (path.Path, error) {
	if err := requireAbsolute(base); err != nil {
		return path.Path{}, err
	}
	for {
		candidate, err := base.Combine(path.Parse(prefix + strconv.FormatUint(generator.Uint64(), 10)))
		if err != nil {
			return path.Path{}, util.StatusWrap(err, "Failed to construct temporary directory path")
		}
		if fs.Exists(candidate.String()) {
			continue
		}
		if err := fs.CreateDir(candidate.String()); err != nil {
			return path.Path{}, util.StatusWrapf(err, "Failed to create temporary directory %#v", candidate.String())
		}
		return candidate, nil
	}
}
