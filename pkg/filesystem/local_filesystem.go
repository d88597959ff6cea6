package filesystem

import (
	"io"
	"os"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type localFilesystem struct{}

// NewLocalFilesystem creates a Filesystem that is backed by the
// operating system's file system. Errors returned by the operating
// system are passed through unmodified, so that callers may still
// inspect them with os.IsNotExist() and friends.
func NewLocalFilesystem() Filesystem {
	return localFilesystem{}
}

func (localFilesystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (localFilesystem) IsFile(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

func (localFilesystem) IsDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

func (localFilesystem) CreateDir(path string) error {
	return os.Mkdir(path, 0o777)
}

func (localFilesystem) RemoveFile(path string) error {
	return os.Remove(path)
}

func (localFilesystem) RemoveDirRecursive(path string) error {
	return os.RemoveAll(path)
}

// joinEntry appends a directory entry name to a canonical directory
// pathname string.
func joinEntry(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func listLocalEntries(root string, recursive, wantDirs bool) ([]string, error) {
	results := []string{}
	pending := []string{root}
	for len(pending) > 0 {
		dir := pending[0]
		pending = pending[1:]
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			full := joinEntry(dir, entry.Name())
			if entry.IsDir() {
				if wantDirs {
					results = append(results, full)
				}
				if recursive {
					pending = append(pending, full)
				}
			} else if !wantDirs {
				results = append(results, full)
			}
		}
	}
	return results, nil
}

func (localFilesystem) ListFiles(path string, recursive bool) ([]string, error) {
	return listLocalEntries(path, recursive, false)
}

func (localFilesystem) ListDirs(path string, recursive bool) ([]string, error) {
	return listLocalEntries(path, recursive, true)
}

func (localFilesystem) CopyFile(src, dst string, overwrite bool) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	w, err := os.OpenFile(dst, flags, 0o666)
	if err != nil {
		if os.IsExist(err) {
			return status.Errorf(codes.AlreadyExists, "File %#v already exists", dst)
		}
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (localFilesystem) WriteBytes(path string, data []byte) error {
	return os.WriteFile(path, data, 0o666)
}
