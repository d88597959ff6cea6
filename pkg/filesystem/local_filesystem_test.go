package filesystem_test

import (
	"os"
	"sort"
	"testing"

	"github.com/naruse/NiceIO/pkg/filesystem"
	"github.com/naruse/NiceIO/pkg/filesystem/path"
	"github.com/naruse/NiceIO/pkg/random"
	"github.com/stretchr/testify/require"
)

func TestLocalFilesystemPredicates(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(root+"/file.txt", []byte("hello"), 0o666))
	require.NoError(t, os.Mkdir(root+"/dir", 0o777))

	require.True(t, fs.Exists(root+"/file.txt"))
	require.True(t, fs.IsFile(root+"/file.txt"))
	require.False(t, fs.IsDir(root+"/file.txt"))

	require.True(t, fs.Exists(root+"/dir"))
	require.False(t, fs.IsFile(root+"/dir"))
	require.True(t, fs.IsDir(root+"/dir"))

	require.False(t, fs.Exists(root+"/nonexistent"))
	require.False(t, fs.IsFile(root+"/nonexistent"))
	require.False(t, fs.IsDir(root+"/nonexistent"))
}

func TestLocalFilesystemCreateDir(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()

	require.NoError(t, fs.CreateDir(root+"/dir"))
	require.True(t, fs.IsDir(root+"/dir"))

	// Parents are assumed to exist already.
	err := fs.CreateDir(root + "/missing/dir")
	require.True(t, os.IsNotExist(err))

	// Creating an already existing directory is not idempotent
	// for the local implementation.
	require.True(t, os.IsExist(fs.CreateDir(root+"/dir")))
}

func TestLocalFilesystemRemove(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(root+"/file.txt", nil, 0o666))
	require.NoError(t, fs.RemoveFile(root+"/file.txt"))
	require.False(t, fs.Exists(root+"/file.txt"))

	require.NoError(t, os.MkdirAll(root+"/dir/sub", 0o777))
	require.NoError(t, os.WriteFile(root+"/dir/sub/file.txt", nil, 0o666))
	require.NoError(t, fs.RemoveDirRecursive(root+"/dir"))
	require.False(t, fs.Exists(root+"/dir"))
}

func TestLocalFilesystemListing(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(root+"/a/b", 0o777))
	require.NoError(t, os.WriteFile(root+"/top.txt", nil, 0o666))
	require.NoError(t, os.WriteFile(root+"/a/nested.txt", nil, 0o666))
	require.NoError(t, os.WriteFile(root+"/a/b/deep.txt", nil, 0o666))

	t.Run("FilesDirect", func(t *testing.T) {
		files, err := fs.ListFiles(root, false)
		require.NoError(t, err)
		require.Equal(t, []string{root + "/top.txt"}, files)
	})

	t.Run("FilesRecursive", func(t *testing.T) {
		files, err := fs.ListFiles(root, true)
		require.NoError(t, err)
		sort.Strings(files)
		require.Equal(t, []string{
			root + "/a/b/deep.txt",
			root + "/a/nested.txt",
			root + "/top.txt",
		}, files)
	})

	t.Run("DirsDirect", func(t *testing.T) {
		dirs, err := fs.ListDirs(root, false)
		require.NoError(t, err)
		require.Equal(t, []string{root + "/a"}, dirs)
	})

	t.Run("DirsRecursive", func(t *testing.T) {
		dirs, err := fs.ListDirs(root, true)
		require.NoError(t, err)
		sort.Strings(dirs)
		require.Equal(t, []string{root + "/a", root + "/a/b"}, dirs)
	})

	t.Run("NonexistentDirectory", func(t *testing.T) {
		_, err := fs.ListFiles(root+"/nonexistent", false)
		require.True(t, os.IsNotExist(err))
	})
}

func TestLocalFilesystemCopyFile(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(root+"/src.txt", []byte("contents"), 0o666))

	t.Run("Fresh", func(t *testing.T) {
		require.NoError(t, fs.CopyFile(root+"/src.txt", root+"/dst.txt", false))
		data, err := os.ReadFile(root + "/dst.txt")
		require.NoError(t, err)
		require.Equal(t, []byte("contents"), data)
	})

	t.Run("NoOverwrite", func(t *testing.T) {
		require.Error(t, fs.CopyFile(root+"/src.txt", root+"/dst.txt", false))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, os.WriteFile(root+"/src.txt", []byte("new contents"), 0o666))
		require.NoError(t, fs.CopyFile(root+"/src.txt", root+"/dst.txt", true))
		data, err := os.ReadFile(root + "/dst.txt")
		require.NoError(t, err)
		require.Equal(t, []byte("new contents"), data)
	})

	t.Run("MissingSource", func(t *testing.T) {
		err := fs.CopyFile(root+"/nonexistent", root+"/dst2.txt", true)
		require.True(t, os.IsNotExist(err))
	})
}

func TestLocalFilesystemWriteBytes(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()

	require.NoError(t, fs.WriteBytes(root+"/file.bin", []byte{1, 2, 3}))
	data, err := os.ReadFile(root + "/file.bin")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	// Existing contents are truncated.
	require.NoError(t, fs.WriteBytes(root+"/file.bin", nil))
	data, err = os.ReadFile(root + "/file.bin")
	require.NoError(t, err)
	require.Empty(t, data)
}

// The operations layer and the local implementation together should
// reproduce a directory tree on the real file system, including empty
// subdirectories.
func TestLocalFilesystemCopyTree(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()
	src := path.Parse(root + "/src")
	dst := path.Parse(root + "/dst")

	require.NoError(t, os.MkdirAll(root+"/src/sub/empty", 0o777))
	require.NoError(t, os.WriteFile(root+"/src/a.txt", []byte("a"), 0o666))
	require.NoError(t, os.WriteFile(root+"/src/sub/b.txt", []byte("b"), 0o666))

	require.NoError(t, filesystem.Copy(fs, src, dst))

	data, err := os.ReadFile(root + "/dst/a.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("a"), data)
	data, err = os.ReadFile(root + "/dst/sub/b.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("b"), data)
	require.True(t, fs.IsDir(root+"/dst/sub/empty"))
}

func TestLocalFilesystemCreateTempDirectory(t *testing.T) {
	fs := filesystem.NewLocalFilesystem()
	root := t.TempDir()

	p, err := filesystem.CreateTempDirectory(fs, path.Parse(root), "scratch", random.FastThreadSafeGenerator)
	require.NoError(t, err)
	require.True(t, fs.IsDir(p.String()))
	relative, err := p.RelativeTo(path.Parse(root))
	require.NoError(t, err)
	fileName, err := relative.FileName()
	require.NoError(t, err)
	require.Regexp(t, "^scratch[0-9]+$", fileName)
}
