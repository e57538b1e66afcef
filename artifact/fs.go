package artifact

import (
	"io"
	"os"
	"path/filepath"
)

// CreateFS defines a file system that artifacts can be written to.
type CreateFS interface {
	// Create creates or truncates a file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Remove deletes a file.
	Remove(name string) (err error)
}

// DirFS is a CreateFS of the host file system, rooted at a directory.
// Absolute names are not re-rooted.
type DirFS string

var _ CreateFS = DirFS("")

func (dir DirFS) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(string(dir), name)
}

func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(dir.path(name))
}

func (dir DirFS) Remove(name string) (err error) {
	return os.Remove(dir.path(name))
}

// WriteFile creates name on filesys and fills it with marshal.
// If marshal or the close fails, the file is removed.
func WriteFile(filesys CreateFS, name string, marshal func(w io.Writer) error) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
		if err != nil {
			_ = filesys.Remove(name)
		}
	}()

	err = marshal(file)

	return
}
