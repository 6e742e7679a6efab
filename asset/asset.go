// Package asset loads images from a file system and registers them as sprig
// images. Images can be preloaded concurrently.
//
package asset

import (
	"io"
	"strings"

	"github.com/db47h/ofs"
	"github.com/pkg/errors"
)

var errMissingAsset = errors.New("asset not found")

// FileSystem is the file system assets are loaded from. Names are slash
// separated paths.
//
type FileSystem interface {
	Open(name string) (io.ReadCloser, error)
}

type ofsFS struct {
	fs ofs.FileSystem
}

func (o ofsFS) Open(name string) (io.ReadCloser, error) {
	return o.fs.Open(name)
}

// OFS returns a FileSystem that reads files from fs, typically an
// *ofs.Overlay.
//
func OFS(fs ofs.FileSystem) FileSystem {
	return ofsFS{fs}
}

type errorList []error

func (e errorList) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (e errorList) Unwrap() []error {
	return e
}
