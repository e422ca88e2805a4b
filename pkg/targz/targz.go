package targz

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"time"

	"github.com/pkg/errors"
)

type File struct {
	Name    string
	Mode    int64
	ModTime time.Time
	Body    []byte
}

// Pack writes files as a gzipped tarball. Directories are implied by names.
func Pack(output io.Writer, files ...File) error {
	gzipWriter := gzip.NewWriter(output)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, file := range files {
		mode := file.Mode
		if mode == 0 {
			mode = 0o644
		}
		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     file.Name,
			Mode:     mode,
			Size:     int64(len(file.Body)),
			ModTime:  file.ModTime,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return errors.Wrapf(err, "Failed to write header of %s", file.Name)
		}
		if _, err := tarWriter.Write(file.Body); err != nil {
			return errors.Wrapf(err, "Failed to write %s", file.Name)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return errors.Wrap(err, "Failed to close tar")
	}
	return errors.Wrap(gzipWriter.Close(), "Failed to close gzip")
}
