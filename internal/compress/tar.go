package compress

import (
	"archive/tar"
	"bytes"
	"io"
	"time"
)

// TarWriter packs a single file into a TAR archive.
// The content is buffered until Close, since the header carries the size.
type TarWriter struct {
	w        io.Writer
	fileName string
	buf      bytes.Buffer
}

// NewTarWriter creates a new TarWriter with the specified file name inside the archive.
func NewTarWriter(w io.Writer, fileName string) *TarWriter {
	return &TarWriter{w: w, fileName: fileName}
}

// Write buffers data for the file inside the TAR archive.
func (t *TarWriter) Write(p []byte) (int, error) {
	return t.buf.Write(p)
}

// Close writes the header, the buffered content and the archive trailer.
func (t *TarWriter) Close() error {
	tw := tar.NewWriter(t.w)
	hdr := &tar.Header{
		Name:     t.fileName,
		Mode:     0o644,
		Size:     int64(t.buf.Len()),
		ModTime:  time.Now(),
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := tw.Write(t.buf.Bytes()); err != nil {
		return err
	}
	return tw.Close()
}
