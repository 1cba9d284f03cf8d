package rom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// MaxSize is the largest image accepted after decompression (8MiB, the
// biggest cartridge ROM ever produced).
const MaxSize = 8 << 20

var (
	ErrEmptyArchive = errors.New("archive contains no files")
	ErrTooLarge     = errors.New("rom image too large")
)

// archiveFile is the common view over zip and 7z entries.
type archiveFile struct {
	name  string
	isDir bool
	open  func() (io.ReadCloser, error)
}

// Load reads a ROM image from path, decompressing it when the extension
// names a supported container: .zip, .7z, .gz, .xz or .zst. Anything else is
// returned as is.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	image, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	return image, nil
}

// Decode unpacks data according to the container extension ext (with the
// leading dot, case insensitive).
func Decode(ext string, data []byte) ([]byte, error) {
	var (
		decoder io.Reader
		err     error
	)

	switch strings.ToLower(ext) {
	case ".gz":
		var r *gzip.Reader
		r, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			defer r.Close()
			decoder = r
		}
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zst":
		var r *zstd.Decoder
		r, err = zstd.NewReader(bytes.NewReader(data))
		if err == nil {
			defer r.Close()
			decoder = r
		}
	case ".zip":
		return decodeZip(data)
	case ".7z":
		return decode7z(data)
	default:
		if len(data) > MaxSize {
			return nil, ErrTooLarge
		}
		return data, nil
	}

	if err != nil {
		return nil, err
	}
	return readLimited(decoder)
}

func decodeZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	files := make([]archiveFile, 0, len(r.File))
	for _, f := range r.File {
		files = append(files, archiveFile{name: f.Name, isDir: f.FileInfo().IsDir(), open: f.Open})
	}
	return extract(files)
}

func decode7z(data []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	files := make([]archiveFile, 0, len(r.File))
	for _, f := range r.File {
		files = append(files, archiveFile{name: f.Name, isDir: f.FileInfo().IsDir(), open: f.Open})
	}
	return extract(files)
}

// extract reads the first file with a Game Boy extension, or the first
// regular file when none has one.
func extract(files []archiveFile) ([]byte, error) {
	var chosen *archiveFile
	for i := range files {
		if files[i].isDir {
			continue
		}
		if isImageName(files[i].name) {
			chosen = &files[i]
			break
		}
		if chosen == nil {
			chosen = &files[i]
		}
	}
	if chosen == nil {
		return nil, ErrEmptyArchive
	}

	rc, err := chosen.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return readLimited(rc)
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gb", ".gbc", ".bin":
		return true
	}
	return false
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
