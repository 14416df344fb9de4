package catz

import (
	"compress/gzip"
	"errors"
	"github.com/gofrs/flock"
	"github.com/rotblauer/polytag/params"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type GZFileWriter struct {
	f      *os.File
	gzw    *gzip.Writer
	fl     *flock.Flock
	locked bool
	closed bool
}

type GZFileWriterConfig struct {
	CompressionLevel int
	Flag             int
	FilePerm         os.FileMode
	DirPerm          os.FileMode
}

func DefaultGZFileWriterConfig() *GZFileWriterConfig {
	return &GZFileWriterConfig{
		CompressionLevel: params.DefaultGZipCompressionLevel,
		Flag:             os.O_WRONLY | os.O_TRUNC | os.O_CREATE,
		FilePerm:         0660,
		DirPerm:          0770,
	}
}

func NewGZFileWriter(path string, config *GZFileWriterConfig) (*GZFileWriter, error) {
	if config == nil {
		config = DefaultGZFileWriterConfig()
	}
	if err := os.MkdirAll(filepath.Dir(path), config.DirPerm); err != nil {
		return nil, err
	}
	fi, err := os.OpenFile(path, config.Flag, config.FilePerm)
	if err != nil {
		return nil, err
	}
	gzw, err := gzip.NewWriterLevel(fi, config.CompressionLevel)
	if err != nil {
		_ = fi.Close()
		return nil, err
	}
	return &GZFileWriter{f: fi, gzw: gzw, fl: flock.New(path)}, nil
}

func (g *GZFileWriter) Write(p []byte) (int, error) {
	if err := g.lock(); err != nil {
		return 0, err
	}
	return g.gzw.Write(p)
}

// lock takes an exclusive lock on the file, blocking other writers
// until Close.
func (g *GZFileWriter) lock() error {
	if g.locked || g.closed {
		return nil
	}
	if err := g.fl.Lock(); err != nil {
		return err
	}
	g.locked = true
	return nil
}

func (g *GZFileWriter) Close() error {
	if g.closed {
		return nil
	}
	defer func() {
		g.closed = true
	}()
	err := g.gzw.Close()
	err = errors.Join(err, g.f.Close())
	if g.locked {
		err = errors.Join(err, g.fl.Unlock())
	}
	return err
}

func (g *GZFileWriter) Path() string {
	return g.f.Name()
}

type GZFileReader struct {
	f      *os.File
	gzr    *gzip.Reader
	closed bool
}

func NewGZFileReader(path string) (*GZFileReader, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gzr, err := gzip.NewReader(fi)
	if err != nil {
		_ = fi.Close()
		return nil, err
	}
	return &GZFileReader{f: fi, gzr: gzr}, nil
}

// Read satisfies the io.Reader interface.
func (g *GZFileReader) Read(p []byte) (int, error) {
	return g.gzr.Read(p)
}

// Close closes the gzip reader and the file.
func (g *GZFileReader) Close() error {
	if g.closed {
		return nil
	}
	defer func() {
		g.closed = true
	}()
	if err := g.gzr.Close(); err != nil {
		_ = g.f.Close()
		return err
	}
	return g.f.Close()
}

func (g *GZFileReader) Path() string {
	return g.f.Name()
}

func IsGZ(path string) bool {
	return strings.HasSuffix(path, params.GZipExt)
}

// Open opens path for reading, transparently gunzipping .gz files.
func Open(path string) (io.ReadCloser, error) {
	if IsGZ(path) {
		return NewGZFileReader(path)
	}
	return os.Open(path)
}

// Create creates (or truncates) path for writing, gzipping .gz files.
func Create(path string) (io.WriteCloser, error) {
	if IsGZ(path) {
		return NewGZFileWriter(path, nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, err
	}
	return os.Create(path)
}
