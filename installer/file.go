package installer

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Compression int

const (
	Gz Compression = iota
	Xz
	Bz2
)

func (c Compression) String() string {
	switch c {
	case Gz:
		return "gz"
	case Xz:
		return "xz"
	case Bz2:
		return "bz2"
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

// FileType is one of Debian, TarArchive, ZipArchive or CompressedFile.
type FileType interface {
	fmt.Stringer
	fileType()
}

type Debian struct{}

type TarArchive struct {
	Compression Compression
}

type ZipArchive struct{}

// CompressedFile is a single compressed payload without an enclosing archive.
type CompressedFile struct {
	Compression Compression
}

func (Debian) fileType()         {}
func (TarArchive) fileType()     {}
func (ZipArchive) fileType()     {}
func (CompressedFile) fileType() {}

func (Debian) String() string           { return "debian package" }
func (t TarArchive) String() string     { return "tar archive (" + t.Compression.String() + ")" }
func (ZipArchive) String() string       { return "zip archive" }
func (f CompressedFile) String() string { return "compressed file (" + f.Compression.String() + ")" }

// FileInfo describes a downloaded file before classification. Name is the
// name the file was published with, Path where it lives on disk.
type FileInfo struct {
	Path         string
	Name         string
	Extension    string
	HasExtension bool
}

func NewFileInfo(name, path string) FileInfo {
	ext, ok := extensionOf(name)
	return FileInfo{
		Path:         path,
		Name:         name,
		Extension:    ext,
		HasExtension: ok,
	}
}

// extensionOf returns what follows the last dot of the base name. Dot files
// such as ".zip" have no extension.
func extensionOf(name string) (string, bool) {
	base := filepath.Base(name)
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}

type SupportedFileInfo struct {
	Path     string
	FileType FileType
}

// NotSupportedError is returned for files whose extension is not one of
// the supported kinds.
type NotSupportedError struct {
	Name string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Name)
}

// Validate classifies file by its extension. Matching is case-sensitive.
func Validate(file FileInfo) (SupportedFileInfo, error) {
	if !file.HasExtension {
		return SupportedFileInfo{}, &NotSupportedError{Name: file.Name}
	}
	fileType, ok := fileTypeFor(file.Extension)
	if !ok {
		return SupportedFileInfo{}, &NotSupportedError{Name: file.Name}
	}
	return SupportedFileInfo{Path: file.Path, FileType: fileType}, nil
}

func fileTypeFor(extension string) (FileType, bool) {
	switch extension {
	case "deb":
		return Debian{}, true
	case "gz", "tgz":
		return TarArchive{Compression: Gz}, true
	case "bz2", "tbz":
		return TarArchive{Compression: Bz2}, true
	case "xz", "txz":
		return TarArchive{Compression: Xz}, true
	case "zip":
		return ZipArchive{}, true
	}
	return nil, false
}
