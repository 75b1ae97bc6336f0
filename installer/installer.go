package installer

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"

	"github.com/devmatteini/dag/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const executableMode os.FileMode = 0755

// ExecutableNotFoundError is returned when an archive has no regular file
// named like the executable to install.
type ExecutableNotFoundError struct {
	Executable string
	Archive    string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("no executable named %s found in %s", e.Executable, e.Archive)
}

// Runner runs an external command, typically the package manager.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Result tells what was installed and where.
type Result struct {
	FileType FileType
	Path     string
}

type Installer struct {
	Fs     afero.Fs
	Runner Runner
	// Sudo prefixes package manager commands with sudo.
	Sudo bool
	// Destination is the directory executables are written to.
	Destination string
	// Executable is the file name looked up in archives and used for
	// single compressed files.
	Executable string
}

func New(destination, executable string) *Installer {
	return &Installer{
		Fs:          afero.NewOsFs(),
		Runner:      ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		Sudo:        os.Geteuid() != 0,
		Destination: destination,
		Executable:  executable,
	}
}

// Install unpacks or installs file according to its type.
func (i *Installer) Install(ctx context.Context, file SupportedFileInfo) (Result, error) {
	log.G(ctx).Debugf("Installing %s as %s", file.Path, file.FileType)

	switch t := file.FileType.(type) {
	case Debian:
		return i.installDebian(ctx, file.Path)
	case TarArchive:
		res, err := i.installTar(file.Path, t.Compression)
		if err == errNotTar {
			log.G(ctx).Debugf("%s is not a tar archive, installing it as a single compressed file", file.Path)
			return i.Install(ctx, SupportedFileInfo{Path: file.Path, FileType: CompressedFile{Compression: t.Compression}})
		}
		return res, err
	case ZipArchive:
		return i.installZip(file.Path)
	case CompressedFile:
		return i.installCompressed(file.Path, t.Compression)
	default:
		return Result{}, errors.Errorf("unknown file type %T", file.FileType)
	}
}

func (i *Installer) installDebian(ctx context.Context, pkg string) (Result, error) {
	name, args := "dpkg", []string{"--install", pkg}
	if i.Sudo {
		name, args = "sudo", append([]string{name}, args...)
	}
	if err := i.Runner.Run(ctx, name, args...); err != nil {
		return Result{}, errors.Wrapf(err, "dpkg failed to install %s", pkg)
	}
	return Result{FileType: Debian{}, Path: pkg}, nil
}

var errNotTar = errors.New("not a tar archive")

func (i *Installer) installTar(archive string, c Compression) (Result, error) {
	f, err := i.Fs.Open(archive)
	if err != nil {
		return Result{}, errors.Wrapf(err, "open %s", archive)
	}
	defer f.Close()

	r, err := decompress(f, c)
	if err != nil {
		return Result{}, errors.Wrapf(err, "decompress %s", archive)
	}

	tr := tar.NewReader(r)
	for first := true; ; first = false {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if first {
				return Result{}, errNotTar
			}
			return Result{}, errors.Wrapf(err, "read %s", archive)
		}
		if !hdr.FileInfo().Mode().IsRegular() || path.Base(hdr.Name) != i.Executable {
			continue
		}
		dest, err := i.writeExecutable(tr)
		if err != nil {
			return Result{}, err
		}
		return Result{FileType: TarArchive{Compression: c}, Path: dest}, nil
	}

	return Result{}, &ExecutableNotFoundError{Executable: i.Executable, Archive: archive}
}

func (i *Installer) installZip(archive string) (Result, error) {
	f, err := i.Fs.Open(archive)
	if err != nil {
		return Result{}, errors.Wrapf(err, "open %s", archive)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Result{}, errors.Wrapf(err, "stat %s", archive)
	}
	zr, err := zip.NewReader(f, stat.Size())
	if err != nil {
		return Result{}, errors.Wrapf(err, "read %s", archive)
	}

	for _, entry := range zr.File {
		if !entry.Mode().IsRegular() || path.Base(entry.Name) != i.Executable {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return Result{}, errors.Wrapf(err, "open %s in %s", entry.Name, archive)
		}
		dest, err := i.writeExecutable(rc)
		rc.Close()
		if err != nil {
			return Result{}, err
		}
		return Result{FileType: ZipArchive{}, Path: dest}, nil
	}

	return Result{}, &ExecutableNotFoundError{Executable: i.Executable, Archive: archive}
}

func (i *Installer) installCompressed(file string, c Compression) (Result, error) {
	f, err := i.Fs.Open(file)
	if err != nil {
		return Result{}, errors.Wrapf(err, "open %s", file)
	}
	defer f.Close()

	r, err := decompress(f, c)
	if err != nil {
		return Result{}, errors.Wrapf(err, "decompress %s", file)
	}
	dest, err := i.writeExecutable(r)
	if err != nil {
		return Result{}, err
	}
	return Result{FileType: CompressedFile{Compression: c}, Path: dest}, nil
}

// writeExecutable stages r next to the destination and only replaces an
// existing executable once the whole payload has been written.
func (i *Installer) writeExecutable(r io.Reader) (string, error) {
	dest := filepath.Join(i.Destination, i.Executable)
	out, err := afero.TempFile(i.Fs, i.Destination, "."+i.Executable+"-*")
	if err != nil {
		return "", errors.Wrapf(err, "create %s", dest)
	}
	tmp := out.Name()

	_, err = io.Copy(out, r)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = i.Fs.Chmod(tmp, executableMode)
	}
	if err == nil {
		err = i.Fs.Rename(tmp, dest)
	}
	if err != nil {
		if rmErr := i.Fs.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			log.L.Warnf("Could not remove %s: %v", tmp, rmErr)
		}
		return "", errors.Wrapf(err, "write %s", dest)
	}
	return dest, nil
}
