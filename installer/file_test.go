package installer

import (
	"testing"

	"github.com/pkg/errors"
)

func TestValidate_supportedFile(t *testing.T) {
	tests := []struct {
		name string
		want FileType
	}{
		{name: "x.deb", want: Debian{}},
		{name: "x.tar.gz", want: TarArchive{Compression: Gz}},
		{name: "x.tgz", want: TarArchive{Compression: Gz}},
		{name: "x.tar.bz2", want: TarArchive{Compression: Bz2}},
		{name: "x.tbz", want: TarArchive{Compression: Bz2}},
		{name: "x.tar.xz", want: TarArchive{Compression: Xz}},
		{name: "x.txz", want: TarArchive{Compression: Xz}},
		{name: "x.zip", want: ZipArchive{}},
		{name: "dir.v2/x.zip", want: ZipArchive{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(NewFileInfo(tt.name, "/tmp/"+tt.name))
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got.FileType != tt.want {
				t.Errorf("Validate() = %v, want %v", got.FileType, tt.want)
			}
			if got.Path != "/tmp/"+tt.name {
				t.Errorf("Path = %v", got.Path)
			}
		})
	}
}

func TestValidate_notSupported(t *testing.T) {
	for _, name := range []string{"x.txt", "x", "x.ZIP", "x.Deb", ".zip", "x.", "x.tar"} {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(NewFileInfo(name, name))
			var notSupported *NotSupportedError
			if !errors.As(err, &notSupported) {
				t.Fatalf("expected *NotSupportedError, got %v", err)
			}
			if notSupported.Name != name {
				t.Errorf("Name = %v, want %v", notSupported.Name, name)
			}
		})
	}
}

func TestValidate_deterministic(t *testing.T) {
	for _, ext := range []string{"deb", "gz", "tgz", "bz2", "tbz", "xz", "txz", "zip"} {
		info := FileInfo{Name: "ANY", Extension: ext, HasExtension: true}
		first, err := Validate(info)
		if err != nil {
			t.Fatalf("Validate(%s) error = %v", ext, err)
		}
		for i := 0; i < 3; i++ {
			again, _ := Validate(info)
			if again.FileType != first.FileType {
				t.Errorf("Validate(%s) = %v then %v", ext, first.FileType, again.FileType)
			}
		}
	}
}

func TestNewFileInfo(t *testing.T) {
	tests := []struct {
		name    string
		wantExt string
		wantOk  bool
	}{
		{name: "tool.tar.gz", wantExt: "gz", wantOk: true},
		{name: "tool", wantOk: false},
		{name: ".bashrc", wantOk: false},
		{name: "tool.", wantExt: "", wantOk: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFileInfo(tt.name, "p")
			if got.Extension != tt.wantExt || got.HasExtension != tt.wantOk {
				t.Errorf("NewFileInfo() = (%q, %v), want (%q, %v)", got.Extension, got.HasExtension, tt.wantExt, tt.wantOk)
			}
		})
	}
}
