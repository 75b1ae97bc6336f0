package manifest

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devmatteini/dag/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sample = `
- repository: devmatteini/dag
  select: dag-{tag}-x86_64-unknown-linux-gnu.tar.gz
  install: true
- name: rg
  repository: BurntSushi/ripgrep
  select: ripgrep-{version}-x86_64-unknown-linux-musl.tar.gz
  tag: 14.1.0
  output: /opt/bin
  install_file: rg
  verify: true
`

func TestParse(t *testing.T) {
	got, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Entry{
		{Name: "dag", Repository: "devmatteini/dag", Select: "dag-{tag}-x86_64-unknown-linux-gnu.tar.gz", Install: true},
		{Name: "rg", Repository: "BurntSushi/ripgrep", Select: "ripgrep-{version}-x86_64-unknown-linux-musl.tar.gz", Tag: "14.1.0", Output: "/opt/bin", InstallFile: "rg", Verify: true},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Entry{})); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if repo := got[1].Repo(); repo != (models.Repository{Owner: "BurntSushi", Name: "ripgrep"}) {
		t.Errorf("Repo() = %v", repo)
	}
}

func TestParse_invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "missing select", data: "- repository: devmatteini/dag\n", wantErr: "select is required"},
		{name: "bad repository", data: "- repository: dag\n  select: dag.zip\n", wantErr: "entry 0"},
		{name: "unknown field", data: "- repository: devmatteini/dag\n  selct: dag.zip\n", wantErr: "selct"},
		{name: "not a list", data: "repository: devmatteini/dag\n", wantErr: "unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dag.yaml")
	if err := ioutil.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Load() returned %d entries, want 2", len(entries))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{{Name: "dag"}, {Name: "rg"}}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "no target", target: "", want: []string{"dag", "rg"}},
		{name: "match", target: "rg", want: []string{"rg"}},
		{name: "no match", target: "fd", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, e := range Filter(entries, tt.target) {
				got = append(got, e.Name)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
