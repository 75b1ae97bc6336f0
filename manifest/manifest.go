package manifest

import (
	"fmt"
	"io/ioutil"

	"github.com/devmatteini/dag/models"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

// Entry is one release asset to keep on disk.
type Entry struct {
	Name        string `yaml:"name"`
	Repository  string `yaml:"repository"`
	Select      string `yaml:"select"`
	Tag         string `yaml:"tag"`
	Output      string `yaml:"output"`
	Install     bool   `yaml:"install"`
	InstallFile string `yaml:"install_file"`
	Verify      bool   `yaml:"verify"`

	repository models.Repository
}

func (e Entry) Repo() models.Repository {
	return e.repository
}

type InvalidEntryError struct {
	Index  int
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("entry %d: %s", e.Index, e.Reason)
}

func Load(path string) ([]Entry, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read manifest %s", path)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid manifest %s", path)
	}
	return entries, nil
}

// Parse decodes a YAML list of entries. Every entry needs a repository
// and a select pattern; the name defaults to the repository name.
func Parse(data []byte) ([]Entry, error) {
	entries := []Entry{}
	if err := yaml.UnmarshalStrict(data, &entries); err != nil {
		return nil, err
	}

	for i, entry := range entries {
		repository, err := models.ParseRepository(entry.Repository)
		if err != nil {
			return nil, &InvalidEntryError{Index: i, Reason: err.Error()}
		}
		if entry.Select == "" {
			return nil, &InvalidEntryError{Index: i, Reason: fmt.Sprintf("%s: select is required", repository)}
		}
		if entry.Name == "" {
			entry.Name = repository.Name
		}
		entry.repository = repository
		entries[i] = entry
	}
	return entries, nil
}

// Filter keeps the entry named target. An empty target keeps everything.
func Filter(entries []Entry, target string) []Entry {
	if target == "" {
		return entries
	}

	for _, entry := range entries {
		if entry.Name == target {
			return []Entry{entry}
		}
	}

	return []Entry{}
}
