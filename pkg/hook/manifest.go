package hook

import (
	"fmt"
	"os"
	"strings"

	"github.com/Mause/tuya-graphing/pkg/errors"
	version "github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// HookRef is one hook id inside a source entry, with its optional argument
// and extra-dependency lists.
type HookRef struct {
	ID                     string   `yaml:"id"`
	Args                   []string `yaml:"args,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
}

// SourceEntry names a hook source: where it comes from, which revision is
// pinned, and which hooks of it are enabled.
type SourceEntry struct {
	Repo  string    `yaml:"repo"`
	Rev   string    `yaml:"rev"`
	Hooks []HookRef `yaml:"hooks"`
}

// Manifest is the ordered list of source entries. Entries are independent of
// each other; their order matters only as execution sequence.
type Manifest struct {
	Repos []SourceEntry `yaml:"repos"`
}

// LoadManifest reads and validates a manifest. Callers load it once per
// invocation; later file changes are not observed.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrManifestParse, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every entry for a repo, a rev, and unique hook ids.
func (m *Manifest) Validate() error {
	for i, entry := range m.Repos {
		if entry.Repo == "" {
			return errors.Wrapf(errors.ErrManifestValidate, "entry %d: repo is required", i)
		}
		if entry.Rev == "" {
			return errors.Wrapf(errors.ErrManifestValidate, "entry %d (%s): rev is required", i, entry.Repo)
		}
		if len(entry.Hooks) == 0 {
			return errors.Wrapf(errors.ErrManifestValidate, "entry %d (%s): at least one hook is required", i, entry.Repo)
		}

		seen := map[string]struct{}{}
		for _, h := range entry.Hooks {
			if h.ID == "" {
				return errors.Wrapf(errors.ErrManifestValidate, "entry %d (%s): hook id is required", i, entry.Repo)
			}
			if _, dup := seen[h.ID]; dup {
				return errors.Wrapf(errors.ErrManifestValidate, "entry %d (%s): duplicate hook id %s", i, entry.Repo, h.ID)
			}
			seen[h.ID] = struct{}{}
		}
	}
	return nil
}

// HookIDs returns every hook id across all entries, in manifest order.
func (m *Manifest) HookIDs() []string {
	var ids []string
	for _, entry := range m.Repos {
		for _, h := range entry.Hooks {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

// Version parses the pinned revision as a semantic version. Revisions that
// are not version-shaped (branch names, commit hashes) return an error.
func (e SourceEntry) Version() (*version.Version, error) {
	return version.NewVersion(strings.TrimPrefix(e.Rev, "v"))
}

// Outdated reports whether the entry pins a version older than minimum.
// Non-version revisions are never considered outdated.
func (e SourceEntry) Outdated(minimum *version.Version) bool {
	v, err := e.Version()
	if err != nil {
		return false
	}
	return v.LessThan(minimum)
}

// CheckResult is one entry's revision report.
type CheckResult struct {
	Repo       string
	Rev        string
	Version    *version.Version
	VersionErr error
}

// Check parses every entry's revision, reporting which are version-shaped.
func (m *Manifest) Check() []CheckResult {
	results := make([]CheckResult, 0, len(m.Repos))
	for _, entry := range m.Repos {
		v, err := entry.Version()
		results = append(results, CheckResult{
			Repo:       entry.Repo,
			Rev:        entry.Rev,
			Version:    v,
			VersionErr: err,
		})
	}
	return results
}
