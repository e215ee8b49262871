package manifest

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/blang/semver"
	"gopkg.in/src-d/go-errors.v1"
)

const Filename = "manifest.toml"

// CurrentSDKMajor returns the major version of this SDK.
func CurrentSDKMajor() int { return 1 }

var (
	ErrMissingName    = errors.NewKind("manifest is missing the pack name")
	ErrInvalidVersion = errors.NewKind("invalid pack version %q")
	ErrSDKMismatch    = errors.NewKind("pack requires SDK major %d, running %d")
)

// Maintainer is an author of a snippet pack.
type Maintainer struct {
	Name   string `toml:"name"`
	Email  string `toml:"email"`
	Github string `toml:"github,omitempty"`
}

// Manifest describes a snippet pack: a directory of snippet definition
// files distributed as a unit.
type Manifest struct {
	Name        string       `toml:"name"`
	Version     string       `toml:"version"`
	Description string       `toml:"description,omitempty"`
	SDK         int          `toml:"sdk"`
	Scopes      []string     `toml:"scopes,omitempty"`
	Maintainers []Maintainer `toml:"maintainers,omitempty"`
}

// Load reads and decodes a manifest from the given path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Manifest{}
	if err := m.Decode(f); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) Encode(w io.Writer) error {
	e := toml.NewEncoder(w)
	return e.Encode(m)
}

func (m *Manifest) Decode(r io.Reader) error {
	if _, err := toml.DecodeReader(r, m); err != nil {
		return err
	}

	return nil
}

// Validate checks the fields a registry relies on: a name, a semver version
// when one is set, and an SDK major no newer than the running one.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName.New()
	}
	if m.Version != "" {
		if _, err := semver.Parse(strings.TrimPrefix(m.Version, "v")); err != nil {
			return ErrInvalidVersion.Wrap(err, m.Version)
		}
	}
	if m.SDK > CurrentSDKMajor() {
		return ErrSDKMismatch.New(m.SDK, CurrentSDKMajor())
	}
	return nil
}

// reMaintainer matches a MAINTAINERS line: Name <email> (@github)
var reMaintainer = regexp.MustCompile(`^([^<(]+)\s<([^>]+)>(?:\s\(@([^\)]+)\))?$`)

// parseMaintainers scans lines in the format:
//
//	John Doe <john@domain.com> (@john_at_github)
func parseMaintainers(r io.Reader) []Maintainer {
	var out []Maintainer
	s := bufio.NewScanner(r)
	for s.Scan() {
		sub := reMaintainer.FindStringSubmatch(strings.TrimSpace(s.Text()))
		if sub == nil {
			continue
		}
		out = append(out, Maintainer{
			Name:   strings.TrimSpace(sub[1]),
			Email:  sub[2],
			Github: sub[3],
		})
	}
	return out
}

// LoadMaintainers reads a MAINTAINERS file next to the manifest.
func LoadMaintainers(path string) ([]Maintainer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseMaintainers(f), nil
}
