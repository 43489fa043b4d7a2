package profile

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	aidperrors "github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/internal/paths"
)

// Profile describes one configuration file in the profile directory.
// The content is opaque to aidp; only the name and location matter.
type Profile struct {
	// Name is the filename without the .yml extension.
	Name string

	// Path is the absolute path of the profile file.
	Path string
}

// Store provides access to the profile directory.
type Store struct {
	dir string
}

// NewStore creates a Store for the given profile directory.
// The directory does not need to exist yet.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the profile directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path a profile with the given name would have.
func (s *Store) Path(name string) string {
	return paths.ProfilePath(s.dir, name)
}

// Exists reports whether a profile file with the given name exists.
func (s *Store) Exists(name string) bool {
	if !paths.ValidName(name) {
		return false
	}
	info, err := os.Stat(s.Path(name))
	return err == nil && !info.IsDir()
}

// Get returns the profile with the given name.
// Returns ErrProfileNotFound if no such file exists.
func (s *Store) Get(name string) (*Profile, error) {
	if !paths.ValidName(name) {
		return nil, errors.Wrapf(aidperrors.ErrInvalidName, "%q", name)
	}
	p := s.Path(name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return nil, errors.Wrapf(aidperrors.ErrProfileNotFound, "%q", name)
	}
	return &Profile{Name: name, Path: p}, nil
}

// List returns all profiles in the directory, sorted by name.
// A missing directory yields an empty list; other read failures are errors.
func (s *Store) List() ([]Profile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading profile directory")
	}

	var profiles []Profile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, paths.ProfileExt) {
			continue
		}
		stem := strings.TrimSuffix(name, paths.ProfileExt)
		profiles = append(profiles, Profile{
			Name: stem,
			Path: filepath.Join(s.dir, name),
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

// Init creates the profile directory and seeds it with the bundled example
// profiles and a default alias file. Existing files are never overwritten,
// so running Init repeatedly is safe even after the user has edited the
// seeded profiles.
//
// Returns the names of the profiles that were written.
func (s *Store) Init() ([]string, error) {
	if err := paths.EnsureDir(s.dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating profile directory")
	}

	templates, err := fs.ReadDir(templatesFS, "templates")
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded templates")
	}

	var seeded []string
	for _, tmpl := range templates {
		dst := filepath.Join(s.dir, tmpl.Name())
		if _, err := os.Stat(dst); err == nil {
			continue // user file stays untouched
		}

		data, err := fs.ReadFile(templatesFS, "templates/"+tmpl.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "reading template %s", tmpl.Name())
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return nil, errors.Wrapf(err, "writing %s", dst)
		}
		seeded = append(seeded, strings.TrimSuffix(tmpl.Name(), paths.ProfileExt))
	}

	aliasPath := paths.AliasFile(s.dir)
	if _, err := os.Stat(aliasPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(aliasPath, []byte(defaultAliases), 0o644); err != nil {
			return nil, errors.Wrap(err, "writing default aliases")
		}
	}

	return seeded, nil
}
