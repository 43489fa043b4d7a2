package alias

import (
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	aidperrors "github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/pkg/fileutil"
)

// fileHeader is written at the top of a rewritten alias file.
const fileHeader = "# aider profile aliases\n# Format: alias=profile-name\n"

// Store reads and writes the alias mapping file.
// The whole file is loaded on every operation; each CLI invocation is a
// fresh process, so there is no cache to invalidate. Writes rewrite the
// file atomically and the last writer wins.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given alias file path.
// The file does not need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the alias file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the alias mapping from disk.
// A missing file yields an empty mapping. Blank lines, '#' comment lines,
// and records without an '=' separator are skipped. When an alias appears
// more than once, the last record wins.
func (s *Store) Load() (map[string]string, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, "reading alias file")
	}
	return Parse(string(data)), nil
}

// Parse parses alias file content into a mapping.
func Parse(content string) map[string]string {
	aliases := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		aliases[key] = value
	}
	return aliases
}

// Set registers or updates an alias and persists the mapping.
// Registering an existing alias replaces its target.
func (s *Store) Set(alias, target string) error {
	aliases, err := s.Load()
	if err != nil {
		return err
	}
	aliases[alias] = target
	return s.save(aliases)
}

// Remove deletes an alias and persists the mapping.
// Returns ErrAliasNotFound if the alias is not registered.
func (s *Store) Remove(alias string) error {
	aliases, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := aliases[alias]; !ok {
		return errors.Wrapf(aidperrors.ErrAliasNotFound, "%q", alias)
	}
	delete(aliases, alias)
	return s.save(aliases)
}

// Resolve returns the target for alias, or the alias itself if it is not
// registered. The second return value reports whether a mapping was found.
func (s *Store) Resolve(alias string) (string, bool, error) {
	aliases, err := s.Load()
	if err != nil {
		return "", false, err
	}
	if target, ok := aliases[alias]; ok {
		return target, true, nil
	}
	return alias, false, nil
}

// save rewrites the alias file atomically with entries in sorted order.
func (s *Store) save(aliases map[string]string) error {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(fileHeader)
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(aliases[k])
		sb.WriteByte('\n')
	}

	if err := fileutil.AtomicWriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return errors.Wrap(err, "writing alias file")
	}
	return nil
}

// ByTarget inverts the mapping: profile name to the aliases pointing at it,
// each list sorted. Used by listings that group aliases under profiles.
func ByTarget(aliases map[string]string) map[string][]string {
	inverted := make(map[string][]string)
	for a, target := range aliases {
		inverted[target] = append(inverted[target], a)
	}
	for _, as := range inverted {
		sort.Strings(as)
	}
	return inverted
}
