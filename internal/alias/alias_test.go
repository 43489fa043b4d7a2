package alias

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	aidperrors "github.com/thoreinstein/aidp/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name:    "empty content",
			content: "",
			want:    map[string]string{},
		},
		{
			name:    "single alias",
			content: "g=gemini-experimental\n",
			want:    map[string]string{"g": "gemini-experimental"},
		},
		{
			name:    "multiple aliases",
			content: "g=gemini-experimental\nc3=claude-3-sonnet\nd=deepseek-deepseek-chat\n",
			want: map[string]string{
				"g":  "gemini-experimental",
				"c3": "claude-3-sonnet",
				"d":  "deepseek-deepseek-chat",
			},
		},
		{
			name:    "comments and blank lines skipped",
			content: "# header\n\ng=gemini-experimental\n  \n# trailing comment\n",
			want:    map[string]string{"g": "gemini-experimental"},
		},
		{
			name:    "whitespace around key and value trimmed",
			content: "  g  =  gemini-experimental  \n",
			want:    map[string]string{"g": "gemini-experimental"},
		},
		{
			name:    "line without separator skipped",
			content: "not-a-record\ng=gemini-experimental\n",
			want:    map[string]string{"g": "gemini-experimental"},
		},
		{
			name:    "empty key or value skipped",
			content: "=target\nalias=\ng=gemini-experimental\n",
			want:    map[string]string{"g": "gemini-experimental"},
		},
		{
			name:    "duplicate alias last record wins",
			content: "g=old-profile\ng=new-profile\n",
			want:    map[string]string{"g": "new-profile"},
		},
		{
			name:    "value may contain equals sign",
			content: "x=name=with=equals\n",
			want:    map[string]string{"x": "name=with=equals"},
		},
		{
			name:    "no trailing newline",
			content: "g=gemini-experimental",
			want:    map[string]string{"g": "gemini-experimental"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Parse()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "aliases"))

	aliases, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(aliases) != 0 {
		t.Errorf("expected empty mapping for missing file, got %v", aliases)
	}
}

func TestSet_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "aliases"))

	if err := store.Set("c3", "claude-3-sonnet"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := store.Set("g", "gemini-experimental"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	aliases, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if aliases["c3"] != "claude-3-sonnet" || aliases["g"] != "gemini-experimental" {
		t.Errorf("unexpected mapping: %v", aliases)
	}
}

func TestSet_ReplacesExistingTarget(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "aliases"))

	if err := store.Set("g", "old-profile"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("g", "new-profile"); err != nil {
		t.Fatal(err)
	}

	target, found, err := store.Resolve("g")
	if err != nil {
		t.Fatal(err)
	}
	if !found || target != "new-profile" {
		t.Errorf("Resolve(g) = %q, found=%v, want new-profile", target, found)
	}
}

func TestSet_RewritesSortedWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases")
	store := NewStore(path)

	for _, pair := range [][2]string{{"z", "zeta"}, {"a", "alpha"}, {"m", "mid"}} {
		if err := store.Set(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# aider profile aliases\n") {
		t.Errorf("expected header, got:\n%s", content)
	}

	aIdx := strings.Index(content, "a=alpha")
	mIdx := strings.Index(content, "m=mid")
	zIdx := strings.Index(content, "z=zeta")
	if aIdx == -1 || mIdx == -1 || zIdx == -1 {
		t.Fatalf("missing entries in:\n%s", content)
	}
	if !(aIdx < mIdx && mIdx < zIdx) {
		t.Errorf("entries not sorted:\n%s", content)
	}
}

func TestSet_PreservesOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases")
	// Hand-written file with comments; comments are not preserved
	// across rewrites, but entries must be.
	content := "# mine\ng=gemini-experimental\nc3=claude-3-sonnet\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if err := store.Set("d", "deepseek-deepseek-chat"); err != nil {
		t.Fatal(err)
	}

	aliases, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(aliases) != 3 {
		t.Fatalf("expected 3 aliases, got %v", aliases)
	}
}

func TestRemove(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "aliases"))

	if err := store.Set("g", "gemini-experimental"); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove("g"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	_, found, err := store.Resolve("g")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("alias still resolves after Remove")
	}
}

func TestRemove_NotFound(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "aliases"))

	err := store.Remove("nope")
	if !errors.Is(err, aidperrors.ErrAliasNotFound) {
		t.Errorf("Remove() error = %v, want ErrAliasNotFound", err)
	}
}

func TestResolve_Passthrough(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "aliases"))

	// An unregistered name resolves to itself
	target, found, err := store.Resolve("claude-3-sonnet")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected found=false for unregistered name")
	}
	if target != "claude-3-sonnet" {
		t.Errorf("Resolve() = %q, want the input name back", target)
	}
}

func TestByTarget(t *testing.T) {
	aliases := map[string]string{
		"c3": "claude-3-sonnet",
		"c":  "claude-3-sonnet",
		"g":  "gemini-experimental",
	}

	byTarget := ByTarget(aliases)

	got := byTarget["claude-3-sonnet"]
	if len(got) != 2 || got[0] != "c" || got[1] != "c3" {
		t.Errorf("ByTarget()[claude-3-sonnet] = %v, want [c c3]", got)
	}
	if len(byTarget["gemini-experimental"]) != 1 {
		t.Errorf("ByTarget()[gemini-experimental] = %v", byTarget["gemini-experimental"])
	}
}
