package doctor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/thoreinstein/aidp/internal/alias"
	"github.com/thoreinstein/aidp/internal/paths"
	"github.com/thoreinstein/aidp/internal/profile"
)

// BinaryCheck verifies that the configured aider executable is on PATH.
type BinaryCheck struct {
	// Bin is the executable name or path to check.
	Bin string
}

var _ Check = (*BinaryCheck)(nil)

// Name returns the unique identifier for this check.
func (c *BinaryCheck) Name() string {
	return "aider-binary"
}

// Category returns the grouping for this check.
func (c *BinaryCheck) Category() string {
	return "launcher"
}

// Run executes the binary lookup check.
func (c *BinaryCheck) Run() *CheckResult {
	path, err := exec.LookPath(c.Bin)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%q not found on PATH", c.Bin),
			FixHint:  "Install aider (https://aider.chat) or set aider_bin in ~/.config/aidp/config.yaml",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%q resolves to %s", c.Bin, path),
		Details:  map[string]any{"path": path},
	}
}

// ProfileDirCheck verifies the profile directory exists and is readable.
type ProfileDirCheck struct {
	// Dir is the profile directory to check.
	Dir string
}

var _ Check = (*ProfileDirCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ProfileDirCheck) Name() string {
	return "profile-dir"
}

// Category returns the grouping for this check.
func (c *ProfileDirCheck) Category() string {
	return "profiles"
}

// Run executes the profile directory check.
func (c *ProfileDirCheck) Run() *CheckResult {
	info, err := os.Stat(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &CheckResult{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityWarning,
				Message:  fmt.Sprintf("profile directory %s does not exist", c.Dir),
				FixHint:  "Run: aidp init",
			}
		}
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot access %s: %v", c.Dir, err),
		}
	}

	if !info.IsDir() {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%s exists but is not a directory", c.Dir),
		}
	}

	profiles, err := profile.NewStore(c.Dir).List()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot read %s: %v", c.Dir, err),
		}
	}

	if len(profiles) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  fmt.Sprintf("%s contains no profiles", c.Dir),
			FixHint:  "Run 'aidp init' to seed example profiles",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d profile(s) in %s", len(profiles), c.Dir),
		Details:  map[string]any{"count": len(profiles)},
	}
}

// AliasCheck verifies that every registered alias targets an existing profile.
type AliasCheck struct {
	// Dir is the profile directory holding the alias file.
	Dir string
}

var _ Check = (*AliasCheck)(nil)

// Name returns the unique identifier for this check.
func (c *AliasCheck) Name() string {
	return "alias-targets"
}

// Category returns the grouping for this check.
func (c *AliasCheck) Category() string {
	return "profiles"
}

// Run executes the alias target check.
func (c *AliasCheck) Run() *CheckResult {
	aliases, err := alias.NewStore(paths.AliasFile(c.Dir)).Load()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot read alias file: %v", err),
		}
	}

	profiles := profile.NewStore(c.Dir)
	var dangling []string
	for a, target := range aliases {
		if !profiles.Exists(target) {
			dangling = append(dangling, fmt.Sprintf("%s=%s", a, target))
		}
	}

	if len(dangling) > 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("%d alias(es) point at missing profiles", len(dangling)),
			Details:  map[string]any{"dangling": dangling},
			FixHint:  "Remove the alias or create the missing profile",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d alias(es), all targets resolve", len(aliases)),
		Details:  map[string]any{"count": len(aliases)},
	}
}
