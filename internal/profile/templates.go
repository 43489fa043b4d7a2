package profile

import "embed"

// Example profiles shipped with aidp, seeded by `aidp init`.
// Embedded at build time so they are available in all distributions.
//
//go:embed templates/*.yml
var templatesFS embed.FS

// defaultAliases is the alias file seeded by `aidp init` when no alias
// file exists yet. One short alias per bundled example profile.
const defaultAliases = `# aider profile aliases
# Format: alias=profile-name

g=gemini-experimental
c3=claude-3-sonnet
d=deepseek-deepseek-chat
`
