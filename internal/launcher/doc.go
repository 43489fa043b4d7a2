// Package launcher spawns the external aider process.
//
// One subprocess per run invocation; the parent blocks until the child
// exits and reports the child's exit code unchanged. SIGINT and SIGTERM
// are forwarded so the interactive child owns the terminal session.
package launcher
