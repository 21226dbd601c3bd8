// Package config holds runtime options for the wikimcp server.
//
// The server keeps no persisted state: there is no configuration file and
// nothing survives a single tool invocation. Options cover the few knobs
// that are not part of a tool call (git host, commit author identity,
// temp-directory prefix) and can be overridden through environment
// variables, typically supplied via a .env file loaded at startup.
package config

import (
	"os"
	"strings"
)

// Environment variable names recognized by FromEnv.
const (
	EnvGitHost     = "WIKIMCP_GIT_HOST"
	EnvCommitName  = "WIKIMCP_COMMIT_AUTHOR"
	EnvCommitEmail = "WIKIMCP_COMMIT_EMAIL"
)

// Default option values.
const (
	DefaultGitHost     = "github.com"
	DefaultCommitName  = "wikimcp"
	DefaultCommitEmail = "wikimcp@localhost"

	// TempDirPrefix names the per-operation working directories created
	// under the platform temp area. Tests rely on it to detect leaks.
	TempDirPrefix = "wikimcp"
)

// Options holds the runtime configuration for wiki operations.
type Options struct {
	// GitHost is the host serving both the wiki git remotes and the
	// public wiki page URLs (e.g. "github.com").
	GitHost string

	// CommitName and CommitEmail identify the author of commits created
	// by write, append and delete operations.
	CommitName  string
	CommitEmail string
}

// Default returns Options with sensible defaults.
func Default() Options {
	return Options{
		GitHost:     DefaultGitHost,
		CommitName:  DefaultCommitName,
		CommitEmail: DefaultCommitEmail,
	}
}

// FromEnv returns Default() with any WIKIMCP_* environment overrides
// applied. Blank values are ignored.
func FromEnv() Options {
	opts := Default()

	if v := strings.TrimSpace(os.Getenv(EnvGitHost)); v != "" {
		opts.GitHost = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCommitName)); v != "" {
		opts.CommitName = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCommitEmail)); v != "" {
		opts.CommitEmail = v
	}

	return opts
}
