package wiki

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v6/plumbing/transport"
)

// ErrPageNotFound is returned by read and delete when the requested page
// does not exist in the wiki. Write and append never return it - they
// create the page instead.
var ErrPageNotFound = errors.New("page does not exist")

// wrapPageNotFound attaches the file name to ErrPageNotFound.
func wrapPageNotFound(fileName string) error {
	return fmt.Errorf("page %s: %w", fileName, ErrPageNotFound)
}

// translateCloneError converts technical clone failures into messages a
// tool caller can act on. The underlying cause stays wrapped so callers
// can still inspect it.
func translateCloneError(remote RemoteWiki, err error) error {
	errStr := strings.ToLower(err.Error())

	// A repository wiki that was never initialized presents as an empty
	// remote - the wiki repository exists but has no commits yet.
	if errors.Is(err, transport.ErrEmptyRemoteRepository) || strings.Contains(errStr, "remote repository is empty") {
		return fmt.Errorf("wiki for %s is not initialized - create the first page through the web UI before using this tool: %w", remote.Slug(), err)
	}

	// Authentication errors
	if containsAuthErrorPatterns(errStr) {
		return fmt.Errorf("authentication rejected for %s - check that the token is valid and has write access to the repository: %w", remote.Slug(), err)
	}

	// Repository not found
	if strings.Contains(errStr, "404") || strings.Contains(errStr, "not found") {
		return fmt.Errorf("wiki repository for %s not found - check the owner and repository name: %w", remote.Slug(), err)
	}

	// Network errors
	if strings.Contains(errStr, "network") || strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout") {
		return fmt.Errorf("network error while cloning wiki for %s: %w", remote.Slug(), err)
	}

	return fmt.Errorf("failed to clone wiki for %s: %w", remote.Slug(), err)
}

// translatePushError converts push failures into actionable messages.
// A non-fast-forward rejection means another writer pushed first; the
// operation is not retried, the caller re-invokes it against the new
// remote state.
func translatePushError(remote RemoteWiki, err error) error {
	errStr := strings.ToLower(err.Error())

	if containsAuthErrorPatterns(errStr) {
		return fmt.Errorf("authentication rejected while pushing to %s - check that the token has write access: %w", remote.Slug(), err)
	}

	if strings.Contains(errStr, "non-fast-forward") || strings.Contains(errStr, "fetch first") {
		return fmt.Errorf("push to %s rejected because the wiki changed concurrently - re-run the operation: %w", remote.Slug(), err)
	}

	return fmt.Errorf("failed to push to wiki for %s: %w", remote.Slug(), err)
}

// containsAuthErrorPatterns checks if a lowercased error message contains
// authentication-related patterns
func containsAuthErrorPatterns(errStr string) bool {
	authPatterns := []string{
		"authentication required",
		"authorization failed",
		"401",
		"unauthorized",
		"403",
		"forbidden",
	}

	for _, pattern := range authPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
