package wiki

import (
	"fmt"
	"strings"
)

// RemoteWiki identifies the wiki store of a single repository and how to
// authenticate against it. A value is immutable for the duration of one
// operation and never persisted.
//
// GitHub keeps a repository's wiki in a separate bare repository named
// "<repo>.wiki.git" next to the main repository; authentication happens
// solely through the token embedded in the clone URL's userinfo
// component. There is no SSH or header-based alternative.
type RemoteWiki struct {
	Owner string // repository owner (user or organization)
	Repo  string // repository name, without the .wiki suffix
	Token string // personal access token with write access

	// CloneURL overrides the derived clone address when set. Tests use
	// it to point operations at a local bare repository instead of a
	// hosted wiki.
	CloneURL string
}

// Validate checks that the identity is complete enough to derive a clone
// address. The token is not required when CloneURL is overridden.
func (rw RemoteWiki) Validate() error {
	if rw.CloneURL != "" {
		return nil
	}
	if strings.TrimSpace(rw.Owner) == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if strings.TrimSpace(rw.Repo) == "" {
		return fmt.Errorf("repo cannot be empty")
	}
	if strings.TrimSpace(rw.Token) == "" {
		return fmt.Errorf("token cannot be empty")
	}
	return nil
}

// cloneURL returns the address of the wiki store for the given host,
// with the credential as the userinfo component. Never log the result.
func (rw RemoteWiki) cloneURL(host string) string {
	if rw.CloneURL != "" {
		return rw.CloneURL
	}
	return fmt.Sprintf("https://%s@%s/%s/%s.wiki.git", rw.Token, host, rw.Owner, rw.Repo)
}

// Slug returns "owner/repo" for log and error messages. It carries no
// credential and is safe to print.
func (rw RemoteWiki) Slug() string {
	if rw.Owner == "" && rw.Repo == "" {
		return rw.CloneURL
	}
	return rw.Owner + "/" + rw.Repo
}

// PageURL returns the public URL of a wiki page on the given host.
func (rw RemoteWiki) PageURL(host, fileName string) string {
	return fmt.Sprintf("https://%s/%s/%s/wiki/%s", host, rw.Owner, rw.Repo, PageTitle(fileName))
}
