package wiki

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// newBareWikiOrigin initializes a bare repository that stands in for a
// remote wiki store. Returns the path to the bare repository.
func newBareWikiOrigin(t *testing.T) string {
	t.Helper()

	originPath := t.TempDir()
	if _, err := git.PlainInit(originPath, true); err != nil {
		t.Fatalf("failed to init bare origin: %v", err)
	}

	return originPath
}

// seedWikiOrigin pushes an initial commit containing the given pages to
// the bare origin, on the "master" branch like a real GitHub wiki.
func seedWikiOrigin(t *testing.T, originPath string, pages map[string]string) {
	t.Helper()

	repoPath := t.TempDir()

	repo, err := git.PlainInit(repoPath, false)
	if err != nil {
		t.Fatalf("failed to init seed repo: %v", err)
	}

	// PlainInit leaves an unborn HEAD pointing at refs/heads/master, so
	// the first commit lands on master without an explicit checkout.
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(repoPath, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write seed page %s: %v", name, err)
		}
		if _, err := worktree.Add(name); err != nil {
			t.Fatalf("failed to add seed page %s: %v", name, err)
		}
	}

	if _, err := worktree.Commit("seed wiki", &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	}); err != nil {
		t.Fatalf("failed to commit seed pages: %v", err)
	}

	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{originPath},
	}); err != nil {
		t.Fatalf("failed to add origin remote: %v", err)
	}

	refSpec := gitconfig.RefSpec(
		plumbing.NewBranchReferenceName("master").String() +
			":" +
			plumbing.NewBranchReferenceName("master").String(),
	)

	if err := repo.Push(&git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	}); err != nil && err != git.NoErrAlreadyUpToDate {
		t.Fatalf("failed to push seed commit: %v", err)
	}
}

// advanceWikiOrigin pushes a new commit with the given pages on top of
// the origin's current history, standing in for a concurrent writer.
func advanceWikiOrigin(t *testing.T, originPath string, pages map[string]string) {
	t.Helper()

	clonePath := t.TempDir()
	repo, err := git.PlainClone(clonePath, &git.CloneOptions{
		URL: originPath,
	})
	if err != nil {
		t.Fatalf("failed to clone origin for advancing: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(clonePath, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write page %s: %v", name, err)
		}
		if _, err := worktree.Add(name); err != nil {
			t.Fatalf("failed to add page %s: %v", name, err)
		}
	}

	if _, err := worktree.Commit("concurrent update", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	}); err != nil {
		t.Fatalf("failed to commit concurrent update: %v", err)
	}

	if err := repo.Push(&git.PushOptions{RemoteName: "origin"}); err != nil {
		t.Fatalf("failed to push concurrent update: %v", err)
	}
}

// seededWikiOrigin creates a bare origin pre-populated with the given
// pages and returns a RemoteWiki pointing at it.
func seededWikiOrigin(t *testing.T, pages map[string]string) RemoteWiki {
	t.Helper()

	originPath := newBareWikiOrigin(t)
	seedWikiOrigin(t, originPath, pages)

	return RemoteWiki{
		Owner:    "acme",
		Repo:     "docs",
		CloneURL: originPath,
	}
}

// readOriginPage clones the origin into a fresh temp dir and reads the
// given page file, so tests verify what was actually pushed. The second
// return value reports whether the file exists in the clone.
func readOriginPage(t *testing.T, originPath, fileName string) (string, bool) {
	t.Helper()

	clonePath := t.TempDir()
	if _, err := git.PlainClone(clonePath, &git.CloneOptions{
		URL: originPath,
	}); err != nil {
		t.Fatalf("failed to clone origin for verification: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(clonePath, fileName))
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		t.Fatalf("failed to read page from verification clone: %v", err)
	}

	return string(content), true
}

// originHeadMessage returns the commit message at the origin's HEAD.
func originHeadMessage(t *testing.T, originPath string) string {
	t.Helper()

	repo, err := git.PlainOpen(originPath)
	if err != nil {
		t.Fatalf("failed to open origin: %v", err)
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("failed to resolve origin HEAD: %v", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("failed to read origin HEAD commit: %v", err)
	}

	return commit.Message
}

// countWorkingDirs counts wikimcp working directories currently present
// in the platform temp area. Tests compare counts before and after an
// operation to detect leaked working copies.
func countWorkingDirs(t *testing.T) int {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "wikimcp-*"))
	if err != nil {
		t.Fatalf("failed to glob temp dir: %v", err)
	}

	return len(matches)
}
