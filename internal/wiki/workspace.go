package wiki

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wikimcp/internal/config"
	"wikimcp/internal/logging"

	git "github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// Workspace is an exclusively-owned, ephemeral working copy of a remote
// wiki store. Every operation acquires its own workspace under the
// platform temp area and releases it before returning; no two operations
// ever share one, so concurrent invocations do not contend on local
// state. A workspace must never be referenced after Release.
type Workspace struct {
	// Path is the root of the working copy. Wiki pages are flat files
	// directly under it.
	Path string

	repo     *git.Repository
	remote   RemoteWiki
	logger   *logging.AppLogger
	released bool
}

// AcquireWorkspace allocates a uniquely named temporary directory and
// clones the remote wiki store into it, full history included.
//
// If the clone fails (store missing, wiki never initialized, bad
// credential, network failure) the partially-created directory is
// removed before the error returns, wrapped with a descriptive message.
// The failure is terminal for the calling operation - there is no retry.
func AcquireWorkspace(ctx context.Context, remote RemoteWiki, opts config.Options, logger *logging.AppLogger) (*Workspace, error) {
	if err := remote.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wiki identity: %w", err)
	}

	dir, err := os.MkdirTemp("", config.TempDirPrefix+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate working directory: %w", err)
	}

	logger.Debug("Cloning wiki into working directory", "wiki", remote.Slug(), "path", dir)

	repo, err := git.PlainCloneContext(ctx, dir, &git.CloneOptions{
		URL: remote.cloneURL(opts.GitHost),
	})
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logger.Warn("Failed to remove working directory after clone failure", "path", dir, "error", rmErr)
		}
		return nil, translateCloneError(remote, err)
	}

	return &Workspace{
		Path:   dir,
		repo:   repo,
		remote: remote,
		logger: logger,
	}, nil
}

// Release removes the working copy, recursively and best-effort. A
// removal failure is logged as a warning and never propagates - the
// outcome of the operation that owned the workspace is unaffected.
// Release runs at most once; extra calls are no-ops, so it is safe to
// defer it on every exit path.
func (ws *Workspace) Release() {
	if ws == nil || ws.released {
		return
	}
	ws.released = true

	if err := os.RemoveAll(ws.Path); err != nil {
		ws.logger.Warn("Failed to remove working directory", "path", ws.Path, "error", err)
		return
	}
	ws.logger.Debug("Working directory removed", "path", ws.Path)
}

// PagePath returns the absolute path of a page file inside the working
// copy.
func (ws *Workspace) PagePath(fileName string) string {
	return filepath.Join(ws.Path, fileName)
}

// PageExists reports whether a page file is present in the working copy.
func (ws *Workspace) PageExists(fileName string) (bool, error) {
	_, err := os.Stat(ws.PagePath(fileName))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat page file: %w", err)
}

// CommitAndPush stages the given page file, commits with the message and
// pushes the commit back to the remote store's default branch.
//
// Staging uses git add semantics for writes and git rm semantics when
// remove is set. The commit allows an empty diff so that overwriting a
// page with identical content still completes instead of failing on a
// clean tree. The push targets the branch the clone checked out (the
// remote's default branch - "master" for GitHub wikis) and is not
// retried on rejection.
func (ws *Workspace) CommitAndPush(ctx context.Context, fileName, message string, remove bool, opts config.Options) error {
	worktree, err := ws.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get working tree: %w", err)
	}

	if remove {
		if _, err := worktree.Remove(fileName); err != nil {
			return fmt.Errorf("failed to stage removal of %s: %w", fileName, err)
		}
	} else {
		if _, err := worktree.Add(fileName); err != nil {
			return fmt.Errorf("failed to stage %s: %w", fileName, err)
		}
	}

	_, err = worktree.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  opts.CommitName,
			Email: opts.CommitEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", fileName, err)
	}

	head, err := ws.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	refSpec := gitconfig.RefSpec(head.Name().String() + ":" + head.Name().String())
	err = ws.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return translatePushError(ws.remote, err)
	}

	ws.logger.Debug("Pushed commit to wiki", "wiki", ws.remote.Slug(), "file", fileName)
	return nil
}
