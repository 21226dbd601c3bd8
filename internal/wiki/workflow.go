package wiki

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"wikimcp/internal/config"
	"wikimcp/internal/logging"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Workflow executes the five wiki page operations. Each invocation is a
// self-contained unit of work: it resolves the page identity, acquires a
// fresh workspace, performs the local mutation or inspection, pushes when
// mutating, and releases the workspace on every exit path. The workflow
// itself carries no per-wiki state and is safe for concurrent use.
type Workflow struct {
	opts   config.Options
	logger *logging.AppLogger
}

// NewWorkflow creates a workflow bound to the given options and logger.
func NewWorkflow(opts config.Options, logger *logging.AppLogger) *Workflow {
	return &Workflow{
		opts:   opts,
		logger: logger,
	}
}

// WriteResult is the success payload of WritePage.
type WriteResult struct {
	FileName string `json:"fileName"`
	PageURL  string `json:"pageUrl"`
}

// ReadResult is the success payload of ReadPage.
type ReadResult struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

// AppendResult is the success payload of AppendToPage.
type AppendResult struct {
	FileName string `json:"fileName"`
}

// DeleteResult is the success payload of DeletePage.
type DeleteResult struct {
	FileName string `json:"fileName"`
}

// PageRecord describes one wiki page in a ListPages result.
type PageRecord struct {
	Name string `json:"name"` // title form, extension stripped
	Path string `json:"path"` // file name
	Size int64  `json:"size"` // size in bytes
}

// WritePage creates or overwrites a page with the given content and
// pushes the change. An empty commitMessage defaults to "Update <file>".
func (wf *Workflow) WritePage(ctx context.Context, remote RemoteWiki, title, content, commitMessage string) (WriteResult, error) {
	fileName := NormalizePageName(title)
	if commitMessage == "" {
		commitMessage = "Update " + fileName
	}

	ws, err := AcquireWorkspace(ctx, remote, wf.opts, wf.logger)
	if err != nil {
		return WriteResult{}, err
	}
	defer ws.Release()

	if err := os.WriteFile(ws.PagePath(fileName), []byte(content), 0o644); err != nil {
		return WriteResult{}, fmt.Errorf("failed to write page file %s: %w", fileName, err)
	}

	if err := ws.CommitAndPush(ctx, fileName, commitMessage, false, wf.opts); err != nil {
		return WriteResult{}, err
	}

	wf.logger.Info("Wiki page written", "wiki", remote.Slug(), "file", fileName)
	return WriteResult{
		FileName: fileName,
		PageURL:  remote.PageURL(wf.opts.GitHost, fileName),
	}, nil
}

// ReadPage returns the full contents of a page. A missing page is a
// reported failure wrapping ErrPageNotFound, never a success with empty
// content.
func (wf *Workflow) ReadPage(ctx context.Context, remote RemoteWiki, title string) (ReadResult, error) {
	fileName := NormalizePageName(title)

	ws, err := AcquireWorkspace(ctx, remote, wf.opts, wf.logger)
	if err != nil {
		return ReadResult{}, err
	}
	defer ws.Release()

	exists, err := ws.PageExists(fileName)
	if err != nil {
		return ReadResult{}, err
	}
	if !exists {
		return ReadResult{}, wrapPageNotFound(fileName)
	}

	content, err := os.ReadFile(ws.PagePath(fileName))
	if err != nil {
		return ReadResult{}, fmt.Errorf("failed to read page file %s: %w", fileName, err)
	}

	return ReadResult{
		FileName: fileName,
		Content:  string(content),
	}, nil
}

// AppendToPage appends content to a page, creating the page when it does
// not exist. Existing non-empty content is separated from the appended
// content by a blank line; an absent page or a zero-length existing file
// gets the appended content verbatim, with no leading separator. An
// empty commitMessage defaults to "Append to <file>".
func (wf *Workflow) AppendToPage(ctx context.Context, remote RemoteWiki, title, content, commitMessage string) (AppendResult, error) {
	fileName := NormalizePageName(title)
	if commitMessage == "" {
		commitMessage = "Append to " + fileName
	}

	ws, err := AcquireWorkspace(ctx, remote, wf.opts, wf.logger)
	if err != nil {
		return AppendResult{}, err
	}
	defer ws.Release()

	existing, err := os.ReadFile(ws.PagePath(fileName))
	if err != nil && !os.IsNotExist(err) {
		return AppendResult{}, fmt.Errorf("failed to read page file %s: %w", fileName, err)
	}

	newContent := content
	if len(existing) > 0 {
		newContent = string(existing) + "\n\n" + content
	}

	if err := os.WriteFile(ws.PagePath(fileName), []byte(newContent), 0o644); err != nil {
		return AppendResult{}, fmt.Errorf("failed to write page file %s: %w", fileName, err)
	}

	if err := ws.CommitAndPush(ctx, fileName, commitMessage, false, wf.opts); err != nil {
		return AppendResult{}, err
	}

	wf.logger.Info("Wiki page appended", "wiki", remote.Slug(), "file", fileName)
	return AppendResult{FileName: fileName}, nil
}

// ListPages enumerates the markdown pages at the root of the wiki store.
// Results are sorted ascending by title-form name using English
// collation, which orders case-insensitively first ("a" before "B") and
// breaks exact ties by case, so the ordering is deterministic.
func (wf *Workflow) ListPages(ctx context.Context, remote RemoteWiki) ([]PageRecord, error) {
	ws, err := AcquireWorkspace(ctx, remote, wf.opts, wf.logger)
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	entries, err := os.ReadDir(ws.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list working directory: %w", err)
	}

	records := make([]PageRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PageExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		records = append(records, PageRecord{
			Name: PageTitle(entry.Name()),
			Path: entry.Name(),
			Size: info.Size(),
		})
	}

	coll := collate.New(language.English)
	sort.SliceStable(records, func(i, j int) bool {
		return coll.CompareString(records[i].Name, records[j].Name) < 0
	})

	return records, nil
}

// DeletePage removes a page and pushes the removal. Deleting a page that
// does not exist is a reported failure wrapping ErrPageNotFound, not a
// silent no-op. An empty commitMessage defaults to "Delete <file>".
func (wf *Workflow) DeletePage(ctx context.Context, remote RemoteWiki, title, commitMessage string) (DeleteResult, error) {
	fileName := NormalizePageName(title)
	if commitMessage == "" {
		commitMessage = "Delete " + fileName
	}

	ws, err := AcquireWorkspace(ctx, remote, wf.opts, wf.logger)
	if err != nil {
		return DeleteResult{}, err
	}
	defer ws.Release()

	exists, err := ws.PageExists(fileName)
	if err != nil {
		return DeleteResult{}, err
	}
	if !exists {
		return DeleteResult{}, wrapPageNotFound(fileName)
	}

	if err := ws.CommitAndPush(ctx, fileName, commitMessage, true, wf.opts); err != nil {
		return DeleteResult{}, err
	}

	wf.logger.Info("Wiki page deleted", "wiki", remote.Slug(), "file", fileName)
	return DeleteResult{FileName: fileName}, nil
}
