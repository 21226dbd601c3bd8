package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wikimcp/internal/wiki"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names as advertised to MCP clients.
const (
	ToolWriteWikiPage    = "write_wiki_page"
	ToolReadWikiPage     = "read_wiki_page"
	ToolAppendToWikiPage = "append_to_wiki_page"
	ToolListWikiPages    = "list_wiki_pages"
	ToolDeleteWikiPage   = "delete_wiki_page"
)

// successEnvelope is the JSON body of every successful tool response.
type successEnvelope struct {
	Success bool `json:"success"`
	Result  any  `json:"result"`
}

// failureEnvelope is the JSON body of every failed tool response. The
// protocol-level IsError flag is set alongside it.
type failureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func successResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(successEnvelope{Success: true, Result: payload})
	if err != nil {
		return failureResult(fmt.Errorf("failed to encode result: %w", err))
	}
	return mcp.NewToolResultText(string(data)), nil
}

func failureResult(opErr error) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(failureEnvelope{Success: false, Error: opErr.Error()})
	if err != nil {
		return mcp.NewToolResultError(opErr.Error()), nil
	}
	return mcp.NewToolResultError(string(data)), nil
}

// requireArg fetches a required string argument and rejects missing,
// mistyped or blank values with a descriptive message.
func requireArg(req mcp.CallToolRequest, key string) (string, error) {
	val, err := req.RequireString(key)
	if err != nil {
		return "", fmt.Errorf("invalid %s argument: %w", key, err)
	}
	if strings.TrimSpace(val) == "" {
		return "", fmt.Errorf("%s must not be blank", key)
	}
	return val, nil
}

// remoteFromRequest builds the wiki identity shared by every tool from the
// owner, repo and token arguments.
func remoteFromRequest(req mcp.CallToolRequest) (wiki.RemoteWiki, error) {
	owner, err := requireArg(req, "owner")
	if err != nil {
		return wiki.RemoteWiki{}, err
	}
	repo, err := requireArg(req, "repo")
	if err != nil {
		return wiki.RemoteWiki{}, err
	}
	token, err := requireArg(req, "token")
	if err != nil {
		return wiki.RemoteWiki{}, err
	}
	return wiki.RemoteWiki{Owner: owner, Repo: repo, Token: token}, nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(writeWikiPageTool(), s.handleWriteWikiPage)
	s.mcpServer.AddTool(readWikiPageTool(), s.handleReadWikiPage)
	s.mcpServer.AddTool(appendToWikiPageTool(), s.handleAppendToWikiPage)
	s.mcpServer.AddTool(listWikiPagesTool(), s.handleListWikiPages)
	s.mcpServer.AddTool(deleteWikiPageTool(), s.handleDeleteWikiPage)
}

func writeWikiPageTool() mcp.Tool {
	return mcp.NewTool(ToolWriteWikiPage,
		mcp.WithDescription("Create or overwrite a page in a GitHub repository's wiki. The page name is normalized into a markdown file name; writing an existing page replaces its content entirely."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("GitHub user or organization that owns the repository")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name (without the .wiki suffix)")),
		mcp.WithString("token", mcp.Required(), mcp.Description("GitHub token with write access to the repository")),
		mcp.WithString("pageName", mcp.Required(), mcp.Description("Title of the wiki page")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Full markdown content of the page; may be empty")),
		mcp.WithString("commitMessage", mcp.Description("Commit message for the change; defaults to 'Update <file>'")),
	)
}

func readWikiPageTool() mcp.Tool {
	return mcp.NewTool(ToolReadWikiPage,
		mcp.WithDescription("Read the markdown content of a page in a GitHub repository's wiki."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("GitHub user or organization that owns the repository")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name (without the .wiki suffix)")),
		mcp.WithString("token", mcp.Required(), mcp.Description("GitHub token with read access to the repository")),
		mcp.WithString("pageName", mcp.Required(), mcp.Description("Title of the wiki page")),
	)
}

func appendToWikiPageTool() mcp.Tool {
	return mcp.NewTool(ToolAppendToWikiPage,
		mcp.WithDescription("Append markdown content to a page in a GitHub repository's wiki, separated from the existing content by a blank line. Creates the page if it does not exist."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("GitHub user or organization that owns the repository")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name (without the .wiki suffix)")),
		mcp.WithString("token", mcp.Required(), mcp.Description("GitHub token with write access to the repository")),
		mcp.WithString("pageName", mcp.Required(), mcp.Description("Title of the wiki page")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content to append")),
		mcp.WithString("commitMessage", mcp.Description("Commit message for the change; defaults to 'Append to <file>'")),
	)
}

func listWikiPagesTool() mcp.Tool {
	return mcp.NewTool(ToolListWikiPages,
		mcp.WithDescription("List the pages of a GitHub repository's wiki, sorted alphabetically by page name."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("GitHub user or organization that owns the repository")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name (without the .wiki suffix)")),
		mcp.WithString("token", mcp.Required(), mcp.Description("GitHub token with read access to the repository")),
	)
}

func deleteWikiPageTool() mcp.Tool {
	return mcp.NewTool(ToolDeleteWikiPage,
		mcp.WithDescription("Delete a page from a GitHub repository's wiki."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("GitHub user or organization that owns the repository")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name (without the .wiki suffix)")),
		mcp.WithString("token", mcp.Required(), mcp.Description("GitHub token with write access to the repository")),
		mcp.WithString("pageName", mcp.Required(), mcp.Description("Title of the wiki page")),
		mcp.WithString("commitMessage", mcp.Description("Commit message for the change; defaults to 'Delete <file>'")),
	)
}

func (s *Server) handleWriteWikiPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	remote, err := remoteFromRequest(req)
	if err != nil {
		return failureResult(err)
	}
	title, err := requireArg(req, "pageName")
	if err != nil {
		return failureResult(err)
	}
	content, err := req.RequireString("content")
	if err != nil {
		return failureResult(fmt.Errorf("invalid content argument: %w", err))
	}
	message := strings.TrimSpace(req.GetString("commitMessage", ""))

	res, err := s.workflow.WritePage(ctx, remote, title, content, message)
	if err != nil {
		s.logger.Error("write_wiki_page failed", "wiki", remote.Slug(), "error", err)
		return failureResult(err)
	}
	return successResult(res)
}

func (s *Server) handleReadWikiPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	remote, err := remoteFromRequest(req)
	if err != nil {
		return failureResult(err)
	}
	title, err := requireArg(req, "pageName")
	if err != nil {
		return failureResult(err)
	}

	res, err := s.workflow.ReadPage(ctx, remote, title)
	if err != nil {
		s.logger.Error("read_wiki_page failed", "wiki", remote.Slug(), "error", err)
		return failureResult(err)
	}
	return successResult(res)
}

func (s *Server) handleAppendToWikiPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	remote, err := remoteFromRequest(req)
	if err != nil {
		return failureResult(err)
	}
	title, err := requireArg(req, "pageName")
	if err != nil {
		return failureResult(err)
	}
	content, err := req.RequireString("content")
	if err != nil {
		return failureResult(fmt.Errorf("invalid content argument: %w", err))
	}
	message := strings.TrimSpace(req.GetString("commitMessage", ""))

	res, err := s.workflow.AppendToPage(ctx, remote, title, content, message)
	if err != nil {
		s.logger.Error("append_to_wiki_page failed", "wiki", remote.Slug(), "error", err)
		return failureResult(err)
	}
	return successResult(res)
}

func (s *Server) handleListWikiPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	remote, err := remoteFromRequest(req)
	if err != nil {
		return failureResult(err)
	}

	records, err := s.workflow.ListPages(ctx, remote)
	if err != nil {
		s.logger.Error("list_wiki_pages failed", "wiki", remote.Slug(), "error", err)
		return failureResult(err)
	}
	return successResult(records)
}

func (s *Server) handleDeleteWikiPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	remote, err := remoteFromRequest(req)
	if err != nil {
		return failureResult(err)
	}
	title, err := requireArg(req, "pageName")
	if err != nil {
		return failureResult(err)
	}
	message := strings.TrimSpace(req.GetString("commitMessage", ""))

	res, err := s.workflow.DeletePage(ctx, remote, title, message)
	if err != nil {
		s.logger.Error("delete_wiki_page failed", "wiki", remote.Slug(), "error", err)
		return failureResult(err)
	}
	return successResult(res)
}
