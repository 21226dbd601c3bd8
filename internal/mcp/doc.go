// Package mcp implements a Model Context Protocol (MCP) server for wikimcp
// using the mcp-go library.
//
// The server exposes five tools for manipulating GitHub wiki pages:
// write_wiki_page, read_wiki_page, append_to_wiki_page, list_wiki_pages and
// delete_wiki_page. Each tool call carries the full remote identity (owner,
// repo, token), so a single running server can operate on any number of
// wikis without per-wiki setup.
//
// # Request handling
//
// Tool arguments arrive as a loosely-typed key/value bundle. Handlers
// validate and convert them into typed values at the boundary and reject
// malformed input with a descriptive message instead of letting a type
// mismatch propagate into the workflow. Every call produces a single text
// payload containing a JSON envelope:
//
//	{"success": true, "result": {...}}
//	{"success": false, "error": "..."}
//
// Failures additionally set the protocol-level IsError flag on the result.
// Handlers never return a Go error to the MCP framework for domain
// failures; the error is part of the tool's response.
//
// # Transport
//
// The server communicates over stdin/stdout using JSON-RPC 2.0 as specified
// by the MCP standard. Stdout belongs to the protocol; all logging goes to
// stderr or a debug log file.
package mcp
