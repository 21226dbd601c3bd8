// Package wiki implements the page-level operations behind the wikimcp
// tools: write, read, append, list and delete against a repository's
// GitHub wiki.
//
// # Page identity
//
// A GitHub wiki is a separate bare git repository ("<repo>.wiki.git")
// whose pages are flat markdown files at the tree root. A human page
// title maps to its file name through NormalizePageName, a total pure
// function: whitespace runs become hyphens, the remaining characters are
// restricted to letters, digits, hyphens and underscores, and the ".md"
// extension is appended. The mapping is deterministic but not injective;
// titles that differ only in disallowed characters collide and the later
// write overwrites the earlier page.
//
// # Operation lifecycle
//
// Every operation follows the same clone-modify-commit-push shape:
//
//  1. Resolve the page file name from the title.
//  2. Acquire a Workspace: a fresh clone of the wiki store in a uniquely
//     named temporary directory, exclusively owned by the invocation.
//  3. Perform the local file mutation or inspection.
//  4. For mutating operations, stage, commit and push to the remote's
//     default branch.
//  5. Release the workspace. Release is deferred immediately after
//     acquisition, so it runs on every exit path exactly once; a removal
//     failure is a logged warning, never the operation's outcome.
//
// The sequence looks atomic to the caller but is not: a push can be
// rejected after the local mutation succeeded. No partial state leaks -
// the working copy is always discarded - but there is no retry and no
// merge logic. A push rejected by a concurrent writer surfaces as a
// plain failure; the caller re-invokes the operation against the now
// current remote state.
//
// # Authentication
//
// The personal access token is embedded as the userinfo component of
// the clone URL (https://<token>@<host>/<owner>/<repo>.wiki.git). That
// is the sole authentication mechanism; clone URLs therefore never
// appear in logs or error messages.
package wiki
