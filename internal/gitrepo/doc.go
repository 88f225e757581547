// Package gitrepo provides repository-level git operations and remote URL
// parsing helpers built on top of the execshell boundary.
package gitrepo
