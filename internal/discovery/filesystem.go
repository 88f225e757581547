// Package discovery locates existing git checkouts on disk so a manifest can
// be generated from them.
package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	rootDirectoryRequiredMessage     = "discovery root directory must be provided"
)

// ErrRootDirectoryRequired indicates DiscoverRepositories was called without a root.
var ErrRootDirectoryRequired = errors.New(rootDirectoryRequiredMessage)

// FilesystemRepositoryDiscoverer locates git repositories beneath a root
// directory using filepath.WalkDir.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a filesystem-backed repository discoverer.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks the root directory and returns every directory
// containing a .git entry, sorted by path. The .git metadata directories
// themselves are never descended into.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(rootDirectory string) ([]string, error) {
	trimmedRoot := strings.TrimSpace(rootDirectory)
	if len(trimmedRoot) == 0 {
		return nil, ErrRootDirectoryRequired
	}

	discoveredRepositories := []string{}
	walkError := filepath.WalkDir(trimmedRoot, func(path string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return nil
		}
		if directoryEntry.Name() != gitMetadataDirectoryNameConstant {
			return nil
		}

		discoveredRepositories = append(discoveredRepositories, filepath.Dir(path))

		// A worktree checkout records .git as a file rather than a directory.
		if directoryEntry.IsDir() {
			return fs.SkipDir
		}
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(discoveredRepositories)
	return discoveredRepositories, nil
}
