package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steveswinsburg/git-tools/internal/discovery"
)

func createRepositoryCheckout(testInstance *testing.T, rootDirectory string, repositoryName string) string {
	testInstance.Helper()
	repositoryPath := filepath.Join(rootDirectory, repositoryName)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, ".git"), 0o755))
	return repositoryPath
}

func TestDiscoverRepositoriesFindsCheckoutsSorted(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	betaPath := createRepositoryCheckout(testInstance, rootDirectory, "beta")
	alphaPath := createRepositoryCheckout(testInstance, rootDirectory, "alpha")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "not-a-repo"), 0o755))

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories(rootDirectory)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{alphaPath, betaPath}, discoveredRepositories)
}

func TestDiscoverRepositoriesRecognizesWorktreeFilePointer(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	worktreePath := filepath.Join(rootDirectory, "linked")
	require.NoError(testInstance, os.MkdirAll(worktreePath, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(worktreePath, ".git"), []byte("gitdir: ../main/.git/worktrees/linked\n"), 0o644))

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories(rootDirectory)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{worktreePath}, discoveredRepositories)
}

func TestDiscoverRepositoriesRequiresRoot(testInstance *testing.T) {
	_, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories("   ")
	require.ErrorIs(testInstance, discoveryError, discovery.ErrRootDirectoryRequired)
}

func TestDiscoverRepositoriesToleratesMissingRoot(testInstance *testing.T) {
	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories(filepath.Join(testInstance.TempDir(), "absent"))
	require.NoError(testInstance, discoveryError)
	require.Empty(testInstance, discoveredRepositories)
}
