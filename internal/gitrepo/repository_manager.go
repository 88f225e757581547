package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/steveswinsburg/git-tools/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"
	gitRevParseSubcommandConstant        = "rev-parse"
	gitIsInsideWorkTreeFlagConstant      = "--is-inside-work-tree"
	gitTrueOutputConstant                = "true"
	gitStatusSubcommandConstant          = "status"
	gitStatusPorcelainFlagConstant       = "--porcelain"
	gitBranchSubcommandConstant          = "branch"
	gitShowCurrentFlagConstant           = "--show-current"
	gitCheckoutSubcommandConstant        = "checkout"
	gitPullSubcommandConstant            = "pull"
	gitCloneSubcommandConstant           = "clone"
	gitRemoteSubcommandConstant          = "remote"
	gitRemoteGetURLSubcommandConstant    = "get-url"
)

// ErrExecutorNotConfigured indicates a RepositoryManager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by repository operations.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager exposes repository-level git operations expressed through the executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager validates the executor and assembles a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsRepository reports whether the provided path is inside a git working tree.
func (manager *RepositoryManager) IsRepository(executionContext context.Context, repositoryPath string) bool {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitIsInsideWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitTrueOutputConstant
}

// CheckCleanWorktree reports whether the repository working tree carries no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// CurrentBranch returns the checked-out branch name, or an empty string for a detached HEAD.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitShowCurrentFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CheckoutBranch switches the repository to the named branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCheckoutSubcommandConstant, branchName},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// Pull integrates the latest changes from the configured upstream.
func (manager *RepositoryManager) Pull(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitPullSubcommandConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// Clone creates a local copy of the remote repository at the target path.
func (manager *RepositoryManager) Clone(executionContext context.Context, remoteURL string, targetPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitCloneSubcommandConstant, remoteURL, targetPath},
	})
	return executionError
}

// GetRemoteURL reads the URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}
