package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steveswinsburg/git-tools/internal/execshell"
)

func TestCommandMessageFormatterDescribesCloneLifecycle(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments: []string{"clone", "https://example.com/project/alpha.git", "/tmp/checkouts/alpha"},
		},
	}

	require.Equal(testInstance, "Cloning https://example.com/project/alpha.git into /tmp/checkouts/alpha", formatter.BuildStartedMessage(command))
	require.Equal(testInstance, "Cloned https://example.com/project/alpha.git into /tmp/checkouts/alpha", formatter.BuildSuccessMessage(command))

	failureMessage := formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 128, StandardError: "repository not found"})
	require.Equal(testInstance, "Failed to clone https://example.com/project/alpha.git into /tmp/checkouts/alpha (exit code 128: repository not found)", failureMessage)
}

func TestCommandMessageFormatterDescribesCurrentBranch(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"branch", "--show-current"},
			WorkingDirectory: "/tmp/checkouts/alpha",
		},
	}

	require.Equal(testInstance, "Identifying current branch in /tmp/checkouts/alpha", formatter.BuildStartedMessage(command))

	detachedMessage := formatter.BuildSuccessMessage(command)
	require.Equal(testInstance, "/tmp/checkouts/alpha is in a detached HEAD state", detachedMessage)
}

func TestCommandMessageFormatterFallsBackToGenericLabel(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"gc"},
			WorkingDirectory: "/tmp/checkouts/alpha",
		},
	}

	require.Equal(testInstance, "Running git gc (in /tmp/checkouts/alpha)", formatter.BuildStartedMessage(command))
}
