package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationCommandTimeout        = 30 * time.Second
	stubGitExecutableNameConstant    = "git"
	stubScriptPermissionsConstant    = 0o755
	pathEnvironmentVariableConstant  = "PATH"
	pathEnvironmentSeparatorConstant = string(os.PathListSeparator)
)

// writeStubGit installs a shell script named git into its own directory and
// returns a PATH value that resolves the stub before the real executable.
func writeStubGit(testInstance *testing.T, scriptBody string) string {
	testInstance.Helper()

	stubDirectory := testInstance.TempDir()
	stubPath := filepath.Join(stubDirectory, stubGitExecutableNameConstant)
	require.NoError(testInstance, os.WriteFile(stubPath, []byte(scriptBody), stubScriptPermissionsConstant))

	return stubDirectory + pathEnvironmentSeparatorConstant + os.Getenv(pathEnvironmentVariableConstant)
}

// runCLI executes the module entrypoint through the Go toolchain and returns
// the combined output along with any execution error so callers can assert on
// exit status.
func runCLI(testInstance *testing.T, pathVariable string, arguments []string) (string, error) {
	testInstance.Helper()

	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancelFunction()

	commandArguments := append([]string{"run", "."}, arguments...)
	command := exec.CommandContext(executionContext, "go", commandArguments...)
	command.Dir = repositoryRootDirectory

	environment := append([]string{}, os.Environ()...)
	if len(pathVariable) > 0 {
		environment = append(environment, pathEnvironmentVariableConstant+"="+pathVariable)
	}
	command.Env = environment

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}
