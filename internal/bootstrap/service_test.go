package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/steveswinsburg/git-tools/internal/bootstrap"
)

const (
	testRootDirectoryConstant = "/tmp/workspace"
	testRemoteNameConstant    = "origin"
)

type stubDiscoverer struct {
	repositories  []string
	requestedRoot string
}

func (discoverer *stubDiscoverer) DiscoverRepositories(rootDirectory string) ([]string, error) {
	discoverer.requestedRoot = rootDirectory
	return discoverer.repositories, nil
}

type stubRemoteReader struct {
	remotesByPath map[string]string
}

func (reader *stubRemoteReader) GetRemoteURL(_ context.Context, repositoryPath string, _ string) (string, error) {
	remoteURL, remoteFound := reader.remotesByPath[repositoryPath]
	if !remoteFound {
		return "", errors.New("no such remote")
	}
	return remoteURL, nil
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	testCases := []struct {
		name          string
		dependencies  bootstrap.Dependencies
		expectedError error
	}{
		{
			name:          "missing_discoverer",
			dependencies:  bootstrap.Dependencies{RemoteReader: &stubRemoteReader{}},
			expectedError: bootstrap.ErrDiscovererNotConfigured,
		},
		{
			name:          "missing_remote_reader",
			dependencies:  bootstrap.Dependencies{Discoverer: &stubDiscoverer{}},
			expectedError: bootstrap.ErrRemoteReaderNotConfigured,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service, serviceError := bootstrap.NewService(testCase.dependencies)
			require.Nil(testInstance, service)
			require.ErrorIs(testInstance, serviceError, testCase.expectedError)
		})
	}
}

func TestGenerateManifestUsesDominantBaseURL(testInstance *testing.T) {
	discoverer := &stubDiscoverer{repositories: []string{
		"/tmp/workspace/alpha",
		"/tmp/workspace/beta",
		"/tmp/workspace/other",
	}}
	remoteReader := &stubRemoteReader{remotesByPath: map[string]string{
		"/tmp/workspace/alpha": "git@github.com:project/alpha.git",
		"/tmp/workspace/beta":  "git@github.com:project/beta.git",
		"/tmp/workspace/other": "https://gitlab.example.com/elsewhere/other.git",
	}}

	service, serviceError := bootstrap.NewService(bootstrap.Dependencies{
		Discoverer:   discoverer,
		RemoteReader: remoteReader,
		Logger:       zap.NewNop(),
	})
	require.NoError(testInstance, serviceError)

	generatedManifest, generationError := service.GenerateManifest(context.Background(), bootstrap.Options{
		RootDirectory: testRootDirectoryConstant,
		RemoteName:    testRemoteNameConstant,
	})
	require.NoError(testInstance, generationError)
	require.Equal(testInstance, testRootDirectoryConstant, discoverer.requestedRoot)
	require.Equal(testInstance, "git@github.com:project", generatedManifest.BaseURL)
	require.Equal(testInstance, []string{"alpha.git", "beta.git"}, generatedManifest.Repositories)
}

func TestGenerateManifestSkipsRepositoriesWithoutRemote(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.WarnLevel)
	discoverer := &stubDiscoverer{repositories: []string{
		"/tmp/workspace/alpha",
		"/tmp/workspace/no-remote",
	}}
	remoteReader := &stubRemoteReader{remotesByPath: map[string]string{
		"/tmp/workspace/alpha": "https://github.com/project/alpha.git",
	}}

	service, serviceError := bootstrap.NewService(bootstrap.Dependencies{
		Discoverer:   discoverer,
		RemoteReader: remoteReader,
		Logger:       zap.New(observedCore),
	})
	require.NoError(testInstance, serviceError)

	generatedManifest, generationError := service.GenerateManifest(context.Background(), bootstrap.Options{RootDirectory: testRootDirectoryConstant})
	require.NoError(testInstance, generationError)
	require.Equal(testInstance, []string{"alpha.git"}, generatedManifest.Repositories)
	require.Equal(testInstance, 1, observedLogs.Len())
}

func TestGenerateManifestFailsWithoutUsableRemotes(testInstance *testing.T) {
	service, serviceError := bootstrap.NewService(bootstrap.Dependencies{
		Discoverer:   &stubDiscoverer{repositories: []string{"/tmp/workspace/no-remote"}},
		RemoteReader: &stubRemoteReader{},
		Logger:       zap.NewNop(),
	})
	require.NoError(testInstance, serviceError)

	_, generationError := service.GenerateManifest(context.Background(), bootstrap.Options{RootDirectory: testRootDirectoryConstant})
	require.ErrorIs(testInstance, generationError, bootstrap.ErrNoRepositoriesDiscovered)
}
