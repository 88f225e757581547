package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steveswinsburg/git-tools/internal/utils"
)

const testManifestFilePathConstant = "/tmp/manifests/repositories.json"

func TestCommandContextAccessorRoundTripsManifestPath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	updatedContext := accessor.WithManifestFilePath(context.Background(), testManifestFilePathConstant)

	manifestPath, manifestPathAvailable := accessor.ManifestFilePath(updatedContext)
	require.True(testInstance, manifestPathAvailable)
	require.Equal(testInstance, testManifestFilePathConstant, manifestPath)
}

func TestCommandContextAccessorReportsMissingManifestPath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	manifestPath, manifestPathAvailable := accessor.ManifestFilePath(context.Background())
	require.False(testInstance, manifestPathAvailable)
	require.Empty(testInstance, manifestPath)
}
