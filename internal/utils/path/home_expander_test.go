package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/steveswinsburg/git-tools/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/fleet-operator"

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{
			name:          "bare_tilde",
			candidatePath: "~",
			expectedPath:  testHomeDirectoryConstant,
		},
		{
			name:          "tilde_prefixed_path",
			candidatePath: "~/checkouts",
			expectedPath:  filepath.Join(testHomeDirectoryConstant, "checkouts"),
		},
		{
			name:          "absolute_path_untouched",
			candidatePath: "/srv/checkouts",
			expectedPath:  "/srv/checkouts",
		},
		{
			name:          "relative_path_untouched",
			candidatePath: "checkouts",
			expectedPath:  "checkouts",
		},
		{
			name:          "empty_path_untouched",
			candidatePath: "",
			expectedPath:  "",
		},
	}

	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderLeavesPathWhenHomeLookupFails(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})

	require.Equal(testInstance, "~/checkouts", expander.Expand("~/checkouts"))
}
