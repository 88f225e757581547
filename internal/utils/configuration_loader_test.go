package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steveswinsburg/git-tools/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTGITTOOLS"
	testCommonSectionKeyConstant                   = "common"
	testLogLevelKeyConstant                        = testCommonSectionKeyConstant + ".log_level"
	testLogLevelEnvironmentNameConstant            = testEnvironmentPrefixConstant + "_COMMON_LOG_LEVEL"
	testDefaultLogLevelConstant                    = "info"
	testConfiguredLogLevelConstant                 = "debug"
	testOverriddenLogLevelConstant                 = "error"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "common:\n  log_level: %s\n"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	testCaseDefaultsMessageConstant                = "defaults_are_applied"
	testCaseFileMessageConstant                    = "config_file_overrides_defaults"
	testCaseEnvironmentMessageConstant             = "environment_overrides_file"
	testCaseSearchPathMessageConstant              = "search_path_resolves_config"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

func writeConfigurationFile(testInstance *testing.T, directory string, logLevel string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(directory, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, logLevel)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))
	return configurationPath
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             testCaseDefaultsMessageConstant,
			expectedLogLevel: testDefaultLogLevelConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			fileLogLevel:     testConfiguredLogLevelConstant,
			expectedLogLevel: testConfiguredLogLevelConstant,
		},
		{
			name:                testCaseEnvironmentMessageConstant,
			fileLogLevel:        testConfiguredLogLevelConstant,
			environmentLogLevel: testOverriddenLogLevelConstant,
			expectedLogLevel:    testOverriddenLogLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = writeConfigurationFile(testInstance, testInstance.TempDir(), testCase.fileLogLevel)
			}

			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(testLogLevelEnvironmentNameConstant, testCase.environmentLogLevel)
			}

			loader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				nil,
			)

			defaultValues := map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}

			var loadedFixture configurationFixture
			loadedMetadata, loadError := loader.LoadConfiguration(configurationFilePath, defaultValues, &loadedFixture)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedFixture.Common.LogLevel)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, loadedMetadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderSearchesConfiguredPaths(testInstance *testing.T) {
	searchDirectory := testInstance.TempDir()
	writeConfigurationFile(testInstance, searchDirectory, testConfiguredLogLevelConstant)

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{searchDirectory},
	)

	var loadedFixture configurationFixture
	loadedMetadata, loadError := loader.LoadConfiguration("", map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedFixture)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testConfiguredLogLevelConstant, loadedFixture.Common.LogLevel)
	require.Equal(testInstance, filepath.Join(searchDirectory, testConfigFileNameConstant), loadedMetadata.ConfigFileUsed)
}

func TestConfigurationLoaderToleratesMissingConfigurationFile(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	var loadedFixture configurationFixture
	_, loadError := loader.LoadConfiguration("", map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedFixture)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testDefaultLogLevelConstant, loadedFixture.Common.LogLevel)
}
