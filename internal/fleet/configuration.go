package fleet

import "strings"

const (
	configurationManifestKeyConstant          = "manifest"
	configurationCheckoutDirectoryKeyConstant = "checkout_directory"
	configurationProgressKeyConstant          = "progress"
	configurationKeySeparatorConstant         = "."
)

// CommandConfiguration captures configuration values shared by the fleet commands.
type CommandConfiguration struct {
	ManifestPath      string `mapstructure:"manifest"`
	CheckoutDirectory string `mapstructure:"checkout_directory"`
	ShowProgress      bool   `mapstructure:"progress"`
}

// DefaultCommandConfiguration provides baseline configuration values for fleet commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ManifestPath:      "",
		CheckoutDirectory: "",
		ShowProgress:      true,
	}
}

// DefaultConfigurationValues produces Viper defaults for fleet commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationManifestKeyConstant:          defaults.ManifestPath,
		rootKey + configurationKeySeparatorConstant + configurationCheckoutDirectoryKeyConstant: defaults.CheckoutDirectory,
		rootKey + configurationKeySeparatorConstant + configurationProgressKeyConstant:          defaults.ShowProgress,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.ManifestPath = strings.TrimSpace(configuration.ManifestPath)
	sanitized.CheckoutDirectory = strings.TrimSpace(configuration.CheckoutDirectory)

	return sanitized
}
