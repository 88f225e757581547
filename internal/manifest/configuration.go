// Package manifest loads and validates the repository manifest that names the
// repositories the tool manages and records where their remotes live.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestPathRequiredMessageConstant = "manifest path must be provided"
	baseURLRequiredMessageConstant      = "manifest base_url must be provided"
	noRepositoriesMessageConstant       = "manifest lists no repositories"
	manifestReadErrorTemplateConstant   = "unable to read manifest %s: %w"
	manifestParseErrorTemplateConstant  = "unable to parse manifest %s: %w"
	emptyRepositoryNameMessageTemplate  = "manifest repository entry %d is empty"
	gitSuffixConstant                   = ".git"
	remoteSeparatorConstant             = "/"
)

var (
	// ErrManifestPathRequired indicates Load was called without a file path.
	ErrManifestPathRequired = errors.New(manifestPathRequiredMessageConstant)
	// ErrBaseURLRequired indicates the manifest omits the remote base URL.
	ErrBaseURLRequired = errors.New(baseURLRequiredMessageConstant)
	// ErrNoRepositories indicates the manifest names no repositories.
	ErrNoRepositories = errors.New(noRepositoriesMessageConstant)
)

// Manifest describes the managed repositories and the remote they share.
type Manifest struct {
	BaseURL           string   `yaml:"base_url" json:"base_url"`
	CheckoutDirectory string   `yaml:"checkout_directory,omitempty" json:"checkout_directory,omitempty"`
	Repositories      []string `yaml:"repositories" json:"repositories"`
}

// Load reads the manifest file at the provided path and validates its
// contents. JSON manifests parse through the YAML decoder unchanged.
func Load(manifestPath string) (Manifest, error) {
	trimmedPath := strings.TrimSpace(manifestPath)
	if len(trimmedPath) == 0 {
		return Manifest{}, ErrManifestPathRequired
	}

	manifestContent, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Manifest{}, fmt.Errorf(manifestReadErrorTemplateConstant, trimmedPath, readError)
	}

	var loadedManifest Manifest
	if parseError := yaml.Unmarshal(manifestContent, &loadedManifest); parseError != nil {
		return Manifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, trimmedPath, parseError)
	}

	if validationError := loadedManifest.Validate(); validationError != nil {
		return Manifest{}, validationError
	}

	loadedManifest.BaseURL = normalizeBaseURL(loadedManifest.BaseURL)
	return loadedManifest, nil
}

// Validate confirms the manifest carries a base URL and at least one
// repository name.
func (manifestConfiguration Manifest) Validate() error {
	if len(strings.TrimSpace(manifestConfiguration.BaseURL)) == 0 {
		return ErrBaseURLRequired
	}
	if len(manifestConfiguration.Repositories) == 0 {
		return ErrNoRepositories
	}
	for repositoryIndex, repositoryName := range manifestConfiguration.Repositories {
		if len(strings.TrimSpace(repositoryName)) == 0 {
			return fmt.Errorf(emptyRepositoryNameMessageTemplate, repositoryIndex)
		}
	}
	return nil
}

// RemoteURL joins the manifest base URL with a repository name.
func (manifestConfiguration Manifest) RemoteURL(repositoryName string) string {
	return normalizeBaseURL(manifestConfiguration.BaseURL) + remoteSeparatorConstant + strings.TrimSpace(repositoryName)
}

// LocalPath resolves the working tree directory for a repository name,
// relative to the manifest checkout directory when one is configured.
func (manifestConfiguration Manifest) LocalPath(repositoryName string) string {
	directoryName := strings.TrimSuffix(strings.TrimSpace(repositoryName), gitSuffixConstant)
	checkoutDirectory := strings.TrimSpace(manifestConfiguration.CheckoutDirectory)
	if len(checkoutDirectory) == 0 {
		return directoryName
	}
	return filepath.Join(checkoutDirectory, directoryName)
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(baseURL), remoteSeparatorConstant)
}
