package bootstrap

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/steveswinsburg/git-tools/internal/gitrepo"
	"github.com/steveswinsburg/git-tools/internal/manifest"
)

const (
	discovererRequiredMessageConstant        = "bootstrap service requires a repository discoverer"
	remoteReaderRequiredMessageConstant      = "bootstrap service requires a remote reader"
	noRepositoriesDiscoveredMessageConstant  = "no repositories with a usable remote were discovered"
	defaultRemoteNameConstant                = "origin"
	remoteLookupFailedLogMessageConstant     = "skipping repository without readable remote"
	remoteParseFailedLogMessageConstant      = "skipping repository with unrecognized remote"
	foreignBaseURLLogMessageConstant         = "skipping repository outside the dominant base URL"
	repositoryPathLogFieldNameConstant       = "repository_path"
	repositoryLogEntryFieldNameConstant      = "repository"
	remoteURLLogFieldNameConstant            = "remote_url"
	dominantBaseURLLogFieldNameConstant      = "base_url"
	pathSeparatorConstant                    = "/"
)

var (
	// ErrDiscovererNotConfigured indicates the service was built without a discoverer.
	ErrDiscovererNotConfigured = errors.New(discovererRequiredMessageConstant)
	// ErrRemoteReaderNotConfigured indicates the service was built without a remote reader.
	ErrRemoteReaderNotConfigured = errors.New(remoteReaderRequiredMessageConstant)
	// ErrNoRepositoriesDiscovered indicates no checkout under the root carried a readable remote.
	ErrNoRepositoriesDiscovered = errors.New(noRepositoriesDiscoveredMessageConstant)
)

// RepositoryDiscoverer locates git checkouts beneath a root directory.
type RepositoryDiscoverer interface {
	DiscoverRepositories(rootDirectory string) ([]string, error)
}

// RemoteReader resolves the remote URL configured for a repository checkout.
type RemoteReader interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// Dependencies enumerates the collaborators the bootstrap service requires.
type Dependencies struct {
	Discoverer   RepositoryDiscoverer
	RemoteReader RemoteReader
	Logger       *zap.Logger
}

// Options adjusts manifest generation.
type Options struct {
	RootDirectory string
	RemoteName    string
}

// Service derives a repository manifest from the checkouts found on disk.
type Service struct {
	dependencies Dependencies
}

// NewService validates dependencies and constructs a bootstrap Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if dependencies.RemoteReader == nil {
		return nil, ErrRemoteReaderNotConfigured
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Service{dependencies: dependencies}, nil
}

// GenerateManifest inspects every checkout beneath the root directory, derives
// the base URL shared by the majority of their remotes, and returns a manifest
// listing the repositories served from that base. Checkouts without a readable
// or parseable remote are skipped with a warning.
func (service *Service) GenerateManifest(executionContext context.Context, generationOptions Options) (manifest.Manifest, error) {
	remoteName := strings.TrimSpace(generationOptions.RemoteName)
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	repositoryPaths, discoveryError := service.dependencies.Discoverer.DiscoverRepositories(generationOptions.RootDirectory)
	if discoveryError != nil {
		return manifest.Manifest{}, discoveryError
	}

	type remoteRecord struct {
		entryName string
		baseURL   string
	}

	records := []remoteRecord{}
	baseURLCounts := map[string]int{}
	for _, repositoryPath := range repositoryPaths {
		if contextError := executionContext.Err(); contextError != nil {
			return manifest.Manifest{}, contextError
		}

		remoteURL, remoteError := service.dependencies.RemoteReader.GetRemoteURL(executionContext, repositoryPath, remoteName)
		if remoteError != nil {
			service.dependencies.Logger.Warn(remoteLookupFailedLogMessageConstant,
				zap.String(repositoryPathLogFieldNameConstant, repositoryPath),
				zap.Error(remoteError),
			)
			continue
		}

		baseURL, baseURLError := gitrepo.BaseURLFromRemote(remoteURL)
		if baseURLError != nil {
			service.dependencies.Logger.Warn(remoteParseFailedLogMessageConstant,
				zap.String(repositoryPathLogFieldNameConstant, repositoryPath),
				zap.String(remoteURLLogFieldNameConstant, remoteURL),
			)
			continue
		}

		records = append(records, remoteRecord{entryName: manifestEntryFromRemote(remoteURL), baseURL: baseURL})
		baseURLCounts[baseURL]++
	}

	if len(records) == 0 {
		return manifest.Manifest{}, ErrNoRepositoriesDiscovered
	}

	dominantBaseURL := dominantKey(baseURLCounts)
	repositories := []string{}
	for _, record := range records {
		if record.baseURL != dominantBaseURL {
			service.dependencies.Logger.Warn(foreignBaseURLLogMessageConstant,
				zap.String(repositoryLogEntryFieldNameConstant, record.entryName),
				zap.String(dominantBaseURLLogFieldNameConstant, dominantBaseURL),
			)
			continue
		}
		repositories = append(repositories, record.entryName)
	}

	generatedManifest := manifest.Manifest{BaseURL: dominantBaseURL, Repositories: repositories}
	if validationError := generatedManifest.Validate(); validationError != nil {
		return manifest.Manifest{}, validationError
	}
	return generatedManifest, nil
}

// manifestEntryFromRemote keeps the remote's final path segment verbatim so a
// later clone reproduces the original remote URL exactly.
func manifestEntryFromRemote(remoteURL string) string {
	trimmedRemote := strings.TrimSuffix(strings.TrimSpace(remoteURL), pathSeparatorConstant)
	lastSeparatorIndex := strings.LastIndexAny(trimmedRemote, "/:")
	if lastSeparatorIndex == -1 {
		return trimmedRemote
	}
	return trimmedRemote[lastSeparatorIndex+1:]
}

func dominantKey(countsByKey map[string]int) string {
	dominant := ""
	highestCount := 0
	for key, count := range countsByKey {
		if count > highestCount || (count == highestCount && key < dominant) {
			dominant = key
			highestCount = count
		}
	}
	return dominant
}
