package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshProtocolPrefixConstant           = "ssh://"
	sshUserDelimiterConstant            = "@"
	sshPathDelimiterConstant            = ":"
	httpsProtocolPrefixConstant         = "https://"
	httpProtocolPrefixConstant          = "http://"
	gitUserPrefixConstant               = "git@"
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	invalidRemoteURLMessageConstant     = "invalid remote url"
	requiredValueMessageConstant        = "value must be provided"
)

// RemoteURL represents a structured git remote URL.
type RemoteURL struct {
	Host       string
	Path       string
	Repository string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL converts a textual remote URL into a structured representation.
//
// SSH (ssh://git@host/path/repo.git and git@host:path/repo.git) and HTTP(S)
// forms are recognized; the repository name is the final path segment with any
// .git suffix removed.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	if strings.HasPrefix(trimmedRemote, sshProtocolPrefixConstant) {
		return parseSSHRemote(strings.TrimPrefix(trimmedRemote, sshProtocolPrefixConstant))
	}
	if strings.HasPrefix(trimmedRemote, gitUserPrefixConstant) {
		return parseSSHRemote(trimmedRemote)
	}
	if strings.HasPrefix(trimmedRemote, httpsProtocolPrefixConstant) {
		return parseHTTPRemote(strings.TrimPrefix(trimmedRemote, httpsProtocolPrefixConstant))
	}
	if strings.HasPrefix(trimmedRemote, httpProtocolPrefixConstant) {
		return parseHTTPRemote(strings.TrimPrefix(trimmedRemote, httpProtocolPrefixConstant))
	}

	return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
}

// RepositoryNameFromRemote extracts the repository name from a remote URL string.
func RepositoryNameFromRemote(remote string) (string, error) {
	parsedRemote, parseError := ParseRemoteURL(remote)
	if parseError != nil {
		return "", parseError
	}
	return parsedRemote.Repository, nil
}

// BaseURLFromRemote derives the remote URL prefix that, joined with the
// repository name, reproduces the original remote location.
func BaseURLFromRemote(remote string) (string, error) {
	parsedRemote, parseError := ParseRemoteURL(remote)
	if parseError != nil {
		return "", parseError
	}

	trimmedRemote := strings.TrimSuffix(strings.TrimSpace(remote), gitSuffixConstant)
	baseURL := strings.TrimSuffix(trimmedRemote, parsedRemote.Repository)
	baseURL = strings.TrimSuffix(baseURL, pathSeparatorConstant)
	baseURL = strings.TrimSuffix(baseURL, sshPathDelimiterConstant)
	if len(baseURL) == 0 {
		return "", RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	return baseURL, nil
}

func parseSSHRemote(remote string) (RemoteURL, error) {
	userSplitIndex := strings.Index(remote, sshUserDelimiterConstant)
	if userSplitIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	hostAndPath := remote[userSplitIndex+1:]
	pathSplitIndex := strings.Index(hostAndPath, sshPathDelimiterConstant)
	var host string
	var path string
	if pathSplitIndex == -1 {
		slashIndex := strings.Index(hostAndPath, pathSeparatorConstant)
		if slashIndex == -1 {
			return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
		}
		host = hostAndPath[:slashIndex]
		path = hostAndPath[slashIndex+1:]
	} else {
		host = hostAndPath[:pathSplitIndex]
		path = hostAndPath[pathSplitIndex+1:]
	}
	return buildRemoteURL(host, path)
}

func parseHTTPRemote(remote string) (RemoteURL, error) {
	pathComponents := strings.SplitN(remote, pathSeparatorConstant, 2)
	if len(pathComponents) < 2 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	return buildRemoteURL(pathComponents[0], pathComponents[1])
}

func buildRemoteURL(host string, path string) (RemoteURL, error) {
	trimmedPath := strings.Trim(path, pathSeparatorConstant)
	if len(trimmedPath) == 0 || len(strings.TrimSpace(host)) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: path, Message: invalidRemoteURLMessageConstant}
	}

	segments := strings.Split(trimmedPath, pathSeparatorConstant)
	repository := strings.TrimSuffix(segments[len(segments)-1], gitSuffixConstant)
	if len(repository) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: path, Message: invalidRemoteURLMessageConstant}
	}

	return RemoteURL{Host: host, Path: trimmedPath, Repository: repository}, nil
}
