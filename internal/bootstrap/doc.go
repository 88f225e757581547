// Package bootstrap generates a repository manifest from the git checkouts
// already present on disk.
//
// It offers CommandBuilder for the init Cobra command and Service for
// discovering checkouts, reading their remotes, and deriving the shared base
// URL the manifest records.
package bootstrap
