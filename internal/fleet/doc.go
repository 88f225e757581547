// Package fleet applies bulk git operations across every repository named in
// the manifest.
//
// It offers CommandBuilder for the clone, update, and status Cobra commands,
// Service for iterating the manifest and recording per-repository outcomes,
// and supporting interfaces to enable testing and reuse.
package fleet
