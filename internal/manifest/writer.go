package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	manifestExistsMessageTemplateConstant = "manifest already exists at %s"
	manifestEncodeErrorTemplateConstant   = "unable to encode manifest: %w"
	manifestWriteErrorTemplateConstant    = "unable to write manifest %s: %w"
	manifestIndentConstant                = "  "
	manifestFilePermissionsConstant       = 0o644
)

// ErrManifestExists indicates Write refused to replace an existing manifest.
var ErrManifestExists = errors.New("manifest file already exists")

// Write encodes the manifest as indented JSON at the provided path. An
// existing file is never overwritten.
func Write(manifestPath string, manifestConfiguration Manifest) error {
	trimmedPath := strings.TrimSpace(manifestPath)
	if len(trimmedPath) == 0 {
		return ErrManifestPathRequired
	}

	if validationError := manifestConfiguration.Validate(); validationError != nil {
		return validationError
	}

	if _, statError := os.Stat(trimmedPath); statError == nil {
		return fmt.Errorf(manifestExistsMessageTemplateConstant+": %w", trimmedPath, ErrManifestExists)
	}

	manifestConfiguration.BaseURL = normalizeBaseURL(manifestConfiguration.BaseURL)
	encodedManifest, encodeError := json.MarshalIndent(manifestConfiguration, "", manifestIndentConstant)
	if encodeError != nil {
		return fmt.Errorf(manifestEncodeErrorTemplateConstant, encodeError)
	}
	encodedManifest = append(encodedManifest, '\n')

	if writeError := os.WriteFile(trimmedPath, encodedManifest, manifestFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(manifestWriteErrorTemplateConstant, trimmedPath, writeError)
	}
	return nil
}
