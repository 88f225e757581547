package utils

import "context"

const (
	manifestFilePathContextKeyConstant = commandContextKey("manifestFilePath")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithManifestFilePath attaches the repositories manifest path to the provided context.
func (accessor CommandContextAccessor) WithManifestFilePath(parentContext context.Context, manifestFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, manifestFilePathContextKeyConstant, manifestFilePath)
}

// ManifestFilePath extracts the repositories manifest path from the provided context.
func (accessor CommandContextAccessor) ManifestFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	manifestFilePath, manifestFilePathAvailable := executionContext.Value(manifestFilePathContextKeyConstant).(string)
	if !manifestFilePathAvailable {
		return "", false
	}
	return manifestFilePath, true
}
