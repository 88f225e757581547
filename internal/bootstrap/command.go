package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/steveswinsburg/git-tools/internal/discovery"
	"github.com/steveswinsburg/git-tools/internal/execshell"
	"github.com/steveswinsburg/git-tools/internal/gitrepo"
	"github.com/steveswinsburg/git-tools/internal/manifest"
	"github.com/steveswinsburg/git-tools/internal/ui"
	"github.com/steveswinsburg/git-tools/internal/utils"
)

const (
	commandUseConstant                    = "init"
	commandShortDescriptionConstant       = "Generate a manifest from the repositories already on disk"
	commandLongDescriptionConstant        = "init scans a directory for git checkouts, reads their remotes, and writes a manifest listing the repositories that share the dominant base URL. An existing manifest is never overwritten."
	commandExecutionErrorTemplateConstant = "manifest generation failed: %w"
	unexpectedArgumentsMessageConstant    = "init does not accept positional arguments"
	flagRootNameConstant                  = "root"
	flagRootDescriptionConstant           = "Directory to scan for git checkouts"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Remote whose URL seeds the manifest base URL"
	defaultRootDirectoryConstant          = "."
	defaultManifestFileNameConstant       = "repositories.json"
	manifestWrittenMessageTemplate        = "INIT-DONE: wrote %s (%d repositories)\n"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ManifestWriter persists a generated manifest to disk.
type ManifestWriter func(manifestPath string, generatedManifest manifest.Manifest) error

// CommandBuilder assembles the Cobra command that generates a manifest.
type CommandBuilder struct {
	LoggerProvider  LoggerProvider
	ContextAccessor utils.CommandContextAccessor
	Discoverer      RepositoryDiscoverer
	RemoteReader    RemoteReader
	ManifestWriter  ManifestWriter
}

// Build constructs the init command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagRootNameConstant, defaultRootDirectoryConstant, flagRootDescriptionConstant)
	command.Flags().String(flagRemoteNameConstant, defaultRemoteNameConstant, flagRemoteDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger()

	rootDirectoryValue, _ := command.Flags().GetString(flagRootNameConstant)
	remoteNameValue, _ := command.Flags().GetString(flagRemoteNameConstant)

	remoteReader, remoteReaderError := builder.resolveRemoteReader(logger)
	if remoteReaderError != nil {
		return remoteReaderError
	}

	service, serviceError := NewService(Dependencies{
		Discoverer:   builder.resolveDiscoverer(),
		RemoteReader: remoteReader,
		Logger:       logger,
	})
	if serviceError != nil {
		return serviceError
	}

	generatedManifest, generationError := service.GenerateManifest(command.Context(), Options{
		RootDirectory: rootDirectoryValue,
		RemoteName:    remoteNameValue,
	})
	if generationError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, generationError)
	}

	manifestPath := builder.resolveManifestPath(command)
	if writeError := builder.resolveManifestWriter()(manifestPath, generatedManifest); writeError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, writeError)
	}

	fmt.Fprintf(command.OutOrStdout(), manifestWrittenMessageTemplate, manifestPath, len(generatedManifest.Repositories))
	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveDiscoverer() RepositoryDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return discovery.NewFilesystemRepositoryDiscoverer()
}

func (builder *CommandBuilder) resolveRemoteReader(logger *zap.Logger) (RemoteReader, error) {
	if builder.RemoteReader != nil {
		return builder.RemoteReader, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}
	shellExecutor.RegisterCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	return gitrepo.NewRepositoryManager(shellExecutor)
}

func (builder *CommandBuilder) resolveManifestWriter() ManifestWriter {
	if builder.ManifestWriter != nil {
		return builder.ManifestWriter
	}
	return manifest.Write
}

func (builder *CommandBuilder) resolveManifestPath(command *cobra.Command) string {
	if contextPath, pathAvailable := builder.ContextAccessor.ManifestFilePath(command.Context()); pathAvailable {
		trimmedContextPath := strings.TrimSpace(contextPath)
		if len(trimmedContextPath) > 0 {
			return trimmedContextPath
		}
	}
	return defaultManifestFileNameConstant
}
