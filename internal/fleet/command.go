package fleet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/steveswinsburg/git-tools/internal/execshell"
	"github.com/steveswinsburg/git-tools/internal/gitrepo"
	"github.com/steveswinsburg/git-tools/internal/manifest"
	"github.com/steveswinsburg/git-tools/internal/ui"
	"github.com/steveswinsburg/git-tools/internal/utils"
)

const (
	cloneCommandUseConstant               = "clone"
	cloneCommandShortDescriptionConstant  = "Clone every repository named in the manifest"
	cloneCommandLongDescriptionConstant   = "clone downloads each manifest repository from the shared base URL, skipping repositories whose target directory already exists."
	updateCommandUseConstant              = "update"
	updateCommandShortDescriptionConstant = "Update every cloned repository to its primary branch"
	updateCommandLongDescriptionConstant  = "update checks out the primary branch in each cloned repository and pulls the latest changes, skipping repositories that are missing or have local changes."
	statusCommandUseConstant              = "status"
	statusCommandShortDescriptionConstant = "Report the branch and worktree state of every repository"
	statusCommandLongDescriptionConstant  = "status prints one line per manifest repository describing whether it exists locally, its current branch, and whether the worktree is clean."

	unexpectedArgumentsTemplateConstant   = "%s does not accept positional arguments"
	unsupportedBuilderOperationTemplate   = "no command is defined for operation %q"
	defaultManifestFileNameConstant       = "repositories.json"
	operationFailuresErrorTemplate        = "%s failed for %d of %d repositories"
	commandExecutionErrorTemplateConstant = "%s command failed: %w"
)

// ErrUnsupportedOperation indicates a CommandBuilder was configured with an unknown operation.
var ErrUnsupportedOperation = errors.New("unsupported operation")

type commandDescription struct {
	use              string
	shortDescription string
	longDescription  string
}

var commandDescriptionsByOperation = map[OperationType]commandDescription{
	OperationClone: {
		use:              cloneCommandUseConstant,
		shortDescription: cloneCommandShortDescriptionConstant,
		longDescription:  cloneCommandLongDescriptionConstant,
	},
	OperationUpdate: {
		use:              updateCommandUseConstant,
		shortDescription: updateCommandShortDescriptionConstant,
		longDescription:  updateCommandLongDescriptionConstant,
	},
	OperationStatus: {
		use:              statusCommandUseConstant,
		shortDescription: statusCommandShortDescriptionConstant,
		longDescription:  statusCommandLongDescriptionConstant,
	},
}

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configuration backing fleet commands.
type ConfigurationProvider func() CommandConfiguration

// ManifestLoader reads the repository manifest from disk.
type ManifestLoader func(manifestPath string) (manifest.Manifest, error)

// CommandBuilder assembles one Cobra command that applies a fleet operation.
type CommandBuilder struct {
	Operation             OperationType
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ContextAccessor       utils.CommandContextAccessor
	GitExecutor           gitrepo.GitExecutor
	ManifestLoader        ManifestLoader
	Output                io.Writer
}

// Build constructs the Cobra command for the configured operation.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	description, descriptionFound := commandDescriptionsByOperation[builder.Operation]
	if !descriptionFound {
		return nil, fmt.Errorf(unsupportedBuilderOperationTemplate+": %w", builder.Operation, ErrUnsupportedOperation)
	}

	command := &cobra.Command{
		Use:   description.use,
		Short: description.shortDescription,
		Long:  description.longDescription,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf(unexpectedArgumentsTemplateConstant, builder.Operation)
	}

	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	manifestPath := builder.resolveManifestPath(command, configuration)
	repositoryManifest, manifestError := builder.loadManifest(manifestPath)
	if manifestError != nil {
		return manifestError
	}
	if len(strings.TrimSpace(repositoryManifest.CheckoutDirectory)) == 0 {
		repositoryManifest.CheckoutDirectory = configuration.CheckoutDirectory
	}

	gitExecutor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(Dependencies{
		RepositoryManager: repositoryManager,
		Reporter:          NewWriterReporter(builder.resolveOutput(command)),
		Logger:            logger,
	})
	if serviceError != nil {
		return serviceError
	}

	runSummary, runError := service.Run(command.Context(), builder.Operation, repositoryManifest, Options{ShowProgress: configuration.ShowProgress})
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, builder.Operation, runError)
	}
	if runSummary.Failed > 0 {
		return fmt.Errorf(operationFailuresErrorTemplate, builder.Operation, runSummary.Failed, runSummary.Total())
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
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

func (builder *CommandBuilder) resolveManifestPath(command *cobra.Command, configuration CommandConfiguration) string {
	if contextPath, pathAvailable := builder.ContextAccessor.ManifestFilePath(command.Context()); pathAvailable {
		trimmedContextPath := strings.TrimSpace(contextPath)
		if len(trimmedContextPath) > 0 {
			return trimmedContextPath
		}
	}
	if len(configuration.ManifestPath) > 0 {
		return configuration.ManifestPath
	}
	return defaultManifestFileNameConstant
}

func (builder *CommandBuilder) loadManifest(manifestPath string) (manifest.Manifest, error) {
	if builder.ManifestLoader != nil {
		return builder.ManifestLoader(manifestPath)
	}
	return manifest.Load(manifestPath)
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}
	shellExecutor.RegisterCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveOutput(command *cobra.Command) io.Writer {
	if builder.Output != nil {
		return builder.Output
	}
	if command.OutOrStdout() != nil {
		return command.OutOrStdout()
	}
	return os.Stdout
}
