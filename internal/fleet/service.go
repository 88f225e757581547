package fleet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/steveswinsburg/git-tools/internal/manifest"
	pathutils "github.com/steveswinsburg/git-tools/internal/utils/path"
)

const (
	repositoryManagerRequiredMessageConstant = "fleet service requires a repository manager"
	unsupportedOperationTemplateConstant     = "unsupported fleet operation %q"
	primaryBranchNameConstant                = "main"
	fallbackBranchNameConstant               = "master"
	detachedHeadLabelConstant                = "detached"
	cleanWorktreeLabelConstant               = "clean"
	dirtyWorktreeLabelConstant               = "dirty"
	checkoutDirectoryPermissionsConstant     = fs.FileMode(0o755)

	cloneSkipMessageTemplateConstant    = "CLONE-SKIP: %s (already exists at %s)\n"
	cloneDoneMessageTemplateConstant    = "CLONE-DONE: %s (%s)\n"
	cloneFailMessageTemplateConstant    = "CLONE-FAIL: %s (%v)\n"
	updateSkipMissingTemplateConstant   = "UPDATE-SKIP: %s (no repository at %s)\n"
	updateSkipDirtyTemplateConstant     = "UPDATE-SKIP: %s (worktree has local changes)\n"
	updateDoneMessageTemplateConstant   = "UPDATE-DONE: %s (branch: %s)\n"
	updateFailMessageTemplateConstant   = "UPDATE-FAIL: %s (%v)\n"
	statusExistsMessageTemplateConstant = "%-30s EXISTS (branch: %s, status: %s)\n"
	statusMissingMessageTemplate        = "%-30s NOT FOUND\n"
	statusFailMessageTemplateConstant   = "%-30s ERROR (%v)\n"
	summaryMessageTemplateConstant      = "%s completed: %d succeeded, %d skipped, %d failed\n"

	runCompletedLogMessageConstant       = "fleet run completed"
	repositoryVisitedLogMessageConstant  = "repository processed"
	operationLogFieldNameConstant        = "operation"
	repositoryLogFieldNameConstant       = "repository"
	outcomeLogFieldNameConstant          = "outcome"
	durationLogFieldNameConstant         = "duration"
	succeededLogFieldNameConstant        = "succeeded"
	skippedLogFieldNameConstant          = "skipped"
	failedLogFieldNameConstant           = "failed"
	checkoutDirectoryCreateErrorTemplate = "unable to create checkout directory %s: %w"
)

// ErrRepositoryManagerNotConfigured indicates the service was built without a repository manager.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerRequiredMessageConstant)

// Dependencies enumerates the collaborators the fleet service requires.
type Dependencies struct {
	RepositoryManager RepositoryManager
	FileSystem        FileSystem
	Reporter          Reporter
	Logger            *zap.Logger
	Clock             Clock
	PathExpander      *pathutils.HomeExpander
}

// Options adjusts a single fleet run.
type Options struct {
	ShowProgress bool
}

// Service applies one operation across every repository the manifest names.
type Service struct {
	dependencies Dependencies
}

// NewService validates dependencies and constructs a fleet Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = OSFileSystem{}
	}
	if dependencies.Reporter == nil {
		dependencies.Reporter = NewWriterReporter(os.Stdout)
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clock == nil {
		dependencies.Clock = SystemClock{}
	}
	if dependencies.PathExpander == nil {
		dependencies.PathExpander = pathutils.NewHomeExpander()
	}
	return &Service{dependencies: dependencies}, nil
}

// Run visits every repository in manifest order and applies the requested
// operation. Failures are recorded and iteration continues; only context
// cancellation or an unsupported operation aborts the run early.
func (service *Service) Run(executionContext context.Context, operation OperationType, repositoryManifest manifest.Manifest, runOptions Options) (Summary, error) {
	switch operation {
	case OperationClone, OperationUpdate, OperationStatus:
	default:
		return Summary{Operation: operation}, fmt.Errorf(unsupportedOperationTemplateConstant, operation)
	}

	runStart := service.dependencies.Clock.Now()
	runSummary := Summary{Operation: operation}
	progressBar := newFleetProgressBar(len(repositoryManifest.Repositories), string(operation), runOptions.ShowProgress)

	for _, repositoryName := range repositoryManifest.Repositories {
		if contextError := executionContext.Err(); contextError != nil {
			return runSummary, contextError
		}

		result := service.applyOperation(executionContext, operation, repositoryManifest, repositoryName)
		runSummary.record(result)
		service.dependencies.Logger.Debug(repositoryVisitedLogMessageConstant,
			zap.String(operationLogFieldNameConstant, string(operation)),
			zap.String(repositoryLogFieldNameConstant, result.RepositoryName),
			zap.String(outcomeLogFieldNameConstant, string(result.Outcome)),
		)
		if progressBar != nil {
			_ = progressBar.Add(1)
		}
	}
	if progressBar != nil {
		_ = progressBar.Finish()
	}

	service.dependencies.Reporter.Printf(summaryMessageTemplateConstant, operation, runSummary.Succeeded, runSummary.Skipped, runSummary.Failed)
	service.dependencies.Logger.Info(runCompletedLogMessageConstant,
		zap.String(operationLogFieldNameConstant, string(operation)),
		zap.Int(succeededLogFieldNameConstant, runSummary.Succeeded),
		zap.Int(skippedLogFieldNameConstant, runSummary.Skipped),
		zap.Int(failedLogFieldNameConstant, runSummary.Failed),
		zap.Duration(durationLogFieldNameConstant, service.dependencies.Clock.Now().Sub(runStart)),
	)

	return runSummary, nil
}

func (service *Service) applyOperation(executionContext context.Context, operation OperationType, repositoryManifest manifest.Manifest, repositoryName string) OperationResult {
	trimmedRepositoryName := strings.TrimSpace(repositoryName)
	localPath := service.dependencies.PathExpander.Expand(repositoryManifest.LocalPath(trimmedRepositoryName))

	switch operation {
	case OperationClone:
		return service.cloneRepository(executionContext, repositoryManifest, trimmedRepositoryName, localPath)
	case OperationUpdate:
		return service.updateRepository(executionContext, trimmedRepositoryName, localPath)
	default:
		return service.reportRepositoryStatus(executionContext, trimmedRepositoryName, localPath)
	}
}

func (service *Service) cloneRepository(executionContext context.Context, repositoryManifest manifest.Manifest, repositoryName string, localPath string) OperationResult {
	if _, statError := service.dependencies.FileSystem.Stat(localPath); statError == nil {
		service.dependencies.Reporter.Printf(cloneSkipMessageTemplateConstant, repositoryName, localPath)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationClone, Outcome: OutcomeSkipped, Message: localPath}
	}

	if directoryError := service.ensureCheckoutDirectory(repositoryManifest); directoryError != nil {
		service.dependencies.Reporter.Printf(cloneFailMessageTemplateConstant, repositoryName, directoryError)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationClone, Outcome: OutcomeFailed, Message: directoryError.Error()}
	}

	remoteURL := repositoryManifest.RemoteURL(repositoryName)
	if cloneError := service.dependencies.RepositoryManager.Clone(executionContext, remoteURL, localPath); cloneError != nil {
		service.dependencies.Reporter.Printf(cloneFailMessageTemplateConstant, repositoryName, cloneError)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationClone, Outcome: OutcomeFailed, Message: cloneError.Error()}
	}

	service.dependencies.Reporter.Printf(cloneDoneMessageTemplateConstant, repositoryName, localPath)
	return OperationResult{RepositoryName: repositoryName, Operation: OperationClone, Outcome: OutcomeSucceeded, Message: localPath}
}

func (service *Service) updateRepository(executionContext context.Context, repositoryName string, localPath string) OperationResult {
	if !service.dependencies.RepositoryManager.IsRepository(executionContext, localPath) {
		service.dependencies.Reporter.Printf(updateSkipMissingTemplateConstant, repositoryName, localPath)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationUpdate, Outcome: OutcomeSkipped, Message: localPath}
	}

	cleanWorktree, cleanError := service.dependencies.RepositoryManager.CheckCleanWorktree(executionContext, localPath)
	if cleanError != nil {
		service.dependencies.Reporter.Printf(updateFailMessageTemplateConstant, repositoryName, cleanError)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationUpdate, Outcome: OutcomeFailed, Message: cleanError.Error()}
	}
	if !cleanWorktree {
		service.dependencies.Reporter.Printf(updateSkipDirtyTemplateConstant, repositoryName)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationUpdate, Outcome: OutcomeSkipped, Message: dirtyWorktreeLabelConstant}
	}

	checkedOutBranch, checkoutError := service.checkoutPrimaryBranch(executionContext, localPath)
	if checkoutError != nil {
		service.dependencies.Reporter.Printf(updateFailMessageTemplateConstant, repositoryName, checkoutError)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationUpdate, Outcome: OutcomeFailed, Message: checkoutError.Error()}
	}

	if pullError := service.dependencies.RepositoryManager.Pull(executionContext, localPath); pullError != nil {
		service.dependencies.Reporter.Printf(updateFailMessageTemplateConstant, repositoryName, pullError)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationUpdate, Outcome: OutcomeFailed, Message: pullError.Error()}
	}

	service.dependencies.Reporter.Printf(updateDoneMessageTemplateConstant, repositoryName, checkedOutBranch)
	return OperationResult{RepositoryName: repositoryName, Operation: OperationUpdate, Outcome: OutcomeSucceeded, Message: checkedOutBranch}
}

func (service *Service) reportRepositoryStatus(executionContext context.Context, repositoryName string, localPath string) OperationResult {
	if !service.dependencies.RepositoryManager.IsRepository(executionContext, localPath) {
		service.dependencies.Reporter.Printf(statusMissingMessageTemplate, repositoryName)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationStatus, Outcome: OutcomeSkipped, Message: localPath}
	}

	branchName, branchError := service.dependencies.RepositoryManager.CurrentBranch(executionContext, localPath)
	if branchError != nil {
		service.dependencies.Reporter.Printf(statusFailMessageTemplateConstant, repositoryName, branchError)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationStatus, Outcome: OutcomeFailed, Message: branchError.Error()}
	}
	if len(branchName) == 0 {
		branchName = detachedHeadLabelConstant
	}

	cleanWorktree, cleanError := service.dependencies.RepositoryManager.CheckCleanWorktree(executionContext, localPath)
	if cleanError != nil {
		service.dependencies.Reporter.Printf(statusFailMessageTemplateConstant, repositoryName, cleanError)
		return OperationResult{RepositoryName: repositoryName, Operation: OperationStatus, Outcome: OutcomeFailed, Message: cleanError.Error()}
	}

	worktreeLabel := cleanWorktreeLabelConstant
	if !cleanWorktree {
		worktreeLabel = dirtyWorktreeLabelConstant
	}

	service.dependencies.Reporter.Printf(statusExistsMessageTemplateConstant, repositoryName, branchName, worktreeLabel)
	return OperationResult{RepositoryName: repositoryName, Operation: OperationStatus, Outcome: OutcomeSucceeded, Message: worktreeLabel}
}

func (service *Service) checkoutPrimaryBranch(executionContext context.Context, localPath string) (string, error) {
	primaryError := service.dependencies.RepositoryManager.CheckoutBranch(executionContext, localPath, primaryBranchNameConstant)
	if primaryError == nil {
		return primaryBranchNameConstant, nil
	}

	fallbackError := service.dependencies.RepositoryManager.CheckoutBranch(executionContext, localPath, fallbackBranchNameConstant)
	if fallbackError == nil {
		return fallbackBranchNameConstant, nil
	}

	return "", primaryError
}

func (service *Service) ensureCheckoutDirectory(repositoryManifest manifest.Manifest) error {
	checkoutDirectory := strings.TrimSpace(repositoryManifest.CheckoutDirectory)
	if len(checkoutDirectory) == 0 {
		return nil
	}

	expandedDirectory := service.dependencies.PathExpander.Expand(checkoutDirectory)
	if directoryError := service.dependencies.FileSystem.MkdirAll(expandedDirectory, checkoutDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(checkoutDirectoryCreateErrorTemplate, expandedDirectory, directoryError)
	}
	return nil
}
