package execshell

// CommandEventObserver receives lifecycle notifications for each git
// subprocess the executor runs. The console event logger in internal/ui uses
// these hooks to narrate per-repository progress.
type CommandEventObserver interface {
	// CommandStarted fires just before the subprocess is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires after the subprocess exits and supplies the captured result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the subprocess could not be started at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver discards all command events; executors without a
// registered observer stay silent beyond their own structured logging.
type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
