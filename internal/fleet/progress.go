package fleet

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const (
	progressThrottleIntervalConstant = 65 * time.Millisecond
	minimumRepositoriesForProgress   = 2
)

// newFleetProgressBar builds a stderr progress bar for multi-repository runs.
// It returns nil when progress display is disabled, when only one repository
// is involved, or when stderr is not attached to a terminal.
func newFleetProgressBar(totalRepositories int, description string, showProgress bool) *progressbar.ProgressBar {
	if !showProgress {
		return nil
	}
	if totalRepositories < minimumRepositoriesForProgress {
		return nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	return progressbar.NewOptions(
		totalRepositories,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(progressThrottleIntervalConstant),
	)
}
