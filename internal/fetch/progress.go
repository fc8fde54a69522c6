package fetch

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// NewProgressBar creates a byte progress bar on stderr. A negative total
// renders a spinner for responses without Content-Length.
func NewProgressBar(total int64, description string, silent bool) *progressbar.ProgressBar {
	if silent {
		return progressbar.DefaultBytesSilent(total, description)
	}

	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(25),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = os.Stderr.WriteString("\n")
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
