package downloads

import (
	"errors"
	"fmt"
	"os/exec"

	"lecturr/internal/domain/command"
	"lecturr/internal/domain/errs"
)

// CheckTools verifies the external tools the adaptive-manifest path
// needs are on $PATH. Checked once at startup, not per lecture.
func CheckTools() error {
	for _, tool := range []string{command.YTDLP, command.FFmpeg} {
		if _, err := exec.LookPath(tool); err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return fmt.Errorf("%w: %q is required for experimental mode", errs.ErrExternalToolMissing, tool)
			}
			return fmt.Errorf("error checking for %q at $PATH: %w", tool, err)
		}
	}
	return nil
}
