package downloads

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"lecturr/internal/domain/command"
	"lecturr/internal/domain/errs"
	"lecturr/internal/utils/logging"
)

// fetchManifest reconstructs a single file from an adaptive-streaming
// manifest by delegating to yt-dlp, forwarding the session cookies so
// the subprocess shares the authenticated identity. yt-dlp invokes
// ffmpeg itself when separate audio/video streams need merging.
func (f *Fetcher) fetchManifest(ctx context.Context, manifestURL, destPath string) error {
	cmd := f.buildManifestCommand(ctx, manifestURL, destPath)

	// Process group so cancellation kills ffmpeg children too
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe error: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: failed to start yt-dlp: %v", errs.ErrExternalTool, err)
	}

	authFailure := scanToolOutput(io.MultiReader(stdout, stderr))

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			if killErr := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); killErr != nil && !strings.Contains(killErr.Error(), "no such process") {
				logging.E("Failed to kill process group %d: %v", cmd.Process.Pid, killErr)
			}
			return ctx.Err()
		}
		if authFailure {
			return fmt.Errorf("%w: yt-dlp was denied access (HTTP 403), refresh your cookies file: %v", errs.ErrExternalTool, err)
		}
		return fmt.Errorf("%w: yt-dlp failed: %v", errs.ErrExternalTool, err)
	}

	return nil
}

// buildManifestCommand builds the yt-dlp invocation for a manifest URL.
func (f *Fetcher) buildManifestCommand(ctx context.Context, manifestURL, destPath string) *exec.Cmd {
	args := make([]string, 0, 8)

	args = append(args, command.CookiePath, f.session.CookieFile)
	args = append(args, command.Output, destPath)
	args = append(args, command.Newline)

	// Target URL goes last
	args = append(args, manifestURL)

	cmd := exec.CommandContext(ctx, command.YTDLP, args...)
	logging.D(1, "Built manifest download command:\n%v", cmd.String())

	return cmd
}

// scanToolOutput relays subprocess output to the debug log and watches
// for the authorization failure yt-dlp reports when the forwarded
// session is stale.
func scanToolOutput(r io.Reader) (authFailure bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		logging.D(2, "yt-dlp: %s", line)

		if strings.Contains(line, "HTTP Error 403") || strings.Contains(line, "403 Forbidden") {
			authFailure = true
		}
	}
	return authFailure
}
