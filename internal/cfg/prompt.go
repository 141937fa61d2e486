package cfg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"lecturr/internal/domain/errs"
	"lecturr/internal/scraper"
	"lecturr/internal/utils/logging"
)

const exampleURL = "https://echo360.net.au/section/xxxxxx/home"

// PromptForURL blocks on the reader until it receives a URL matching a
// recognized page shape. Used when no URL argument was given.
func PromptForURL(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)

	for {
		fmt.Print("Enter URL: ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("%w: no URL entered", errs.ErrConfiguration)
		}

		line = strings.TrimSpace(line)
		if _, perr := scraper.ParseTarget(line); perr == nil {
			return line, nil
		}

		logging.E("Invalid URL format.")
		logging.P("       Expected a URL that looks like %s", exampleURL)

		if err == io.EOF {
			return "", fmt.Errorf("%w: no valid URL entered", errs.ErrConfiguration)
		}
	}
}
