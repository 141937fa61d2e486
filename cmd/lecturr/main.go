// Package main is the entrypoint of lecturr.
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"lecturr/internal/app"
	"lecturr/internal/auth"
	"lecturr/internal/cfg"
	"lecturr/internal/database"
	"lecturr/internal/domain/consts"
	"lecturr/internal/domain/keys"
	"lecturr/internal/downloads"
	"lecturr/internal/repo"
	"lecturr/internal/scraper"
	"lecturr/internal/utils/logging"

	"github.com/spf13/viper"
)

func main() {
	startTime := time.Now()

	cfg.InitCommands()
	if err := cfg.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !viper.GetBool(keys.Execute) {
		return // Help shown, not meant to run
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, startTime); err != nil {
		logging.E("lecturr exiting with error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, startTime time.Time) error {
	outputDir := viper.GetString(keys.OutputDir)
	if err := os.MkdirAll(outputDir, consts.DirPerms); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", outputDir, err)
	}

	// Logging setup
	logging.Level = viper.GetInt(keys.DebugLevel)
	if err := logging.Setup(filepath.Join(outputDir, consts.LogFileName)); err != nil {
		fmt.Printf("Notice: log file was not created\nReason: %v\n", err)
	}
	defer logging.Close()

	logging.I("lecturr started at: %v", startTime.Format("2006-01-02 15:04:05.00 MST"))

	// URL from args, or prompt interactively
	rawURL := viper.GetString(keys.TargetURL)
	if rawURL == "" {
		promptedURL, err := cfg.PromptForURL(os.Stdin)
		if err != nil {
			return err
		}
		rawURL = promptedURL
	}

	base, err := scraper.PlatformBase(rawURL)
	if err != nil {
		return err
	}

	experimental := viper.GetBool(keys.ExperimentalMode)
	if experimental {
		if err := downloads.CheckTools(); err != nil {
			return err
		}
	}

	cookies, cookieFile, err := loadCookies(base, outputDir)
	if err != nil {
		return err
	}

	session, err := auth.NewSession(base, cookies, cookieFile, outputDir, experimental, viper.GetInt(keys.SkipCount))
	if err != nil {
		return err
	}

	// Download history DB lives next to the output files
	dbc, err := database.InitDB(filepath.Join(outputDir, consts.HistoryDBName))
	if err != nil {
		return err
	}
	defer func() {
		if err := dbc.Close(); err != nil {
			logging.E("Failed to close history database: %v", err)
		}
	}()

	runner := app.NewRunner(session, repo.GetDownloadStore(dbc.DB))
	report, runErr := runner.Run(ctx, rawURL)

	app.LogReport(report)

	endTime := time.Now()
	logging.I("lecturr finished at: %v (%.2f seconds elapsed)",
		endTime.Format("2006-01-02 15:04:05.00 MST"), endTime.Sub(startTime).Seconds())

	return runErr
}

// loadCookies acquires the platform session cookies, from the browser
// stores or the configured cookie jar file, and returns a Netscape file
// path usable by the yt-dlp subprocess.
func loadCookies(base, outputDir string) ([]*http.Cookie, string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, "", fmt.Errorf("invalid platform URL %q: %w", base, err)
	}
	domain := u.Host

	if viper.GetBool(keys.CookieSource) {
		cookies, err := auth.BrowserCookies(domain)
		if err != nil {
			return nil, "", err
		}

		cookieFile := filepath.Join(outputDir, consts.CookieFileName)
		if err := auth.WriteNetscapeFile(cookies, domain, cookieFile); err != nil {
			return nil, "", fmt.Errorf("failed to write cookie file for external tools: %w", err)
		}
		return cookies, cookieFile, nil
	}

	cookieFile := viper.GetString(keys.CookiesFile)
	cookies, err := auth.ReadCookieFile(cookieFile, domain)
	if err != nil {
		return nil, "", err
	}
	return cookies, cookieFile, nil
}
