// Package cfg provides configuration and command-line interface setup
// for lecturr.
package cfg

import (
	"fmt"
	"strings"

	"lecturr/internal/domain/errs"
	"lecturr/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "lecturr [URL]",
	Short: "Lecturr bulk downloads lecture recordings from Echo360.",
	Long: `Lecturr downloads the lecture recordings reachable from an Echo360 course
home page (or a single classroom page) to local files, authenticating with a
browser-exported cookie jar.

The '-x' flag enables the experimental downloader for courses where downloading
is not enabled. yt-dlp and ffmpeg must be installed for that mode to work.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("help").Changed {
			return nil
		}
		if len(args) == 1 {
			viper.Set(keys.TargetURL, args[0])
		}
		if err := validateFlags(); err != nil {
			return err
		}
		viper.Set(keys.Execute, true)
		return nil
	},
	SilenceUsage: true,
}

// InitCommands initializes the root command and its flags.
func InitCommands() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("_", "-"))

	rootCmd.PersistentFlags().BoolP(keys.ExperimentalMode, "x", false, "Use the experimental downloader (requires yt-dlp and ffmpeg)")
	viper.BindPFlag(keys.ExperimentalMode, rootCmd.PersistentFlags().Lookup(keys.ExperimentalMode))

	rootCmd.PersistentFlags().StringP(keys.CookiesFile, "c", "cookies.txt", "Path to a Netscape-format cookie jar exported from your browser")
	viper.BindPFlag(keys.CookiesFile, rootCmd.PersistentFlags().Lookup(keys.CookiesFile))

	rootCmd.PersistentFlags().Bool(keys.CookieSource, false, "Read session cookies straight from your installed browsers instead of a file")
	viper.BindPFlag(keys.CookieSource, rootCmd.PersistentFlags().Lookup(keys.CookieSource))

	rootCmd.PersistentFlags().StringP(keys.OutputDir, "o", "output", "Directory to save lecture recordings into")
	viper.BindPFlag(keys.OutputDir, rootCmd.PersistentFlags().Lookup(keys.OutputDir))

	rootCmd.PersistentFlags().Int(keys.SkipCount, 0, "Skip this many leading lectures in the discovered listing")
	viper.BindPFlag(keys.SkipCount, rootCmd.PersistentFlags().Lookup(keys.SkipCount))

	rootCmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debug verbosity (0-5)")
	viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel))
}

// Execute parses the terminal input and validates it.
func Execute() error {
	return rootCmd.Execute()
}

// validateFlags rejects configurations the run could never start from.
func validateFlags() error {
	if skip := viper.GetInt(keys.SkipCount); skip < 0 {
		return fmt.Errorf("%w: --skip must be >= 0, got %d", errs.ErrConfiguration, skip)
	}
	if viper.GetString(keys.OutputDir) == "" {
		return fmt.Errorf("%w: --output-dir must not be empty", errs.ErrConfiguration)
	}
	return nil
}
