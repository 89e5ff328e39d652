package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/loopcontext/msgcode/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "msgcode",
	Short: "Message catalog tool",
	Long: `msgcode checks, shows, merges and exports message resources, extracts
message codes from Go code and serves catalogs over HTTP.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

var app = &appState{}

func main() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "TOML configuration file")
	flags.StringSliceVarP(&app.resources, "resource", "r", nil, "message resource (repeatable)")
	flags.String("charset", "", "charset of text resources (default UTF-8)")
	addLoadModeFlag(flags, &app.mode, "mode", "how resources are merged (replace-all|replace-exists|skip-exists)")
	flags.String("log-level", "", "minimum log level (debug|info|warn|error)")
	flags.String("log-file", "", "write JSON logs to a rotated file")
	flags.String("color", "auto", "colorize output (auto|on|off)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(app.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if len(app.resources) > 0 {
		cfg.Resources = app.resources
	}
	if flags.Changed("charset") {
		cfg.Charset, _ = flags.GetString("charset")
	}
	if flags.Changed("mode") {
		cfg.Mode = app.mode
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.Log.FilePath, _ = flags.GetString("log-file")
	}

	colorFlag, _ := flags.GetString("color")
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return errInvalidColor(colorFlag)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.log = logger
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if app.log != nil {
		return app.log.Close()
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
