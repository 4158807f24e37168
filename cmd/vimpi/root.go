package main

import (
	"fmt"
	"io"

	"vimpi/internal/config"
	"vimpi/internal/errors"
	"vimpi/internal/log"
	"vimpi/internal/tui"
	"vimpi/internal/tui/styles"
	"vimpi/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	themeFile  string
	logFile    string
	debug      bool
	noWatch    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "vimpi [directory]",
		Short: "A terminal file explorer and editor",
		Long: `
 '##::::'##:'####:'##::::'##:'########::'####:
  ##:::: ##:. ##:: ###::'###: ##.... ##:. ##::
  ##:::: ##:: ##:: ####'####: ##:::: ##:: ##::
  ##:::: ##:: ##:: ## ### ##: ########::: ##::
 . ##:: ##::: ##:: ##. #: ##: ##.....:::: ##::
 :. ## ##:::: ##:: ##:.:: ##: ##::::::::: ##::
 ::. ###::::'####: ##:::: ##: ##::::::::'####:
 :::...:::::....::..:::::..::..:::::::::....::

Vim in Go: browse a directory tree, edit a file, save it.
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.resolveConfig(args, cmd.ErrOrStderr())
			return run(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is $HOME/.config/vimpi/config.yaml)")
	flags.StringVar(&opts.themeFile, "theme", "", "theme file (YAML colour palette)")
	flags.StringVar(&opts.logFile, "log-file", "", "log destination (default is $TMPDIR/vimpi.log)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noWatch, "no-watch", false, "do not refresh the tree when directories change")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vimpi %s\n", version)
		},
	}
}

// resolveConfig loads the config file and applies flags over it. A config
// that cannot be loaded is reported on w and the defaults are used.
func (o *rootOptions) resolveConfig(args []string, w io.Writer) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadConfigFile(o.configFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(w, "⚠️ Warning: %v\n", err)
		if errors.IsInvalidConfig(err) {
			fmt.Fprintln(w, "💡 Check the file's YAML syntax and values.")
		}
		fmt.Fprintln(w, "💡 Using default settings.")
		cfg = config.New()
	}

	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if o.themeFile != "" {
		cfg.Theme.Path = o.themeFile
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	if o.noWatch {
		cfg.Watch.Enabled = false
	}
	return cfg
}

// logOptions sends log entries to the configured file. If the file cannot
// be opened the entries go to fallback, never to the terminal the TUI owns.
func logOptions(cfg *config.Config, fallback io.Writer) []log.Option {
	opts := []log.Option{
		log.WithOutput(fallback),
		log.WithFile(cfg.Log.File),
		log.WithDebug(cfg.Log.Debug),
	}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	return opts
}

func run(cfg *config.Config) error {
	log.Configure(logOptions(cfg, io.Discard)...)
	defer log.Close()

	if err := styles.Apply(cfg.Theme.Path); err != nil {
		log.LogWithFields(log.F("path", cfg.Theme.Path), log.F("error", err)).Warn("Theme not loaded, using defaults")
	}

	var modelOpts []tui.Option
	if cfg.Watch.Enabled {
		w, err := watch.New()
		if err != nil {
			log.LogWithFields(log.F("error", err)).Warn("Directory watcher unavailable")
		} else {
			defer w.Stop()
			modelOpts = append(modelOpts, tui.WithWatcher(w))
		}
	}

	m, err := tui.New(cfg, modelOpts...)
	if err != nil {
		return fmt.Errorf("error starting editor: %w", err)
	}

	log.LogWithFields(log.F("root", cfg.Root), log.F("version", version)).Info("Starting vimpi")
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
