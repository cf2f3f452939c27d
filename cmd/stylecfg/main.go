package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"stylecfg/internal/app"
	"stylecfg/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "stylecfg",
	Short: "Resolve utility-CSS design configurations",
	Long: `stylecfg loads a partial design configuration (content globs, theme,
darkMode and plugins), merges it over the built-in defaults and prints the
fully resolved configuration.

Keys under theme.extend are added to the defaults; other keys under theme
replace the default section. Run without a subcommand to resolve.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}
		return resolveCmd.RunE(cmd, args)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the design config and print it",
	Long:  "Resolve the design config against the defaults and write it to the target in JSON, YAML, TOML or through a template.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.New().Run(request)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the design config without printing it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.New().Validate(request)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Resolve the design config again whenever it changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return app.New().Watch(ctx, request)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter design config",
	Long: `Write a starter design config. Interactive mode asks for content globs,
dark mode, plugins and a brand color; -y writes the defaults plus whatever the
flags provide. The format follows the file extension of --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildInitRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.New().Init(request)
	},
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the plugins a design config can reference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.New().ListPlugins()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stylecfg version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(resolveCmd, validateCmd, watchCmd, initCmd, pluginsCmd, versionCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "design config path (default stylecfg.config.yaml)")
	rootCmd.PersistentFlags().String("settings", "", "settings file path (default ~/.config/stylecfg/settings.toml)")
	rootCmd.PersistentFlags().String("unknown-keys", "", "unknown key policy: reject, warn or ignore")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "v", false, "print version information")

	// Output flags shared by the resolving commands
	for _, cmd := range []*cobra.Command{rootCmd, resolveCmd, validateCmd, watchCmd} {
		cmd.Flags().StringP("format", "f", "", "output format: json, yaml or toml")
		cmd.Flags().StringP("target", "t", "", "output target (clipboard, stdout, file:/path)")
		cmd.Flags().String("template", "", "render through a Go template instead of a structured format")
	}

	// Init flags
	initCmd.Flags().BoolP("yes", "y", false, "noninteractive mode - use defaults without prompts")
	initCmd.Flags().BoolP("interactive", "i", false, "force interactive mode (overrides settings default)")
	initCmd.Flags().Bool("force", false, "overwrite an existing design config")
	initCmd.Flags().StringSlice("content", nil, "content globs")
	initCmd.Flags().String("dark-mode", "", "dark mode strategy: media or class")
	initCmd.Flags().StringSlice("plugin", nil, "plugins to enable")
	initCmd.Flags().StringToString("color", nil, "extra colors as name=#hex")
}

// buildRequestFromFlags constructs a ResolveRequest from command flags
func buildRequestFromFlags(cmd *cobra.Command) (*models.ResolveRequest, error) {
	request := models.NewResolveRequest()

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.SettingsPath, err = cmd.Flags().GetString("settings"); err != nil {
		return nil, fmt.Errorf("invalid settings flag: %w", err)
	}

	if request.UnknownKeys, err = cmd.Flags().GetString("unknown-keys"); err != nil {
		return nil, fmt.Errorf("invalid unknown-keys flag: %w", err)
	}

	if request.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}

	if request.Format, err = cmd.Flags().GetString("format"); err != nil {
		return nil, fmt.Errorf("invalid format flag: %w", err)
	}

	if request.Target, err = cmd.Flags().GetString("target"); err != nil {
		return nil, fmt.Errorf("invalid target flag: %w", err)
	}

	if request.TemplatePath, err = cmd.Flags().GetString("template"); err != nil {
		return nil, fmt.Errorf("invalid template flag: %w", err)
	}

	if request.TemplatePath != "" && request.Format != "" {
		return nil, fmt.Errorf("cannot use both --template and --format flags")
	}

	return request, nil
}

// buildInitRequestFromFlags constructs an InitRequest from the init flags
func buildInitRequestFromFlags(cmd *cobra.Command) (*models.InitRequest, error) {
	request := models.NewInitRequest()

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.SettingsPath, err = cmd.Flags().GetString("settings"); err != nil {
		return nil, fmt.Errorf("invalid settings flag: %w", err)
	}

	// Handle interactive mode flags
	if request.ForceNonInteractive, err = cmd.Flags().GetBool("yes"); err != nil {
		return nil, fmt.Errorf("invalid yes flag: %w", err)
	}

	if request.ForceInteractive, err = cmd.Flags().GetBool("interactive"); err != nil {
		return nil, fmt.Errorf("invalid interactive flag: %w", err)
	}

	// Validate that both flags are not set
	if request.ForceInteractive && request.ForceNonInteractive {
		return nil, fmt.Errorf("cannot use both --interactive and --yes flags")
	}

	if request.Force, err = cmd.Flags().GetBool("force"); err != nil {
		return nil, fmt.Errorf("invalid force flag: %w", err)
	}

	if request.Content, err = cmd.Flags().GetStringSlice("content"); err != nil {
		return nil, fmt.Errorf("invalid content flag: %w", err)
	}
	if len(request.Content) == 0 {
		request.Content = nil
	}

	if request.DarkMode, err = cmd.Flags().GetString("dark-mode"); err != nil {
		return nil, fmt.Errorf("invalid dark-mode flag: %w", err)
	}
	request.DarkMode = strings.TrimSpace(request.DarkMode)

	// An explicit empty --plugin means no plugins rather than asking
	if cmd.Flags().Changed("plugin") {
		if request.Plugins, err = cmd.Flags().GetStringSlice("plugin"); err != nil {
			return nil, fmt.Errorf("invalid plugin flag: %w", err)
		}
		if request.Plugins == nil {
			request.Plugins = []string{}
		}
	}

	colors, err := cmd.Flags().GetStringToString("color")
	if err != nil {
		return nil, fmt.Errorf("invalid color flag: %w", err)
	}
	for name, value := range colors {
		request.Colors[name] = value
	}

	return request, nil
}

func main() {
	// A .env next to the project may carry STYLECFG_* settings
	_ = godotenv.Load()

	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
