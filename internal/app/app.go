package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"stylecfg/internal/config"
	"stylecfg/internal/interactive"
	"stylecfg/internal/interfaces"
	"stylecfg/internal/log"
	"stylecfg/internal/orchestrator"
	"stylecfg/internal/resolver"
	"stylecfg/pkg/models"
)

// App wires the orchestrator to the CLI commands
type App struct {
	fs     afero.Fs
	stdout io.Writer
	orch   *orchestrator.Orchestrator
}

// New creates an app on the OS filesystem and stdout
func New() *App {
	return NewWithFs(afero.NewOsFs(), os.Stdout)
}

// NewWithFs creates an app reading and writing through fs
func NewWithFs(fs afero.Fs, stdout io.Writer) *App {
	return &App{
		fs:     fs,
		stdout: stdout,
		orch:   orchestrator.NewWithFs(fs, stdout),
	}
}

// Run resolves the design config and writes it to the configured target
func (a *App) Run(request *models.ResolveRequest) error {
	settings, err := a.loadSettings(request)
	if err != nil {
		return err
	}

	return a.orch.Execute(request, settings)
}

// Validate resolves the design config and reports the outcome without
// rendering it
func (a *App) Validate(request *models.ResolveRequest) error {
	settings, err := a.loadSettings(request)
	if err != nil {
		return err
	}

	resolved, err := a.orch.ResolveFile(settings.ConfigFile, settings)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s is valid: %d content globs, %d theme sections, %d plugins\n",
		settings.ConfigFile, len(resolved.Content), len(resolved.Theme), len(resolved.Plugins))
	for _, warning := range resolved.Warnings {
		fmt.Fprintf(a.stdout, "  warning: %s\n", warning)
	}

	return nil
}

// Watch re-resolves the design config on every change until ctx is done
func (a *App) Watch(ctx context.Context, request *models.ResolveRequest) error {
	settings, err := a.loadSettings(request)
	if err != nil {
		return err
	}

	logger := log.WithComponent("watch")

	return a.orch.Watch(ctx, settings, func(resolved *interfaces.ResolvedConfig, err error) {
		if err != nil {
			logger.Error().Msg(err.Error())
			return
		}

		content, err := a.orch.Render(resolved, request, settings)
		if err != nil {
			logger.Error().Err(err).Msg("render failed")
			return
		}

		if err := a.orch.Output(content, settings); err != nil {
			logger.Error().Err(err).Msg("output failed")
			return
		}

		logger.Info().
			Int("plugins", len(resolved.Plugins)).
			Int("warnings", len(resolved.Warnings)).
			Msg("configuration resolved")
	})
}

// Init writes a starter design config, prompting for the parts the request
// leaves open when running interactively
func (a *App) Init(request *models.InitRequest) error {
	settings, err := a.loadSettings(&models.ResolveRequest{
		ConfigPath:   request.ConfigPath,
		SettingsPath: request.SettingsPath,
	})
	if err != nil {
		return err
	}

	resolveInteractiveMode(request, settings, interactive.IsTerminal())

	path := settings.ConfigFile
	prompter := interactive.NewPrompter(a.orch.Registry().Names())

	overwrite := request.Force
	exists, err := afero.Exists(a.fs, path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if exists && !overwrite {
		if !request.Interactive {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if overwrite, err = prompter.ConfirmOverwrite(path); err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(a.stdout, "Init cancelled.")
			return nil
		}
	}

	if err := prompter.CollectStarterOptions(request); err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}

	if err := config.WriteStarter(a.fs, path, starterOptions(request), overwrite); err != nil {
		return fmt.Errorf("failed to write starter config: %w", err)
	}

	// The starter must resolve cleanly, otherwise flags produced a broken file
	if _, err := a.orch.ResolveFile(path, settings); err != nil {
		return fmt.Errorf("wrote %s but it does not resolve: %w", path, err)
	}

	fmt.Fprintf(a.stdout, "Created %s\n", path)
	return nil
}

// ListPlugins prints the registered plugins with the classes they contribute
// under the default theme
func (a *App) ListPlugins() error {
	registry := a.orch.Registry()
	theme := resolver.Defaults().Theme

	fmt.Fprintln(a.stdout, "Plugins:")
	for _, name := range registry.Names() {
		factory, _ := registry.Lookup(name)
		descriptor, err := factory.Create(theme, nil)
		if err != nil {
			fmt.Fprintf(a.stdout, "  - %s (unavailable: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(a.stdout, "  - %s: %d classes, reads %s\n",
			name, len(descriptor.Components), joinOrNone(descriptor.ThemeKeys))
	}

	return nil
}

// loadSettings resolves settings and applies their log level
func (a *App) loadSettings(request *models.ResolveRequest) (*interfaces.Settings, error) {
	settings, err := a.orch.LoadSettings(request)
	if err != nil {
		return nil, err
	}

	log.Configure(log.Config{Level: settings.LogLevel})
	return settings, nil
}

// resolveInteractiveMode determines the final interactive mode based on flags and settings
func resolveInteractiveMode(request *models.InitRequest, settings *interfaces.Settings, isTerminal bool) {
	// Priority: explicit flags > settings default, and never prompt without a terminal
	if request.ForceInteractive {
		request.Interactive = true
	} else if request.ForceNonInteractive {
		request.Interactive = false
	} else {
		request.Interactive = settings.InteractiveDefault && isTerminal
	}
}

// starterOptions fills whatever the request left empty with the defaults
func starterOptions(request *models.InitRequest) config.StarterOptions {
	opts := config.DefaultStarterOptions()
	if len(request.Content) > 0 {
		opts.Content = request.Content
	}
	if request.DarkMode != "" {
		opts.DarkMode = request.DarkMode
	}
	if request.Plugins != nil {
		opts.Plugins = request.Plugins
	}
	if len(request.Colors) > 0 {
		opts.Colors = request.Colors
	}
	return opts
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "no theme sections"
	}
	return strings.Join(items, ", ")
}
