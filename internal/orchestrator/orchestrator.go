package orchestrator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"stylecfg/internal/config"
	"stylecfg/internal/interfaces"
	"stylecfg/internal/log"
	"stylecfg/internal/plugins"
	"stylecfg/internal/resolver"
	"stylecfg/internal/template"
	"stylecfg/pkg/models"
)

// Orchestrator coordinates settings, loading, resolution, rendering and output
type Orchestrator struct {
	settingsManager   interfaces.SettingsManager
	loader            interfaces.DocumentLoader
	registry          interfaces.PluginRegistry
	templateProcessor interfaces.TemplateProcessor
	outputHandler     interfaces.OutputHandler
}

// New creates an orchestrator working on the OS filesystem and stdout
func New() *Orchestrator {
	return NewWithFs(afero.NewOsFs(), os.Stdout)
}

// NewWithFs creates an orchestrator reading and writing through fs
func NewWithFs(fs afero.Fs, stdout io.Writer) *Orchestrator {
	return &Orchestrator{
		settingsManager:   config.NewManagerWithFs(fs),
		loader:            config.NewLoader(fs),
		registry:          plugins.Builtin(),
		templateProcessor: template.NewProcessor(fs),
		outputHandler:     NewOutputHandler(fs, stdout),
	}
}

// Registry returns the plugin registry used for resolution
func (o *Orchestrator) Registry() interfaces.PluginRegistry {
	return o.registry
}

// LoadSettings loads and resolves settings with precedence, request fields
// acting as flags
func (o *Orchestrator) LoadSettings(request *models.ResolveRequest) (*interfaces.Settings, error) {
	if request == nil {
		request = models.NewResolveRequest()
	}

	if _, err := o.settingsManager.Load(request.SettingsPath); err != nil {
		return nil, NewSettingsError("failed to load settings", err)
	}

	o.settingsManager.SetFlag("config_file", request.ConfigPath)
	o.settingsManager.SetFlag("format", request.Format)
	o.settingsManager.SetFlag("target", request.Target)
	o.settingsManager.SetFlag("unknown_keys", request.UnknownKeys)
	o.settingsManager.SetFlag("log_level", request.LogLevel)

	settings, err := o.settingsManager.Resolve()
	if err != nil {
		return nil, NewSettingsError("failed to resolve settings", err)
	}

	if err := o.settingsManager.Validate(settings); err != nil {
		return nil, NewSettingsError("invalid settings", err)
	}

	return settings, nil
}

// ResolveFile loads the design config at path and resolves it against the
// built-in defaults. Warnings are logged and kept on the result.
func (o *Orchestrator) ResolveFile(path string, settings *interfaces.Settings) (*interfaces.ResolvedConfig, error) {
	start := time.Now()
	logger := o.logger().With().Str("source", path).Logger()

	doc, err := o.loader.Load(path)
	if err != nil {
		return nil, classify(path, err)
	}

	r := resolver.New(o.registry, interfaces.UnknownKeyPolicy(settings.UnknownKeys))
	resolved, err := r.Resolve(doc, resolver.Defaults())
	if err != nil {
		return nil, classify(path, err)
	}

	for _, warning := range resolved.Warnings {
		logger.Warn().Msg(warning)
	}

	logger.Debug().
		Int("content", len(resolved.Content)).
		Int("theme_sections", len(resolved.Theme)).
		Int("plugins", len(resolved.Plugins)).
		Dur("took", time.Since(start)).
		Msg("configuration resolved")

	return resolved, nil
}

// Render serializes the resolved config, through the request's template
// when one is given
func (o *Orchestrator) Render(resolved *interfaces.ResolvedConfig, request *models.ResolveRequest, settings *interfaces.Settings) (string, error) {
	if request != nil && request.TemplatePath != "" {
		tmpl, err := o.templateProcessor.LoadTemplate(request.TemplatePath)
		if err != nil {
			return "", err
		}
		return o.templateProcessor.Execute(tmpl, interfaces.TemplateData{
			Config: resolved,
			Source: settings.ConfigFile,
			Now:    time.Now(),
			Env:    environ(),
		})
	}

	format, err := config.FormatFromName(settings.Format)
	if err != nil {
		return "", err
	}
	data, err := config.Encode(format, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to encode resolved config as %s: %w", format, err)
	}
	return string(data), nil
}

// Output writes rendered content to the configured target
func (o *Orchestrator) Output(content string, settings *interfaces.Settings) error {
	if err := writeToTarget(o.outputHandler, settings.Target, content); err != nil {
		return NewOutputError(settings.Target, err)
	}
	return nil
}

// Run loads settings, then resolves, renders and outputs in one go
func (o *Orchestrator) Run(request *models.ResolveRequest) error {
	settings, err := o.LoadSettings(request)
	if err != nil {
		return err
	}
	return o.Execute(request, settings)
}

// Execute resolves, renders and outputs with already loaded settings
func (o *Orchestrator) Execute(request *models.ResolveRequest, settings *interfaces.Settings) error {
	resolved, err := o.ResolveFile(settings.ConfigFile, settings)
	if err != nil {
		return err
	}

	content, err := o.Render(resolved, request, settings)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return o.Output(content, settings)
}

// logger is looked up per call so it follows log.Configure
func (o *Orchestrator) logger() zerolog.Logger {
	return log.WithComponent("orchestrator")
}

func environ() map[string]string {
	envMap := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}
	return envMap
}
