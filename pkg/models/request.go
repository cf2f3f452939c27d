package models

// ResolveRequest carries everything a resolve, validate or watch run needs
type ResolveRequest struct {
	ConfigPath   string
	SettingsPath string
	Format       string
	Target       string
	TemplatePath string
	UnknownKeys  string
	LogLevel     string
}

// NewResolveRequest creates an empty request; unset fields fall back to settings
func NewResolveRequest() *ResolveRequest {
	return &ResolveRequest{}
}

// InitRequest describes a starter config to write
type InitRequest struct {
	ConfigPath          string
	SettingsPath        string
	Interactive         bool
	ForceInteractive    bool
	ForceNonInteractive bool
	Force               bool
	Content             []string
	DarkMode            string
	Plugins             []string
	Colors              map[string]string
}

// NewInitRequest creates a request that starts out interactive
func NewInitRequest() *InitRequest {
	return &InitRequest{
		Interactive: true,
		Colors:      map[string]string{},
	}
}
