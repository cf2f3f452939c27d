package interactive

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
	"stylecfg/internal/config"
	"stylecfg/pkg/models"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

type askFunc func(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Prompter handles interactive user input collection for init
type Prompter struct {
	plugins []string
	ask     askFunc
}

// NewPrompter creates a prompter offering the given plugin names
func NewPrompter(plugins []string) *Prompter {
	return &Prompter{
		plugins: plugins,
		ask:     survey.AskOne,
	}
}

// IsTerminal reports whether stdin is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// CollectStarterOptions prompts for every starter field the request leaves unset
func (p *Prompter) CollectStarterOptions(request *models.InitRequest) error {
	if !request.Interactive {
		return nil // Flags and defaults only in noninteractive mode
	}

	if len(request.Content) == 0 {
		if err := p.promptForContent(request); err != nil {
			return fmt.Errorf("failed to collect content globs: %w", err)
		}
	}

	if request.DarkMode == "" {
		if err := p.promptForDarkMode(request); err != nil {
			return fmt.Errorf("failed to collect dark mode: %w", err)
		}
	}

	if request.Plugins == nil && len(p.plugins) > 0 {
		if err := p.promptForPlugins(request); err != nil {
			return fmt.Errorf("failed to collect plugins: %w", err)
		}
	}

	if len(request.Colors) == 0 {
		if err := p.promptForColor(request); err != nil {
			return fmt.Errorf("failed to collect brand color: %w", err)
		}
	}

	return nil
}

// promptForContent asks for the globs the scanner should read
func (p *Prompter) promptForContent(request *models.InitRequest) error {
	prompt := &survey.Input{
		Message: "Content globs (comma separated):",
		Default: strings.Join(config.DefaultStarterOptions().Content, ", "),
		Help:    "Files scanned for class names, relative to the project root",
	}

	var answer string
	if err := p.ask(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	request.Content = splitList(answer)
	return nil
}

func (p *Prompter) promptForDarkMode(request *models.InitRequest) error {
	prompt := &survey.Select{
		Message: "Dark mode strategy:",
		Options: []string{"media", "class"},
		Default: "media",
		Help:    "media follows the OS preference, class toggles on a .dark ancestor",
	}

	var answer string
	if err := p.ask(prompt, &answer); err != nil {
		return err
	}

	request.DarkMode = answer
	return nil
}

func (p *Prompter) promptForPlugins(request *models.InitRequest) error {
	prompt := &survey.MultiSelect{
		Message: "Plugins to enable:",
		Options: p.plugins,
	}

	var answer []string
	if err := p.ask(prompt, &answer); err != nil {
		return err
	}

	request.Plugins = answer
	return nil
}

// promptForColor optionally adds one named color under theme.extend.colors
func (p *Prompter) promptForColor(request *models.InitRequest) error {
	var add bool
	if err := p.ask(&survey.Confirm{Message: "Add a brand color?", Default: false}, &add); err != nil {
		return err
	}
	if !add {
		return nil
	}

	var name string
	namePrompt := &survey.Input{Message: "Color name:", Default: "brand"}
	if err := p.ask(namePrompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var value string
	valuePrompt := &survey.Input{Message: "Color value (hex):", Help: "For example #202232"}
	if err := p.ask(valuePrompt, &value, survey.WithValidator(validateHex)); err != nil {
		return err
	}

	if request.Colors == nil {
		request.Colors = map[string]string{}
	}
	request.Colors[strings.TrimSpace(name)] = strings.TrimSpace(value)
	return nil
}

// ConfirmOverwrite asks the user if they want to overwrite an existing file
func (p *Prompter) ConfirmOverwrite(filePath string) (bool, error) {
	overwritePrompt := &survey.Confirm{
		Message: fmt.Sprintf("Design config already exists: %s. Overwrite?", filePath),
		Default: false,
	}

	var overwrite bool
	if err := p.ask(overwritePrompt, &overwrite); err != nil {
		return false, err
	}

	return overwrite, nil
}

func validateHex(ans interface{}) error {
	s, ok := ans.(string)
	if !ok || !hexColor.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("expected a hex color such as #202232")
	}
	return nil
}

// splitList splits a comma separated answer, dropping empty entries. Commas
// inside {} belong to brace expansions and do not split.
func splitList(s string) []string {
	var out []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if part := strings.TrimSpace(current.String()); part != "" {
			out = append(out, part)
		}
		current.Reset()
	}

	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == ',' && depth == 0:
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return out
}
