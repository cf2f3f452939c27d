package orchestrator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"stylecfg/internal/interfaces"
)

// OutputHandler implements the OutputHandler interface
type OutputHandler struct {
	fs     afero.Fs
	stdout io.Writer
}

// NewOutputHandler creates an output handler writing files to fs and
// printing to stdout
func NewOutputHandler(fs afero.Fs, stdout io.Writer) *OutputHandler {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &OutputHandler{fs: fs, stdout: stdout}
}

// WriteToClipboard copies content to the system clipboard
func (h *OutputHandler) WriteToClipboard(content string) error {
	return clipboard.WriteAll(content)
}

// WriteToStdout writes content to standard output
func (h *OutputHandler) WriteToStdout(content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(h.stdout, content)
	return err
}

// WriteToFile writes content to the specified file path
func (h *OutputHandler) WriteToFile(content string, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := h.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return afero.WriteFile(h.fs, path, []byte(content), 0644)
}

// writeToTarget dispatches on a target string: stdout, clipboard or file:/path
func writeToTarget(h interfaces.OutputHandler, target, content string) error {
	switch {
	case target == "" || target == "stdout":
		return h.WriteToStdout(content)
	case target == "clipboard":
		return h.WriteToClipboard(content)
	case strings.HasPrefix(target, "file:"):
		return h.WriteToFile(content, strings.TrimPrefix(target, "file:"))
	}
	return fmt.Errorf("unsupported target %q", target)
}
