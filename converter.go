package noteshub

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DocumentConverter turns a word processing document into an HTML fragment.
// Whether a converter is usable is decided once, when the build starts.
type DocumentConverter interface {
	// Whether this converter can be used at all
	Available() bool

	// Converts the document at path and returns an HTML fragment
	ConvertToHTML(ctx context.Context, path string) (string, error)
}

// Known converters tried (in order) when the converter command is "auto".
var KnownConverters = []CommandConverter{
	{Name: "pandoc", Command: "pandoc", Args: []string{"-f", "docx", "-t", "html", "{input}"}},
	{Name: "mammoth", Command: "mammoth", Args: []string{"{input}"}},
}

// CommandConverter runs an external tool that writes HTML to stdout.
type CommandConverter struct {
	// Name is a descriptive name for this converter (for logging)
	Name string

	// Command is the command to run
	Command string

	// Args are arguments to the command.  The {input} placeholder is replaced
	// with the document path.  If no arg has the placeholder the path is
	// appended as the last argument.
	Args []string
}

func (c *CommandConverter) Available() bool {
	return c.Command != ""
}

func (c *CommandConverter) ConvertToHTML(ctx context.Context, path string) (string, error) {
	usesInput := false
	args := make([]string, 0, len(c.Args)+1)
	for _, arg := range c.Args {
		if strings.Contains(arg, "{input}") {
			usesInput = true
		}
		args = append(args, strings.ReplaceAll(arg, "{input}", path))
	}
	if !usesInput {
		args = append(args, path)
	}

	cmd := exec.CommandContext(ctx, c.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %s: %s", c.Name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// UnavailableConverter is used when no conversion tool can be found.  Documents
// then get a download-only page.
type UnavailableConverter struct{}

func (UnavailableConverter) Available() bool { return false }

func (UnavailableConverter) ConvertToHTML(ctx context.Context, path string) (string, error) {
	return "", ErrConverterUnavailable
}

// DetectConverter picks the converter for a build.
//
// command "none" (or "") disables conversion.  "auto" picks the first of the
// KnownConverters found on the PATH.  Anything else is taken as an
// executable; if it cannot be found conversion is disabled with a warning.
func DetectConverter(command string, args []string) DocumentConverter {
	switch command {
	case "", "none":
		return UnavailableConverter{}
	case "auto":
		for _, known := range KnownConverters {
			if path, err := exec.LookPath(known.Command); err == nil {
				slog.Debug("Using document converter", "name", known.Name, "path", path)
				found := known
				found.Command = path
				return &found
			}
		}
		slog.Info("No document converter found, documents will be download only")
		return UnavailableConverter{}
	}

	path, err := exec.LookPath(command)
	if err != nil {
		slog.Warn("Document converter not found", "command", command, "error", err)
		return UnavailableConverter{}
	}
	return &CommandConverter{Name: command, Command: path, Args: args}
}
