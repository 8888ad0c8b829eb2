package metadata

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

type yamlEntry struct {
	Name    string `yaml:"name"`
	Segment string `yaml:"segment"`
	Tag     string `yaml:"tag"`
	Value   string `yaml:"value"`
}

// Render writes entries in the requested format, preserving their order.
func Render(w io.Writer, entries []Entry, format string) error {
	switch format {
	case FormatText, "":
		return renderText(w, entries)
	case FormatYAML:
		return renderYAML(w, entries)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderText(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No Metadata Found :(")
		return err
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%*s : %s\n", width, e.Name, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func renderYAML(w io.Writer, entries []Entry) error {
	out := make([]yamlEntry, len(entries))
	for i, e := range entries {
		out[i] = yamlEntry{
			Name:    e.Name,
			Segment: e.Segment.String(),
			Tag:     fmt.Sprintf("0x%04x", e.TagID),
			Value:   e.Value.String(),
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
