package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"note-cache/models"

	"gopkg.in/yaml.v3"
)

// Printer writes command results in the selected output format.
type Printer struct {
	Format string
	Writer io.Writer
}

// Print encodes v for json and yaml output and calls text otherwise.
func (p *Printer) Print(v any, text func(w io.Writer) error) error {
	switch p.Format {
	case "json":
		enc := json.NewEncoder(p.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(p.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(p.Writer)
	}
}

// Message prints a one-line status in text mode and v otherwise.
func (p *Printer) Message(v any, format string, args ...any) error {
	return p.Print(v, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, format+"\n", args...)
		return err
	})
}

const timeLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// noteFlags renders P for pinned and D for deleted
func noteFlags(n models.Note) string {
	flags := ""
	if n.Pinned {
		flags += "P"
	}
	if n.Deleted {
		flags += "D"
	}
	if flags == "" {
		return "-"
	}
	return flags
}

func writeNotes(w io.Writer, notes []models.Note) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tFLAGS\tMODIFIED\tTITLE")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.Key, noteFlags(n), formatTime(n.ModificationDate), n.Title)
	}
	return tw.Flush()
}

func writeNote(w io.Writer, n *models.Note) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "key:\t%s\n", n.Key)
	fmt.Fprintf(tw, "title:\t%s\n", n.Title)
	fmt.Fprintf(tw, "flags:\t%s\n", noteFlags(*n))
	fmt.Fprintf(tw, "tags:\t%s\n", strings.Join(n.Tags, ", "))
	fmt.Fprintf(tw, "created:\t%s\n", formatTime(n.CreationDate))
	fmt.Fprintf(tw, "modified:\t%s\n", formatTime(n.ModificationDate))
	return tw.Flush()
}

func writeTags(w io.Writer, tags []models.Tag) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tKEY\tNAME")
	for _, t := range tags {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.Index, t.Key, t.Name)
	}
	return tw.Flush()
}

func writeAttributes(w io.Writer, attrs models.Attributes) error {
	plain := attrs.Plain()
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, key := range slices.Sorted(maps.Keys(plain)) {
		value := plain[key]
		switch v := value.(type) {
		case nil:
			value = "null"
		case []string:
			value = "[" + strings.Join(v, ", ") + "]"
		}
		fmt.Fprintf(tw, "%s:\t%v\n", key, value)
	}
	return tw.Flush()
}
