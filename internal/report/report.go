// Package report renders submitted payloads for people: a markdown summary
// rendered with glamour, and syntax-highlighted JSON for terminals.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/glamour/v2"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/i18n"
)

// Markdown summarises a payload step by step using localized labels.
func Markdown(def *form.Definition, p form.Payload, loc *i18n.Localizer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", loc.Text(features.TitleKey(def), def.Title))
	if desc := loc.Text(features.DescriptionKey(def), def.Description); desc != "" {
		fmt.Fprintf(&b, "%s\n\n", desc)
	}

	for _, step := range def.Steps {
		fmt.Fprintf(&b, "## %s\n\n", loc.Text(features.StepKey(def, step), step.Title))
		for _, f := range step.Fields {
			v, _ := p.Get(f.Name)
			fmt.Fprintf(&b, "- **%s**: %s\n", loc.Text(features.LabelKey(f), f.Label), displayValue(f, v, loc))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_%s %s_\n", loc.Text("ui.submitted", "Submitted"), p.SubmittedAt().Format("2006-01-02 15:04"))
	return b.String()
}

// displayValue renders a value with option and boolean labels resolved.
func displayValue(f form.Field, v form.Value, loc *i18n.Localizer) string {
	switch v.Kind() {
	case form.KindBool:
		if v.BoolVal() {
			return loc.Text("ui.yes", "yes")
		}
		return loc.Text("ui.no", "no")
	case form.KindStrings:
		items := v.List()
		if len(items) == 0 {
			return "-"
		}
		for i, item := range items {
			items[i] = loc.Text(features.OptionKey(item), item)
		}
		return strings.Join(items, ", ")
	case form.KindString:
		s := strings.TrimSpace(v.Str())
		if s == "" {
			return "-"
		}
		if len(f.Options) > 0 {
			return loc.Text(features.OptionKey(s), s)
		}
		if f.Multiline {
			return "\n\n  > " + strings.ReplaceAll(s, "\n", "\n  > ") + "\n"
		}
		return s
	default:
		return v.Display()
	}
}

// RenderMarkdown renders markdown for the terminal. It falls back to the
// source when rendering fails.
func RenderMarkdown(content string, width int) string {
	if width <= 0 || width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}

// JSON encodes a payload as indented JSON.
func JSON(p form.Payload) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}

// formatterNames maps a terminal colour profile to a chroma formatter.
var formatterNames = map[colorprofile.Profile]string{
	colorprofile.TrueColor: "terminal16m",
	colorprofile.ANSI256:   "terminal256",
	colorprofile.ANSI:      "terminal16",
}

// Highlight colours source for a terminal with the given profile. fileName
// picks the lexer; content detection and plain text are the fallbacks.
// Profiles without colour get the source back unchanged.
func Highlight(source, fileName string, profile colorprofile.Profile) string {
	name, ok := formatterNames[profile]
	if !ok {
		return source
	}
	formatter := formatters.Get(name)
	if formatter == nil {
		return source
	}

	lexer := lexers.Match(fileName)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}
