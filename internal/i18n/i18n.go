// Package i18n resolves text keys into localized strings. A lookup tries the
// requested locale, then the base locale, and finally returns the raw key.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every key must exist in.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedFS embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the messages for every loaded locale.
type Bundle struct {
	base     language.Tag
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

var defaultBundle = mustLoadEmbedded()

// Default returns the bundle built from the embedded locale files.
func Default() *Bundle {
	return defaultBundle
}

// LoadFS loads every locales/*.yaml file in fsys. The base locale must be present.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	base := language.MustParse(BaseLocale)
	b := &Bundle{
		base:     base,
		messages: make(map[language.Tag]map[string]string),
	}

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.messages[base]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	// Base first so the matcher falls back to it.
	sort.SliceStable(b.tags, func(i, j int) bool { return b.tags[i] == base && b.tags[j] != base })
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(p string, file localeFile) error {
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.TrimSpace(file.Locale) == "" {
		return fmt.Errorf("%s: locale is required", p)
	}
	if file.Locale != name {
		return fmt.Errorf("%s: locale %q must match file name %q", p, file.Locale, name)
	}
	tag, err := language.Parse(file.Locale)
	if err != nil {
		return fmt.Errorf("%s: parse locale: %w", p, err)
	}
	if _, exists := b.messages[tag]; exists {
		return fmt.Errorf("%s: locale %s defined twice", p, tag)
	}

	msgs := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s: message key cannot be blank", p)
		}
		msgs[key] = value
	}
	b.messages[tag] = msgs
	b.tags = append(b.tags, tag)
	return nil
}

// Locales returns the loaded locale tags, base first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	return out
}

// Localizer returns a lookup bound to the closest supported match for locale.
// Unparseable or unsupported locales resolve to the base locale.
func (b *Bundle) Localizer(locale string) *Localizer {
	tag := b.base
	if requested, err := language.Parse(locale); err == nil {
		_, idx, conf := b.matcher.Match(requested)
		if conf != language.No {
			tag = b.tags[idx]
		}
	}
	return &Localizer{bundle: b, tag: tag}
}

// Localizer looks up keys for one locale.
type Localizer struct {
	bundle *Bundle
	tag    language.Tag
}

// Locale returns the resolved locale.
func (l *Localizer) Locale() string { return l.tag.String() }

// Has reports whether key resolves in the locale or the base locale.
func (l *Localizer) Has(key string) bool {
	_, ok := l.bundle.messages[l.tag][key]
	if !ok {
		_, ok = l.bundle.messages[l.bundle.base][key]
	}
	return ok
}

// Lookup formats key with params. It falls back to the base locale and then
// to the raw key. Numbers are printed without digit grouping.
func (l *Localizer) Lookup(key string, params ...any) string {
	format, ok := l.bundle.messages[l.tag][key]
	if !ok {
		format, ok = l.bundle.messages[l.bundle.base][key]
	}
	if !ok {
		return key
	}
	if len(params) == 0 {
		return format
	}
	return fmt.Sprintf(format, params...)
}

// Text is Lookup with an explicit fallback for keys that are not defined
// anywhere.
func (l *Localizer) Text(key, fallback string, params ...any) string {
	if !l.Has(key) {
		return fallback
	}
	return l.Lookup(key, params...)
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadFS(embeddedFS)
	if err != nil {
		panic(err)
	}
	return b
}
