// Package i18n renders the user-facing text of domain error codes.
//
// The en-US catalog reproduces the wording existing sea battle clients match
// against, so template changes there are contract changes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// BaseLocale is the fallback locale for every lookup.
const BaseLocale = "en-US"

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{
		enUSCatalog.locale: enUSCatalog,
		ptBRCatalog.locale: ptBRCatalog,
	}
)

// GetCatalog returns the catalog best matching the given locale.
// Falls back to en-US if no registered locale matches.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	if c, ok := lookupCatalog(requested); ok {
		return c
	}
	if resolved, ok := matchLocale(requested); ok {
		if c, ok := lookupCatalog(resolved); ok {
			return c
		}
	}

	c, _ := lookupCatalog(BaseLocale)
	return c
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// RegisterCatalog registers a new catalog for the given locale.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}

// matchLocale resolves loose tags such as "pt", "en_GB", or "pt-br" to a
// registered catalog locale.
func matchLocale(requested string) (string, bool) {
	tag, err := language.Parse(strings.ReplaceAll(requested, "_", "-"))
	if err != nil {
		return "", false
	}

	catalogsMu.RLock()
	supported := make([]language.Tag, 0, len(catalogs))
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		parsed, err := language.Parse(name)
		if err != nil {
			continue
		}
		supported = append(supported, parsed)
		names = append(names, name)
	}
	catalogsMu.RUnlock()
	if len(supported) == 0 {
		return "", false
	}

	_, index, confidence := language.NewMatcher(supported).Match(tag)
	if confidence == language.No {
		return "", false
	}
	return names[index], true
}
