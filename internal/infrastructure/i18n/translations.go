package i18n

import (
	"embed"
	"log"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"dogwalk/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var catalogs = []string{"active.es.toml", "active.en.toml"}

var _ output.T = (*Translator)(nil)

// Translator renders the Spanish and English catalogs with go-i18n.
// Localizers are cached per resolved language.
type Translator struct {
	bundle    *i18n.Bundle
	supported []language.Tag
	matcher   language.Matcher

	mu         sync.Mutex
	localizers map[language.Tag]*i18n.Localizer
}

// NewTranslator builds a Translator whose fallback language is defaultLocale
// ("es" when it does not parse).
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		log.Printf("⚠️ i18n: unknown locale %q, using es", defaultLocale)
		tag = language.Spanish
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range catalogs {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("❌ i18n: failed to load %s: %v", file, err)
		}
	}

	// The default comes first so the matcher falls back to it.
	supported := []language.Tag{tag}
	for _, t := range bundle.LanguageTags() {
		if t != tag {
			supported = append(supported, t)
		}
	}

	return &Translator{
		bundle:     bundle,
		supported:  supported,
		matcher:    language.NewMatcher(supported),
		localizers: make(map[language.Tag]*i18n.Localizer),
	}
}

// T renders key for locale, which may be a bare tag ("en") or a raw
// Accept-Language header ("en-GB,en;q=0.8"). Unknown keys render as the key
// itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(t.Resolve(locale)).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("i18n: localize failed (key=%s, locale=%s): %v", key, locale, err)
		return key
	}
	return msg
}

// Resolve returns the supported language that best serves locale.
func (t *Translator) Resolve(locale string) language.Tag {
	if locale == "" {
		return t.supported[0]
	}
	prefs, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(prefs) == 0 {
		return t.supported[0]
	}
	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No {
		return t.supported[0]
	}
	return t.supported[idx]
}

func (t *Translator) localizer(tag language.Tag) *i18n.Localizer {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.localizers[tag]
	if !ok {
		l = i18n.NewLocalizer(t.bundle, tag.String(), t.supported[0].String())
		t.localizers[tag] = l
	}
	return l
}
