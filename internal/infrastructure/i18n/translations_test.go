package i18n

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestTranslator_T(t *testing.T) {
	tr := NewTranslator("es")

	tests := []struct {
		name   string
		locale string
		key    string
		data   map[string]any
		want   string
	}{
		{"default locale", "", "error.no_candidate", nil, "No hay nadie disponible para reemplazarte."},
		{"english", "en", "error.no_candidate", nil, "Nobody is available to replace you."},
		{"accept-language header", "en-GB,en;q=0.9,es;q=0.5", "turn.reminder", nil, "Time to walk the dog!"},
		{"unsupported falls back", "de", "turn.reminder", nil, "¡Hora de pasear al perro!"},
		{"template", "es", "vote.registered", map[string]any{"Votes": 1, "Quorum": 2}, "Voto de rechazo registrado. (1/2)"},
		{"unknown key", "en", "does.not.exist", nil, "does.not.exist"},
		{"empty key", "en", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.T(tt.locale, tt.key, tt.data); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
			}
		})
	}
}

func TestTranslator_Resolve(t *testing.T) {
	tr := NewTranslator("not a locale")
	if got := tr.Resolve(""); got != language.Spanish {
		t.Fatalf("expected es fallback, got %s", got)
	}
	if got := tr.Resolve("en-US"); got != language.English {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestCatalogsHaveTheSameKeys(t *testing.T) {
	tr := NewTranslator("es")
	for _, key := range []string{
		"error.validation", "error.walk_pending", "error.animal_not_detected",
		"vote.rejected", "turn.assigned", "turn.replacement", "turn.reverted",
	} {
		for _, locale := range []string{"es", "en"} {
			if got := tr.T(locale, key, map[string]any{"Name": "Ana", "Original": "Bea"}); got == key || strings.Contains(got, "<no value>") {
				t.Errorf("%s missing or incomplete in %s: %q", key, locale, got)
			}
		}
	}
}
