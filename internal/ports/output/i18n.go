package output

// T renders user-facing messages (error texts, vote feedback, turn
// announcements) from the message catalogs.
type T interface {
	// T renders key for locale, a language tag or an Accept-Language value.
	// data fills template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
