package localize

// TranslationMap indexes every Lokalise key by (key name, language ISO code)
// (src/lib/localization/translations.rs's TranslationMap).
type TranslationMap struct {
	values map[string]map[string]string // key name -> lang -> translated text
}

// BuildTranslationMap flattens a Lokalise KeysResponse into a TranslationMap.
func BuildTranslationMap(resp KeysResponse) TranslationMap {
	values := make(map[string]map[string]string, len(resp.Keys))
	for _, key := range resp.Keys {
		name := key.KeyName.Web
		for _, tr := range key.Translations {
			byLang, ok := values[name]
			if !ok {
				byLang = make(map[string]string)
				values[name] = byLang
			}
			byLang[tr.LanguageISO] = tr.Translation
		}
	}
	return TranslationMap{values: values}
}

// Translate returns the text for key in lang, or false if either is
// missing.
func (m TranslationMap) Translate(key, lang string) (string, bool) {
	byLang, ok := m.values[key]
	if !ok {
		return "", false
	}
	text, ok := byLang[lang]
	return text, ok
}

// IsComplete reports whether every key known to this map has a translation
// for every language any key uses — used only for a startup warning, never
// to reject a config (src/lib/localization/translations.rs's is_complete).
func (m TranslationMap) IsComplete() bool {
	langs := make(map[string]struct{})
	for _, byLang := range m.values {
		for lang := range byLang {
			langs[lang] = struct{}{}
		}
	}
	for key := range m.values {
		for lang := range langs {
			if _, ok := m.values[key][lang]; !ok {
				return false
			}
		}
	}
	return true
}
