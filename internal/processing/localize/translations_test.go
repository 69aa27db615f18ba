package localize

import "testing"

func buildFixtureKeys() KeysResponse {
	return KeysResponse{
		Keys: []Key{
			{
				KeyName: PlatformStrings{Web: "priceAlertTitle"},
				Translations: []Translation{
					{LanguageISO: "en", Translation: "Price alert"},
					{LanguageISO: "ru", Translation: "Ценовой сигнал"},
				},
			},
			{
				KeyName: PlatformStrings{Web: "priceAlertMessage"},
				Translations: []Translation{
					{LanguageISO: "en", Translation: "[%s:pair] crossed [%s:value]"},
				},
			},
		},
	}
}

func TestBuildTranslationMap_TranslateAndMiss(t *testing.T) {
	m := BuildTranslationMap(buildFixtureKeys())

	if got, ok := m.Translate("priceAlertTitle", "en"); !ok || got != "Price alert" {
		t.Fatalf("Translate(priceAlertTitle, en) = %q, %v", got, ok)
	}
	if got, ok := m.Translate("priceAlertTitle", "ru"); !ok || got != "Ценовой сигнал" {
		t.Fatalf("Translate(priceAlertTitle, ru) = %q, %v", got, ok)
	}
	if _, ok := m.Translate("priceAlertTitle", "de"); ok {
		t.Fatalf("expected no German translation")
	}
	if _, ok := m.Translate("unknownKey", "en"); ok {
		t.Fatalf("expected no translation for an unknown key")
	}
}

func TestTranslationMap_IsComplete(t *testing.T) {
	m := BuildTranslationMap(buildFixtureKeys())
	// priceAlertMessage only has "en", priceAlertTitle has "en" and "ru":
	// the set is incomplete because priceAlertMessage is missing "ru".
	if m.IsComplete() {
		t.Fatalf("expected the fixture translation set to be incomplete")
	}

	complete := BuildTranslationMap(KeysResponse{
		Keys: []Key{
			{
				KeyName: PlatformStrings{Web: "a"},
				Translations: []Translation{
					{LanguageISO: "en", Translation: "A"},
				},
			},
			{
				KeyName: PlatformStrings{Web: "b"},
				Translations: []Translation{
					{LanguageISO: "en", Translation: "B"},
				},
			},
		},
	})
	if !complete.IsComplete() {
		t.Fatalf("expected a single-language translation set to be complete")
	}
}
