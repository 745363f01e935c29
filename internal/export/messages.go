package export

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// MessageKey identifies a user-visible notification
type MessageKey string

const (
	// MsgCollectionsNotFound asks the user to pick the collections again
	MsgCollectionsNotFound MessageKey = "collectionsNotFound"
	// MsgExportFailed takes the underlying error
	MsgExportFailed MessageKey = "exportFailed"
	// MsgExportComplete takes the token and unresolved entry counts
	MsgExportComplete MessageKey = "exportComplete"
)

var supportedLanguages = []language.Tag{
	language.English, // first entry is the fallback
	language.German,
	language.French,
	language.Spanish,
}

var translations = map[language.Tag]map[MessageKey]string{
	language.English: {
		MsgCollectionsNotFound: "Collections not found. Please select the token and primitive collections again.",
		MsgExportFailed:        "Export failed: %v",
		MsgExportComplete:      "Exported %d tokens (%d unresolved)",
	},
	language.German: {
		MsgCollectionsNotFound: "Sammlungen nicht gefunden. Bitte wählen Sie die Token- und Primitiv-Sammlungen erneut aus.",
		MsgExportFailed:        "Export fehlgeschlagen: %v",
		MsgExportComplete:      "%d Tokens exportiert (%d nicht aufgelöst)",
	},
	language.French: {
		MsgCollectionsNotFound: "Collections introuvables. Veuillez sélectionner à nouveau les collections de tokens et de primitives.",
		MsgExportFailed:        "Échec de l'export : %v",
		MsgExportComplete:      "%d tokens exportés (%d non résolus)",
	},
	language.Spanish: {
		MsgCollectionsNotFound: "No se encontraron las colecciones. Vuelva a seleccionar las colecciones de tokens y primitivas.",
		MsgExportFailed:        "Error en la exportación: %v",
		MsgExportComplete:      "%d tokens exportados (%d sin resolver)",
	},
}

var (
	messages = buildCatalog()
	matcher  = language.NewMatcher(supportedLanguages)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, string(key), msg); err != nil {
				panic(fmt.Sprintf("export: bad %s translation for %s: %v", tag, key, err))
			}
		}
	}
	return b
}

// matchLanguage maps a user language such as "de-AT" onto a supported tag,
// falling back to English.
func matchLanguage(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.English
	}
	return supportedLanguages[idx]
}

// Message renders the notification key in lang
func Message(lang string, key MessageKey, args ...any) string {
	p := message.NewPrinter(matchLanguage(lang), message.Catalog(messages))
	return p.Sprintf(string(key), args...)
}
