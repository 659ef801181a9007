package dictionary

import "encoding/json"

// Entry represents one row of the dict table.
type Entry struct {
	Surface       string `db:"surface"`
	Lemma         string `db:"lemma"`
	POS           string `db:"pos"`
	TranslationJA string `db:"translation_ja"`
	ExampleKO     string `db:"example_ko"`
	ExampleJA     string `db:"example_ja"`
	Tags          string `db:"tags"`
}

// Document is the API shape of an entry. The translation payload is
// kept as raw JSON so structured and plain-string translations pass
// through unchanged.
type Document struct {
	Surface       string          `json:"surface"`
	Lemma         string          `json:"lemma"`
	POS           string          `json:"pos"`
	TranslationJA json.RawMessage `json:"translation_ja"`
	ExampleKO     string          `json:"example_ko"`
	ExampleJA     string          `json:"example_ja"`
	Tags          string          `json:"tags"`
}

// Document converts an entry to its API shape.
func (e Entry) Document() Document {
	return Document{
		Surface:       e.Surface,
		Lemma:         e.Lemma,
		POS:           e.POS,
		TranslationJA: decodeTranslation(e.TranslationJA),
		ExampleKO:     e.ExampleKO,
		ExampleJA:     e.ExampleJA,
		Tags:          e.Tags,
	}
}

// decodeTranslation resolves the JSON-or-string ambiguity of the stored
// translation payload: an empty value is null, a value that parses as
// JSON passes through as-is, and anything else is carried as a plain
// string. Legacy rows predate structured translations, so a strict
// decode here would reject existing data.
func decodeTranslation(stored string) json.RawMessage {
	if stored == "" {
		return json.RawMessage("null")
	}
	if json.Valid([]byte(stored)) {
		return json.RawMessage(stored)
	}
	quoted, err := json.Marshal(stored)
	if err != nil {
		return json.RawMessage("null")
	}
	return quoted
}
