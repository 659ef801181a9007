// Package tokenizer splits text into word-like tokens on a fixed
// delimiter set. It performs no morphological analysis; the engine
// identifier lets clients distinguish this strategy from future ones.
package tokenizer

// Engine identifies the tokenization strategy in API responses.
const Engine = "naive_split"

// Token is one fragment of the input. Start and End are rune offsets
// into the input, end exclusive, so that input[Start:End] == Text when
// sliced by runes. POS is always empty; no tagging is performed.
type Token struct {
	Text  string `json:"text"`
	POS   string `json:"pos"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// delimiters covers whitespace plus Latin, CJK and Korean-adjacent
// punctuation common in mixed Korean/Japanese text.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', '。', '、', '.', '!', '?', '·', '•', '/':
		return true
	}
	return false
}

// Tokenize splits text on the fixed delimiter set, dropping empty
// fragments. Repeated and surrounding delimiters produce no tokens,
// and offsets never rewind, even when a token repeats an earlier
// substring verbatim.
func Tokenize(text string) []Token {
	runes := []rune(text)
	tokens := []Token{}

	for i := 0; i < len(runes); {
		if isDelimiter(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && !isDelimiter(runes[i]) {
			i++
		}
		tokens = append(tokens, Token{
			Text:  string(runes[start:i]),
			Start: start,
			End:   i,
		})
	}

	return tokens
}
