package tokenizer

import "strings"

// PhoneTokenizer splits a phonemized line on whitespace into phoneme tokens,
// optionally dropping non-linguistic symbols.
type PhoneTokenizer struct {
	nonLinguistic map[string]bool
	remove        bool
}

func newPhoneTokenizer(nonLinguisticSymbols []string, remove bool) *PhoneTokenizer {
	nonLinguistic := make(map[string]bool, len(nonLinguisticSymbols))
	for _, s := range nonLinguisticSymbols {
		nonLinguistic[s] = true
	}
	return &PhoneTokenizer{nonLinguistic: nonLinguistic, remove: remove}
}

// Tokenize implements Tokenizer. An empty line yields an empty (non-nil)
// token slice.
func (t *PhoneTokenizer) Tokenize(line string) ([]string, error) {
	tokens := []string{}
	for _, token := range strings.Fields(line) {
		if t.remove && t.nonLinguistic[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
