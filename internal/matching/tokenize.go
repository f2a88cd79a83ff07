package matching

import "strings"

// TokenSet is a set of normalized, stopword-free tokens.
type TokenSet map[string]struct{}

// Tokenize returns the set of meaningful tokens of text.
func Tokenize(text string) TokenSet {
	tokens := OrderedTokens(text)
	set := make(TokenSet, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// OrderedTokens returns the distinct tokens of text in first-occurrence order.
func OrderedTokens(text string) []string {
	fields := strings.Split(Normalize(text), " ")
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" || IsStopword(f) {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// HasAny reports whether at least one of the tokens belongs to the set.
func (s TokenSet) HasAny(tokens ...string) bool {
	for _, t := range tokens {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Jaccard returns |A∩B| / |A∪B| as a percentage. Two empty sets score 0.
func Jaccard(a, b TokenSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	inter := 0
	for tok := range small {
		if large.Has(tok) {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union) * 100
}
