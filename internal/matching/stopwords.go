package matching

// stopwords holds French and English function words in their normalized form
// (no accents, lowercase).
var stopwords = toSet([]string{
	// French articles, prepositions and conjunctions
	"a", "au", "aux", "le", "la", "les", "l", "de", "des", "du", "d", "un", "une",
	"et", "ou", "ni", "mais", "donc", "or", "car", "en", "pour", "par", "avec", "sans",
	"sur", "sous", "dans", "chez", "entre", "vers", "depuis", "pendant", "selon",
	"que", "qu", "qui", "quoi", "dont", "ou", "comme", "si", "afin",
	// French pronouns and determiners
	"ce", "cet", "cette", "ces", "je", "j", "tu", "il", "elle", "on", "nous", "vous",
	"ils", "elles", "se", "s", "me", "m", "te", "t", "lui", "leur", "leurs", "y",
	"mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses", "notre", "nos", "votre", "vos",
	"n", "ne", "pas",
	// French auxiliaries and common verbs
	"est", "sont", "etre", "etes", "suis", "sera", "serait", "avoir", "as", "avez",
	"avons", "ont", "faire", "fait",
	// French adverbs of degree
	"plus", "moins", "tres", "tout", "tous", "toute", "toutes", "aussi",
	// English articles, prepositions and conjunctions
	"an", "the", "of", "to", "and", "in", "on", "for", "with", "as", "at", "by", "from",
	"into", "about", "or", "but", "nor", "so", "than", "then", "if", "while", "within",
	// English pronouns and determiners
	"this", "that", "these", "those", "we", "you", "he", "she", "they", "them", "our",
	"your", "their", "his", "her", "its", "i", "my", "me", "us", "who", "which", "what",
	// English auxiliaries
	"is", "are", "was", "were", "be", "been", "being", "am", "have", "has", "had",
	"do", "does", "did", "will", "would", "shall", "should", "can", "could", "may",
	"might", "must",
	// English adverbs of degree
	"very", "more", "most", "less", "also", "not", "no",
})

// IsStopword reports whether the normalized token is a function word.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
