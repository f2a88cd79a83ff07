package matching

// SuggestionRule maps a keyword family detected in a job posting to an action.
type SuggestionRule struct {
	Name       string
	Predicate  func(TokenSet) bool
	Suggestion string
}

const genericSuggestion = "Ajouter des projets concrets liés aux mots-clés de l'offre."

func anyOf(tokens ...string) func(TokenSet) bool {
	return func(s TokenSet) bool {
		return s.HasAny(tokens...)
	}
}

// DefaultSuggestionRules is evaluated in declaration order.
var DefaultSuggestionRules = []SuggestionRule{
	{
		Name:       "frontend",
		Predicate:  anyOf("react", "reactjs", "next", "nextjs"),
		Suggestion: "Réaliser un projet React/Next.js (CRUD + authentification + tests).",
	},
	{
		Name:       "node",
		Predicate:  anyOf("node", "nodejs", "express", "expressjs"),
		Suggestion: "Publier une API REST Node/Express avec tests et documentation Swagger.",
	},
	{
		Name:       "python",
		Predicate:  anyOf("python", "django", "flask", "fastapi"),
		Suggestion: "Passer une certification Python (PCAP) et publier un script ETL.",
	},
	{
		Name:       "sql",
		Predicate:  anyOf("sql", "postgres", "postgresql", "mysql"),
		Suggestion: "Concevoir une base Postgres et démontrer des requêtes SQL avancées.",
	},
	{
		Name:       "cloud",
		Predicate:  anyOf("aws", "azure", "gcp"),
		Suggestion: "Obtenir une certification cloud (AWS Cloud Practitioner ou équivalent).",
	},
	{
		Name:       "containers",
		Predicate:  anyOf("docker", "kubernetes", "k8s"),
		Suggestion: "Dockeriser une application et la déployer sur Kubernetes (K8s).",
	},
	{
		Name:       "nlp",
		Predicate:  anyOf("nlp", "spacy", "transformer", "transformers", "huggingface"),
		Suggestion: "Mener un projet NLP (extraction de compétences + matching).",
	},
	{
		Name:       "java",
		Predicate:  anyOf("java", "spring", "springboot"),
		Suggestion: "Développer un microservice Spring Boot testé (JUnit) et conteneurisé.",
	},
	{
		Name:       "ci",
		Predicate:  anyOf("cicd", "jenkins", "gitlab", "devops"),
		Suggestion: "Mettre en place un pipeline CI/CD (build, tests, déploiement) sur un projet personnel.",
	},
	{
		Name:       "ml",
		Predicate:  anyOf("ml", "tensorflow", "pytorch", "sklearn", "scikit"),
		Suggestion: "Publier un notebook de machine learning de bout en bout (données, modèle, évaluation).",
	},
}

// SuggestionEngine produces improvement actions for weak matches.
type SuggestionEngine struct {
	rules     []SuggestionRule
	threshold float64
	limit     int
}

func NewSuggestionEngine(rules []SuggestionRule, threshold float64, limit int) *SuggestionEngine {
	if rules == nil {
		rules = DefaultSuggestionRules
	}
	return &SuggestionEngine{rules: rules, threshold: threshold, limit: limit}
}

// Suggest returns nothing when score reaches the threshold. Otherwise every
// matching rule contributes once, in declaration order, up to the limit; when
// no rule matches a generic suggestion is returned.
func (e *SuggestionEngine) Suggest(jobText string, score float64) []string {
	out := make([]string, 0)
	if score >= e.threshold {
		return out
	}

	tokens := Tokenize(jobText)
	for _, rule := range e.rules {
		if e.limit > 0 && len(out) == e.limit {
			break
		}
		if rule.Predicate != nil && rule.Predicate(tokens) {
			out = append(out, rule.Suggestion)
		}
	}

	if len(out) == 0 {
		out = append(out, genericSuggestion)
	}
	return out
}
