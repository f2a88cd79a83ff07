package matching

import (
	"sort"
	"strings"
)

// Skill is a canonical skill name with the normalized phrases that denote it.
type Skill struct {
	Name    string
	Aliases []string
}

// Lexicon lists the technical skills recognised in free text.
var Lexicon = []Skill{
	{Name: "Python", Aliases: []string{"python"}},
	{Name: "Java", Aliases: []string{"java"}},
	{Name: "JavaScript", Aliases: []string{"javascript", "ecmascript"}},
	{Name: "TypeScript", Aliases: []string{"typescript"}},
	{Name: "Go", Aliases: []string{"golang"}},
	{Name: "Rust", Aliases: []string{"rust"}},
	{Name: "PHP", Aliases: []string{"php"}},
	{Name: "Ruby", Aliases: []string{"ruby"}},
	{Name: "Scala", Aliases: []string{"scala"}},
	{Name: "Kotlin", Aliases: []string{"kotlin"}},
	{Name: "Swift", Aliases: []string{"swift"}},
	{Name: "SQL", Aliases: []string{"sql"}},
	{Name: "PostgreSQL", Aliases: []string{"postgresql", "postgres"}},
	{Name: "MySQL", Aliases: []string{"mysql"}},
	{Name: "MongoDB", Aliases: []string{"mongodb", "mongo"}},
	{Name: "Redis", Aliases: []string{"redis"}},
	{Name: "Elasticsearch", Aliases: []string{"elasticsearch", "elastic search"}},
	{Name: "Kafka", Aliases: []string{"kafka"}},
	{Name: "RabbitMQ", Aliases: []string{"rabbitmq"}},
	{Name: "Spark", Aliases: []string{"spark", "pyspark"}},
	{Name: "Hadoop", Aliases: []string{"hadoop"}},
	{Name: "Airflow", Aliases: []string{"airflow"}},
	{Name: "Docker", Aliases: []string{"docker"}},
	{Name: "Kubernetes", Aliases: []string{"kubernetes", "k8s"}},
	{Name: "Terraform", Aliases: []string{"terraform"}},
	{Name: "Ansible", Aliases: []string{"ansible"}},
	{Name: "AWS", Aliases: []string{"aws", "amazon web services"}},
	{Name: "Azure", Aliases: []string{"azure"}},
	{Name: "GCP", Aliases: []string{"gcp", "google cloud"}},
	{Name: "Linux", Aliases: []string{"linux"}},
	{Name: "Git", Aliases: []string{"git", "github", "gitlab"}},
	{Name: "CI/CD", Aliases: []string{"ci cd", "cicd"}},
	{Name: "Jenkins", Aliases: []string{"jenkins"}},
	{Name: "React", Aliases: []string{"react", "reactjs", "react js"}},
	{Name: "Next.js", Aliases: []string{"nextjs", "next js"}},
	{Name: "Angular", Aliases: []string{"angular", "angularjs"}},
	{Name: "Vue.js", Aliases: []string{"vue", "vuejs", "vue js"}},
	{Name: "Node.js", Aliases: []string{"nodejs", "node js", "node"}},
	{Name: "Express", Aliases: []string{"express", "expressjs"}},
	{Name: "Django", Aliases: []string{"django"}},
	{Name: "Flask", Aliases: []string{"flask"}},
	{Name: "FastAPI", Aliases: []string{"fastapi"}},
	{Name: "Spring", Aliases: []string{"spring", "spring boot", "springboot"}},
	{Name: "HTML", Aliases: []string{"html", "html5"}},
	{Name: "CSS", Aliases: []string{"css", "css3"}},
	{Name: "Tailwind", Aliases: []string{"tailwind", "tailwindcss"}},
	{Name: "GraphQL", Aliases: []string{"graphql"}},
	{Name: "REST", Aliases: []string{"rest", "restful", "api rest", "rest api"}},
	{Name: "Microservices", Aliases: []string{"microservices", "microservice", "micro services"}},
	{Name: "Machine Learning", Aliases: []string{"machine learning", "ml", "apprentissage automatique"}},
	{Name: "Deep Learning", Aliases: []string{"deep learning", "apprentissage profond"}},
	{Name: "NLP", Aliases: []string{"nlp", "natural language processing", "traitement du langage"}},
	{Name: "TensorFlow", Aliases: []string{"tensorflow"}},
	{Name: "PyTorch", Aliases: []string{"pytorch"}},
	{Name: "scikit-learn", Aliases: []string{"scikit learn", "sklearn"}},
	{Name: "Pandas", Aliases: []string{"pandas"}},
	{Name: "NumPy", Aliases: []string{"numpy"}},
	{Name: "Power BI", Aliases: []string{"power bi", "powerbi"}},
	{Name: "Tableau", Aliases: []string{"tableau"}},
	{Name: "Excel", Aliases: []string{"excel"}},
	{Name: "Photoshop", Aliases: []string{"photoshop"}},
	{Name: "Illustrator", Aliases: []string{"illustrator"}},
	{Name: "Figma", Aliases: []string{"figma"}},
	{Name: "Agile", Aliases: []string{"agile"}},
	{Name: "Scrum", Aliases: []string{"scrum"}},
	{Name: "Jira", Aliases: []string{"jira"}},
}

// ExtractSkills returns the canonical names of lexicon skills found in text,
// ordered by first occurrence.
func ExtractSkills(text string) []string {
	padded := " " + Normalize(text) + " "
	if strings.TrimSpace(padded) == "" {
		return nil
	}

	type hit struct {
		name string
		pos  int
	}

	hits := make([]hit, 0)
	for _, skill := range Lexicon {
		pos := -1
		for _, alias := range skill.Aliases {
			if i := strings.Index(padded, " "+alias+" "); i >= 0 && (pos < 0 || i < pos) {
				pos = i
			}
		}
		if pos >= 0 {
			hits = append(hits, hit{name: skill.Name, pos: pos})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].pos < hits[j].pos
	})

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.name
	}
	return names
}
