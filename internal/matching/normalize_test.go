package matching

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only separators", in: " \t\n--!! ", want: ""},
		{name: "case and accents", in: "Développeur Élève Çà", want: "developpeur eleve ca"},
		{name: "punctuation becomes space", in: "Node.js/React,SQL", want: "node js react sql"},
		{name: "collapses whitespace", in: "  Python   \n\t Go  ", want: "python go"},
		{name: "keeps digits", in: "HTML5 & CSS3", want: "html5 css3"},
		{name: "drops non latin", in: "C++ 日本 k8s", want: "c k8s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	t.Parallel()

	valid := regexp.MustCompile(`^([a-z0-9]+( [a-z0-9]+)*)?$`)
	inputs := []string{
		"Ingénieur DevOps — AWS, Kubernetes (K8s) & CI/CD!",
		"  ÀÉÎÕÜ ñ ß œ  ",
		"emoji 🚀 rocket",
		"tab\tseparated\r\nlines",
		"",
	}

	for _, in := range inputs {
		assert.Regexp(t, valid, Normalize(in), "input %q", in)
	}
}
