package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "none", in: "Comptable senior", want: []string{}},
		{
			name: "first occurrence order",
			in:   "Python developer with SQL and Docker experience",
			want: []string{"Python", "SQL", "Docker"},
		},
		{
			name: "aliases map to canonical names",
			in:   "Déploiement K8s, NodeJS et Postgres",
			want: []string{"Kubernetes", "Node.js", "PostgreSQL"},
		},
		{
			name: "dotted names do not leak",
			in:   "Node.js and Next.js",
			want: []string{"Node.js", "Next.js"},
		},
		{
			name: "multi word alias",
			in:   "Machine learning on Google Cloud",
			want: []string{"Machine Learning", "GCP"},
		},
		{name: "whole words only", in: "javascripting golangish", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractSkills(tt.in))
		})
	}
}
