package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Text string `validate:"notblank"`
}

func TestNotBlank(t *testing.T) {
	t.Parallel()

	v := New()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "empty", input: "", valid: false},
		{name: "spaces only", input: " \t\n ", valid: false},
		{name: "text", input: "Python developer", valid: true},
		{name: "padded text", input: "  Go  ", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(sample{Text: tt.input})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
