package sanitize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		timestamps int
		err        error
		want       Verdict
	}{
		{"timestamps present", 12, nil, NotAnonymized},
		{"single timestamp", 1, nil, NotAnonymized},
		{"no timestamps", 0, nil, Anonymized},
		{"extraction failed", 0, errors.New("bad time"), Unknown},
		{"extraction failed with count", 3, errors.New("bad time"), Unknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.timestamps, tt.err))
		})
	}
}

func TestVerdictString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not_anonymized", NotAnonymized.String())
	assert.Equal(t, "anonymized", Anonymized.String())
	assert.Equal(t, "unknown", Unknown.String())
}
