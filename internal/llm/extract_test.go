package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare", in: `[{"a":1}]`, want: `[{"a":1}]`},
		{name: "fenced", in: "Here you go:\n```json\n[1, 2]\n```", want: "[1, 2]"},
		{name: "nested", in: `x [[1],[2]] y`, want: `[[1],[2]]`},
		{name: "none", in: "no json here", wantErr: true},
		{name: "reversed", in: "] oops [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeObject(t *testing.T) {
	var out struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	err := DecodeObject("Sure! {\"score\": 8, \"feedback\": \"solid\"} Hope that helps.", &out)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Score)
	assert.Equal(t, "solid", out.Feedback)

	assert.Error(t, DecodeObject("{not json}", &out))
	assert.ErrorIs(t, DecodeObject("plain", &out), ErrNoJSON)
}
