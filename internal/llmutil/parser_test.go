package llmutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     sample
	}{
		{
			name:     "bare json",
			response: `{"name":"a","score":75}`,
			want:     sample{Name: "a", Score: 75},
		},
		{
			name:     "fenced with json tag",
			response: "```json\n{\"name\":\"b\",\"score\":50}\n```",
			want:     sample{Name: "b", Score: 50},
		},
		{
			name:     "fenced without tag",
			response: "```\n{\"name\":\"c\",\"score\":100}\n```",
			want:     sample{Name: "c", Score: 100},
		},
		{
			name:     "conversational wrapper",
			response: `Sure! Here is the report: {"name":"d","score":0} Hope that helps.`,
			want:     sample{Name: "d", Score: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON[sample](tt.response)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseJSON_Array(t *testing.T) {
	got, err := ParseJSON[[]int]("the values are [1,2,3] as requested")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, *got)
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON[sample]("I could not produce JSON today.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal LLM JSON response")
}

func TestExtractJSON_PrefersFence(t *testing.T) {
	response := "preamble {not json} ```json\n{\"name\":\"x\"}\n``` trailer"
	assert.Equal(t, `{"name":"x"}`, ExtractJSON(response))
}
