package analytics

import (
	"testing"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestCalculateSessionStats(t *testing.T) {
	qs := []model.QuestionAnalytics{
		{QuestionID: 1, TimeSpent: 120, AnswerLength: 300, Rating: intPtr(4)},
		{QuestionID: 2, TimeSpent: 90, AnswerLength: 200, Rating: intPtr(3)},
		{QuestionID: 3, TimeSpent: 30, Skipped: true},
		{QuestionID: 4, TimeSpent: 60, AnswerLength: 100},
	}

	got := CalculateSessionStats(qs)
	assert.Equal(t, model.SessionStats{
		TotalQuestions:         4,
		QuestionsAnswered:      3,
		QuestionsSkipped:       1,
		AverageTimePerQuestion: 100, // 300s over 3 answered
		TotalSessionTime:       300,
		AverageAnswerLength:    200,
		AverageRating:          2.33,
		CompletionRate:         75,
	}, got)
}

func TestCalculateSessionStats_Empty(t *testing.T) {
	assert.Equal(t, model.SessionStats{}, CalculateSessionStats(nil))

	allSkipped := CalculateSessionStats([]model.QuestionAnalytics{{Skipped: true, TimeSpent: 5}})
	assert.Equal(t, 0.0, allSkipped.AverageTimePerQuestion)
	assert.Equal(t, 0.0, allSkipped.CompletionRate)
	assert.Equal(t, 5, allSkipped.TotalSessionTime)
}

func TestPerformanceInsights(t *testing.T) {
	tests := []struct {
		name  string
		stats model.SessionStats
		want  int
		match string
	}{
		{
			name:  "balanced",
			stats: model.SessionStats{AverageTimePerQuestion: 120, AverageAnswerLength: 250, CompletionRate: 100, AverageRating: 4},
			want:  0,
		},
		{
			name:  "rushed and brief",
			stats: model.SessionStats{AverageTimePerQuestion: 30, AverageAnswerLength: 50, CompletionRate: 100, AverageRating: 4},
			want:  2,
			match: "answered questions quickly",
		},
		{
			name:  "slow and long",
			stats: model.SessionStats{AverageTimePerQuestion: 400, AverageAnswerLength: 900, CompletionRate: 100, AverageRating: 5},
			want:  2,
			match: "took your time",
		},
		{
			name:  "skipped and unconfident",
			stats: model.SessionStats{AverageTimePerQuestion: 120, AverageAnswerLength: 250, CompletionRate: 50, AverageRating: 2},
			want:  2,
			match: "skipped several questions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerformanceInsights(tt.stats)
			assert.Len(t, got, tt.want)
			if tt.match != "" {
				assert.Contains(t, got[0], tt.match)
			}
		})
	}
}
