// Package analytics turns per-question practice telemetry into session
// statistics and coaching hints.
package analytics

import (
	"github.com/abhishek622/mockmate/pkg"
	"github.com/abhishek622/mockmate/pkg/model"
)

const (
	quickAnswerSeconds = 60
	slowAnswerSeconds  = 300
	shortAnswerChars   = 100
	longAnswerChars    = 500
	lowCompletionPct   = 80
	lowSelfRating      = 3
)

// CalculateSessionStats aggregates a session's question telemetry. Averages
// are taken over answered questions; total time includes skipped ones.
func CalculateSessionStats(qs []model.QuestionAnalytics) model.SessionStats {
	var answered, totalTime, totalLength, totalRating int
	for _, q := range qs {
		totalTime += q.TimeSpent
		if q.Skipped {
			continue
		}
		answered++
		totalLength += q.AnswerLength
		if q.Rating != nil {
			totalRating += *q.Rating
		}
	}

	stats := model.SessionStats{
		TotalQuestions:    len(qs),
		QuestionsAnswered: answered,
		QuestionsSkipped:  len(qs) - answered,
		TotalSessionTime:  totalTime,
		CompletionRate:    pkg.Percent(answered, len(qs)),
	}
	if answered > 0 {
		stats.AverageTimePerQuestion = pkg.Round2(float64(totalTime) / float64(answered))
		stats.AverageAnswerLength = pkg.Round2(float64(totalLength) / float64(answered))
		stats.AverageRating = pkg.Round2(float64(totalRating) / float64(answered))
	}
	return stats
}

// PerformanceInsights returns fixed coaching hints triggered by the stats.
func PerformanceInsights(s model.SessionStats) []string {
	insights := []string{}

	switch {
	case s.AverageTimePerQuestion < quickAnswerSeconds:
		insights = append(insights, "You answered questions quickly - consider taking more time to provide detailed responses.")
	case s.AverageTimePerQuestion > slowAnswerSeconds:
		insights = append(insights, "You took your time with answers - great for thorough responses, but practice being more concise.")
	}

	switch {
	case s.AverageAnswerLength < shortAnswerChars:
		insights = append(insights, "Your answers were brief - try to provide more specific examples and details.")
	case s.AverageAnswerLength > longAnswerChars:
		insights = append(insights, "Your answers were comprehensive - great detail, but practice being more concise.")
	}

	if s.CompletionRate < lowCompletionPct {
		insights = append(insights, "You skipped several questions - consider practicing with all question types.")
	}
	if s.AverageRating < lowSelfRating {
		insights = append(insights, "You rated your performance lower - focus on building confidence and practicing more.")
	}
	return insights
}
