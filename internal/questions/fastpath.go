package questions

import (
	"strings"

	"github.com/abhishek622/mockmate/pkg/model"
)

type fastPathSet struct {
	keyword   string
	questions []model.Question
}

// Checked in order; the first keyword contained in the role wins.
var fastPathSets = []fastPathSet{
	{keyword: "frontend", questions: []model.Question{
		{ID: 1, Type: model.QuestionTechnical, Question: "Explain the difference between React hooks and class components.", Difficulty: model.DifficultyMedium},
		{ID: 2, Type: model.QuestionTechnical, Question: "How would you optimize a slow-loading website?", Difficulty: model.DifficultyMedium},
		{ID: 3, Type: model.QuestionBehavioral, Question: "Describe a challenging project you worked on and how you overcame obstacles.", Difficulty: model.DifficultyMedium},
		{ID: 4, Type: model.QuestionTechnical, Question: "What are the benefits of using TypeScript over JavaScript?", Difficulty: model.DifficultyEasy},
		{ID: 5, Type: model.QuestionBehavioral, Question: "How do you stay updated with the latest frontend technologies?", Difficulty: model.DifficultyEasy},
	}},
	{keyword: "software", questions: []model.Question{
		{ID: 1, Type: model.QuestionTechnical, Question: "Explain the difference between REST and GraphQL APIs.", Difficulty: model.DifficultyMedium},
		{ID: 2, Type: model.QuestionTechnical, Question: "How would you design a scalable microservices architecture?", Difficulty: model.DifficultyHard},
		{ID: 3, Type: model.QuestionBehavioral, Question: "Tell me about a time you had to debug a complex production issue.", Difficulty: model.DifficultyMedium},
		{ID: 4, Type: model.QuestionTechnical, Question: "What are the trade-offs between different database types?", Difficulty: model.DifficultyMedium},
		{ID: 5, Type: model.QuestionBehavioral, Question: "How do you approach code reviews and ensure code quality?", Difficulty: model.DifficultyEasy},
	}},
	{keyword: "product", questions: []model.Question{
		{ID: 1, Type: model.QuestionBehavioral, Question: "Walk me through your product development process from ideation to launch.", Difficulty: model.DifficultyMedium},
		{ID: 2, Type: model.QuestionTechnical, Question: "How do you prioritize features for a product with limited resources?", Difficulty: model.DifficultyMedium},
		{ID: 3, Type: model.QuestionBehavioral, Question: "Describe a time when you had to make a difficult product decision.", Difficulty: model.DifficultyMedium},
		{ID: 4, Type: model.QuestionTechnical, Question: "What metrics would you track for a SaaS product?", Difficulty: model.DifficultyEasy},
		{ID: 5, Type: model.QuestionBehavioral, Question: "How do you handle conflicting stakeholder requirements?", Difficulty: model.DifficultyMedium},
	}},
}

// FastPath returns a canned copy of the question list for well-known roles.
func FastPath(role string) ([]model.Question, bool) {
	r := strings.ToLower(role)
	for _, set := range fastPathSets {
		if strings.Contains(r, set.keyword) {
			out := make([]model.Question, len(set.questions))
			copy(out, set.questions)
			return out, true
		}
	}
	return nil, false
}
