package questions

import (
	"strings"

	"github.com/abhishek622/mockmate/pkg/model"
)

type Bucket string

const (
	BucketSoftwareEngineer Bucket = "software_engineer"
	BucketProductManager   Bucket = "product_manager"
	BucketDataScientist    Bucket = "data_scientist"
	BucketDesigner         Bucket = "designer"
	BucketGeneral          Bucket = "general"
)

type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryBehavioral Category = "behavioral"
	CategoryCultureFit Category = "culture_fit"
)

// Template is a fill-in-the-blanks question. Each {variable} is replaced by
// one of Examples, or by "relevant technology" when there are none.
type Template struct {
	ID         string
	Category   Category
	Template   string
	Variables  []string
	Examples   []string
	Difficulty model.Difficulty
}

const defaultExample = "relevant technology"

var templates = map[Bucket][]Template{
	BucketSoftwareEngineer: {
		{
			ID:         "tech_algorithms",
			Category:   CategoryTechnical,
			Template:   "Explain how you would implement {algorithm} and discuss its time complexity.",
			Variables:  []string{"algorithm"},
			Examples:   []string{"binary search", "quicksort", "depth-first search", "dynamic programming"},
			Difficulty: model.DifficultyMedium,
		},
		{
			ID:         "tech_debugging",
			Category:   CategoryTechnical,
			Template:   "Describe a challenging bug you encountered while working with {technology} and how you resolved it.",
			Variables:  []string{"technology"},
			Examples:   []string{"React", "Node.js", "Python", "databases", "APIs"},
			Difficulty: model.DifficultyMedium,
		},
		{
			ID:         "tech_architecture",
			Category:   CategoryTechnical,
			Template:   "How would you design a {system} that can handle {requirement}?",
			Variables:  []string{"system", "requirement"},
			Examples:   []string{"scalable web application", "real-time chat system", "e-commerce platform"},
			Difficulty: model.DifficultyHard,
		},
		{
			ID:         "behavioral_teamwork",
			Category:   CategoryBehavioral,
			Template:   "Tell me about a time when you had to work with a difficult team member on a {project_type} project.",
			Variables:  []string{"project_type"},
			Examples:   []string{"software development", "cross-functional", "high-pressure", "innovative"},
			Difficulty: model.DifficultyMedium,
		},
		{
			ID:         "behavioral_learning",
			Category:   CategoryBehavioral,
			Template:   "Describe a situation where you had to quickly learn {technology} for a project.",
			Variables:  []string{"technology"},
			Examples:   []string{"a new programming language", "a new framework", "a new tool", "a new methodology"},
			Difficulty: model.DifficultyEasy,
		},
	},
	BucketProductManager: {
		{
			ID:         "pm_strategy",
			Category:   CategoryTechnical,
			Template:   "How would you approach launching a new {product_type} in a competitive market?",
			Variables:  []string{"product_type"},
			Examples:   []string{"SaaS product", "mobile app", "enterprise solution", "consumer platform"},
			Difficulty: model.DifficultyHard,
		},
		{
			ID:         "pm_prioritization",
			Category:   CategoryBehavioral,
			Template:   "Walk me through how you would prioritize features for a {product_type} with limited resources.",
			Variables:  []string{"product_type"},
			Examples:   []string{"MVP", "existing product", "enterprise product", "consumer app"},
			Difficulty: model.DifficultyMedium,
		},
		{
			ID:         "pm_metrics",
			Category:   CategoryTechnical,
			Template:   "What key metrics would you track for a {product_type} and how would you measure success?",
			Variables:  []string{"product_type"},
			Examples:   []string{"social media platform", "e-commerce site", "B2B SaaS", "mobile game"},
			Difficulty: model.DifficultyMedium,
		},
	},
	BucketDataScientist: {
		{
			ID:         "ds_ml_model",
			Category:   CategoryTechnical,
			Template:   "Explain how you would build a {model_type} model for {use_case}.",
			Variables:  []string{"model_type", "use_case"},
			Examples:   []string{"recommendation system", "classification model", "regression model", "clustering model"},
			Difficulty: model.DifficultyHard,
		},
		{
			ID:         "ds_data_quality",
			Category:   CategoryTechnical,
			Template:   "How would you handle data quality issues when working with {data_type}?",
			Variables:  []string{"data_type"},
			Examples:   []string{"user behavior data", "financial data", "sensor data", "social media data"},
			Difficulty: model.DifficultyMedium,
		},
	},
	BucketDesigner: {
		{
			ID:         "design_process",
			Category:   CategoryBehavioral,
			Template:   "Walk me through your design process for creating a {design_type}.",
			Variables:  []string{"design_type"},
			Examples:   []string{"mobile app interface", "website redesign", "brand identity", "user experience flow"},
			Difficulty: model.DifficultyMedium,
		},
		{
			ID:         "design_critique",
			Category:   CategoryBehavioral,
			Template:   "How do you handle feedback and critique on your {design_type} work?",
			Variables:  []string{"design_type"},
			Examples:   []string{"UI designs", "UX flows", "visual designs", "prototypes"},
			Difficulty: model.DifficultyMedium,
		},
	},
	BucketGeneral: {
		{
			ID:         "general_behavioral",
			Category:   CategoryBehavioral,
			Template:   "Tell me about a time when you {scenario} and what you learned from it.",
			Variables:  []string{"scenario"},
			Examples:   []string{"faced a major challenge", "had to lead a team", "failed at something", "innovated a solution"},
			Difficulty: model.DifficultyMedium,
		},
		{
			ID:         "general_technical",
			Category:   CategoryTechnical,
			Template:   "How do you stay updated with the latest trends and technologies in {field}?",
			Variables:  []string{"field"},
			Examples:   []string{"software development", "product management", "data science", "design"},
			Difficulty: model.DifficultyMedium,
		},
		{
			ID:         "general_culture",
			Category:   CategoryCultureFit,
			Template:   "What motivates you in your work and how do you maintain that motivation?",
			Difficulty: model.DifficultyEasy,
		},
	},
}

// Templates returns the template list for a bucket. Unknown buckets get the
// general list.
func Templates(b Bucket) []Template {
	if t, ok := templates[b]; ok {
		return t
	}
	return templates[BucketGeneral]
}

// ResolveBucket maps a free-form role onto a template bucket.
func ResolveBucket(role string) Bucket {
	r := strings.ToLower(role)
	switch {
	case containsAny(r, "engineer", "developer", "programmer"):
		return BucketSoftwareEngineer
	case strings.Contains(r, "product") && strings.Contains(r, "manager"):
		return BucketProductManager
	case strings.Contains(r, "data") && containsAny(r, "scientist", "analyst"):
		return BucketDataScientist
	case containsAny(r, "designer", "design"):
		return BucketDesigner
	}
	return BucketGeneral
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Fill substitutes every variable with an example chosen by pick.
// pick(n) must return a value in [0, n).
func (t Template) Fill(pick func(n int) int) string {
	out := t.Template
	for _, v := range t.Variables {
		example := defaultExample
		if len(t.Examples) > 0 {
			example = t.Examples[pick(len(t.Examples))]
		}
		out = strings.ReplaceAll(out, "{"+v+"}", example)
	}
	return out
}

func (t Template) QuestionType() model.QuestionType {
	if t.Category == CategoryTechnical {
		return model.QuestionTechnical
	}
	return model.QuestionBehavioral
}

// DifficultyFor adjusts the template difficulty to the candidate level.
func (t Template) DifficultyFor(level model.ExperienceLevel) model.Difficulty {
	switch level {
	case model.LevelEntry:
		return model.DifficultyEasy
	case model.LevelSenior:
		return model.DifficultyHard
	}
	return t.Difficulty
}
