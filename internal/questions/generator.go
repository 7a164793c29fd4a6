package questions

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/abhishek622/mockmate/internal/llm"
	"github.com/abhishek622/mockmate/pkg"
	"github.com/abhishek622/mockmate/pkg/model"
	"go.uber.org/zap"
)

type Source string

const (
	SourceFastPath Source = "fast_path"
	SourceLLM      Source = "llm"
	SourceTemplate Source = "template"
	SourceCache    Source = "cache"
	// SourceStored marks a list already persisted on the session.
	SourceStored Source = "stored"
)

type Result struct {
	Questions []model.Question `json:"questions"`
	Source    Source           `json:"source"`
}

const (
	generatorSystemPrompt = "You are an expert interview question generator. Generate relevant, challenging, and role-specific interview questions."
	generatorMaxTokens    = 800
	generatorTemperature  = 0.7
	contextExcerptChars   = 500
)

// QuestionCount is how many questions the LLM and template paths produce.
func QuestionCount(format model.SessionType) int {
	if format == model.SessionTypeMixed {
		return 10
	}
	return 8
}

type Generator struct {
	llm   llm.Client
	model string
	log   *zap.SugaredLogger

	mu  sync.Mutex
	rnd *rand.Rand
}

type GeneratorOption func(*Generator)

// WithRand makes example selection in the template fallback reproducible.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rnd = r }
}

func NewGenerator(client llm.Client, modelName string, log *zap.Logger, opts ...GeneratorOption) *Generator {
	g := &Generator{
		llm:   client,
		model: modelName,
		log:   log.Sugar(),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate never fails: the fast path and template fallback need no network.
func (g *Generator) Generate(ctx context.Context, p model.GenerateParams) Result {
	if qs, ok := FastPath(p.Role); ok {
		g.log.Debugw("using fast path questions", "role", p.Role)
		return Result{Questions: qs, Source: SourceFastPath}
	}

	bucket := ResolveBucket(p.Role)
	qs, err := g.fromLLM(ctx, p)
	if err != nil {
		g.log.Warnw("llm question generation failed, using templates",
			"role", p.Role, "bucket", bucket, "error", err)
		return Result{Questions: g.FromTemplates(bucket, p.ExperienceLevel, p.ResponseFormat), Source: SourceTemplate}
	}
	return Result{Questions: qs, Source: SourceLLM}
}

func (g *Generator) fromLLM(ctx context.Context, p model.GenerateParams) ([]model.Question, error) {
	out, err := g.llm.Chat(ctx, llm.ChatRequest{
		Model: g.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: generatorSystemPrompt},
			{Role: llm.RoleUser, Content: BuildPrompt(p)},
		},
		MaxTokens:   generatorMaxTokens,
		Temperature: generatorTemperature,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, llm.ErrEmptyResponse
	}
	return ParseQuestions(out)
}

func buildContext(p model.GenerateParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s\nExperience Level: %s\nInterview Format: %s\n\n", p.Role, p.ExperienceLevel, p.ResponseFormat)
	if p.HasResume() {
		fmt.Fprintf(&b, "Resume Context: %s...\n\n", pkg.Truncate(p.ResumeText, contextExcerptChars))
	}
	if p.HasJobDescription() {
		fmt.Fprintf(&b, "Job Description: %s...\n\n", pkg.Truncate(p.JobDescriptionText, contextExcerptChars))
	}
	return b.String()
}

// BuildPrompt renders the question-generation prompt for p.
func BuildPrompt(p model.GenerateParams) string {
	return fmt.Sprintf(`
%s

Generate %d interview questions for this role and experience level. Use these guidelines:

1. Mix of technical and behavioral questions based on the format
2. Difficulty appropriate for %s level
3. Role-specific and relevant to the position
4. Include both general and specific questions
5. Vary the question types and difficulty

Return the questions in this exact JSON format:
[
  {
    "id": 1,
    "type": "technical|behavioral",
    "question": "The actual question text",
    "difficulty": "easy|medium|hard"
  }
]

Make sure the questions are challenging, relevant, and will help assess the candidate's skills and experience.
`, buildContext(p), QuestionCount(p.ResponseFormat), p.ExperienceLevel)
}

type rawQuestion struct {
	Type       string `json:"type"`
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

// ParseQuestions reads the first JSON array out of an LLM reply. Ids are
// reassigned 1..n; missing type and difficulty default to behavioral and
// medium. An empty array is an error so callers fall back.
func ParseQuestions(out string) ([]model.Question, error) {
	var raw []rawQuestion
	if err := llm.DecodeArray(out, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty question list")
	}

	qs := make([]model.Question, 0, len(raw))
	for i, r := range raw {
		q := model.Question{
			ID:         i + 1,
			Type:       model.QuestionType(r.Type),
			Question:   r.Question,
			Difficulty: model.Difficulty(r.Difficulty),
		}
		if q.Type == "" {
			q.Type = model.QuestionBehavioral
		}
		if q.Difficulty == "" {
			q.Difficulty = model.DifficultyMedium
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// FromTemplates expands the bucket's templates round-robin up to the
// format's question count.
func (g *Generator) FromTemplates(bucket Bucket, level model.ExperienceLevel, format model.SessionType) []model.Question {
	tpls := Templates(bucket)
	n := QuestionCount(format)

	g.mu.Lock()
	defer g.mu.Unlock()

	qs := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		t := tpls[i%len(tpls)]
		qs = append(qs, model.Question{
			ID:         i + 1,
			Type:       t.QuestionType(),
			Question:   t.Fill(g.rnd.Intn),
			Difficulty: t.DifficultyFor(level),
		})
	}
	return qs
}
