package questions

import (
	"context"

	"github.com/abhishek622/mockmate/pkg/model"
	"go.uber.org/zap"
)

// Recorder observes where question sets came from. Satisfied by the
// metrics package; nil disables recording.
type Recorder interface {
	QuestionSetServed(source string)
}

// Service serves question sets, consulting the cache before generating.
type Service struct {
	cache *Cache
	gen   *Generator
	rec   Recorder
	log   *zap.SugaredLogger
}

func NewService(cache *Cache, gen *Generator, rec Recorder, log *zap.Logger) *Service {
	return &Service{cache: cache, gen: gen, rec: rec, log: log.Sugar()}
}

// QuestionsFor never fails on cache trouble: lookup errors count as a miss
// and store errors are only logged. Fast path roles skip the cache and only
// LLM output is cached.
func (s *Service) QuestionsFor(ctx context.Context, p model.GenerateParams) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if qs, ok := FastPath(p.Role); ok {
		s.record(SourceFastPath)
		return Result{Questions: qs, Source: SourceFastPath}, nil
	}

	hit, err := s.cache.Lookup(ctx, p)
	if err != nil {
		s.log.Warnw("question cache lookup failed", "role", p.Role, "error", err)
	}
	if err == nil && hit != nil {
		s.record(SourceCache)
		return Result{Questions: hit.Questions, Source: SourceCache}, nil
	}

	res := s.gen.Generate(ctx, p)
	if res.Source == SourceLLM {
		if err := s.cache.Store(ctx, res.Questions, p); err != nil {
			s.log.Warnw("question cache store failed", "role", p.Role, "error", err)
		}
	}
	s.record(res.Source)
	return res, nil
}

func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) record(src Source) {
	if s.rec != nil {
		s.rec.QuestionSetServed(string(src))
	}
}
