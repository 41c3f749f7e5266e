package mock

import (
	"context"

	"github.com/MelvilleC99/profiler"
)

var _ profiler.PersonaService = (*PersonaService)(nil)

// PersonaService is a mock implementation of profiler.PersonaService.
type PersonaService struct {
	UpsertAnswersFn func(ctx context.Context, answers []*profiler.PersonaAnswer) error
	FindAnswersFn   func(ctx context.Context, sessionID, section string) ([]*profiler.PersonaAnswer, error)
}

func (s *PersonaService) UpsertAnswers(ctx context.Context, answers []*profiler.PersonaAnswer) error {
	return s.UpsertAnswersFn(ctx, answers)
}

func (s *PersonaService) FindAnswers(ctx context.Context, sessionID, section string) ([]*profiler.PersonaAnswer, error) {
	return s.FindAnswersFn(ctx, sessionID, section)
}
