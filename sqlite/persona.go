package sqlite

import (
	"context"
	"time"

	"github.com/MelvilleC99/profiler"
)

// Compile-time interface verification.
var _ profiler.PersonaService = (*PersonaService)(nil)

// PersonaService implements profiler.PersonaService using SQLite. Answers
// are keyed by (session, section, field) and later submissions overwrite
// earlier ones.
type PersonaService struct {
	db *DB
}

// NewPersonaService creates a new PersonaService.
func NewPersonaService(db *DB) *PersonaService {
	return &PersonaService{db: db}
}

// UpsertAnswers inserts or updates the given answers. Validation failures
// reject the whole batch before anything is written.
func (s *PersonaService) UpsertAnswers(ctx context.Context, answers []*profiler.PersonaAnswer) error {
	if len(answers) == 0 {
		return profiler.Errorf(profiler.EINVALID, "No answers provided.")
	}
	for _, a := range answers {
		if err := a.Validate(); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, a := range answers {
		a.UpdatedAt = now
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO persona_answers (session_id, section, field, answer, quality, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (session_id, section, field)
			DO UPDATE SET answer = excluded.answer, quality = excluded.quality, updated_at = excluded.updated_at
		`, a.SessionID, a.Section, a.Field, a.Answer, a.Quality, now.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return nil
}

// FindAnswers retrieves all answers for a session and section, ordered by
// field name.
func (s *PersonaService) FindAnswers(ctx context.Context, sessionID, section string) ([]*profiler.PersonaAnswer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, section, field, answer, quality, updated_at
		FROM persona_answers
		WHERE session_id = ? AND section = ?
		ORDER BY field ASC
	`, sessionID, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*profiler.PersonaAnswer
	for rows.Next() {
		var a profiler.PersonaAnswer
		var updatedAt string
		if err := rows.Scan(&a.SessionID, &a.Section, &a.Field, &a.Answer, &a.Quality, &updatedAt); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		answers = append(answers, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return answers, nil
}
