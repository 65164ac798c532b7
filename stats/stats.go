// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/IIpapuII/fescvotaciones/models"
)

// Snapshot recomputes and caches the participation summary. The cached
// row is purely derived data: it reflects whatever voter state was
// committed at refresh time and is never a source of truth.
type Snapshot struct {
	db *sql.DB
}

func New(db *sql.DB) *Snapshot {
	return &Snapshot{db: db}
}

// Refresh recomputes the totals and participation percentage and upserts
// the singleton stats row. Participation is votes/registered*100 rounded
// to two decimals, and 0 on an empty registry.
func (s *Snapshot) Refresh() (models.VoteStats, error) {
	var st models.VoteStats

	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE has_voted),
		       COUNT(*) FILTER (WHERE has_voted AND category = 'student'),
		       COUNT(*) FILTER (WHERE has_voted AND category = 'teacher'),
		       COUNT(*) FILTER (WHERE has_voted AND category = 'graduate'),
		       COUNT(*) FILTER (WHERE has_voted AND category = 'administrative')
		FROM voter
	`).Scan(
		&st.TotalVoters, &st.TotalVoted,
		&st.VotedStudents, &st.VotedTeachers, &st.VotedGraduates, &st.VotedAdministrative,
	)
	if err != nil {
		return st, fmt.Errorf("count voters: %w", err)
	}

	if st.TotalVoters > 0 {
		pct := float64(st.TotalVoted) / float64(st.TotalVoters) * 100
		st.Participation = math.Round(pct*100) / 100
	}
	st.UpdatedAt = time.Now()

	_, err = s.db.Exec(`
		INSERT INTO vote_stats (id, total_voters, total_voted, voted_students, voted_teachers,
		                        voted_graduates, voted_administrative, participation, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			total_voters = EXCLUDED.total_voters,
			total_voted = EXCLUDED.total_voted,
			voted_students = EXCLUDED.voted_students,
			voted_teachers = EXCLUDED.voted_teachers,
			voted_graduates = EXCLUDED.voted_graduates,
			voted_administrative = EXCLUDED.voted_administrative,
			participation = EXCLUDED.participation,
			updated_at = EXCLUDED.updated_at
	`, st.TotalVoters, st.TotalVoted, st.VotedStudents, st.VotedTeachers,
		st.VotedGraduates, st.VotedAdministrative, st.Participation, st.UpdatedAt)
	if err != nil {
		return st, fmt.Errorf("store stats snapshot: %w", err)
	}

	return st, nil
}
