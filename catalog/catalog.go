// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"database/sql"
	"fmt"

	"github.com/IIpapuII/fescvotaciones/models"
)

// Catalog serves the read-only slate listing shown on the ballot card.
// Slates and councils are provisioned before the window opens and the
// catalog never writes.
type Catalog struct {
	db *sql.DB
}

func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// SlatesFor returns the active slates for one voter category, grouped by
// active council, councils ordered by name and slates by number.
// Candidates ride along with each slate.
func (c *Catalog) SlatesFor(category string) ([]models.CouncilSlates, error) {
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("unknown voter category %q", category)
	}

	candidates, err := c.candidatesFor(category)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.Query(`
		SELECT c.id, c.name, c.description, c.active,
		       s.id, s.number, s.name, s.council_id, s.category, s.active, s.created_at
		FROM slate s
		JOIN council_type c ON c.id = s.council_id
		WHERE s.category = $1 AND s.active = TRUE AND c.active = TRUE
		ORDER BY c.name, s.number
	`, category)
	if err != nil {
		return nil, fmt.Errorf("query slates: %w", err)
	}
	defer rows.Close()

	grouped := []models.CouncilSlates{}
	for rows.Next() {
		var council models.CouncilType
		var desc sql.NullString
		var slate models.Slate
		err := rows.Scan(
			&council.ID, &council.Name, &desc, &council.Active,
			&slate.ID, &slate.Number, &slate.Name, &slate.CouncilID, &slate.Category, &slate.Active, &slate.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slate row: %w", err)
		}
		council.Description = desc.String

		if len(grouped) == 0 || grouped[len(grouped)-1].Council.ID != council.ID {
			grouped = append(grouped, models.CouncilSlates{Council: council})
		}

		cands := candidates[slate.ID]
		if cands == nil {
			cands = []models.Candidate{}
		}
		group := &grouped[len(grouped)-1]
		group.Slates = append(group.Slates, models.SlateWithCandidates{
			Slate:      slate,
			Candidates: cands,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slate rows: %w", err)
	}

	return grouped, nil
}

// candidatesFor loads the candidates of every active slate in the
// category, keyed by slate ID.
func (c *Catalog) candidatesFor(category string) (map[string][]models.Candidate, error) {
	rows, err := c.db.Query(`
		SELECT cd.id, cd.slate_id, cd.name, cd.position
		FROM candidate cd
		JOIN slate s ON s.id = cd.slate_id
		WHERE s.category = $1 AND s.active = TRUE
		ORDER BY CASE WHEN cd.position = 'principal' THEN 0 ELSE 1 END, cd.name
	`, category)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	candidates := map[string][]models.Candidate{}
	for rows.Next() {
		var cd models.Candidate
		if err := rows.Scan(&cd.ID, &cd.SlateID, &cd.Name, &cd.Position); err != nil {
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}
		candidates[cd.SlateID] = append(candidates[cd.SlateID], cd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate rows: %w", err)
	}

	return candidates, nil
}
