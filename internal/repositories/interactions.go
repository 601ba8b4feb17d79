package repositories

import (
	"context"

	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"wppcal/internal/models"
)

type InteractionRepository struct {
	db postgres.DB
}

func (repo *InteractionRepository) Record(
	ctx context.Context,
	interaction models.Interaction,
) error {
	query := `
		INSERT INTO wppcal.interactions
		(id, sender, message, action, target, reply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := repo.db.Exec(
		ctx,
		query,
		interaction.ID,
		interaction.Sender,
		interaction.Message,
		string(interaction.Action),
		string(interaction.Target),
		interaction.Reply,
		interaction.CreatedAt,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

func (repo *InteractionRepository) ListRecent(
	ctx context.Context,
	limit int,
) ([]models.Interaction, error) {
	query := `
		SELECT id, sender, message, action, target, reply, created_at
		FROM wppcal.interactions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := repo.db.Query(ctx, query, limit)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	interactions := []models.Interaction{}
	for rows.Next() {
		var interaction models.Interaction
		var action, target string

		err = rows.Scan(
			&interaction.ID,
			&interaction.Sender,
			&interaction.Message,
			&action,
			&target,
			&interaction.Reply,
			&interaction.CreatedAt,
		)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		interaction.Action = models.Action(action)
		interaction.Target = models.Target(target)
		interactions = append(interactions, interaction)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return interactions, nil
}

// DiscardInteractions is used when no database is configured.
type DiscardInteractions struct{}

func (DiscardInteractions) Record(context.Context, models.Interaction) error {
	return nil
}
