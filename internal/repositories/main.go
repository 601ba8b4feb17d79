package repositories

import (
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type Repositories struct {
	Interactions *InteractionRepository
}

func New(db postgres.DB) *Repositories {
	interactions := &InteractionRepository{db: db}

	return &Repositories{
		Interactions: interactions,
	}
}
