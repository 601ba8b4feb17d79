package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wppcal/internal/models"
)

func TestResolveAcrossPages(t *testing.T) {
	env := newTestEnv()
	for i := range 4 {
		env.calendar.AddCalendar(fmt.Sprintf("Calendar %d", i))
	}
	id := env.calendar.AddCalendar("Trabalho")

	resolved, err := env.services.Directory.Resolve(context.Background(), "Trabalho")
	require.Nil(t, err)
	assert.Equal(t, id, resolved)
	assert.Equal(t, 3, env.calendar.CallCount("ListCalendars"))
}

func TestResolveIsCaseSensitive(t *testing.T) {
	env := newTestEnv()
	env.calendar.AddCalendar("Trabalho")

	_, err := env.services.Directory.Resolve(context.Background(), "trabalho")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolveTransient(t *testing.T) {
	env := newTestEnv()
	env.calendar.FailList = true

	_, err := env.services.Directory.Resolve(context.Background(), "Trabalho")
	assert.ErrorIs(t, err, models.ErrTransient)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestListCalendars(t *testing.T) {
	env := newTestEnv()
	env.calendar.AddCalendar("Pessoal")
	env.calendar.AddCalendar("Trabalho")
	env.calendar.AddCalendar("Viagens")

	calendars, err := env.services.Directory.List(context.Background())
	require.Nil(t, err)
	assert.Len(t, calendars, 3)
	assert.Equal(t, "Viagens", calendars[2].Name)
}
