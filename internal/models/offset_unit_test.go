package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wppcal/internal/models"
)

func TestParseOffset(t *testing.T) {
	offset, err := models.ParseOffset("+7 days")
	require.Nil(t, err)
	assert.Equal(t, models.OffsetDirective{Amount: 7, Unit: models.OffsetDay}, offset)

	offset, err = models.ParseOffset("-2 semanas")
	require.Nil(t, err)
	assert.Equal(t, -14, offset.Days())

	offset, err = models.ParseOffset("+1 mês")
	require.Nil(t, err)
	assert.Equal(t, 30, offset.Days())

	offset, err = models.ParseOffset("+1 YEAR")
	require.Nil(t, err)
	assert.Equal(t, 365, offset.Days())
}

func TestParseOffsetInvalid(t *testing.T) {
	for _, value := range []string{"7 days", "+ days", "+7 fortnights", "next week", ""} {
		_, err := models.ParseOffset(value)
		assert.ErrorIs(t, err, models.ErrParse, value)
	}
}

func TestOffsetDuration(t *testing.T) {
	offset, err := models.ParseOffset("+7 days")
	require.Nil(t, err)

	assert.Equal(t, 7*24*time.Hour, offset.Duration())

	offset, err = models.ParseOffset("-1 week")
	require.Nil(t, err)

	assert.Equal(t, -7*24*time.Hour, offset.Duration())

	offset, err = models.ParseOffset("+2 meses")
	require.Nil(t, err)
	assert.Equal(t, 60*24*time.Hour, offset.Duration())
}
