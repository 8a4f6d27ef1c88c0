package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

func TestSessionQueryWhereMinimal(t *testing.T) {
	where, args := SessionQuery{UserID: "u1"}.where()

	assert.Equal(t, "WHERE s.user_id = $1 AND s.archived = $2", where)
	assert.Equal(t, []any{"u1", false}, args)
}

func TestSessionQueryWhereAllFilters(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := from.AddDate(0, 0, 7)
	until := from.AddDate(0, 1, 0)

	where, args := SessionQuery{
		UserID:     "u1",
		LanguageID: "es",
		Type:       entities.ActivityReading,
		Search:     "50%_off",
		Archived:   true,
		From:       &from,
		Before:     &before,
		Until:      &until,
	}.where()

	assert.Equal(t,
		"WHERE s.user_id = $1 AND s.archived = $2 AND s.language_id = $3 AND s.type = $4"+
			" AND s.description ILIKE '%' || $5 || '%' AND s.date >= $6 AND s.date < $7 AND s.date <= $8",
		where,
	)
	assert.Equal(t, []any{"u1", true, "es", "READING", `50\%\_off`, from, before, until}, args)
}
