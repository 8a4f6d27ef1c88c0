package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

// SessionQuery filters study sessions. Zero values mean "any", except
// Archived which always applies.
type SessionQuery struct {
	UserID     string
	LanguageID string
	Type       entities.ActivityType
	Search     string // case-insensitive substring of the description
	Archived   bool
	From       *time.Time // date >= From
	Before     *time.Time // date < Before
	Until      *time.Time // date <= Until
}

// where renders the WHERE clause and its positional arguments.
func (q SessionQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	add("s.user_id = $%d", q.UserID)
	add("s.archived = $%d", q.Archived)

	if q.LanguageID != "" {
		add("s.language_id = $%d", q.LanguageID)
	}
	if q.Type != "" {
		add("s.type = $%d", string(q.Type))
	}
	if q.Search != "" {
		add("s.description ILIKE '%%' || $%d || '%%'", escapeLike(q.Search))
	}
	if q.From != nil {
		add("s.date >= $%d", *q.From)
	}
	if q.Before != nil {
		add("s.date < $%d", *q.Before)
	}
	if q.Until != nil {
		add("s.date <= $%d", *q.Until)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
