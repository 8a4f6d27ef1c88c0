package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

func TestCreateSessionSyncsGoals(t *testing.T) {
	env := newTestEnv()
	env.store.enroll("u1", spanish)
	env.store.addGoal(goal("g1", "u1", spanish, entities.ActivityReading, 60))
	env.store.addGoal(goal("g2", "u1", spanish, entities.ActivityWriting, 60))

	sess, err := env.sessionService().Create(context.Background(), "u1", SessionInput{
		LanguageID: spanish.ID,
		Type:       entities.ActivityReading,
		Date:       daysAgo(0),
		Hours:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, sess.Duration)
	assert.Equal(t, testNow, sess.CreatedAt)
	assert.Equal(t, entities.GoalCompleted, env.store.goal("g1").Status)
	assert.Equal(t, entities.GoalNotStarted, env.store.goal("g2").Status)
}

func TestCreateSessionValidation(t *testing.T) {
	env := newTestEnv()
	svc := env.sessionService()
	hard := entities.Difficulty("BRUTAL")

	for name, in := range map[string]SessionInput{
		"zero duration":  {LanguageID: spanish.ID, Type: entities.ActivityReading, Date: daysAgo(0)},
		"minutes > 59":   {LanguageID: spanish.ID, Type: entities.ActivityReading, Date: daysAgo(0), Minutes: 75},
		"no date":        {LanguageID: spanish.ID, Type: entities.ActivityReading, DurationMinutes: 10},
		"bad type":       {LanguageID: spanish.ID, Type: "NAPPING", Date: daysAgo(0), DurationMinutes: 10},
		"bad difficulty": {LanguageID: spanish.ID, Type: entities.ActivityReading, Date: daysAgo(0), DurationMinutes: 10, Difficulty: &hard},
	} {
		_, err := svc.Create(context.Background(), "u1", in)
		assert.ErrorIs(t, err, entities.ErrValidation, name)
	}
	assert.Empty(t, env.store.sessions)
}

func TestUpdateSessionResyncsOldAndNewGoals(t *testing.T) {
	env := newTestEnv()
	env.store.enroll("u1", spanish)
	env.store.addGoal(goal("reading", "u1", spanish, entities.ActivityReading, 30))
	env.store.addGoal(goal("speaking", "u1", spanish, entities.ActivitySpeaking, 30))
	svc := env.sessionService()

	sess, err := svc.Create(context.Background(), "u1", SessionInput{
		LanguageID:      spanish.ID,
		Type:            entities.ActivityReading,
		Date:            daysAgo(0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Equal(t, entities.GoalCompleted, env.store.goal("reading").Status)

	medium := entities.DifficultyMedium
	updated, err := svc.Update(context.Background(), "u1", sess.ID, SessionInput{
		LanguageID:      spanish.ID,
		Type:            entities.ActivitySpeaking,
		Date:            daysAgo(0),
		DurationMinutes: 20,
		Difficulty:      &medium,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.ActivitySpeaking, updated.Type)
	assert.Equal(t, entities.GoalNotStarted, env.store.goal("reading").Status)
	assert.Equal(t, entities.GoalInProgress, env.store.goal("speaking").Status)
}

func TestCreateSessionRequiresEnrollment(t *testing.T) {
	env := newTestEnv()
	env.store.enroll("u1", spanish)
	svc := env.sessionService()

	in := SessionInput{
		LanguageID:      spanish.ID,
		Type:            entities.ActivityReading,
		Date:            daysAgo(0),
		DurationMinutes: 30,
	}

	_, err := svc.Create(context.Background(), "stranger", in)
	assert.ErrorIs(t, err, entities.ErrValidation)

	in.LanguageID = "lang-missing"
	_, err = svc.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, entities.ErrValidation)

	assert.Empty(t, env.store.sessions)
}

func TestUpdateSessionRequiresEnrollment(t *testing.T) {
	env := newTestEnv()
	env.store.enroll("u1", spanish)
	env.store.addSession(session("s1", "u1", spanish, entities.ActivityReading, 30, daysAgo(0)))
	svc := env.sessionService()

	_, err := svc.Update(context.Background(), "u1", "s1", SessionInput{
		LanguageID:      french.ID,
		Type:            entities.ActivityReading,
		Date:            daysAgo(0),
		DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, entities.ErrValidation)
	assert.Equal(t, spanish.ID, env.store.session("s1").LanguageID)
	assert.Equal(t, 30, env.store.session("s1").Duration)

	// A language removed after the session was logged does not block edits
	// that keep it.
	require.NoError(t, env.languageService().Remove(context.Background(), "u1", spanish.ID, false))
	updated, err := svc.Update(context.Background(), "u1", "s1", SessionInput{
		LanguageID:      spanish.ID,
		Type:            entities.ActivityReading,
		Date:            daysAgo(0),
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Duration)
}

func TestUpdateSessionOfAnotherUser(t *testing.T) {
	env := newTestEnv()
	env.store.addSession(session("s1", "u2", spanish, entities.ActivityReading, 30, daysAgo(0)))

	_, err := env.sessionService().Update(context.Background(), "u1", "s1", SessionInput{
		LanguageID:      spanish.ID,
		Type:            entities.ActivityReading,
		Date:            daysAgo(0),
		DurationMinutes: 99,
	})
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Equal(t, 30, env.store.session("s1").Duration)
}

func TestToggleArchive(t *testing.T) {
	env := newTestEnv()
	env.store.enroll("u1", spanish)
	env.store.addGoal(goal("g1", "u1", spanish, entities.ActivityReading, 30))
	svc := env.sessionService()

	sess, err := svc.Create(context.Background(), "u1", SessionInput{
		LanguageID:      spanish.ID,
		Type:            entities.ActivityReading,
		Date:            daysAgo(0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	_, err = svc.ToggleArchive(context.Background(), "u2", sess.ID)
	assert.ErrorIs(t, err, entities.ErrUnauthorized)

	_, err = svc.ToggleArchive(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	archived, err := svc.ToggleArchive(context.Background(), "u1", sess.ID)
	require.NoError(t, err)
	assert.True(t, archived)
	assert.Equal(t, entities.GoalNotStarted, env.store.goal("g1").Status)

	archived, err = svc.ToggleArchive(context.Background(), "u1", sess.ID)
	require.NoError(t, err)
	assert.False(t, archived)
	assert.Equal(t, entities.GoalCompleted, env.store.goal("g1").Status)
}

func TestListSessionsPaginates(t *testing.T) {
	env := newTestEnv()
	env.store.enroll("u1", spanish)
	for i := range 12 {
		s := session(fmt.Sprintf("s%02d", i), "u1", spanish, entities.ActivityReading, 10, daysAgo(i))
		s.Description = fmt.Sprintf("chapter %d", i)
		env.store.addSession(s)
	}
	env.store.addSession(session("fr", "u1", french, entities.ActivityListening, 10, daysAgo(0)))
	svc := env.sessionService()

	page, err := svc.List(context.Background(), "u1", SessionFilter{LanguageID: spanish.ID, Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, Pagination{Total: 12, Pages: 3, Current: 2}, page.Pagination)
	require.Len(t, page.Sessions, 5)
	assert.Equal(t, "s05", page.Sessions[0].ID)
	assert.Equal(t, "Spanish", page.Sessions[0].LanguageName)

	page, err = svc.List(context.Background(), "u1", SessionFilter{Search: "CHAPTER 1"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total) // 1, 10, 11
	assert.Equal(t, 1, page.Pagination.Current)

	page, err = svc.List(context.Background(), "u1", SessionFilter{Archived: true})
	require.NoError(t, err)
	assert.Empty(t, page.Sessions)
	assert.NotNil(t, page.Sessions)
	assert.Equal(t, Pagination{Total: 0, Pages: 0, Current: 1}, page.Pagination)
}

func TestRecentSessions(t *testing.T) {
	env := newTestEnv()
	for i := range 7 {
		env.store.addSession(session(fmt.Sprintf("s%d", i), "u1", spanish, entities.ActivityReading, 10, daysAgo(i)))
	}

	recent, err := env.sessionService().Recent(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "s0", recent[0].ID)
}
