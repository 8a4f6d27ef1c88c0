package service

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres/repository"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// memStore is an in-memory stand-in for the database shared by all fake
// repositories of a test.
type memStore struct {
	mu        sync.Mutex
	users     map[string]entities.User
	languages map[string]entities.Language // by code
	progress  map[string]entities.LanguageProgress
	goals     map[string]entities.Goal
	sessions  map[string]entities.StudySession

	statusWrites int
	findCalls    int
	existsCalls  int

	failFind           error
	failExists         error
	failSum            error
	failDeleteProgress error
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]entities.User{},
		languages: map[string]entities.Language{},
		progress:  map[string]entities.LanguageProgress{},
		goals:     map[string]entities.Goal{},
		sessions:  map[string]entities.StudySession{},
	}
}

func (m *memStore) languageName(id string) string {
	for _, l := range m.languages {
		if l.ID == id {
			return l.Name
		}
	}
	return ""
}

func (m *memStore) addSession(s entities.StudySession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *memStore) addGoal(g entities.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = g
}

func (m *memStore) goal(id string) entities.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goals[id]
}

func (m *memStore) session(id string) entities.StudySession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

func (m *memStore) enroll(userID string, lang entities.Language) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.languages[lang.Code] = lang
	key := userID + "|" + lang.ID
	m.progress[key] = entities.LanguageProgress{ID: key, UserID: userID, LanguageID: lang.ID, Language: lang}
}

func (m *memStore) snapshot() *memStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memStore{
		users:     maps.Clone(m.users),
		languages: maps.Clone(m.languages),
		progress:  maps.Clone(m.progress),
		goals:     maps.Clone(m.goals),
		sessions:  maps.Clone(m.sessions),
	}
}

func (m *memStore) restore(s *memStore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users, m.languages, m.progress, m.goals, m.sessions = s.users, s.languages, s.progress, s.goals, s.sessions
}

func matches(q repository.SessionQuery, s entities.StudySession) bool {
	switch {
	case s.UserID != q.UserID, s.Archived != q.Archived:
		return false
	case q.LanguageID != "" && s.LanguageID != q.LanguageID:
		return false
	case q.Type != "" && s.Type != q.Type:
		return false
	case q.Search != "" && !strings.Contains(strings.ToLower(s.Description), strings.ToLower(q.Search)):
		return false
	case q.From != nil && s.Date.Before(*q.From):
		return false
	case q.Before != nil && !s.Date.Before(*q.Before):
		return false
	case q.Until != nil && s.Date.After(*q.Until):
		return false
	}
	return true
}

type fakeSessions struct{ m *memStore }

func (f fakeSessions) Create(_ context.Context, s *entities.StudySession) error {
	f.m.addSession(*s)
	return nil
}

func (f fakeSessions) GetByID(_ context.Context, id string) (*entities.StudySession, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	s, ok := f.m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (f fakeSessions) Update(_ context.Context, s *entities.StudySession) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.sessions[s.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	f.m.sessions[s.ID] = *s
	return nil
}

func (f fakeSessions) SetArchived(_ context.Context, id string, archived bool) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	s, ok := f.m.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	s.Archived = archived
	f.m.sessions[id] = s
	return nil
}

func (f fakeSessions) ArchiveByLanguage(_ context.Context, userID, languageID string) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var n int64
	for id, s := range f.m.sessions {
		if s.UserID == userID && s.LanguageID == languageID && !s.Archived {
			s.Archived = true
			f.m.sessions[id] = s
			n++
		}
	}
	return n, nil
}

func (f fakeSessions) Find(_ context.Context, q repository.SessionQuery, limit, offset int) ([]entities.StudySession, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.findCalls++
	if f.m.failFind != nil {
		return nil, f.m.failFind
	}

	var out []entities.StudySession
	for _, s := range f.m.sessions {
		if matches(q, s) {
			s.LanguageName = f.m.languageName(s.LanguageID)
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:min(offset+limit, len(out))]
	}
	return out, nil
}

func (f fakeSessions) Count(_ context.Context, q repository.SessionQuery) (int, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	n := 0
	for _, s := range f.m.sessions {
		if matches(q, s) {
			n++
		}
	}
	return n, nil
}

func (f fakeSessions) SumDurations(_ context.Context, q repository.SessionQuery) (int, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failSum != nil {
		return 0, f.m.failSum
	}
	total := 0
	for _, s := range f.m.sessions {
		if matches(q, s) {
			total += s.Duration
		}
	}
	return total, nil
}

func (f fakeSessions) ExistsBetween(_ context.Context, userID string, from, to time.Time) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.existsCalls++
	if f.m.failExists != nil {
		return false, f.m.failExists
	}
	for _, s := range f.m.sessions {
		if s.UserID == userID && !s.Archived && !s.Date.Before(from) && s.Date.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

type fakeGoals struct{ m *memStore }

func (f fakeGoals) Create(_ context.Context, g *entities.Goal) error {
	f.m.addGoal(*g)
	return nil
}

func (f fakeGoals) GetByID(_ context.Context, id string) (*entities.Goal, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	g, ok := f.m.goals[id]
	if !ok {
		return nil, repository.ErrGoalNotFound
	}
	return &g, nil
}

func (f fakeGoals) ListByUser(_ context.Context, userID, languageID string) ([]entities.Goal, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []entities.Goal
	for _, g := range f.m.goals {
		if g.UserID == userID && !g.Archived && (languageID == "" || g.LanguageID == languageID) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeGoals) ListAffected(_ context.Context, userID, languageID string, activity entities.ActivityType) ([]entities.Goal, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []entities.Goal
	for _, g := range f.m.goals {
		if g.UserID == userID && g.LanguageID == languageID && g.ActivityType == activity && !g.Archived {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f fakeGoals) UpdateStatus(_ context.Context, id string, status entities.GoalStatus) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	g, ok := f.m.goals[id]
	if !ok {
		return repository.ErrGoalNotFound
	}
	g.Status = status
	f.m.goals[id] = g
	f.m.statusWrites++
	return nil
}

func (f fakeGoals) ArchiveByLanguage(_ context.Context, userID, languageID string) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var n int64
	for id, g := range f.m.goals {
		if g.UserID == userID && g.LanguageID == languageID && !g.Archived {
			g.Archived = true
			f.m.goals[id] = g
			n++
		}
	}
	return n, nil
}

func (f fakeGoals) Delete(_ context.Context, id string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.goals[id]; !ok {
		return repository.ErrGoalNotFound
	}
	delete(f.m.goals, id)
	return nil
}

type fakeProgress struct{ m *memStore }

func (f fakeProgress) Create(_ context.Context, p *entities.LanguageProgress) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	key := p.UserID + "|" + p.LanguageID
	if _, ok := f.m.progress[key]; ok {
		return repository.ErrLanguageAlreadyEnrolled
	}
	f.m.progress[key] = *p
	return nil
}

func (f fakeProgress) Exists(_ context.Context, userID, languageID string) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	_, ok := f.m.progress[userID+"|"+languageID]
	return ok, nil
}

func (f fakeProgress) ListByUser(_ context.Context, userID string) ([]entities.LanguageProgress, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []entities.LanguageProgress
	for _, p := range f.m.progress {
		if p.UserID != userID {
			continue
		}
		p.TotalMinutes = 0
		for _, s := range f.m.sessions {
			if s.UserID == userID && s.LanguageID == p.LanguageID && !s.Archived {
				p.TotalMinutes += s.Duration
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LanguageID < out[j].LanguageID })
	return out, nil
}

func (f fakeProgress) DeleteByLanguage(_ context.Context, userID, languageID string) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failDeleteProgress != nil {
		return 0, f.m.failDeleteProgress
	}
	key := userID + "|" + languageID
	if _, ok := f.m.progress[key]; !ok {
		return 0, nil
	}
	delete(f.m.progress, key)
	return 1, nil
}

type fakeLanguages struct{ m *memStore }

func (f fakeLanguages) GetOrCreate(_ context.Context, lang entities.Language) (entities.Language, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if existing, ok := f.m.languages[lang.Code]; ok {
		return existing, nil
	}
	f.m.languages[lang.Code] = lang
	return lang, nil
}

type fakeUsers struct{ m *memStore }

func (f fakeUsers) Save(_ context.Context, u *entities.User) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	_, existed := f.m.users[u.ID]
	f.m.users[u.ID] = *u
	return !existed, nil
}

func (f fakeUsers) ListWithTelegram(_ context.Context) ([]entities.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []entities.User
	for _, u := range f.m.users {
		if u.TelegramChatID != nil {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeUnitOfWork restores the store snapshot when fn fails, mimicking a
// rolled back transaction.
type fakeUnitOfWork struct{ m *memStore }

func (u fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	before := u.m.snapshot()
	err := fn(ctx, Stores{
		Goals:    fakeGoals{u.m},
		Sessions: fakeSessions{u.m},
		Progress: fakeProgress{u.m},
	})
	if err != nil {
		u.m.restore(before)
	}
	return err
}

// fixedStreak is a StreakSource with a canned answer.
type fixedStreak struct {
	streak int
	err    error
}

func (f fixedStreak) Get(context.Context, string) (int, error) {
	return f.streak, f.err
}

// countingComputer counts how often the cache falls through.
type countingComputer struct {
	mu     sync.Mutex
	calls  int
	streak int
	err    error
}

func (c *countingComputer) Compute(context.Context, string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.streak, c.err
}

func (c *countingComputer) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type sentReminder struct {
	chatID  int64
	payload entities.ReminderPayload
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentReminder
}

func (n *recordingNotifier) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentReminder{chatID: chatID, payload: payload})
	return nil
}

// Shared fixtures.

var (
	spanish = entities.Language{ID: "lang-es", Name: "Spanish", Code: "es"}
	french  = entities.Language{ID: "lang-fr", Name: "French", Code: "fr"}

	// noon keeps fixtures clear of day boundaries.
	testNow = time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)
)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func session(id, userID string, lang entities.Language, typ entities.ActivityType, minutes int, date time.Time) entities.StudySession {
	return entities.StudySession{
		ID:         id,
		UserID:     userID,
		LanguageID: lang.ID,
		Type:       typ,
		Duration:   minutes,
		Date:       date,
	}
}

func goal(id, userID string, lang entities.Language, typ entities.ActivityType, target int) entities.Goal {
	return entities.Goal{
		ID:            id,
		UserID:        userID,
		LanguageID:    lang.ID,
		ActivityType:  typ,
		TargetMinutes: target,
		Status:        entities.GoalNotStarted,
	}
}

type testEnv struct {
	store    *memStore
	clock    *fakeClock
	logger   *zap.Logger
	validate *InputValidator
}

func newTestEnv() *testEnv {
	return &testEnv{
		store:    newMemStore(),
		clock:    &fakeClock{now: testNow},
		logger:   zap.NewNop(),
		validate: NewInputValidator(),
	}
}

func (e *testEnv) goalService(streaks StreakSource) *GoalService {
	m := e.store
	return NewGoalService(fakeGoals{m}, fakeSessions{m}, fakeProgress{m}, streaks, e.clock, e.validate, e.logger)
}

func (e *testEnv) sessionService() *StudySessionService {
	return NewStudySessionService(fakeSessions{e.store}, fakeProgress{e.store}, e.goalService(fixedStreak{}), e.clock, e.validate, e.logger)
}

func (e *testEnv) streakCalculator(maxDays int) *StreakCalculator {
	return NewStreakCalculator(fakeSessions{e.store}, e.clock, time.UTC, maxDays, e.logger)
}
