package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
)

// Verify interface compliance
var (
	_ repositories.UserRepository       = (*MockUserRepository)(nil)
	_ repositories.SessionRepository    = (*MockSessionRepository)(nil)
	_ repositories.MeetingRepository    = (*MockMeetingRepository)(nil)
	_ repositories.EvaluationRepository = (*MockEvaluationRepository)(nil)
	_ repositories.AnalysisRepository   = (*MockAnalysisRepository)(nil)
	_ repositories.FailedCaseRepository = (*MockFailedCaseRepository)(nil)
	_ repositories.StatisticsRepository = (*MockStatisticsRepository)(nil)
)

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[uuid.UUID]*entities.User
	Err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[uuid.UUID]*entities.User)}
}

func (m *MockUserRepository) Create(_ context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if user.Username != nil {
		for _, u := range m.Users {
			if u.Username != nil && strings.EqualFold(*u.Username, *user.Username) {
				return entities.ErrUserAlreadyExists
			}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Username != nil && strings.EqualFold(*u.Username, username) {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (m *MockUserRepository) FindByOAuth(_ context.Context, provider, oauthID string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.OAuthProvider != nil && u.OAuthID != nil && *u.OAuthProvider == provider && *u.OAuthID == oauthID {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (m *MockUserRepository) Update(_ context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[user.ID]; !ok {
		return entities.ErrUserNotFound
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdateRole(_ context.Context, id uuid.UUID, role entities.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *MockUserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	return nil
}

func (m *MockUserRepository) UpdateLastSignIn(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	u.UpdateLastSignIn()
	return nil
}

func (m *MockUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[id]; !ok {
		return entities.ErrUserNotFound
	}
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) List(_ context.Context, limit, offset int) ([]*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*entities.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return page(users, limit, offset), nil
}

// MockSessionRepository is an in-memory SessionRepository
type MockSessionRepository struct {
	mu       sync.Mutex
	Sessions map[uuid.UUID]*entities.Session
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{Sessions: make(map[uuid.UUID]*entities.Session)}
}

func (m *MockSessionRepository) Create(_ context.Context, s *entities.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sessions[s.ID] = s
	return nil
}

func (m *MockSessionRepository) FindByTokenHash(_ context.Context, hash string) (*entities.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.Sessions {
		if s.RefreshTokenHash == hash && s.RevokedAt == nil {
			return s, nil
		}
	}
	return nil, entities.ErrSessionNotFound
}

func (m *MockSessionRepository) UpdateLastUsed(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.Sessions[id]; ok {
		now := time.Now().UTC()
		s.LastUsedAt = &now
	}
	return nil
}

func (m *MockSessionRepository) Revoke(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[id]
	if !ok {
		return entities.ErrSessionNotFound
	}
	now := time.Now().UTC()
	s.RevokedAt = &now
	return nil
}

func (m *MockSessionRepository) RevokeAllByUserID(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for _, s := range m.Sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (m *MockSessionRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.Sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.Sessions, id)
			n++
		}
	}
	return n, nil
}

// Active counts unrevoked sessions of a user.
func (m *MockSessionRepository) Active(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.Sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			n++
		}
	}
	return n
}

// MockMeetingRepository is an in-memory MeetingRepository. Deleting a meeting
// removes children from the attached child repositories, if set.
type MockMeetingRepository struct {
	mu          sync.Mutex
	Meetings    map[uuid.UUID]*entities.Meeting
	Evaluations *MockEvaluationRepository
	Analyses    *MockAnalysisRepository
	FailedCases *MockFailedCaseRepository
	Err         error
}

func NewMockMeetingRepository() *MockMeetingRepository {
	return &MockMeetingRepository{Meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (m *MockMeetingRepository) Create(_ context.Context, meeting *entities.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	m.Meetings[meeting.ID] = meeting
	return nil
}

func (m *MockMeetingRepository) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	meeting, ok := m.Meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	return meeting, nil
}

func (m *MockMeetingRepository) List(_ context.Context, f repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var out []*entities.Meeting
	for _, meeting := range m.Meetings {
		if f.OwnerID != nil && meeting.SalespersonID != *f.OwnerID {
			continue
		}
		if f.Status != nil && meeting.CaseStatus != *f.Status {
			continue
		}
		if f.Stage != nil && meeting.MeetingStage != *f.Stage {
			continue
		}
		out = append(out, meeting)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeetingDate.After(out[j].MeetingDate) })
	return page(out, f.Limit, f.Offset), int64(len(out)), nil
}

func (m *MockMeetingRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entities.CaseStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.Meetings[id]
	if !ok {
		return entities.ErrMeetingNotFound
	}
	meeting.CaseStatus = status
	return nil
}

func (m *MockMeetingRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Meetings[id]; !ok {
		return entities.ErrMeetingNotFound
	}
	delete(m.Meetings, id)
	if m.Evaluations != nil {
		m.Evaluations.deleteByMeeting(id)
	}
	if m.Analyses != nil {
		m.Analyses.deleteByMeeting(id)
	}
	if m.FailedCases != nil {
		m.FailedCases.deleteByMeeting(id)
	}
	return nil
}

// MockEvaluationRepository is an in-memory EvaluationRepository
type MockEvaluationRepository struct {
	mu          sync.Mutex
	Evaluations map[uuid.UUID]*entities.Evaluation // by meeting
	Meetings    *MockMeetingRepository
}

func NewMockEvaluationRepository(meetings *MockMeetingRepository) *MockEvaluationRepository {
	return &MockEvaluationRepository{Evaluations: make(map[uuid.UUID]*entities.Evaluation), Meetings: meetings}
}

func (m *MockEvaluationRepository) Create(_ context.Context, e *entities.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Evaluations[e.MeetingID]; ok {
		return entities.ErrEvaluationExists
	}
	m.Evaluations[e.MeetingID] = e
	return nil
}

func (m *MockEvaluationRepository) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Evaluations[meetingID]
	if !ok {
		return nil, entities.ErrEvaluationNotFound
	}
	return e, nil
}

func (m *MockEvaluationRepository) List(ctx context.Context, f repositories.EvaluationFilters) ([]*entities.Evaluation, int64, error) {
	m.mu.Lock()
	all := make([]*entities.Evaluation, 0, len(m.Evaluations))
	for _, e := range m.Evaluations {
		all = append(all, e)
	}
	m.mu.Unlock()

	var out []*entities.Evaluation
	for _, e := range all {
		if f.MeetingOwnerID != nil {
			if m.Meetings == nil {
				continue
			}
			meeting, err := m.Meetings.FindByID(ctx, e.MeetingID)
			if err != nil || meeting.SalespersonID != *f.MeetingOwnerID {
				continue
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EvaluatedAt.After(out[j].EvaluatedAt) })
	return page(out, f.Limit, f.Offset), int64(len(out)), nil
}

func (m *MockEvaluationRepository) deleteByMeeting(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Evaluations, id)
}

// MockAnalysisRepository is an in-memory AnalysisRepository
type MockAnalysisRepository struct {
	mu       sync.Mutex
	Analyses map[uuid.UUID]*entities.AIAnalysis // by meeting
	Err      error
}

func NewMockAnalysisRepository() *MockAnalysisRepository {
	return &MockAnalysisRepository{Analyses: make(map[uuid.UUID]*entities.AIAnalysis)}
}

func (m *MockAnalysisRepository) Create(_ context.Context, a *entities.AIAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Analyses[a.MeetingID]; ok {
		return entities.ErrAnalysisExists
	}
	m.Analyses[a.MeetingID] = a
	return nil
}

func (m *MockAnalysisRepository) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.AIAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Analyses[meetingID]
	if !ok {
		return nil, entities.ErrAnalysisNotFound
	}
	return a, nil
}

func (m *MockAnalysisRepository) ReplaceFallback(_ context.Context, a *entities.AIAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Analyses[a.MeetingID]
	if !ok || !existing.IsFallback {
		return entities.ErrAnalysisExists
	}
	m.Analyses[a.MeetingID] = a
	return nil
}

func (m *MockAnalysisRepository) deleteByMeeting(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Analyses, id)
}

// MockFailedCaseRepository is an in-memory FailedCaseRepository
type MockFailedCaseRepository struct {
	mu          sync.Mutex
	FailedCases []*entities.FailedCase
	Meetings    *MockMeetingRepository
}

func NewMockFailedCaseRepository(meetings *MockMeetingRepository) *MockFailedCaseRepository {
	return &MockFailedCaseRepository{Meetings: meetings}
}

func (m *MockFailedCaseRepository) CreateAndMarkFailed(ctx context.Context, fc *entities.FailedCase) error {
	if err := m.Meetings.UpdateStatus(ctx, fc.MeetingID, entities.CaseFailed); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedCases = append(m.FailedCases, fc)
	return nil
}

func (m *MockFailedCaseRepository) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.FailedCase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.FailedCases) - 1; i >= 0; i-- {
		if m.FailedCases[i].MeetingID == meetingID {
			return m.FailedCases[i], nil
		}
	}
	return nil, entities.ErrFailedCaseNotFound
}

func (m *MockFailedCaseRepository) List(_ context.Context, f repositories.FailedCaseFilters) ([]*entities.FailedCase, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entities.FailedCase
	for i := len(m.FailedCases) - 1; i >= 0; i-- {
		fc := m.FailedCases[i]
		if f.SalespersonID != nil && fc.SalespersonID != *f.SalespersonID {
			continue
		}
		out = append(out, fc)
	}
	return page(out, f.Limit, f.Offset), int64(len(out)), nil
}

func (m *MockFailedCaseRepository) deleteByMeeting(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.FailedCases[:0]
	for _, fc := range m.FailedCases {
		if fc.MeetingID != id {
			kept = append(kept, fc)
		}
	}
	m.FailedCases = kept
}

// MockStatisticsRepository returns canned aggregates and counts calls.
type MockStatisticsRepository struct {
	mu           sync.Mutex
	Status       entities.StatusCounts
	Salespeople  map[uuid.UUID]entities.SalespersonCounts
	ClientTypes  []entities.ClientTypeCount
	Monthly      []entities.MonthlyCount
	MonthlySince time.Time
	Err          error
	StatusCalls  int
	MonthlyCalls int
	ClientCalls  int
}

func NewMockStatisticsRepository() *MockStatisticsRepository {
	return &MockStatisticsRepository{Salespeople: make(map[uuid.UUID]entities.SalespersonCounts)}
}

func (m *MockStatisticsRepository) StatusCounts(context.Context) (entities.StatusCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls++
	return m.Status, m.Err
}

func (m *MockStatisticsRepository) SalespersonCounts(_ context.Context, id uuid.UUID) (entities.SalespersonCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return entities.SalespersonCounts{}, m.Err
	}
	if c, ok := m.Salespeople[id]; ok {
		return c, nil
	}
	return entities.SalespersonCounts{SalespersonID: id}, nil
}

func (m *MockStatisticsRepository) AllSalespersonCounts(context.Context) ([]entities.SalespersonCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.SalespersonCounts, 0, len(m.Salespeople))
	for _, c := range m.Salespeople {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, m.Err
}

func (m *MockStatisticsRepository) ClientTypeCounts(context.Context) ([]entities.ClientTypeCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClientCalls++
	return m.ClientTypes, m.Err
}

func (m *MockStatisticsRepository) MonthlyCounts(_ context.Context, since time.Time) ([]entities.MonthlyCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MonthlyCalls++
	m.MonthlySince = since
	return m.Monthly, m.Err
}
