package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/internal/adapter/handler"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/infrastructure/cache"
	"github.com/johnquangdev/sales-review/internal/mocks"
	"github.com/johnquangdev/sales-review/internal/usecase/analysis"
	"github.com/johnquangdev/sales-review/internal/usecase/auth"
	"github.com/johnquangdev/sales-review/internal/usecase/evaluation"
	"github.com/johnquangdev/sales-review/internal/usecase/failedcase"
	"github.com/johnquangdev/sales-review/internal/usecase/media"
	"github.com/johnquangdev/sales-review/internal/usecase/meeting"
	"github.com/johnquangdev/sales-review/internal/usecase/statistics"
	"github.com/johnquangdev/sales-review/internal/usecase/user"
	"github.com/johnquangdev/sales-review/pkg/ai"
	"github.com/johnquangdev/sales-review/pkg/config"
	"github.com/johnquangdev/sales-review/pkg/jwt"
	"github.com/johnquangdev/sales-review/pkg/password"
)

// unavailableModel makes every analysis fall back
type unavailableModel struct{}

func (unavailableModel) Complete(context.Context, ai.ChatRequest) (string, error) {
	return "", stdErrors.New("model unavailable")
}

type memoryObjects struct {
	objects map[string][]byte
}

func (m *memoryObjects) Upload(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[name] = b
	return "http://objects.test/" + name, nil
}

type server struct {
	e        *echo.Echo
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	meetings *mocks.MockMeetingRepository
	stats    *mocks.MockStatisticsRepository
	objects  *memoryObjects
	tokens   *jwt.Manager

	admin       *entities.User
	evaluator   *entities.User
	salesperson *entities.User
	guest       *entities.User
}

func newServer(t *testing.T) *server {
	t.Helper()
	logger := zap.NewNop()
	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)

	s := &server{
		users:    mocks.NewMockUserRepository(),
		sessions: mocks.NewMockSessionRepository(),
		meetings: mocks.NewMockMeetingRepository(),
		stats:    mocks.NewMockStatisticsRepository(),
		objects:  &memoryObjects{objects: make(map[string][]byte)},
		tokens:   jwt.NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour, "sales-review-test"),
	}
	analyses := mocks.NewMockAnalysisRepository()
	evaluations := mocks.NewMockEvaluationRepository(s.meetings)
	failedCases := mocks.NewMockFailedCaseRepository(s.meetings)
	s.meetings.Analyses = analyses
	s.meetings.Evaluations = evaluations
	s.meetings.FailedCases = failedCases

	analyzer := analysis.NewService(unavailableModel{}, logger)
	authSvc := auth.NewService(s.users, s.sessions, s.tokens, auth.NewLoginLimiter(store, 5, 15*time.Minute), logger)
	statsSvc := statistics.NewService(s.stats, store, time.Minute, logger)
	meetingSvc := meeting.NewService(s.meetings, analyses, analyzer, statsSvc, logger)

	handlers := handler.Handlers{
		Auth:       handler.NewAuth(authSvc, false, logger),
		Meeting:    handler.NewMeetingHandler(meetingSvc, logger),
		Evaluation: handler.NewEvaluationHandler(evaluation.NewService(evaluations, meetingSvc, analyzer, logger), logger),
		FailedCase: handler.NewFailedCaseHandler(failedcase.NewService(failedCases, meetingSvc, statsSvc, logger), logger),
		Statistics: handler.NewStatisticsHandler(statsSvc, logger),
		User:       handler.NewUserHandler(user.NewService(s.users, s.sessions, logger), logger),
		Media:      handler.NewMediaHandler(media.NewService(s.objects, nil, logger), logger),
	}

	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	s.e = echo.New()
	handler.NewRouter(cfg, logger, authSvc, handlers).
		WithHealthCheck("cache", store.Ping).
		Setup(s.e)

	s.admin = s.addUser(t, "admin", entities.RoleAdmin)
	s.evaluator = s.addUser(t, "eva", entities.RoleEvaluator)
	s.salesperson = s.addUser(t, "sam", entities.RoleSalesperson)
	s.guest = s.addUser(t, "gus", entities.RoleGuest)
	return s
}

const testPassword = "correct-horse"

func (s *server) addUser(t *testing.T, username string, role entities.UserRole) *entities.User {
	t.Helper()
	hash, err := password.Hash(testPassword)
	require.NoError(t, err)
	u := entities.NewPasswordUser(username, strings.ToUpper(username[:1])+username[1:], hash, role)
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

func (s *server) token(t *testing.T, u *entities.User) string {
	t.Helper()
	tok, err := s.tokens.GenerateAccessToken(u.ID, *u.Username, string(u.Role))
	require.NoError(t, err)
	return tok
}

// do sends a JSON request, authenticated as as when non-nil
func (s *server) do(t *testing.T, as *entities.User, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if as != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(t, as))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// createMeeting logs a meeting owned by owner and returns its ID
func (s *server) createMeeting(t *testing.T, owner *entities.User) uuid.UUID {
	t.Helper()
	rec := s.do(t, owner, http.MethodPost, "/v1/meetings", map[string]interface{}{
		"project_name":    "Riverside Loft",
		"client_name":     "Ms. Lan",
		"meeting_stage":   "initial",
		"transcript_text": "We talked about an open kitchen and a budget of 800 million.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Meeting entities.Meeting `json:"meeting"`
	}
	decodeData(t, rec, &created)
	return created.Meeting.ID
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	env := decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}

func fullSheet(value int) map[string]int {
	scores := make(map[string]int, 20)
	for i := 1; i <= 20; i++ {
		scores["score"+strconv.Itoa(i)] = value
	}
	return scores
}
