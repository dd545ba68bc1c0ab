package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"olympia-api/internal/adapters/http/handlers"
	"olympia-api/internal/adapters/http/middleware"
	"olympia-api/internal/adapters/identity"
	"olympia-api/internal/adapters/persistence/memory"
	"olympia-api/internal/config"
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type RoutesTestSuite struct {
	suite.Suite
	app *fiber.App
	idp *identity.LocalProvider
}

func (s *RoutesTestSuite) SetupTest() {
	cfg := &config.Config{AppMode: "dev", Report: config.ReportConfig{Timezone: "Asia/Seoul"}}
	repos := memory.NewStore().Repositories()
	s.idp = identity.NewLocalProvider(identity.NewMemoryPrincipals(), identity.Options{
		Secret:     "routes-test-secret",
		BcryptCost: bcrypt.MinCost,
	})

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	auth := services.NewAuthService(s.idp, repos.Users)
	lookups := services.NewLookupService(repos.Lookups, nil)
	reports := services.NewReportService(repos, lookups, m)

	s.app = fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(s.app, cfg, &Services{
		Auth:          auth,
		Applications:  services.NewApplicationService(repos, auth, reports),
		Lookups:       lookups,
		Reports:       reports,
		BulkUpdates:   services.NewBulkUpdateService(repos, m),
		Users:         services.NewUserService(repos.Users, lookups, s.idp, m),
		Reset:         services.NewResetService(repos, s.idp, m),
		Announcements: services.NewAnnouncementService(repos.Announcements),
		CommonCodes:   services.NewCommonCodeService(repos.CommonCodes),
		DailyReport:   services.NewDailyReportService(repos, nil, cfg.Report.Location(), m),
		HealthChecks: map[string]handlers.HealthCheckFunc{
			"cache": func(context.Context) error { return nil },
		},
		Gatherer: reg,
	})
}

func (s *RoutesTestSuite) do(method, path, token string, body any) (int, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

// signUp registers an applicant and returns its uid and token
func (s *RoutesTestSuite) signUp(email string) (string, string) {
	status, env := s.do(http.MethodPost, "/api/v1/auth/signup", "", services.SignUpInput{
		Email: email, Password: "password1", Name: "테스트", Phone: "010-0000-0000",
	})
	s.Require().Equal(http.StatusCreated, status, env.Error)

	var auth services.AuthResponse
	s.Require().NoError(json.Unmarshal(env.Data, &auth))
	s.Require().NotEmpty(auth.Token)
	return auth.UID, auth.Token
}

func (s *RoutesTestSuite) TestHealthAndMetrics() {
	status, _ := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, status)
}

func (s *RoutesTestSuite) TestAuthenticationRequired() {
	status, env := s.do(http.MethodGet, "/api/v1/applications", "", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("인증이 필요합니다.", env.Error)

	status, env = s.do(http.MethodGet, "/api/v1/applications", "forged.token.value", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("토큰이 올바르지 않습니다.", env.Error)
}

func (s *RoutesTestSuite) TestLoginFailures() {
	s.signUp("kim@example.com")

	status, _ := s.do(http.MethodPost, "/api/v1/auth/login", "", services.LoginInput{Email: "kim@example.com", Password: "wrong-password"})
	s.Equal(http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", services.LoginInput{Email: "kim@example.com"})
	s.Equal(http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, "/api/v1/auth/signup", "", services.SignUpInput{
		Email: "kim@example.com", Password: "password1", Name: "중복", Phone: "010",
	})
	s.Equal(http.StatusConflict, status)
}

func (s *RoutesTestSuite) TestApplicantFlow() {
	_, token := s.signUp("owner@example.com")

	status, env := s.do(http.MethodPost, "/api/v1/applications", token, services.ApplicationInput{
		ChurchName: "은혜교회",
		Applicants: []services.ApplicantInput{{ApplicantName: "가", ExamType: "100"}},
	})
	s.Require().Equal(http.StatusCreated, status, env.Error)
	var detail struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &detail))

	status, _ = s.do(http.MethodGet, "/api/v1/applications/"+detail.ID, token, nil)
	s.Equal(http.StatusOK, status)

	status, env = s.do(http.MethodGet, "/api/v1/my-applications", token, nil)
	s.Equal(http.StatusOK, status)
	s.Contains(string(env.Data), `"applicantName":"가"`)

	_, otherToken := s.signUp("other@example.com")
	status, _ = s.do(http.MethodGet, "/api/v1/applications/"+detail.ID, otherToken, nil)
	s.Equal(http.StatusForbidden, status)

	status, _ = s.do(http.MethodGet, "/api/v1/applications/missing", token, nil)
	s.Equal(http.StatusNotFound, status)

	status, env = s.do(http.MethodGet, "/api/v1/lookup-options", token, nil)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("type_cd 필요", env.Error)
}

func (s *RoutesTestSuite) TestAdminRoutesRequireClaim() {
	uid, token := s.signUp("staff@example.com")

	status, env := s.do(http.MethodGet, "/api/v1/admin/applications", token, nil)
	s.Equal(http.StatusForbidden, status)
	s.Equal("관리자 권한이 필요합니다.", env.Error)

	status, env = s.do(http.MethodGet, "/api/v1/admin/check", token, nil)
	s.Equal(http.StatusOK, status)
	s.Contains(string(env.Data), `"admin":false`)

	// the stored claim is honoured before the token is refreshed
	s.Require().NoError(s.idp.SetAdminClaim(context.Background(), uid, true))

	status, env = s.do(http.MethodGet, "/api/v1/admin/applications", token, nil)
	s.Equal(http.StatusOK, status, env.Error)
	s.Contains(string(env.Data), `"items"`)

	status, env = s.do(http.MethodPost, "/api/v1/admin/bulk-update-examine-number", token, map[string]any{"updates": []any{}})
	s.Equal(http.StatusOK, status)
	s.Equal(services.NothingToApplyMessage, env.Message)

	status, _ = s.do(http.MethodPatch, "/api/v1/admin/applications", token, map[string]any{
		"updates": []map[string]any{{"applicationId": "missing", "churchName": "x"}},
	})
	s.Equal(http.StatusNotFound, status)
}

func (s *RoutesTestSuite) TestAdminAnnouncements() {
	uid, token := s.signUp("admin@example.com")
	s.Require().NoError(s.idp.SetAdminClaim(context.Background(), uid, true))

	status, env := s.do(http.MethodPost, "/api/v1/admin/announcements", token, map[string]string{"title": "접수 안내"})
	s.Require().Equal(http.StatusCreated, status, env.Error)

	status, env = s.do(http.MethodGet, "/api/v1/announcements", "", nil)
	s.Equal(http.StatusOK, status)
	s.Contains(string(env.Data), "접수 안내")

	status, _ = s.do(http.MethodPost, "/api/v1/admin/announcements", token, map[string]string{"content": "제목 없음"})
	s.Equal(http.StatusBadRequest, status)
}

func (s *RoutesTestSuite) TestCommonCodes() {
	uid, token := s.signUp("codes@example.com")

	status, _ := s.do(http.MethodPost, "/api/v1/admin/common-codes", token, map[string]any{"group": "region", "code": "A"})
	s.Equal(http.StatusForbidden, status)

	s.Require().NoError(s.idp.SetAdminClaim(context.Background(), uid, true))

	status, env := s.do(http.MethodPost, "/api/v1/admin/common-codes", token, map[string]any{"group": "region", "code": "B", "name": "부산", "order": 2})
	s.Require().Equal(http.StatusCreated, status, env.Error)
	var created struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &created))

	status, env = s.do(http.MethodPost, "/api/v1/admin/common-codes", token, map[string]any{"group": "region", "code": "A", "order": 1})
	s.Require().Equal(http.StatusCreated, status, env.Error)
	status, _ = s.do(http.MethodPost, "/api/v1/admin/common-codes", token, map[string]any{"group": "church", "code": "Z"})
	s.Require().Equal(http.StatusCreated, status)

	status, env = s.do(http.MethodGet, "/api/v1/common-codes?group=region", "", nil)
	s.Equal(http.StatusOK, status)
	var list struct {
		Items []struct {
			Code string `json:"code"`
		} `json:"items"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Require().Len(list.Items, 2)
	s.Equal("A", list.Items[0].Code)
	s.Equal("B", list.Items[1].Code)

	status, env = s.do(http.MethodPut, "/api/v1/admin/common-codes/"+created.ID, token, map[string]any{"name": "부산광역시"})
	s.Equal(http.StatusOK, status)
	s.Contains(string(env.Data), "부산광역시")

	status, _ = s.do(http.MethodPost, "/api/v1/admin/common-codes", token, map[string]any{"name": "코드 없음"})
	s.Equal(http.StatusBadRequest, status)

	status, _ = s.do(http.MethodDelete, "/api/v1/admin/common-codes/"+created.ID, token, nil)
	s.Equal(http.StatusOK, status)
	status, _ = s.do(http.MethodDelete, "/api/v1/admin/common-codes/"+created.ID, token, nil)
	s.Equal(http.StatusNotFound, status)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}

func TestHealthDegraded(t *testing.T) {
	app := fiber.New()
	h := handlers.NewHealthHandler(&config.Config{AppMode: "dev"}, map[string]handlers.HealthCheckFunc{
		"database": func(context.Context) error { return errors.New("down") },
	})
	app.Get("/health", h.HealthCheck)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
