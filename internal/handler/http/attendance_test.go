package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildhq/sitetrack-backend-go/internal/config"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/attendance"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/site"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/user"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/worker"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

// stubAttendanceService returns canned results so the tests exercise routing,
// auth middleware, and error mapping without a database.
type stubAttendanceService struct {
	submitResp  attendance.RequestResponse
	submitErr   error
	listResp    attendance.ListRequestsResponse
	listErr     error
	approveResp attendance.RequestResponse
	approveErr  error
	rejectResp  attendance.RequestResponse
	rejectErr   error
	manualResp  attendance.DailyAttendanceResponse
	manualErr   error
	dailyResp   attendance.DailyAttendanceResponse
	dailyErr    error
	rangeResp   []attendance.DailyAttendanceResponse
	rangeErr    error
}

func (s *stubAttendanceService) SubmitRequest(ctx context.Context, req attendance.SubmitRequest) (attendance.RequestResponse, error) {
	return s.submitResp, s.submitErr
}

func (s *stubAttendanceService) ListRequests(ctx context.Context, filter attendance.RequestFilter) (attendance.ListRequestsResponse, error) {
	return s.listResp, s.listErr
}

func (s *stubAttendanceService) Approve(ctx context.Context, requestID string) (attendance.RequestResponse, error) {
	return s.approveResp, s.approveErr
}

func (s *stubAttendanceService) Reject(ctx context.Context, requestID string) (attendance.RequestResponse, error) {
	return s.rejectResp, s.rejectErr
}

func (s *stubAttendanceService) MarkManual(ctx context.Context, req attendance.ManualMarkRequest) (attendance.DailyAttendanceResponse, error) {
	return s.manualResp, s.manualErr
}

func (s *stubAttendanceService) GetDaily(ctx context.Context, date string) (attendance.DailyAttendanceResponse, error) {
	return s.dailyResp, s.dailyErr
}

func (s *stubAttendanceService) ListDaily(ctx context.Context, filter attendance.DailyRangeFilter) ([]attendance.DailyAttendanceResponse, error) {
	return s.rangeResp, s.rangeErr
}

type stubSiteService struct{}

func (s *stubSiteService) GetSite(ctx context.Context) (site.SiteResponse, error) {
	return site.SiteResponse{ID: "site-1", Name: "Main Site"}, nil
}

func (s *stubSiteService) UpdateSite(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	return site.SiteResponse{ID: "site-1", Name: "Main Site"}, nil
}

type stubWorkerService struct{}

func (s *stubWorkerService) CreateWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	return worker.WorkerResponse{ID: "worker-1"}, nil
}

func (s *stubWorkerService) ListWorkers(ctx context.Context) (worker.ListWorkersResponse, error) {
	return worker.ListWorkersResponse{}, nil
}

func testRouter(svc attendance.Service) (*chi.Mux, jwt.Service) {
	cfg := &config.Config{
		App: config.AppConfig{
			Env:         "test",
			LogLevel:    "error",
			FrontendURL: "http://localhost:3000",
		},
	}
	jwtService := jwt.NewJWTService(testSecret, "1h")
	router := NewRouter(
		cfg,
		jwtService,
		NewAttendanceHandler(svc),
		NewSiteHandler(&stubSiteService{}),
		NewWorkerHandler(&stubWorkerService{}),
	)
	return router, jwtService
}

func bearerToken(t *testing.T, jwtService jwt.Service, userID string, role user.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(userID, "Test User", "test@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, router *chi.Mux, method, path, authz string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestSubmitRequiresToken(t *testing.T) {
	router, _ := testRouter(&stubAttendanceService{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests", "", map[string]interface{}{
		"latitude": 19.2, "longitude": 72.8,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsNonAccessTokens(t *testing.T) {
	router, _ := testRouter(&stubAttendanceService{})
	ja := jwtauth.New("HS256", []byte(testSecret), nil)

	_, refresh, err := ja.Encode(map[string]interface{}{
		"user_id": "worker-1", "role": "worker", "type": "refresh",
	})
	require.NoError(t, err)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests", "Bearer "+refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A verified access token still needs a well-formed actor.
	_, anonymous, err := ja.Encode(map[string]interface{}{
		"role": "worker", "type": "access",
	})
	require.NoError(t, err)
	rec = doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests", "Bearer "+anonymous, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitAsWorkerSucceeds(t *testing.T) {
	svc := &stubAttendanceService{
		submitResp: attendance.RequestResponse{ID: "req-1", Status: "pending", WithinZone: true},
	}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "worker-1", user.RoleWorker)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests", authz, map[string]interface{}{
		"latitude": 19.2136, "longitude": 72.8654,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, true, payload["success"])
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	router, jwtService := testRouter(&stubAttendanceService{})
	authz := bearerToken(t, jwtService, "worker-1", user.RoleWorker)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/requests", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authz)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRequestsRequiresReviewerRole(t *testing.T) {
	router, jwtService := testRouter(&stubAttendanceService{})
	authz := bearerToken(t, jwtService, "worker-1", user.RoleWorker)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/requests", authz, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListRequestsAsReviewer(t *testing.T) {
	svc := &stubAttendanceService{
		listResp: attendance.ListRequestsResponse{TotalCount: 1, Page: 1, Limit: 20, TotalPages: 1},
	}
	router, jwtService := testRouter(svc)

	for _, role := range []user.Role{user.RoleManager, user.RoleEngineer} {
		authz := bearerToken(t, jwtService, "reviewer-1", role)
		rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/requests?status=pending", authz, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}
}

func TestApproveOutsideZoneMapsToZoneViolation(t *testing.T) {
	svc := &stubAttendanceService{approveErr: attendance.ErrOutsideZone}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "manager-1", user.RoleManager)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests/req-1/approve", authz, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	payload := decodeResponse(t, rec)
	errDetail := payload["error"].(map[string]interface{})
	assert.Equal(t, "ZONE_VIOLATION", errDetail["code"])
}

func TestApproveAlreadyReviewedMapsToConflict(t *testing.T) {
	svc := &stubAttendanceService{approveErr: attendance.ErrAlreadyReviewed}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "manager-1", user.RoleManager)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests/req-1/approve", authz, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApproveUnknownRequestMapsToNotFound(t *testing.T) {
	svc := &stubAttendanceService{approveErr: attendance.ErrRequestNotFound}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "manager-1", user.RoleManager)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests/req-1/approve", authz, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApproveRequiresReviewerRole(t *testing.T) {
	router, jwtService := testRouter(&stubAttendanceService{})
	authz := bearerToken(t, jwtService, "worker-1", user.RoleWorker)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests/req-1/approve", authz, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRejectAsReviewer(t *testing.T) {
	svc := &stubAttendanceService{
		rejectResp: attendance.RequestResponse{ID: "req-1", Status: "rejected"},
	}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "engineer-1", user.RoleEngineer)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/requests/req-1/reject", authz, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMarkManualRequiresReviewerRole(t *testing.T) {
	router, jwtService := testRouter(&stubAttendanceService{})
	authz := bearerToken(t, jwtService, "worker-1", user.RoleWorker)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/daily/manual", authz, map[string]interface{}{
		"present_worker_ids": []string{"worker-1"},
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMarkManualAsEngineer(t *testing.T) {
	svc := &stubAttendanceService{
		manualResp: attendance.DailyAttendanceResponse{Date: "2025-03-14", TotalPresent: 2},
	}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "engineer-1", user.RoleEngineer)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance/daily/manual", authz, map[string]interface{}{
		"date":               "2025-03-14",
		"present_worker_ids": []string{"worker-1", "worker-2"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDailyUnknownDateMapsToNotFound(t *testing.T) {
	svc := &stubAttendanceService{dailyErr: attendance.ErrDailyNotFound}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "manager-1", user.RoleManager)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/daily/2025-01-01", authz, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreOutageMapsToServiceUnavailable(t *testing.T) {
	svc := &stubAttendanceService{dailyErr: attendance.ErrStoreUnavailable}
	router, jwtService := testRouter(svc)
	authz := bearerToken(t, jwtService, "manager-1", user.RoleManager)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/daily/2025-01-01", authz, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSiteUpdateRequiresManagerRole(t *testing.T) {
	router, jwtService := testRouter(&stubAttendanceService{})

	engineerAuthz := bearerToken(t, jwtService, "engineer-1", user.RoleEngineer)
	rec := doRequest(t, router, http.MethodPut, "/api/v1/site", engineerAuthz, map[string]interface{}{"radius_meters": 500})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	managerAuthz := bearerToken(t, jwtService, "manager-1", user.RoleManager)
	rec = doRequest(t, router, http.MethodPut, "/api/v1/site", managerAuthz, map[string]interface{}{"radius_meters": 500})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListWorkersAllowsReviewers(t *testing.T) {
	router, jwtService := testRouter(&stubAttendanceService{})

	// Both reviewer roles can fetch the list backing the manual-mark picker.
	for _, role := range []user.Role{user.RoleManager, user.RoleEngineer} {
		authz := bearerToken(t, jwtService, "reviewer-1", role)
		rec := doRequest(t, router, http.MethodGet, "/api/v1/workers", authz, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}

	workerAuthz := bearerToken(t, jwtService, "worker-1", user.RoleWorker)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/workers", workerAuthz, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateWorkerRequiresManagerRole(t *testing.T) {
	router, jwtService := testRouter(&stubAttendanceService{})
	body := map[string]interface{}{"full_name": "Asha Patil", "email": "asha@example.com"}

	engineerAuthz := bearerToken(t, jwtService, "engineer-1", user.RoleEngineer)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/workers", engineerAuthz, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	managerAuthz := bearerToken(t, jwtService, "manager-1", user.RoleManager)
	rec = doRequest(t, router, http.MethodPost, "/api/v1/workers", managerAuthz, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
