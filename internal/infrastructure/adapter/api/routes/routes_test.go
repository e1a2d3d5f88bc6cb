package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/authorization"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/workflow"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/metrics"
	timeprovider "github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
)

const (
	testSecret = "test-secret"
	testIssuer = "bookkeeping-test"
)

type APISuite struct {
	suite.Suite
	router *gin.Engine
	prom   *metrics.PrometheusMetrics
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func newRouter(rateLimiter *limiter.Limiter, prom *metrics.PrometheusMetrics) *gin.Engine {
	gin.SetMode(gin.TestMode)

	tp := timeprovider.NewRealTimeProvider()
	log := logger.NewNoopLogger()
	ids := idgen.NewUUIDGenerator()
	store := memory.NewStore()

	wf := workflow.NewWorkflowService(
		memory.NewUnitOfWork(store, tp, log),
		memory.NewLockRepository(tp),
		authorization.NewAuthority(),
		ids,
		tp,
		prom,
		log,
	)
	txs := transaction.NewTransactionUseCase(memory.NewTransactionRepository(store, tp), ids, tp, prom, log)

	return routes.NewRouter(routes.Handlers{
		Transactions: handler.NewTransactionHandler(txs, log),
		Workflow:     handler.NewWorkflowHandler(wf, log),
		Health:       handler.NewHealthHandler(nil, log),
	}, routes.Options{
		Auth:        config.AuthConfig{JWTSecret: testSecret, Issuer: testIssuer},
		RateLimiter: rateLimiter,
		HTTPMetrics: prom,
		Metrics:     prom.Handler(),
	}, log)
}

func (s *APISuite) SetupTest() {
	s.prom = metrics.NewPrometheusMetrics()
	s.router = newRouter(nil, s.prom)
}

func token(t require.TestingT, sub, role string) string {
	claims := middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(router http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) createDraft(bearer string) dto.TransactionResponse {
	w := do(s.router, http.MethodPost, "/transactions", bearer, map[string]any{
		"date":        "2024-03-15",
		"amount":      "980.00",
		"type":        "expense",
		"nature":      "honoraires",
		"description": "cabinet fees",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *APISuite) transition(id, bearer string, body map[string]any) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	w := do(s.router, http.MethodPost, "/transactions/"+id+"/transition", bearer, body)
	var errResp dto.ErrorResponse
	if w.Code != http.StatusOK {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	}
	return w, errResp
}

func (s *APISuite) TestUnauthenticated() {
	w := do(s.router, http.MethodGet, "/transactions", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	var resp dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("unauthenticated", resp.Error)
	s.NotEmpty(resp.RequestID)

	w = do(s.router, http.MethodGet, "/transactions", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestTokenWithUnknownRoleIsRejected() {
	w := do(s.router, http.MethodGet, "/transactions", token(s.T(), "u-1", "intern"), nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestWorkflowOverHTTP() {
	comptable := token(s.T(), "user-a", "comptable")
	raf := token(s.T(), "user-b", "raf")
	superAdmin := token(s.T(), "user-d", "super_admin")

	txn := s.createDraft(comptable)
	s.Equal("draft", txn.ValidationStatus)
	s.Equal("980.00", txn.Amount)
	s.Equal("user-a", txn.CreatedBy)

	w, _ := s.transition(txn.ID, comptable, map[string]any{"action": "submit"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var accepted dto.TransitionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &accepted))
	s.Equal("submitted", accepted.Status)
	s.Equal("draft", accepted.Record.FromStatus)
	s.Equal("submitted", accepted.Record.ToStatus)
	s.Equal("user-a", accepted.Record.ActorID)

	w, _ = s.transition(txn.ID, raf, map[string]any{"action": "validate_raf", "comment": "pièces vérifiées"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, errResp := s.transition(txn.ID, comptable, map[string]any{"action": "validate_dg"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("forbidden", errResp.Error)

	w, errResp = s.transition(txn.ID, superAdmin, map[string]any{"action": "validate_dg", "expectedStatus": "submitted"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("conflict", errResp.Error)

	w, _ = s.transition(txn.ID, superAdmin, map[string]any{"action": "reject"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, errResp = s.transition(txn.ID, superAdmin, map[string]any{"action": "lock"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("terminal_state", errResp.Error)

	w = do(s.router, http.MethodGet, "/transactions/"+txn.ID+"/history", raf, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var history dto.HistoryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &history))
	s.Require().Len(history.Records, 3)
	s.Equal("raf_validated", history.Records[2].FromStatus)
	s.Equal("rejected", history.Records[2].ToStatus)
	s.Require().NotNil(history.Records[1].Comment)
	s.Equal("pièces vérifiées", *history.Records[1].Comment)

	w = do(s.router, http.MethodGet, "/transactions/"+txn.ID+"/audit", raf, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var audit dto.AuditResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &audit))
	s.True(audit.Consistent)
	s.Equal("rejected", audit.ReplayedStatus)
	s.Equal(3, audit.RecordCount)
}

func (s *APISuite) TestTransitionUnknownTransaction() {
	w, errResp := s.transition("does-not-exist", token(s.T(), "user-d", "super_admin"), map[string]any{"action": "submit"})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("not_found", errResp.Error)
}

func (s *APISuite) TestTransitionInvalidBody() {
	comptable := token(s.T(), "user-a", "comptable")
	txn := s.createDraft(comptable)

	w, errResp := s.transition(txn.ID, comptable, map[string]any{"action": "approve"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_request", errResp.Error)

	w, _ = s.transition(txn.ID, comptable, map[string]any{"action": "submit", "expectedStatus": "archived"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestAllowedActions() {
	comptable := token(s.T(), "user-a", "comptable")
	admin := token(s.T(), "user-e", "admin")
	txn := s.createDraft(comptable)

	w, _ := s.transition(txn.ID, comptable, map[string]any{"action": "submit"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = do(s.router, http.MethodGet, "/transactions/"+txn.ID+"/allowed-actions", admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.AllowedActionsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("admin", resp.Role)
	s.Equal([]string{"validate_raf", "reject"}, resp.Actions)
}

func (s *APISuite) TestCreateValidationAndObserverRoles() {
	comptable := token(s.T(), "user-a", "comptable")

	w := do(s.router, http.MethodPost, "/transactions", comptable, map[string]any{
		"date":   "15/03/2024",
		"amount": "10",
		"type":   "expense",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = do(s.router, http.MethodPost, "/transactions", comptable, map[string]any{
		"date":   "2024-03-15",
		"amount": "10.001",
		"type":   "expense",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = do(s.router, http.MethodPost, "/transactions", token(s.T(), "aud-1", "auditeur"), map[string]any{
		"date":   "2024-03-15",
		"amount": "10",
		"type":   "income",
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APISuite) TestListGetAndDeleteDraft() {
	comptable := token(s.T(), "user-a", "comptable")
	first := s.createDraft(comptable)
	second := s.createDraft(comptable)

	w, _ := s.transition(second.ID, comptable, map[string]any{"action": "submit"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = do(s.router, http.MethodGet, "/transactions?status=submitted", comptable, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.TransactionListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list.Items, 1)
	s.Equal(second.ID, list.Items[0].ID)

	w = do(s.router, http.MethodGet, "/transactions?status=archived", comptable, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = do(s.router, http.MethodGet, "/transactions/"+first.ID, comptable, nil)
	s.Equal(http.StatusOK, w.Code)

	w = do(s.router, http.MethodDelete, "/transactions/"+second.ID, comptable, nil)
	s.Equal(http.StatusConflict, w.Code)

	w = do(s.router, http.MethodDelete, "/transactions/"+first.ID, comptable, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = do(s.router, http.MethodGet, "/transactions/"+first.ID, comptable, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestHealthAndMetrics() {
	w := do(s.router, http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)

	comptable := token(s.T(), "user-a", "comptable")
	txn := s.createDraft(comptable)
	w, _ = s.transition(txn.ID, comptable, map[string]any{"action": "submit"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = do(s.router, http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "bookkeeping_transitions_total")
	s.Contains(w.Body.String(), `path="/transactions/:id/transition"`)
}

func (s *APISuite) TestRequestIDIsPropagated() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal("req-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimitOnWrites(t *testing.T) {
	l, err := middleware.NewRateLimiter("1-M")
	require.NoError(t, err)
	router := newRouter(l, metrics.NewPrometheusMetrics())
	bearer := token(t, "user-a", "comptable")

	body := map[string]any{"date": "2024-03-15", "amount": "5", "type": "income"}
	first := do(router, http.MethodPost, "/transactions", bearer, body)
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := do(router, http.MethodPost, "/transactions", bearer, body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// reads are not limited
	read := do(router, http.MethodGet, "/transactions", bearer, nil)
	assert.Equal(t, http.StatusOK, read.Code)
}
