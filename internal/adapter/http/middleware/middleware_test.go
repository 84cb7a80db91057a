package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trades_marketplace/internal/adapter/http/handlers/mocks"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newCallerEcho(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(SessionAuth(auth))
	r.GET("/whoami", func(c *gin.Context) {
		caller := CallerFrom(c)
		if caller == nil {
			c.String(http.StatusOK, "guest")
			return
		}
		c.String(http.StatusOK, caller.UserID)
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no token continues as guest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockIAuthUseCase(ctrl)
		r := newCallerEcho(auth)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "guest", w.Body.String())
	})

	t.Run("bearer token resolves caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "tok-1").Return(&entities.Caller{UserID: "u-1", Role: entities.RoleCustomer}, nil)
		r := newCallerEcho(auth)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer tok-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-1", w.Body.String())
	})

	t.Run("cookie token resolves caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "tok-2").Return(&entities.Caller{UserID: "u-2"}, nil)
		r := newCallerEcho(auth)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-2"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "u-2", w.Body.String())
	})

	t.Run("invalid session is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "stale").Return(nil, usecase.ErrInvalidSession)
		r := newCallerEcho(auth)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer stale")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_SESSION")
	})

	t.Run("store failure is an internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(nil, errors.New("dynamo down"))
		r := newCallerEcho(auth)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "dynamo down")
	})
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/v1/job-requests/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/v1/job-requests/job-1", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "/v1/job-requests/:id", fields["route"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

type recordedObservation struct {
	method, route string
	status        int
}

type fakeObserver struct {
	got []recordedObservation
}

func (f *fakeObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	f.got = append(f.got, recordedObservation{method: method, route: route, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &fakeObserver{}

	r := gin.New()
	r.Use(Metrics(obs))
	r.POST("/v1/quotes/:id/accept", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/accept", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, obs.got, 2)
	assert.Equal(t, recordedObservation{method: http.MethodPost, route: "/v1/quotes/:id/accept", status: http.StatusOK}, obs.got[0])
	assert.Equal(t, "", obs.got[1].route)
	assert.Equal(t, http.StatusNotFound, obs.got[1].status)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"An internal error occurred"}`, w.Body.String())
	assert.Equal(t, 1, logs.Len())
}
