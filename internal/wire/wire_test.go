package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleet-admin/internal/adaptor"
	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/response"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"
	"fleet-admin/pkg/websocket"

	"github.com/google/uuid"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRouterGuardsAdminRoutes(t *testing.T) {
	config := &utils.Config{App: utils.AppConfig{CORSOrigins: []string{"https://ops.example.com"}}}
	r := setupRouter(&adaptor.Handler{}, &repository.Repository{}, config, zap.NewNop())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, path := range []string{"/api/admin/bookings", "/api/admin/tracking", "/api/admin/vehicles/x/alerts"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/admin/bookings", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://ops.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

type sessionStub struct {
	repository.SessionRepository
	sessions map[string]*entity.Session
}

func (s *sessionStub) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	return s.sessions[token], nil
}

type userStub struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s *userStub) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

type trackingStub struct {
	usecase.TrackingService
}

func (trackingStub) Latest(context.Context) (*response.TrackingSnapshot, error) {
	return &response.TrackingSnapshot{
		GeneratedAt:   time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		Trips:         []response.TrackedTrip{},
		OnlineDrivers: []response.DriverSummary{},
	}, nil
}

func TestTrackingStreamAcceptsBrowserTokens(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	admin := &entity.User{Base: entity.NewBase(time.Now()), Email: "ops@fleet.test", Role: entity.RoleAdmin}
	token := uuid.NewString()
	repo := &repository.Repository{
		Session: &sessionStub{sessions: map[string]*entity.Session{
			token: {UserID: admin.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)},
		}},
		User: &userStub{users: map[uuid.UUID]*entity.User{admin.ID: admin}},
	}

	hub := websocket.NewHub(zap.NewNop())
	go hub.Run(ctx)

	handler := &adaptor.Handler{Tracking: adaptor.NewTrackingHandler(trackingStub{}, hub, zap.NewNop())}
	srv := httptest.NewServer(setupRouter(handler, repo, &utils.Config{}, zap.NewNop()))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/tracking/ws"

	readInitial := func(t *testing.T, conn *gws.Conn) {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(msg), `"generated_at":"2024-03-10T09:00:00Z"`)
	}

	t.Run("query parameter", func(t *testing.T) {
		conn, resp, err := gws.DefaultDialer.Dial(wsURL+"?access_token="+token, nil)
		require.NoError(t, err)
		defer conn.Close()
		assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
		readInitial(t, conn)
	})

	t.Run("subprotocol pair", func(t *testing.T) {
		dialer := gws.Dialer{Subprotocols: []string{"bearer", token}}
		conn, _, err := dialer.Dial(wsURL, nil)
		require.NoError(t, err)
		defer conn.Close()
		assert.Equal(t, "bearer", conn.Subprotocol())
		readInitial(t, conn)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, resp, err := gws.DefaultDialer.Dial(wsURL+"?access_token="+uuid.NewString(), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("plain requests still need the header", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/admin/tracking?access_token=" + token)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
