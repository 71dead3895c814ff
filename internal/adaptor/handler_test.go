package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"field validation", &usecase.ValidationError{Fields: map[string]string{"fare_amount": "must be a number"}}, http.StatusBadRequest},
		{"plain validation", fmt.Errorf("bad input: %w", usecase.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("booking x: %w", usecase.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("stale: %w", usecase.ErrConflict), http.StatusConflict},
		{"invalid state", fmt.Errorf("completed booking: %w", usecase.ErrInvalidState), http.StatusUnprocessableEntity},
		{"unauthorized", fmt.Errorf("login: %w", usecase.ErrUnauthorized), http.StatusUnauthorized},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(zap.NewNop(), rec, tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Status)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, env.Message, "connection reset")
			}
		})
	}

	t.Run("field map is returned", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleServiceError(zap.NewNop(), rec, &usecase.ValidationError{Fields: map[string]string{"reason": "is required"}}, "test")
		assert.Equal(t, "is required", decodeEnvelope(t, rec).Errors["reason"])
	})
}

type stubBookingService struct {
	usecase.BookingService
	lastID   string
	lastFare *request.UpdateFareRequest
	err      error
}

func (s *stubBookingService) UpdateFare(_ context.Context, id string, req *request.UpdateFareRequest) (*response.BookingResponse, error) {
	s.lastID, s.lastFare = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &response.BookingResponse{ID: id}, nil
}

func TestUpdateFareRoute(t *testing.T) {
	svc := &stubBookingService{}
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Put("/bookings/{id}/fare", h.UpdateFare)

	t.Run("path id and body reach the service", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/bookings/abc/fare", strings.NewReader(`{"fare_amount":"120.50","version":3}`))
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc", svc.lastID)
		assert.Equal(t, "120.50", svc.lastFare.FareAmount)
		assert.Equal(t, 3, *svc.lastFare.Version)
	})

	t.Run("malformed body never reaches the service", func(t *testing.T) {
		svc.lastFare = nil
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/bookings/abc/fare", strings.NewReader(`{"fare_amount":`))
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.lastFare)
	})

	t.Run("stale version maps to conflict", func(t *testing.T) {
		svc.err = fmt.Errorf("booking: %w", usecase.ErrConflict)
		defer func() { svc.err = nil }()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/bookings/abc/fare", strings.NewReader(`{"fare_amount":"1"}`))
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

type stubDriverService struct {
	usecase.DriverService
	created  *request.CreateDriverRequest
	contents map[string]string
	decided  *request.KYCDecisionRequest
}

func (s *stubDriverService) CreateDriver(_ context.Context, req *request.CreateDriverRequest) (*response.CreateDriverResponse, error) {
	s.created = req
	s.contents = map[string]string{}
	for name, f := range req.Documents {
		b, _ := io.ReadAll(f.Content)
		s.contents[name] = string(b)
	}
	return &response.CreateDriverResponse{Warnings: []string{}}, nil
}

func (s *stubDriverService) RejectKYC(_ context.Context, _ string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error) {
	s.decided = req
	return &response.DriverDocumentsResponse{}, nil
}

func TestCreateDriverMultipart(t *testing.T) {
	svc := &stubDriverService{}
	h := NewDriverHandler(svc, 1<<20, zap.NewNop())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("phone", "+919800000000"))
	require.NoError(t, mw.WriteField("otp", "123456"))
	require.NoError(t, mw.WriteField("full_name", "Asha Rao"))
	require.NoError(t, mw.WriteField("license_number", "KA01 2020"))
	part, err := mw.CreateFormFile("id_proof", "aadhaar.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("pdf-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/drivers", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.CreateDriver(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "+919800000000", svc.created.Phone)
	assert.Nil(t, svc.created.Email)
	assert.Nil(t, svc.created.ProfilePicture)
	require.Contains(t, svc.created.Documents, "id_proof")
	assert.Equal(t, "aadhaar.pdf", svc.created.Documents["id_proof"].Name)
	assert.Equal(t, "pdf-bytes", svc.contents["id_proof"])
	assert.NotContains(t, svc.created.Documents, "driving_license")
}

func TestCreateDriverRejectsOversizedUpload(t *testing.T) {
	svc := &stubDriverService{}
	h := NewDriverHandler(svc, 1<<10, zap.NewNop())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("profile_picture", "big.jpg")
	require.NoError(t, err)
	_, _ = part.Write(bytes.Repeat([]byte("x"), 4<<10))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/drivers", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.CreateDriver(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.created)
}

func TestKYCDecisionAcceptsEmptyBody(t *testing.T) {
	svc := &stubDriverService{}
	h := NewDriverHandler(svc, 1<<20, zap.NewNop())
	r := chi.NewRouter()
	r.Put("/documents/{id}/reject", h.RejectKYC)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/documents/d1/reject", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.decided.Reason)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/documents/d1/reject", strings.NewReader(`{"reason":"blurry scan"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blurry scan", *svc.decided.Reason)
}

type stubAuthService struct {
	usecase.AuthService
	loggedOut string
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = token
	return nil
}

func TestLogoutUsesSessionToken(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req = req.WithContext(utils.SetTokenContext(req.Context(), "tok-1"))
	rec = httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-1", svc.loggedOut)
}
