package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"supermarket-checkout/pkg/model"
)

func TestDummyTokenDb_Alice(t *testing.T) {
	tokenDb := CreateFakeDummyTokenDb()
	sessionInfo, err := tokenDb.VerifyToken(context.Background(), "token-alice")
	assert.Equal(t, SessionInfo{CustomerId: "aec31fe6-04b5-4dbf-a024-b5f45db6f633"}, sessionInfo)
	assert.NoError(t, err)
}

func TestDummyTokenDb_Fail(t *testing.T) {
	tokenDb := CreateFakeDummyTokenDb()
	sessionInfo, err := tokenDb.VerifyToken(context.Background(), "token-will")
	assert.Equal(t, SessionInfo{}, sessionInfo)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestWithAuth_MissingToken(t *testing.T) {
	// Arrange
	s := NewServer(nil, CreateFakeDummyTokenDb(), &model.UuidBasketIdGenerator{}, "test-checkout", zerolog.Nop())
	handler := s.withAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))
	req := httptest.NewRequest(http.MethodGet, "/basket/some-id", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuth_UnknownToken(t *testing.T) {
	// Arrange
	s := NewServer(nil, CreateFakeDummyTokenDb(), &model.UuidBasketIdGenerator{}, "test-checkout", zerolog.Nop())
	handler := s.withAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))
	req := httptest.NewRequest(http.MethodGet, "/basket/some-id", nil)
	req.Header.Set("Authorization", "Bearer token-will")
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuth_ValidTokenSetsCustomerId(t *testing.T) {
	// Arrange
	s := NewServer(nil, CreateFakeDummyTokenDb(), &model.UuidBasketIdGenerator{}, "test-checkout", zerolog.Nop())
	var gotCustomerId model.CustomerId
	handler := s.withAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerId, ok := customerIdFrom(r.Context())
		assert.True(t, ok)
		gotCustomerId = customerId
	}))
	req := httptest.NewRequest(http.MethodGet, "/basket/some-id", nil)
	req.Header.Set("Authorization", "Bearer token-alice")
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.CustomerId("aec31fe6-04b5-4dbf-a024-b5f45db6f633"), gotCustomerId)
}
