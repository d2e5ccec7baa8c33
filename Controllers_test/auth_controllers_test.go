package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, s *testServer, password string) (int, string) {
	t.Helper()
	w, env := s.public(http.MethodPost, "/auth/login", map[string]string{"username": adminUser, "password": password})
	if w.Code != http.StatusOK {
		return w.Code, ""
	}
	var out struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &out)
	return w.Code, out.Token
}

func TestLoginAndBearerAccess(t *testing.T) {
	s := newTestServer(t)

	code, _ := login(t, s, "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, token := login(t, s, adminPassword)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, token)

	bearer := map[string]string{"Authorization": "Bearer " + token}
	payload := map[string]interface{}{"table_number": 42, "capacity": 2}
	w, _ := s.request(http.MethodPost, "/tables", payload, bearer)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = s.request(http.MethodPost, "/auth/logout", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload["table_number"] = 43
	w, _ = s.request(http.MethodPost, "/tables", payload, bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWrongBasicCredentials(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.request(http.MethodPost, "/tables", map[string]interface{}{"table_number": 1, "capacity": 2},
		map[string]string{"Authorization": "Basic YWRtaW46bm9wZQ=="})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIndexAndPing(t *testing.T) {
	s := newTestServer(t)

	w, env := s.public(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Restaurant Management API", env.Message)

	w, _ = s.public(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
