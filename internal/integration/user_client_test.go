package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onlinetest_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientFor(url string) *UserClient {
	return NewUserClient(&config.UserServiceConfig{
		BaseURL: url,
		Timeout: 2 * time.Second,
	}, nil)
}

func TestLookupEmployeesForwardsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]UserSummary{
			{ID: 10, CompanyID: 1, Roles: []string{"EMPLOYEE"}, Email: "a@example.com", Name: "A"},
			{ID: 11, CompanyID: 1, Roles: []string{"EMPLOYEE"}, Email: "b@example.com", Name: "B"},
		})
	}))
	defer srv.Close()

	users, err := newClientFor(srv.URL).LookupEmployees(context.Background(), 1, "Bearer tok123")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, uint(10), users[0].ID)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "/api/v1/users/employees/company/me", gotPath)
}

func TestLookupEmployeesAcceptsRawToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]UserSummary{})
	}))
	defer srv.Close()

	_, err := newClientFor(srv.URL).LookupEmployees(context.Background(), 1, "tok123")
	require.NoError(t, err)
}

func TestLookupEmployeesSurfacesUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newClientFor(srv.URL).LookupEmployees(context.Background(), 1, "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLookupEmployeesRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newClientFor(srv.URL).LookupEmployees(context.Background(), 1, "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed roster")
}

func TestLookupEmployeesUnreachableService(t *testing.T) {
	client := newClientFor("http://127.0.0.1:1")
	_, err := client.LookupEmployees(context.Background(), 1, "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
