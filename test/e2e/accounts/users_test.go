package accounts_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type userListResponse struct {
	TotalItems int            `json:"totalItems"`
	Items      []userResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
}

func adminToken(t *testing.T, ts *testServer) string {
	t.Helper()
	return signIn(t, ts, "admin", "Adm1n!pass").AccessToken
}

func TestUserEndpointsRequireAdmin(t *testing.T) {
	ts := newTestServer(t, "admin", "Adm1n!pass")

	t.Run("no token is 401 with a bearer challenge", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodGet, "/v1/users", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodGet, "/v1/users", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("USER role is 403", func(t *testing.T) {
		user := signUp(t, ts, "Alice", "Smith", "alice", "Str0ng!pass")

		resp, raw := ts.request(t, http.MethodGet, "/v1/users", user.AccessToken, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		var e errorResponse
		decodeInto(t, raw, &e)
		require.Equal(t, "Forbidden resource", e.Message)
	})
}

func TestUserAdminCRUD(t *testing.T) {
	ts := newTestServer(t, "admin", "Adm1n!pass")
	token := adminToken(t, ts)

	var created userResponse

	t.Run("create", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/v1/users", token, map[string]string{
			"username": "worker",
			"password": "W0rker!pass",
			"role":     "USER",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "create failed: %s", raw)
		decodeInto(t, raw, &created)
		require.Equal(t, "worker", created.Username)
		require.Equal(t, "USER", created.Role)

		// The hash must not appear anywhere in the payload.
		require.NotContains(t, string(raw), "password")
		require.NotContains(t, string(raw), "argon2")
	})

	t.Run("get by id", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/v1/users/"+created.ID, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got userResponse
		decodeInto(t, raw, &got)
		require.Equal(t, created.ID, got.ID)
	})

	t.Run("get by username", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/v1/users/username/worker", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got userResponse
		decodeInto(t, raw, &got)
		require.Equal(t, created.ID, got.ID)
	})

	t.Run("patch role", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPatch, "/v1/users/"+created.ID, token, map[string]string{
			"role": "ADMIN",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, "patch failed: %s", raw)

		var got userResponse
		decodeInto(t, raw, &got)
		require.Equal(t, "ADMIN", got.Role)
		require.Equal(t, "worker", got.Username)
	})

	t.Run("patch validation", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPatch, "/v1/users/"+created.ID, token, map[string]string{
			"password": "weak",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var e errorResponse
		decodeInto(t, raw, &e)
		require.Contains(t, e.Message, "password is not strong enough")
	})

	t.Run("delete", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodDelete, "/v1/users/"+created.ID, token, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, raw := ts.request(t, http.MethodGet, "/v1/users/"+created.ID, token, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var e errorResponse
		decodeInto(t, raw, &e)
		require.Equal(t, "User not found", e.Message)
	})
}

func TestUserList(t *testing.T) {
	ts := newTestServer(t, "admin", "Adm1n!pass")
	token := adminToken(t, ts)

	for _, name := range []string{"carol", "alice", "bobby"} {
		resp, raw := ts.request(t, http.MethodPost, "/v1/users", token, map[string]string{
			"username": name,
			"password": "Str0ng!pass",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "seed failed: %s", raw)
	}

	list := func(t *testing.T, query string) userListResponse {
		t.Helper()
		resp, raw := ts.request(t, http.MethodGet, "/v1/users"+query, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "list failed: %s", raw)

		var out userListResponse
		decodeInto(t, raw, &out)
		return out
	}

	t.Run("defaults", func(t *testing.T) {
		out := list(t, "")
		require.Equal(t, 1, out.Page)
		require.Equal(t, 10, out.Size)
		require.Len(t, out.Items, 4) // admin + 3 seeded
		require.Equal(t, len(out.Items), out.TotalItems)
	})

	t.Run("sorted page window", func(t *testing.T) {
		out := list(t, "?sort=username:asc&page=1&size=2")
		require.Len(t, out.Items, 2)
		require.Equal(t, 2, out.TotalItems) // counts the page, not the table
		require.Equal(t, "admin", out.Items[0].Username)
		require.Equal(t, "alice", out.Items[1].Username)

		next := list(t, "?sort=username:asc&page=2&size=2")
		require.Equal(t, "bobby", next.Items[0].Username)
	})

	t.Run("filter by role", func(t *testing.T) {
		out := list(t, "?filter=role:eq:ADMIN")
		require.Len(t, out.Items, 1)
		require.Equal(t, "admin", out.Items[0].Username)
	})

	t.Run("filter like", func(t *testing.T) {
		out := list(t, "?filter=username:like:li")
		require.Len(t, out.Items, 1)
		require.Equal(t, "alice", out.Items[0].Username)
	})

	t.Run("bad filter grammar is 400", func(t *testing.T) {
		for _, q := range []string{
			"?filter=role:between:1,2",
			"?filter=secret:eq:x",
			"?filter=role:eq:bad%20value",
			"?sort=username:up",
			"?page=0",
		} {
			resp, raw := ts.request(t, http.MethodGet, "/v1/users"+q, token, nil)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %s: %s", q, raw)
		}
	})

	t.Run("page past the end", func(t *testing.T) {
		out := list(t, fmt.Sprintf("?page=%d&size=10", 99))
		require.Empty(t, out.Items)
		require.Zero(t, out.TotalItems)
	})
}
