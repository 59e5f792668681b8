package accounts_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignUpAndSignInFlow(t *testing.T) {
	ts := newTestServer(t, "", "")

	signup := signUp(t, ts, "Alice", "Smith", "alice", "Str0ng!pass")
	require.NotEmpty(t, signup.AccessToken)
	require.Equal(t, "Alice", signup.Profile.FirstName)
	require.Equal(t, "I have not written my bio yet", signup.Profile.Bio)
	require.NotEmpty(t, signup.Profile.UserID)

	signin := signIn(t, ts, "alice", "Str0ng!pass")
	require.NotEmpty(t, signin.AccessToken)
	require.Equal(t, signup.Profile.ID, signin.Profile.ID)
}

func TestSignUpValidationErrors(t *testing.T) {
	ts := newTestServer(t, "", "")

	t.Run("weak password", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
			"firstName": "Alice",
			"lastName":  "Smith",
			"username":  "alice",
			"password":  "weak",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var e errorResponse
		decodeInto(t, raw, &e)
		require.Equal(t, http.StatusBadRequest, e.StatusCode)
		require.Contains(t, e.Message, "password is not strong enough")
	})

	t.Run("duplicate username", func(t *testing.T) {
		signUp(t, ts, "Bob", "Jones", "bobby", "Str0ng!pass")

		resp, raw := ts.request(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
			"firstName": "Bob",
			"lastName":  "Jones",
			"username":  "bobby",
			"password":  "Str0ng!pass",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var e errorResponse
		decodeInto(t, raw, &e)
		require.Contains(t, e.Message, "User with this username already exists")
	})
}

func TestSignInFailures(t *testing.T) {
	ts := newTestServer(t, "", "")
	signUp(t, ts, "Alice", "Smith", "alice", "Str0ng!pass")

	t.Run("unknown username reported at validation", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
			"username": "ghost",
			"password": "Str0ng!pass",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var e errorResponse
		decodeInto(t, raw, &e)
		require.Contains(t, e.Message, "User not found")
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
			"username": "alice",
			"password": "Wr0ng!pass1",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var e errorResponse
		decodeInto(t, raw, &e)
		require.Equal(t, "Invalid credentials", e.Message)
	})
}

func TestAuthRateLimit(t *testing.T) {
	ts := newTestServer(t, "", "")

	// StrictLimit allows 5 per minute per IP; the 6th must be rejected.
	var last int
	for range 6 {
		resp, _ := ts.request(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
			"username": "ghost",
			"password": "Str0ng!pass",
		})
		last = resp.StatusCode
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
