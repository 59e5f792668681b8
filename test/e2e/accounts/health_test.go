package accounts_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, "", "")

	t.Run("livez", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status  string `json:"status"`
			Version string `json:"version"`
		}
		decodeInto(t, raw, &body)
		require.Equal(t, "ok", body.Status)
		require.Equal(t, "test", body.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status string `json:"status"`
			Checks struct {
				Database string `json:"database"`
				Signer   string `json:"signer"`
			} `json:"checks"`
		}
		decodeInto(t, raw, &body)
		require.Equal(t, "ok", body.Status)
		require.Equal(t, "ok", body.Checks.Database)
		require.Equal(t, "ok", body.Checks.Signer)
	})
}

func TestJWKSEndpoint(t *testing.T) {
	ts := newTestServer(t, "", "")

	resp, raw := ts.request(t, http.MethodGet, "/.well-known/jwks.json", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Keys []struct {
			Kty string `json:"kty"`
			Crv string `json:"crv"`
			Kid string `json:"kid"`
			Use string `json:"use"`
			X   string `json:"x"`
		} `json:"keys"`
	}
	decodeInto(t, raw, &body)
	require.Len(t, body.Keys, 1)
	require.Equal(t, "OKP", body.Keys[0].Kty)
	require.Equal(t, "Ed25519", body.Keys[0].Crv)
	require.Equal(t, "sig", body.Keys[0].Use)
	require.NotEmpty(t, body.Keys[0].Kid)
	require.NotEmpty(t, body.Keys[0].X)
}
