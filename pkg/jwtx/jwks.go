package jwtx

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
)

// JWK is the subset of RFC 7517 needed for Ed25519 verification keys.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	X   string `json:"x"` // base64url raw public key
}

// JWKS is a JSON Web Key Set for HTTP publishing.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewEd25519JWK wraps an Ed25519 public key as a signature-use JWK.
func NewEd25519JWK(kid, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: "OKP",
		Crv: "Ed25519",
		Kid: kid,
		Use: "sig",
		Alg: alg,
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

func parseEd25519JWK(j JWK) (ed25519.PublicKey, error) {
	if j.Kty != "OKP" || j.Crv != "Ed25519" {
		return nil, errors.New("jwtx: unsupported jwk type")
	}
	raw, err := base64.RawURLEncoding.DecodeString(j.X)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.New("jwtx: invalid ed25519 public key size")
	}
	return ed25519.PublicKey(raw), nil
}
