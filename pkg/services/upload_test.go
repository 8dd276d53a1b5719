package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsSignature(t *testing.T) {
	s := &UploadService{privateKey: "private_test_key", publicKey: "public_test_key"}

	creds := s.credentialsFor("tok-123", 1700000000)

	mac := hmac.New(sha1.New, []byte("private_test_key"))
	mac.Write([]byte("tok-123" + strconv.FormatInt(1700000000, 10)))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), creds.Signature)
	assert.Equal(t, "tok-123", creds.Token)
	assert.EqualValues(t, 1700000000, creds.Expire)
	assert.Equal(t, "public_test_key", creds.PublicKey)
}

func TestAuthenticationParametersFresh(t *testing.T) {
	s := &UploadService{privateKey: "k"}

	a := s.AuthenticationParameters()
	b := s.AuthenticationParameters()

	require.NotEmpty(t, a.Token)
	assert.NotEqual(t, a.Token, b.Token, "tokens are one-time")
	assert.Greater(t, a.Expire, time.Now().Unix(), "expiry lies in the future")
	assert.Len(t, a.Signature, sha1.Size*2)
}
