package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"

	"ChatKeep/pkg/config"
)

// UploadService issues short-lived signed parameters for direct
// client-to-storage uploads (ImageKit authentication scheme: hex
// HMAC-SHA1 over token+expire with the private key). It is stateless and
// never touches the data model.
type UploadService struct {
	endpoint   string
	publicKey  string
	privateKey string
}

// UploadCredentials is the response shape the upload widget consumes.
type UploadCredentials struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey,omitempty"`
	Endpoint  string `json:"urlEndpoint,omitempty"`
}

const uploadTokenTTL = 30 * time.Minute

func NewUploadService() *UploadService {
	return &UploadService{
		endpoint:   config.UploadEndpoint,
		publicKey:  config.UploadPublicKey,
		privateKey: config.UploadPrivateKey,
	}
}

// AuthenticationParameters returns fresh one-time upload credentials.
func (s *UploadService) AuthenticationParameters() UploadCredentials {
	return s.credentialsFor(uuid.NewString(), time.Now().Add(uploadTokenTTL).Unix())
}

func (s *UploadService) credentialsFor(token string, expire int64) UploadCredentials {
	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return UploadCredentials{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
		PublicKey: s.publicKey,
		Endpoint:  s.endpoint,
	}
}
