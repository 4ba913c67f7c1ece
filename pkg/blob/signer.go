package blob

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// URLSigner produces and checks the HMAC signatures carried by the badger
// backend's signed URLs, standing in for the presigned URLs a cloud store
// would mint.
type URLSigner struct {
	secret []byte
}

func NewURLSigner(secret string) *URLSigner {
	return &URLSigner{secret: []byte(secret)}
}

func (s *URLSigner) Sign(container, key string, expiresAt int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s\n%s\n%d", container, key, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify rejects forged signatures and expired links.
func (s *URLSigner) Verify(container, key string, expiresAt int64, signature string) bool {
	if expiresAt < time.Now().Unix() {
		return false
	}
	expected := s.Sign(container, key, expiresAt)
	return hmac.Equal([]byte(expected), []byte(signature))
}
