package blobstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrBadSignature = errors.New("invalid signature")
	ErrLinkExpired  = errors.New("download link expired")
)

// URLSigner mints and verifies expiring signatures for radiograph
// download links, so image URLs can be handed to the front end without
// re-running auth on the image fetch.
type URLSigner struct {
	key []byte
	now func() time.Time
}

func NewURLSigner(key []byte) *URLSigner {
	return &URLSigner{key: key, now: time.Now}
}

// Sign returns the expiry unix timestamp and signature for a blob ID.
// Callers append both as query parameters on the download URL.
func (s *URLSigner) Sign(blobID string, ttl time.Duration) (expires int64, sig string) {
	expires = s.now().Add(ttl).Unix()
	return expires, s.compute(blobID, expires)
}

// Verify checks the signature and expiry for a blob ID.
func (s *URLSigner) Verify(blobID string, expires int64, sig string) error {
	want := s.compute(blobID, expires)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrBadSignature
	}
	if s.now().Unix() > expires {
		return ErrLinkExpired
	}
	return nil
}

// VerifyParams is Verify with the expiry still in query-string form.
func (s *URLSigner) VerifyParams(blobID, expiresParam, sig string) error {
	expires, err := strconv.ParseInt(expiresParam, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	return s.Verify(blobID, expires, sig)
}

func (s *URLSigner) compute(blobID string, expires int64) string {
	mac := hmac.New(sha256.New, s.key)
	fmt.Fprintf(mac, "%s:%d", blobID, expires)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
