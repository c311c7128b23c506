// package services defines the collaborator interfaces for talking to QQ Music
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/love-yuri/qq-music-api/internal/shared"
)

// Signer produces the signature appended to musics.fcg URLs.
type Signer interface {
	Sign(ctx context.Context, payload string) (string, error)
}

// Cipher encrypts request payloads and decrypts response bodies.
type Cipher interface {
	Encrypt(ctx context.Context, payload string) ([]byte, error)
	Decrypt(ctx context.Context, body []byte) (string, error)
}

// HTTPClient is the subset of [http.Client] used by the services.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credentials identify the QQ Music account requests are made for.
type Credentials struct {
	UIN    string // QQ number
	Cookie string // browser session cookie
}

// Require fails with [shared.ErrMissingCredentials] naming op when either field is empty.
func (c Credentials) Require(op string) error {
	if c.UIN == "" || c.Cookie == "" {
		return fmt.Errorf("%w: %s requires QQ uin and cookie", shared.ErrMissingCredentials, op)
	}
	return nil
}

// RequireUIN fails with [shared.ErrMissingCredentials] naming op when UIN is empty.
func (c Credentials) RequireUIN(op string) error {
	if c.UIN == "" {
		return fmt.Errorf("%w: %s requires QQ uin", shared.ErrMissingCredentials, op)
	}
	return nil
}
