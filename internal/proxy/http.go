package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// UnknownHandleMarker is the substring the MPC backend puts in an error body
// when it has no record of a handle.
const UnknownHandleMarker = "unknown handle"

// maxBody bounds how much of a response is read.
const maxBody = 1 << 20

// HTTPClient is the JSON/HTTP MPC proxy client.
type HTTPClient struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for base with the given request timeout. A zero
// timeout means none.
func NewHTTP(base string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
	}
}

// Onboard posts the RSA public key and its signature to /onboard.
func (c *HTTPClient) Onboard(
	ctx context.Context,
	rsaPublicKeyB64 string,
	signatureB64 string,
) (domain.OnboardResponse, error) {
	var out domain.OnboardResponse
	in := domain.OnboardRequest{RSAPublicKey: rsaPublicKeyB64, UserSignature: signatureB64}
	if err := c.post(ctx, "/onboard", in, &out, false); err != nil {
		return domain.OnboardResponse{}, err
	}
	return out, nil
}

// EncryptToUser asks the MPC network to re-encrypt a handle under the user key.
func (c *HTTPClient) EncryptToUser(
	ctx context.Context,
	handleB64 string,
	chainID uint64,
	signatureB64 string,
) (domain.EncryptToUserResponse, error) {
	var out domain.EncryptToUserResponse
	in := domain.EncryptToUserRequest{Handle: handleB64, ChainID: chainID, UserSignature: signatureB64}
	if err := c.post(ctx, "/encrypt-to-user", in, &out, true); err != nil {
		return domain.EncryptToUserResponse{}, err
	}
	return out, nil
}

// post sends in as JSON and decodes the answer into out. handleLookup marks
// endpoints that resolve a balance handle and may report it unknown.
func (c *HTTPClient) post(ctx context.Context, path string, in, out any, handleLookup bool) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	log := logger.Log.WithFields(logrus.Fields{"component": "proxy", "path": path})
	start := time.Now()

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Warn("mpc proxy request failed")
		return fmt.Errorf("%w: post %s: %v", domain.ErrProxyUnreachable, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", domain.ErrProxyUnreachable, path, err)
	}
	log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(start)}).Debug("mpc proxy response")

	if err := classify(resp.StatusCode, body, handleLookup); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// classify maps a response to a domain error. On handle lookups the
// unknown-handle marker wins over the status code, since the backend reports
// it with varying statuses.
func classify(status int, body []byte, handleLookup bool) error {
	if handleLookup && strings.Contains(string(body), UnknownHandleMarker) {
		return fmt.Errorf("%w (HTTP %d)", domain.ErrUnknownHandle, status)
	}
	if status/100 != 2 {
		return &domain.HTTPError{Status: status, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

var _ domain.ProxyClient = (*HTTPClient)(nil)
