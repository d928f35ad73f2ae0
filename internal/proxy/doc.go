// Package proxy is the HTTP client for the MPC proxy.
//
// The proxy exposes two JSON endpoints: POST /onboard, which returns the
// user's AES key as two RSA-encrypted shares, and POST /encrypt-to-user, which
// re-encrypts a balance handle under that key. Transport failures wrap
// domain.ErrProxyUnreachable, bodies mentioning an unknown handle become
// domain.ErrUnknownHandle, and any other non-2xx status is a
// *domain.HTTPError. Requests are never retried.
package proxy
