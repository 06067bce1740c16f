package api

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/fulldump/box"
)

var ErrUnauthorized = errors.New("unauthorized")

// Authenticate requires apiKey and apiSecret in the Api-Key and Api-Secret
// headers (X- prefixed names are accepted too). An empty apiKey disables it.
func Authenticate(apiKey, apiSecret string) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			if apiKey == "" {
				next(ctx)
				return
			}

			r := box.GetRequest(ctx)
			key := firstHeader(r.Header.Get("Api-Key"), r.Header.Get("X-Api-Key"))
			secret := firstHeader(r.Header.Get("Api-Secret"), r.Header.Get("X-Api-Secret"))

			if !equal(key, apiKey) || !equal(secret, apiSecret) {
				box.SetError(ctx, ErrUnauthorized)
				return
			}

			next(ctx)
		}
	}
}

func firstHeader(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
