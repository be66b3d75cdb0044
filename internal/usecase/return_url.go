package usecase

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const refName = "checkout_ref"

// ReturnURLs builds the success and failure URLs handed to the payment
// gateway. Each carries the outcome and a signed reference to the order, so a
// resumption can be matched against the pending booking it belongs to.
type ReturnURLs struct {
	base  string
	codec *securecookie.SecureCookie
}

func NewReturnURLs(appBaseURL, returnPath, key string, maxAge time.Duration) *ReturnURLs {
	codec := securecookie.New([]byte(key), nil)
	if maxAge > 0 {
		codec.MaxAge(int(maxAge.Seconds()))
	}

	return &ReturnURLs{
		base:  strings.TrimRight(appBaseURL, "/") + "/" + strings.TrimLeft(returnPath, "/"),
		codec: codec,
	}
}

func (r *ReturnURLs) Build(orderID string) (success, failure string, err error) {
	ref, err := r.codec.Encode(refName, orderID)
	if err != nil {
		return "", "", fmt.Errorf("sign return reference: %w", err)
	}

	return r.url("success", ref), r.url("failure", ref), nil
}

// Verify reports whether ref was signed by Build for orderID and has not expired.
func (r *ReturnURLs) Verify(ref, orderID string) bool {
	var decoded string
	if err := r.codec.Decode(refName, ref, &decoded); err != nil {
		return false
	}
	return decoded == orderID
}

func (r *ReturnURLs) url(status, ref string) string {
	q := url.Values{}
	q.Set("status", status)
	q.Set("ref", ref)
	return r.base + "?" + q.Encode()
}
