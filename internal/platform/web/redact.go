package web

import (
	"errors"
	"net/url"
	"strings"
)

// secretParams are query parameters whose values never appear in errors.
var secretParams = []string{"apikey", "api_key", "key", "token", "access_token"}

// Redact returns rawURL with the values of credential query parameters
// replaced by "REDACTED". Unparseable input loses its whole query.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexByte(rawURL, '?'); i >= 0 {
			return rawURL[:i] + "?REDACTED"
		}
		return rawURL
	}
	if u.RawQuery == "" {
		return rawURL
	}
	q := u.Query()
	changed := false
	for name := range q {
		for _, secret := range secretParams {
			if strings.EqualFold(name, secret) {
				q.Set(name, "REDACTED")
				changed = true
			}
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// redactErr scrubs the URL carried by a transport error, which net/http
// includes in its message.
func redactErr(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = Redact(ue.URL)
	}
	return err
}
