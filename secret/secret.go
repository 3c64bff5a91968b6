// Package secret contains secrets to use in the application.
//
// Its purpose is to easily deal with sensitive data, e.g. the database password,
// you want to keep from accidentally being exposed in logs, JSON, or error messages.
package secret

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
)

var ErrScan = errors.New("failed to scan secret")

const mask = "******"

func New(secret string) Secret {
	return Secret{secret: &secret}
}

// Secret prevents accidentally exposing
// any data you did not want to expose by masking it.
type Secret struct {
	// secret being a pointer does make it harder to access the value.
	// It is still possible by directly accessing the memory address.
	// See the example on how it would work.
	secret *string
}

var (
	_ fmt.Stringer   = Secret{}
	_ fmt.GoStringer = Secret{}
	_ slog.LogValuer = Secret{}
	_ driver.Valuer  = Secret{}
)

// Secret returns the actual value of the Secret.
func (s Secret) Secret() string {
	if s.secret == nil {
		return ""
	}

	return *s.secret
}

func (s Secret) String() string {
	return mask
}

func (s Secret) GoString() string {
	return mask
}

func (s Secret) LogValue() slog.Value {
	return slog.StringValue(mask)
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(mask) //nolint:wrapcheck // export the underlying error
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var des string
	if err := json.Unmarshal(data, &des); err != nil {
		return err //nolint:wrapcheck // export the underlying error
	}

	s.secret = &des

	return nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(mask), nil
}

// UnmarshalText is used by the configuration to decode secrets from files and the environment.
func (s *Secret) UnmarshalText(data []byte) error {
	text := string(data)
	s.secret = &text

	return nil
}

func (s *Secret) Scan(value any) error {
	var str string

	switch v := value.(type) {
	case nil:
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("%w: value is not a string but %T", ErrScan, value)
	}

	s.secret = &str

	return nil
}

func (s Secret) Value() (driver.Value, error) {
	return s.Secret(), nil
}
