// internal/adapters/session/codec.go
package session

import (
	"encoding/json"
	"fmt"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// encodeUser serializes the profile stored under domain.KeyUser
func encodeUser(u domain.User) (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("marshal error: %w", err)
	}
	return string(data), nil
}

// decodeUser parses a stored profile. A corrupt value yields the zero user
// and an error the caller may log; the token stays usable.
func decodeUser(raw string) (domain.User, error) {
	var u domain.User
	if raw == "" {
		return u, nil
	}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal error: %w", err)
	}
	return u, nil
}
