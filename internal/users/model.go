package users

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/volt/internal/common"
	"github.com/dmitrijs2005/volt/internal/linefmt"
)

// User is one persisted account. UserName is the canonical spelling chosen
// at registration; lookups ignore case.
type User struct {
	UserName     string
	Email        string
	PasswordHash string
}

// key is the case-insensitive index key of a username.
func key(userName string) string {
	return strings.ToLower(strings.TrimSpace(userName))
}

// line encodes u as "name      |email     |hash|\n".
func (u *User) line() string {
	return linefmt.Pad(u.UserName) + linefmt.Delimiter +
		linefmt.Pad(u.Email) + linefmt.Delimiter +
		u.PasswordHash + linefmt.Delimiter + "\n"
}

// parseLine decodes one credential line. Lines with fewer than three fields
// or an empty username yield common.ErrMalformedRecord.
func parseLine(line string) (*User, error) {
	fields := linefmt.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: %d fields", common.ErrMalformedRecord, len(fields))
	}
	if fields[0] == "" {
		return nil, fmt.Errorf("%w: empty username", common.ErrMalformedRecord)
	}
	return &User{UserName: fields[0], Email: fields[1], PasswordHash: fields[2]}, nil
}
