// Package directory loads the user and role tables. Both are read once at
// startup and are immutable afterwards.
package directory

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

//go:embed data/users.json data/roles.json
var seed embed.FS

type usersFile struct {
	Users []domain.User `json:"users"`
}

type roleEntry struct {
	Permissions []string `json:"permissions"`
}

// Users is an in-memory ports.UserRepository.
type Users struct {
	byName map[string]domain.User
}

// LoadUsers reads the user table from path, or the embedded seed when path
// is empty.
func LoadUsers(path string) (*Users, error) {
	raw, err := read(path, "data/users.json")
	if err != nil {
		return nil, err
	}

	var f usersFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	u := &Users{byName: make(map[string]domain.User, len(f.Users))}
	for _, user := range f.Users {
		if user.Username == "" {
			return nil, fmt.Errorf("decode users: entry without username")
		}
		if _, dup := u.byName[user.Username]; dup {
			return nil, fmt.Errorf("decode users: duplicate username %q", user.Username)
		}
		u.byName[user.Username] = user
	}
	return u, nil
}

func (u *Users) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := u.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (u *Users) Len() int { return len(u.byName) }

// LoadRoles reads the role table from path, or the embedded seed when path
// is empty.
func LoadRoles(path string) (domain.RoleTable, error) {
	raw, err := read(path, "data/roles.json")
	if err != nil {
		return nil, err
	}

	var entries map[string]roleEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	grants := make(map[string][]string, len(entries))
	for role, e := range entries {
		grants[role] = e.Permissions
	}
	return domain.NewRoleTable(grants), nil
}

func read(path, embedded string) ([]byte, error) {
	if path == "" {
		return seed.ReadFile(embedded)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
