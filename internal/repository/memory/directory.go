package memory

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtroode/texcode-accounts/internal/model"
)

var _ model.CredentialDirectory = (*Directory)(nil)

// Directory is a fixed, read-only set of login principals.
type Directory struct {
	principals []model.Principal
}

// NewDirectory builds a directory from principals. Ids and usernames must be
// unique.
func NewDirectory(principals []model.Principal) (*Directory, error) {
	ids := make(map[int64]struct{}, len(principals))
	usernames := make(map[string]struct{}, len(principals))

	for _, p := range principals {
		if p.Username == "" {
			return nil, fmt.Errorf("principal %d has empty username", p.ID)
		}
		if _, dup := ids[p.ID]; dup {
			return nil, fmt.Errorf("duplicate principal id %d", p.ID)
		}
		if _, dup := usernames[p.Username]; dup {
			return nil, fmt.Errorf("duplicate principal username %q", p.Username)
		}
		ids[p.ID] = struct{}{}
		usernames[p.Username] = struct{}{}
	}

	sorted := append([]model.Principal(nil), principals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &Directory{principals: sorted}, nil
}

type principalFile struct {
	Principals []principalEntry `yaml:"principals"`
}

type principalEntry struct {
	ID                int64     `yaml:"id"`
	FirstName         string    `yaml:"first_name"`
	LastName          string    `yaml:"last_name"`
	Username          string    `yaml:"username"`
	Password          string    `yaml:"password"`
	Role              string    `yaml:"role"`
	CreatedAt         time.Time `yaml:"created_at"`
	VerificationToken string    `yaml:"verification_token"`
}

// LoadDirectory reads the bootstrap principal set from a YAML file.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read principals file: %w", err)
	}
	return ParseDirectory(data)
}

// ParseDirectory decodes a YAML principal set.
func ParseDirectory(data []byte) (*Directory, error) {
	var file principalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode principals: %w", err)
	}

	principals := make([]model.Principal, 0, len(file.Principals))
	for _, e := range file.Principals {
		principals = append(principals, model.Principal{
			ID:                e.ID,
			FirstName:         e.FirstName,
			LastName:          e.LastName,
			Username:          e.Username,
			Password:          e.Password,
			Role:              model.Role(e.Role),
			CreatedAt:         e.CreatedAt,
			VerificationToken: e.VerificationToken,
		})
	}

	return NewDirectory(principals)
}

// FindByCredentials returns the principal matching both username and
// password. A miss on either yields model.ErrNotFound.
func (d *Directory) FindByCredentials(_ context.Context, username, password string) (model.Principal, error) {
	for _, p := range d.principals {
		userOK := subtle.ConstantTimeCompare([]byte(p.Username), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(p.Password), []byte(password)) == 1
		if userOK && passOK {
			return p, nil
		}
	}
	return model.Principal{}, model.ErrNotFound
}

func (d *Directory) GetByID(_ context.Context, id int64) (model.Principal, error) {
	for _, p := range d.principals {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Principal{}, model.ErrNotFound
}

func (d *Directory) All(_ context.Context) ([]model.Principal, error) {
	return append([]model.Principal(nil), d.principals...), nil
}
