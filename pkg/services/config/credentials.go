package config

import (
	"context"
	"fmt"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const (
	DemoEmail    = "admin@example.com"
	DemoPassword = "admin123"
)

// Account is one credentials file entry.
type Account struct {
	User     domain.User
	Password string
}

type CredentialRegistry interface {
	GetUsers(ctx context.Context) ([]string, error)
	GetAccount(ctx context.Context, email string) (*Account, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewCredentialRegistry loads an ini file with one section per user:
//
//	[admin@example.com]
//	password = admin123
//	name     = Admin User
//	role     = admin
func NewCredentialRegistry(path string) (CredentialRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

// NewDemoRegistry holds only the demo administrator.
func NewDemoRegistry() CredentialRegistry {
	cfg := ini.Empty()
	section, _ := cfg.NewSection(DemoEmail)
	_, _ = section.NewKey("password", DemoPassword)
	_, _ = section.NewKey("name", "Admin User")
	_, _ = section.NewKey("role", string(domain.RoleAdmin))
	return &iniRegistry{cfg: cfg}
}

func (r *iniRegistry) GetUsers(_ context.Context) ([]string, error) {
	var users []string
	for _, section := range r.cfg.Sections() {
		if section.HasKey("password") {
			users = append(users, section.Name())
		}
	}
	return users, nil
}

func (r *iniRegistry) GetAccount(_ context.Context, email string) (*Account, error) {
	section, err := r.cfg.GetSection(email)
	if err != nil || !section.HasKey("password") {
		return nil, fmt.Errorf("user %s not found", email)
	}

	role := domain.Role(section.Key("role").MustString(string(domain.RoleViewer)))
	if role != domain.RoleAdmin && role != domain.RoleViewer {
		return nil, fmt.Errorf("user %s has unknown role %q", email, role)
	}

	return &Account{
		User: domain.User{
			Email: email,
			Name:  section.Key("name").MustString(email),
			Role:  role,
		},
		Password: section.Key("password").String(),
	}, nil
}
