// Package identity is a thin client for the identity provider's admin API,
// used by the out-of-band grantadmin tool. The catalog service itself
// only reads the is_admin flag this package sets.
package identity

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	PageSize               = 100
	CurrentMetadataVersion = 1
)

var ErrIdentityNotFound = errors.New("identity not found")

// Metadata is the typed form of the provider's free-form user metadata.
// A nil field means "not set"; only set fields are sent on update, and the
// provider merges them into the stored metadata.
type Metadata struct {
	Version  int     `json:"metadata_version,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (m Metadata) Admin() bool {
	return m.IsAdmin != nil && *m.IsAdmin
}

type Identity struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Metadata Metadata `json:"user_metadata"`
}

type Directory interface {
	ListPage(ctx context.Context, page, perPage int) ([]Identity, error)
	UpdateMetadata(ctx context.Context, id string, md Metadata) (*Identity, error)
}

type Admin struct {
	dir Directory
}

func NewAdmin(dir Directory) *Admin {
	return &Admin{dir: dir}
}

// FindByEmail walks the directory a page at a time until an identity with a
// case-insensitively equal email turns up or the pages run out.
func (a *Admin) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrIdentityNotFound
	}

	for page := 1; ; page++ {
		identities, err := a.dir.ListPage(ctx, page, PageSize)
		if err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"page":  page,
			"count": len(identities),
		}).Debug("Scanned identity page")

		for i := range identities {
			if strings.EqualFold(identities[i].Email, email) {
				return &identities[i], nil
			}
		}

		if len(identities) < PageSize {
			return nil, ErrIdentityNotFound
		}
	}
}

func (a *Admin) GrantAdmin(ctx context.Context, id string) (*Identity, error) {
	isAdmin := true
	updated, err := a.dir.UpdateMetadata(ctx, id, Metadata{
		Version: CurrentMetadataVersion,
		IsAdmin: &isAdmin,
	})
	if err != nil {
		return nil, err
	}

	log.WithField("identity_id", id).Info("Admin flag granted")
	return updated, nil
}
