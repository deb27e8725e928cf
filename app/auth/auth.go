// Package auth holds the authorization port consulted by the moderation
// engine. Identity and session management live outside this application;
// all the engine ever asks is whether an opaque identity holds a named
// capability.
package auth

import (
	"fmt"

	"driftwood/app/repositories"

	"github.com/dgraph-io/badger/v4"
)

// Capability names understood by the moderation workflow.
const (
	CapTrustedContributor  = "trusted-contributor"
	CapBypassCommentReview = "bypass-approval:comment"
	CapBypassReviewReview  = "bypass-approval:review"
)

// AuthorizationPort answers capability queries for opaque identities.
type AuthorizationPort interface {
	HasCapability(identity, capability string) bool
}

// BadgerGrantStore persists capability grants in the content database.
type BadgerGrantStore struct {
	db *badger.DB
}

// NewBadgerGrantStore creates a grant store on db.
func NewBadgerGrantStore(db *badger.DB) *BadgerGrantStore {
	return &BadgerGrantStore{db: db}
}

func grantKey(identity, capability string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", repositories.GrantKeyPrefix, identity, capability))
}

// Grant records a capability for an identity.
func (s *BadgerGrantStore) Grant(identity, capability string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(grantKey(identity, capability), []byte("1"))
	})
}

// Revoke removes a capability grant; revoking an absent grant is a no-op.
func (s *BadgerGrantStore) Revoke(identity, capability string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(grantKey(identity, capability))
	})
}

// HasCapability reports whether identity holds capability. Store errors
// read as "no": a flaky lookup must never auto-approve content.
func (s *BadgerGrantStore) HasCapability(identity, capability string) bool {
	if identity == "" {
		return false
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(grantKey(identity, capability))
		return err
	})
	return err == nil
}

// StaticGrants is a fixed in-memory AuthorizationPort, used in tests.
type StaticGrants map[string][]string

// HasCapability reports whether identity holds capability.
func (g StaticGrants) HasCapability(identity, capability string) bool {
	for _, c := range g[identity] {
		if c == capability {
			return true
		}
	}
	return false
}
