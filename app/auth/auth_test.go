package auth

import (
	"testing"

	"driftwood/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerGrantStore(t *testing.T) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewBadgerGrantStore(db)

	t.Run("ungranted capability", func(t *testing.T) {
		assert.False(t, store.HasCapability("guest-1", CapTrustedContributor))
	})

	t.Run("grant and query", func(t *testing.T) {
		require.NoError(t, store.Grant("guest-1", CapTrustedContributor))
		assert.True(t, store.HasCapability("guest-1", CapTrustedContributor))
		assert.False(t, store.HasCapability("guest-1", CapBypassCommentReview))
		assert.False(t, store.HasCapability("guest-2", CapTrustedContributor))
	})

	t.Run("grants live under the shared key prefix", func(t *testing.T) {
		err := db.View(func(txn *badger.Txn) error {
			key := repositories.GrantKeyPrefix + "guest-1:" + CapTrustedContributor
			_, err := txn.Get([]byte(key))
			return err
		})
		assert.NoError(t, err)
	})

	t.Run("revoke", func(t *testing.T) {
		require.NoError(t, store.Revoke("guest-1", CapTrustedContributor))
		assert.False(t, store.HasCapability("guest-1", CapTrustedContributor))

		// Revoking again is harmless.
		assert.NoError(t, store.Revoke("guest-1", CapTrustedContributor))
	})

	t.Run("empty identity never qualifies", func(t *testing.T) {
		require.NoError(t, store.Grant("", CapTrustedContributor))
		assert.False(t, store.HasCapability("", CapTrustedContributor))
	})
}

func TestStaticGrants(t *testing.T) {
	grants := StaticGrants{
		"guest-1": {CapTrustedContributor},
		"guest-2": {CapBypassCommentReview, CapBypassReviewReview},
	}

	assert.True(t, grants.HasCapability("guest-1", CapTrustedContributor))
	assert.False(t, grants.HasCapability("guest-1", CapBypassCommentReview))
	assert.True(t, grants.HasCapability("guest-2", CapBypassReviewReview))
	assert.False(t, grants.HasCapability("guest-3", CapTrustedContributor))
}
