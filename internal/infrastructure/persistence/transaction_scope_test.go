package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("commits every write on success", func(t *testing.T) {
		db := newTestDB(t)
		ts := NewGormTransactionScope(db)

		err := ts.Execute(ctx, func(repos scope.Repositories) error {
			code, err := sequence.NextCode(ctx, repos.Sequences(), sequence.Asset)
			if err != nil {
				return err
			}
			return repos.Assets().Save(ctx, newTestAsset(t, code, "REF-00001"))
		})
		require.NoError(t, err)

		found, err := NewGormAssetRepository(db).FindByAssetID(ctx, "AST-00001")
		require.NoError(t, err)
		assert.Equal(t, "REF-00001", found.ReferenceID)
	})

	t.Run("rolls back writes and counter increments on error", func(t *testing.T) {
		db := newTestDB(t)
		ts := NewGormTransactionScope(db)
		boom := errors.New("detail check failed")

		err := ts.Execute(ctx, func(repos scope.Repositories) error {
			code, err := sequence.NextCode(ctx, repos.Sequences(), sequence.Asset)
			if err != nil {
				return err
			}
			if err := repos.Assets().Save(ctx, newTestAsset(t, code, "REF-00001")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewGormAssetRepository(db).FindByAssetID(ctx, "AST-00001")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		n, err := NewGormSequenceAllocator(db).NextValue(ctx, sequence.Asset.Counter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, "a failed request must not consume a number")
	})

	t.Run("read repositories outside a transaction", func(t *testing.T) {
		db := newTestDB(t)
		seedDirectory(t, db)

		ok, err := NewRepositories(db).Directory().VendorExists(ctx, "VEN-001")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
