package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ordermgmt/internal/errors"
	"ordermgmt/internal/testutil"
)

func TestPostgresOrderRepository_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) orderStore {
		return NewPostgresOrderRepository(testutil.SetupPostgres(t))
	})
}

func TestPostgresOrderRepository_MalformedIDIsTagged(t *testing.T) {
	repo := NewPostgresOrderRepository(testutil.SetupPostgres(t))

	_, err := repo.FindByID(context.Background(), "not-a-uuid")

	se, ok := apperrors.IsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.StorageInvalidIdentifier, se.Kind)
}
