package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepositoryOrdersByTimeThenSequence(t *testing.T) {
	manager := database.NewTestManager(t, logger.NewNoopLogger())
	repo := repository.NewHistoryRepository(manager.DB(), logger.NewNoopLogger())
	ctx := context.Background()

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	actor := entity.Actor{ID: "u-1", Role: entity.RoleSuperAdmin}
	comment := "ok"

	submit := entity.NewValidationRecord("r-1", "tx-h", entity.StatusDraft, entity.StatusSubmitted, entity.ActionSubmit, actor, nil, at)
	// same timestamp, inserted second
	raf := entity.NewValidationRecord("r-2", "tx-h", entity.StatusSubmitted, entity.StatusRAFValidated, entity.ActionValidateRAF, actor, &comment, at)
	other := entity.NewValidationRecord("r-3", "tx-other", entity.StatusDraft, entity.StatusSubmitted, entity.ActionSubmit, actor, nil, at)

	require.NoError(t, repo.Append(ctx, submit))
	require.NoError(t, repo.Append(ctx, raf))
	require.NoError(t, repo.Append(ctx, other))
	assert.Less(t, submit.Sequence, raf.Sequence)

	records, err := repo.ListFor(ctx, "tx-h")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r-1", records[0].ID)
	assert.Equal(t, "r-2", records[1].ID)
	require.NotNil(t, records[1].Comment)
	assert.Equal(t, "ok", *records[1].Comment)
	assert.Equal(t, entity.RoleSuperAdmin, records[1].ActorRole)

	status, err := entity.ReplayHistory(records)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRAFValidated, status)
}

func TestHistoryRecordsCannotBeRewritten(t *testing.T) {
	manager := database.NewTestManager(t, logger.NewNoopLogger())
	repo := repository.NewHistoryRepository(manager.DB(), logger.NewNoopLogger())
	ctx := context.Background()

	record := entity.NewValidationRecord("r-1", "tx-h", entity.StatusDraft, entity.StatusSubmitted,
		entity.ActionSubmit, entity.Actor{ID: "u-1", Role: entity.RoleComptable}, nil, time.Now().UTC())
	require.NoError(t, repo.Append(ctx, record))

	err := manager.DB().Exec("UPDATE validation_records SET to_status = 'locked' WHERE id = ?", "r-1").Error
	assert.Error(t, err)

	err = manager.DB().Exec("DELETE FROM validation_records WHERE id = ?", "r-1").Error
	assert.Error(t, err)

	records, err := repo.ListFor(ctx, "tx-h")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.StatusSubmitted, records[0].ToStatus)
}
