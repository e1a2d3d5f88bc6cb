package repository

import (
	"context"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// HistoryRepository stores validation records in an insert-only table
type HistoryRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.ValidationHistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository instance
func NewHistoryRepository(db *gorm.DB, logger coreport.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Append inserts record and copies the assigned sequence back onto it
func (r *HistoryRepository) Append(ctx context.Context, record *entity.ValidationRecord) error {
	m := model.ValidationRecord{
		ID:            record.ID,
		TransactionID: record.TransactionID,
		FromStatus:    string(record.FromStatus),
		ToStatus:      string(record.ToStatus),
		Action:        string(record.Action),
		ActorID:       record.ActorID,
		ActorRole:     string(record.ActorRole),
		Comment:       record.Comment,
		CreatedAt:     record.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrHistoryCorrupted
		}
		r.logger.Error("Failed to append validation record", map[string]any{
			"transaction_id": record.TransactionID,
			"action":         record.Action,
			"error":          err.Error(),
		})
		return r.errorClassifier.Wrap(err, "append validation record")
	}

	record.Sequence = m.Seq
	return nil
}

// ListFor returns the records of a transaction in replay order
func (r *HistoryRepository) ListFor(ctx context.Context, transactionID string) ([]*entity.ValidationRecord, error) {
	var rows []model.ValidationRecord
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Error("Failed to list validation records", map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
		return nil, r.errorClassifier.Wrap(err, "list validation records")
	}

	records := make([]*entity.ValidationRecord, 0, len(rows))
	for _, m := range rows {
		records = append(records, &entity.ValidationRecord{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			FromStatus:    entity.ValidationStatus(m.FromStatus),
			ToStatus:      entity.ValidationStatus(m.ToStatus),
			Action:        entity.Action(m.Action),
			ActorID:       m.ActorID,
			ActorRole:     entity.Role(m.ActorRole),
			Comment:       m.Comment,
			CreatedAt:     m.CreatedAt,
			Sequence:      m.Seq,
		})
	}
	return records, nil
}
