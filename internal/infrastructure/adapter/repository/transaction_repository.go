package repository

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func entityToModel(t *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:               t.ID,
		Date:             t.Date,
		Amount:           t.Amount,
		Type:             string(t.Type),
		Nature:           t.Nature,
		Description:      t.Description,
		DepartmentID:     t.DepartmentID,
		ProjectID:        t.ProjectID,
		AccountID:        t.AccountID,
		StakeholderID:    t.StakeholderID,
		AssociateID:      t.AssociateID,
		CreatedBy:        t.CreatedBy,
		ValidationStatus: string(t.ValidationStatus),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:               m.ID,
		Date:             m.Date,
		Amount:           m.Amount,
		Type:             entity.TransactionType(m.Type),
		Nature:           m.Nature,
		Description:      m.Description,
		DepartmentID:     m.DepartmentID,
		ProjectID:        m.ProjectID,
		AccountID:        m.AccountID,
		StakeholderID:    m.StakeholderID,
		AssociateID:      m.AssociateID,
		CreatedBy:        m.CreatedBy,
		ValidationStatus: entity.ValidationStatus(m.ValidationStatus),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Get retrieves a transaction by its identifier
func (r *TransactionRepository) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	var m model.Transaction
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return nil, r.errorClassifier.Wrap(result.Error, "get transaction")
	}

	return modelToEntity(&m), nil
}

// Create saves a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) (string, error) {
	m := entityToModel(transaction)

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"transaction_id": transaction.ID,
			})
			return "", errs.NewDuplicateTransactionError(transaction.ID)
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": transaction.ID,
			"error":          err.Error(),
		})
		return "", r.errorClassifier.Wrap(err, "create transaction")
	}

	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": m.ID,
		"created_by":     m.CreatedBy,
	})
	return m.ID, nil
}

// UpdateStatus sets validation_status to next only while it still equals expected
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, expected, next entity.ValidationStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND validation_status = ?", id, string(expected)).
		Updates(map[string]any{
			"validation_status": string(next),
			"updated_at":        r.timeProvider.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to update transaction status", map[string]any{
			"transaction_id": id,
			"expected":       expected,
			"next":           next,
			"error":          result.Error.Error(),
		})
		return false, r.errorClassifier.Wrap(result.Error, "update status")
	}

	if result.RowsAffected == 0 {
		r.logger.Debug("Status guard did not match", map[string]any{
			"transaction_id": id,
			"expected":       expected,
		})
		return false, nil
	}

	return true, nil
}

// List returns transactions matching filter, newest first
func (r *TransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{})

	if filter.Status != nil {
		query = query.Where("validation_status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []model.Transaction
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		r.logger.Error("Failed to list transactions", map[string]any{"error": err.Error()})
		return nil, r.errorClassifier.Wrap(err, "list transactions")
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, modelToEntity(&rows[i]))
	}
	return transactions, nil
}

// DeleteDraft removes a transaction only while it is still a draft
func (r *TransactionRepository) DeleteDraft(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND validation_status = ?", id, string(entity.StatusDraft)).
		Delete(&model.Transaction{})

	if result.Error != nil {
		r.logger.Error("Failed to delete draft", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return false, r.errorClassifier.Wrap(result.Error, "delete draft")
	}

	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, r.errorClassifier.Wrap(err, "delete draft")
	}
	if count == 0 {
		return false, errs.ErrTransactionNotFound
	}
	return false, nil
}
