// Package memory provides process-local persistence for development and tests.
// Status updates and history appends made inside a unit of work are staged and
// applied atomically at commit after re-checking every compare-and-set guard.
package memory

import (
	"sort"
	"sync"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
)

// Store holds transactions and the validation ledger
type Store struct {
	mu           sync.RWMutex
	transactions map[string]entity.Transaction
	records      []entity.ValidationRecord
	seq          int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		transactions: map[string]entity.Transaction{},
	}
}

func cloneTransaction(t entity.Transaction) *entity.Transaction {
	out := t
	out.DepartmentID = cloneString(t.DepartmentID)
	out.ProjectID = cloneString(t.ProjectID)
	out.AccountID = cloneString(t.AccountID)
	out.StakeholderID = cloneString(t.StakeholderID)
	out.AssociateID = cloneString(t.AssociateID)
	return &out
}

func cloneRecord(r entity.ValidationRecord) *entity.ValidationRecord {
	out := r
	out.Comment = cloneString(r.Comment)
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// sortRecords orders records by timestamp, ties broken by sequence
func sortRecords(records []*entity.ValidationRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].Sequence < records[j].Sequence
	})
}
