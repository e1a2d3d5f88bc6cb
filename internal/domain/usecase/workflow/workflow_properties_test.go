package workflow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/authorization"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/workflow"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/repository"
	timeprovider "github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	comptable  = entity.Actor{ID: "user-a", Role: entity.RoleComptable}
	raf        = entity.Actor{ID: "user-b", Role: entity.RoleRAF}
	superAdmin = entity.Actor{ID: "user-d", Role: entity.RoleSuperAdmin}
	admin      = entity.Actor{ID: "user-e", Role: entity.RoleAdmin}
)

// passthroughLock grants every lease so concurrent calls reach the store guard
type passthroughLock struct{}

func (passthroughLock) AcquireLock(context.Context, string, time.Duration) (string, error) {
	return "passthrough", nil
}

func (passthroughLock) ReleaseLock(context.Context, string, string) error { return nil }

type harness struct {
	workflow     *workflow.Service
	transactions usecase.TransactionUseCase
}

func newHarness(t *testing.T, lock persistence.TransactionLockRepository) *harness {
	t.Helper()

	tp := timeprovider.NewRealTimeProvider()
	log := logger.NewNoopLogger()
	noop := metrics.NewNoopMetrics()
	ids := idgen.NewUUIDGenerator()
	store := memory.NewStore()

	if lock == nil {
		lock = memory.NewLockRepository(tp)
	}

	return &harness{
		workflow: workflow.NewWorkflowService(
			memory.NewUnitOfWork(store, tp, log),
			lock,
			authorization.NewAuthority(),
			ids,
			tp,
			noop,
			log,
		),
		transactions: transaction.NewTransactionUseCase(memory.NewTransactionRepository(store, tp), ids, tp, noop, log),
	}
}

// newSQLHarness runs the workflow through the GORM unit of work on a private sqlite database
func newSQLHarness(t *testing.T, lock persistence.TransactionLockRepository) *harness {
	t.Helper()

	tp := timeprovider.NewRealTimeProvider()
	log := logger.NewNoopLogger()
	noop := metrics.NewNoopMetrics()
	ids := idgen.NewUUIDGenerator()
	manager := database.NewTestManager(t, log)

	if lock == nil {
		lock = repository.NewTransactionLockRepository(manager.DB(), tp, log)
	}

	return &harness{
		workflow: workflow.NewWorkflowService(
			database.NewUnitOfWork(manager.DB(), log, tp),
			lock,
			authorization.NewAuthority(),
			ids,
			tp,
			noop,
			log,
		),
		transactions: transaction.NewTransactionUseCase(repository.NewTransactionRepository(manager.DB(), tp, log), ids, tp, noop, log),
	}
}

var backends = map[string]func(*testing.T, persistence.TransactionLockRepository) *harness{
	"memory": newHarness,
	"sql":    newSQLHarness,
}

func (h *harness) draft(t *testing.T) string {
	t.Helper()
	txn, err := h.transactions.Create(context.Background(), comptable, usecase.CreateTransactionRequest{
		Date:        "2024-03-15",
		Amount:      "1250.50",
		Type:        string(entity.TypeExpense),
		Nature:      "fournitures",
		Description: "office supplies",
	})
	require.NoError(t, err)
	require.Equal(t, entity.StatusDraft, txn.ValidationStatus)
	return txn.ID
}

func (h *harness) apply(id string, actor entity.Actor, action entity.Action) (*usecase.TransitionResult, error) {
	return h.workflow.Transition(context.Background(), usecase.TransitionRequest{
		TransactionID: id,
		Actor:         actor,
		Action:        action,
	})
}

func (h *harness) status(t *testing.T, id string) entity.ValidationStatus {
	t.Helper()
	txn, err := h.transactions.Get(context.Background(), id)
	require.NoError(t, err)
	return txn.ValidationStatus
}

func (h *harness) history(t *testing.T, id string) []*entity.ValidationRecord {
	t.Helper()
	records, err := h.workflow.History(context.Background(), id)
	require.NoError(t, err)
	return records
}

// driveTo moves a fresh draft to target along the happy path, rejecting when target is rejected
func (h *harness) driveTo(t *testing.T, target entity.ValidationStatus) string {
	t.Helper()
	id := h.draft(t)

	steps := []struct {
		actor  entity.Actor
		action entity.Action
		to     entity.ValidationStatus
	}{
		{comptable, entity.ActionSubmit, entity.StatusSubmitted},
		{raf, entity.ActionValidateRAF, entity.StatusRAFValidated},
		{superAdmin, entity.ActionValidateDG, entity.StatusDGValidated},
		{admin, entity.ActionLock, entity.StatusLocked},
	}

	if target == entity.StatusDraft {
		return id
	}
	if target == entity.StatusRejected {
		_, err := h.apply(id, comptable, entity.ActionSubmit)
		require.NoError(t, err)
		_, err = h.apply(id, raf, entity.ActionReject)
		require.NoError(t, err)
		return id
	}

	for _, step := range steps {
		_, err := h.apply(id, step.actor, step.action)
		require.NoError(t, err)
		if step.to == target {
			return id
		}
	}
	t.Fatalf("unreachable target %s", target)
	return ""
}

func TestExampleScenario(t *testing.T) {
	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			h := newBackend(t, nil)
			x := h.draft(t)

			res, err := h.apply(x, comptable, entity.ActionSubmit)
			require.NoError(t, err)
			assert.Equal(t, entity.StatusSubmitted, res.Status)
			require.Len(t, h.history(t, x), 1)
			assert.Equal(t, entity.StatusDraft, h.history(t, x)[0].FromStatus)
			assert.Equal(t, entity.StatusSubmitted, h.history(t, x)[0].ToStatus)

			res, err = h.apply(x, raf, entity.ActionValidateRAF)
			require.NoError(t, err)
			assert.Equal(t, entity.StatusRAFValidated, res.Status)
			assert.Len(t, h.history(t, x), 2)

			_, err = h.apply(x, entity.Actor{ID: "user-c", Role: entity.RoleComptable}, entity.ActionValidateDG)
			require.Error(t, err)
			assert.Equal(t, errs.KindForbidden, errs.Kind(err))
			assert.Equal(t, entity.StatusRAFValidated, h.status(t, x))
			assert.Len(t, h.history(t, x), 2)

			res, err = h.apply(x, superAdmin, entity.ActionReject)
			require.NoError(t, err)
			assert.Equal(t, entity.StatusRejected, res.Status)
			records := h.history(t, x)
			require.Len(t, records, 3)
			assert.Equal(t, entity.StatusRAFValidated, records[2].FromStatus)
			assert.Equal(t, entity.StatusRejected, records[2].ToStatus)
			assert.Equal(t, "user-d", records[2].ActorID)

			_, err = h.apply(x, superAdmin, entity.ActionLock)
			require.Error(t, err)
			assert.Equal(t, errs.KindTerminalState, errs.Kind(err))
			assert.Len(t, h.history(t, x), 3)
		})
	}
}

func TestLinearProgression(t *testing.T) {
	h := newHarness(t, nil)
	id := h.driveTo(t, entity.StatusLocked)

	assert.Equal(t, entity.StatusLocked, h.status(t, id))

	records := h.history(t, id)
	require.Len(t, records, 4)

	want := [][2]entity.ValidationStatus{
		{entity.StatusDraft, entity.StatusSubmitted},
		{entity.StatusSubmitted, entity.StatusRAFValidated},
		{entity.StatusRAFValidated, entity.StatusDGValidated},
		{entity.StatusDGValidated, entity.StatusLocked},
	}
	for i, edge := range want {
		assert.Equal(t, edge[0], records[i].FromStatus, "record %d", i)
		assert.Equal(t, edge[1], records[i].ToStatus, "record %d", i)
		assert.Equal(t, id, records[i].TransactionID)
	}
}

func TestTerminalAbsorption(t *testing.T) {
	for _, terminal := range []entity.ValidationStatus{entity.StatusLocked, entity.StatusRejected} {
		t.Run(string(terminal), func(t *testing.T) {
			h := newHarness(t, nil)
			id := h.driveTo(t, terminal)
			before := len(h.history(t, id))

			for _, role := range entity.AllRoles {
				for _, action := range entity.AllActions {
					_, err := h.apply(id, entity.Actor{ID: "user-x", Role: role}, action)
					require.Error(t, err, "%s %s", role, action)
					assert.Equal(t, errs.KindTerminalState, errs.Kind(err), "%s %s", role, action)
				}
			}

			assert.Equal(t, terminal, h.status(t, id))
			assert.Len(t, h.history(t, id), before)
		})
	}
}

func TestRejectionReachability(t *testing.T) {
	testCases := []struct {
		from     entity.ValidationStatus
		accepted bool
		kind     string
	}{
		{entity.StatusDraft, false, errs.KindForbidden},
		{entity.StatusSubmitted, true, ""},
		{entity.StatusRAFValidated, true, ""},
		{entity.StatusDGValidated, false, errs.KindForbidden},
		{entity.StatusLocked, false, errs.KindTerminalState},
		{entity.StatusRejected, false, errs.KindTerminalState},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from), func(t *testing.T) {
			h := newHarness(t, nil)
			id := h.driveTo(t, tc.from)

			res, err := h.apply(id, superAdmin, entity.ActionReject)
			if tc.accepted {
				require.NoError(t, err)
				assert.Equal(t, entity.StatusRejected, res.Status)
				assert.Equal(t, entity.StatusRejected, h.status(t, id))
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.kind, errs.Kind(err))
			assert.Equal(t, tc.from, h.status(t, id))
		})
	}
}

func TestAuthorizationGating(t *testing.T) {
	authority := authorization.NewAuthority()
	nonTerminal := []entity.ValidationStatus{
		entity.StatusDraft,
		entity.StatusSubmitted,
		entity.StatusRAFValidated,
		entity.StatusDGValidated,
	}

	for _, status := range nonTerminal {
		for _, role := range entity.AllRoles {
			for _, action := range entity.AllActions {
				if authority.Authorize(role, status, action) {
					continue
				}
				name := string(status) + "/" + string(role) + "/" + string(action)
				t.Run(name, func(t *testing.T) {
					h := newHarness(t, nil)
					id := h.driveTo(t, status)
					before := len(h.history(t, id))

					_, err := h.apply(id, entity.Actor{ID: "user-x", Role: role}, action)
					require.Error(t, err)
					assert.Equal(t, errs.KindForbidden, errs.Kind(err))
					assert.Equal(t, status, h.status(t, id))
					assert.Len(t, h.history(t, id), before)
				})
			}
		}
	}
}

func TestHistoryReplayMatchesStoredStatus(t *testing.T) {
	for _, status := range entity.AllStatuses {
		t.Run(string(status), func(t *testing.T) {
			h := newHarness(t, nil)
			id := h.driveTo(t, status)

			replayed, err := entity.ReplayHistory(h.history(t, id))
			require.NoError(t, err)
			assert.Equal(t, h.status(t, id), replayed)

			report, err := h.workflow.VerifyHistory(context.Background(), id)
			require.NoError(t, err)
			assert.True(t, report.Consistent, report.Problem)
			assert.Equal(t, status, report.StoredStatus)
			assert.Equal(t, status, report.ReplayedStatus)
		})
	}
}

func TestAllowedActionsFollowStoredStatus(t *testing.T) {
	h := newHarness(t, nil)
	id := h.driveTo(t, entity.StatusSubmitted)

	actions, err := h.workflow.AllowedActions(context.Background(), id, raf)
	require.NoError(t, err)
	assert.Equal(t, []entity.Action{entity.ActionValidateRAF, entity.ActionReject}, actions)

	actions, err = h.workflow.AllowedActions(context.Background(), id, comptable)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestUnknownTransactionIsNotFound(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.apply("missing", superAdmin, entity.ActionSubmit)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.Kind(err))

	_, err = h.workflow.History(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
}

func TestConcurrentTransitionsExclusive(t *testing.T) {
	locks := map[string]persistence.TransactionLockRepository{
		"lease":           nil,
		"compare_and_set": passthroughLock{},
	}

	for backendName, newBackend := range backends {
		for lockName, lock := range locks {
			t.Run(backendName+"/"+lockName, func(t *testing.T) {
				h := newBackend(t, lock)
				id := h.driveTo(t, entity.StatusSubmitted)
				expected := entity.StatusSubmitted

				const callers = 8
				var (
					wg        sync.WaitGroup
					mu        sync.Mutex
					accepted  int
					conflicts int
					start     = make(chan struct{})
				)

				for i := 0; i < callers; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						<-start
						_, err := h.workflow.Transition(context.Background(), usecase.TransitionRequest{
							TransactionID:  id,
							Actor:          raf,
							Action:         entity.ActionValidateRAF,
							ExpectedStatus: &expected,
						})

						mu.Lock()
						defer mu.Unlock()
						switch {
						case err == nil:
							accepted++
						case errs.Kind(err) == errs.KindConflict:
							conflicts++
						default:
							t.Errorf("unexpected error: %v", err)
						}
					}()
				}
				close(start)
				wg.Wait()

				assert.Equal(t, 1, accepted)
				assert.Equal(t, callers-1, conflicts)
				assert.Equal(t, entity.StatusRAFValidated, h.status(t, id))
				assert.Len(t, h.history(t, id), 2)
			})
		}
	}
}
