package workflow

import (
	"time"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/authorization"
)

// DefaultLockTimeout bounds how long a transition may hold the per-transaction lock
const DefaultLockTimeout = 5 * time.Second

// Service is the validation state machine. Every transition runs under a
// per-transaction lock and inside a unit of work so the status update and the
// history append commit together or not at all.
type Service struct {
	uow          persistence.UnitOfWork
	lockRepo     persistence.TransactionLockRepository
	authority    *authorization.Authority
	validator    *TransitionValidator
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	metrics      coreport.Metrics
	logger       coreport.Logger
	lockTimeout  time.Duration
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(
	uow persistence.UnitOfWork,
	lockRepo persistence.TransactionLockRepository,
	authority *authorization.Authority,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	metrics coreport.Metrics,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		lockRepo:     lockRepo,
		authority:    authority,
		validator:    NewTransitionValidator(),
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
		lockTimeout:  DefaultLockTimeout,
	}
}

// WithLockTimeout sets how long the per-transaction lock is held at most
func (s *Service) WithLockTimeout(timeout time.Duration) *Service {
	if timeout > 0 {
		s.lockTimeout = timeout
	}
	return s
}
