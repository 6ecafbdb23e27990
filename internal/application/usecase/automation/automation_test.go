// Package automation contains the automatic transaction generation engine.
package automation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// In-memory fakes shared by the tests in this package.

var errStoreDown = errors.New("store unavailable")

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules map[uuid.UUID]*entity.RecurringSchedule
	failList  bool
	advances  int
}

func newFakeScheduleRepo(schedules ...*entity.RecurringSchedule) *fakeScheduleRepo {
	r := &fakeScheduleRepo{schedules: make(map[uuid.UUID]*entity.RecurringSchedule)}
	for _, s := range schedules {
		r.schedules[s.ID] = s
	}
	return r
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *entity.RecurringSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[s.ID] = s
	return nil
}

func (r *fakeScheduleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[id]
	if !ok {
		return nil, domainerror.ErrScheduleNotFound
	}
	return s, nil
}

func (r *fakeScheduleRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	return r.FindActiveByUser(ctx, userID)
}

func (r *fakeScheduleRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errStoreDown
	}
	var out []*entity.RecurringSchedule
	for _, s := range r.schedules {
		if s.UserID == userID && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, s *entity.RecurringSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[s.ID] = s
	return nil
}

func (r *fakeScheduleRepo) ApplyAdvance(_ context.Context, id uuid.UUID, patch adapter.RecurringSchedulePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[id]
	if !ok {
		return domainerror.ErrScheduleNotFound
	}
	s.NextDueDate = patch.NextDueDate
	s.Active = patch.Active
	r.advances++
	return nil
}

func (r *fakeScheduleRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[id]
	if !ok {
		return domainerror.ErrScheduleNotFound
	}
	s.Active = false
	return nil
}

func (r *fakeScheduleRepo) ListUserIDsWithActive(_ context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, s := range r.schedules {
		if s.Active && !seen[s.UserID] {
			seen[s.UserID] = true
			out = append(out, s.UserID)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	mu       sync.Mutex
	plans    map[uuid.UUID]*entity.InstallmentPlan
	failList bool
}

func newFakePlanRepo(plans ...*entity.InstallmentPlan) *fakePlanRepo {
	r := &fakePlanRepo{plans: make(map[uuid.UUID]*entity.InstallmentPlan)}
	for _, p := range plans {
		r.plans[p.ID] = p
	}
	return r
}

func (r *fakePlanRepo) Create(_ context.Context, p *entity.InstallmentPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.InstallmentPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, domainerror.ErrInstallmentPlanNotFound
	}
	return p, nil
}

func (r *fakePlanRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InstallmentPlan, error) {
	return r.FindActiveByUser(ctx, userID)
}

func (r *fakePlanRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.InstallmentPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errStoreDown
	}
	var out []*entity.InstallmentPlan
	for _, p := range r.plans {
		if p.UserID == userID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) ApplyAdvance(_ context.Context, id uuid.UUID, patch adapter.InstallmentPlanPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return domainerror.ErrInstallmentPlanNotFound
	}
	p.CompletedInstallments = patch.CompletedInstallments
	p.Active = patch.Active
	return nil
}

func (r *fakePlanRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return domainerror.ErrInstallmentPlanNotFound
	}
	p.Active = false
	return nil
}

func (r *fakePlanRepo) ListUserIDsWithActive(_ context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

// fakeTransactionRepo enforces the generated-entry uniqueness contract the
// way the real store's unique indexes do.
type fakeTransactionRepo struct {
	mu            sync.Mutex
	transactions  []*entity.Transaction
	failInsertFor map[uuid.UUID]bool // parent IDs whose inserts fail
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{failInsertFor: make(map[uuid.UUID]bool)}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, t)
	return nil
}

func (r *fakeTransactionRepo) Insert(_ context.Context, t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ParentTransactionID != nil && r.failInsertFor[*t.ParentTransactionID] {
		return errStoreDown
	}
	for _, existing := range r.transactions {
		if existing.ParentTransactionID == nil || t.ParentTransactionID == nil {
			continue
		}
		if *existing.ParentTransactionID != *t.ParentTransactionID {
			continue
		}
		if t.IsRecurring && existing.Date.Equal(t.Date) {
			return domainerror.ErrAlreadyMaterialized
		}
		if t.IsInstallment && existing.InstallmentNumber != nil && t.InstallmentNumber != nil &&
			*existing.InstallmentNumber == *t.InstallmentNumber {
			return domainerror.ErrAlreadyMaterialized
		}
	}
	r.transactions = append(r.transactions, t)
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (r *fakeTransactionRepo) FindGeneratedByParentAndDate(_ context.Context, parentID uuid.UUID, date time.Time) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.ParentTransactionID != nil && *t.ParentTransactionID == parentID && t.Date.Equal(date) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) FindGeneratedByParentAndNumber(_ context.Context, parentID uuid.UUID, number int) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.ParentTransactionID != nil && *t.ParentTransactionID == parentID &&
			t.InstallmentNumber != nil && *t.InstallmentNumber == number {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) Update(context.Context, *entity.Transaction) error { return nil }
func (r *fakeTransactionRepo) Delete(context.Context, uuid.UUID) error           { return nil }

func (r *fakeTransactionRepo) generatedFor(parentID uuid.UUID) []*entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range r.transactions {
		if t.ParentTransactionID != nil && *t.ParentTransactionID == parentID {
			out = append(out, t)
		}
	}
	return out
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(context.Background(), email)
	return err == nil, nil
}

type recordingNotifier struct {
	expired   []uuid.UUID
	completed []uuid.UUID
}

func (n *recordingNotifier) NotifyScheduleExpired(_ context.Context, _ *entity.User, s *entity.RecurringSchedule) error {
	n.expired = append(n.expired, s.ID)
	return nil
}

func (n *recordingNotifier) NotifyPlanCompleted(_ context.Context, _ *entity.User, p *entity.InstallmentPlan) error {
	n.completed = append(n.completed, p.ID)
	return nil
}

// date builds a UTC date for test fixtures.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
