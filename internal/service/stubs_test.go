package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"
	"github.com/snc99/Pay-Wise-BE/internal/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────

type stubAdminRepo struct {
	admins map[uuid.UUID]*model.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[uuid.UUID]*model.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *model.Admin) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.admins[a.ID] = a
	return nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdminRepo) UsernameTaken(_ context.Context, username string, exclude uuid.UUID) (bool, error) {
	for _, a := range r.admins {
		if a.Username == username && a.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAdminRepo) EmailTaken(_ context.Context, email string, exclude uuid.UUID) (bool, error) {
	for _, a := range r.admins {
		if a.Email == email && a.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAdminRepo) List(_ context.Context, _ dto.ListFilter, _ int) ([]model.Admin, int64, error) {
	admins := make([]model.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		admins = append(admins, *a)
	}
	return admins, int64(len(admins)), nil
}

func (r *stubAdminRepo) Update(_ context.Context, a *model.Admin) error {
	r.admins[a.ID] = a
	return nil
}

func (r *stubAdminRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.admins, id)
	return nil
}

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
	unpaid    map[uuid.UUID]bool
	debts     *stubDebtRepo
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{
		customers: make(map[uuid.UUID]*model.Customer),
		unpaid:    make(map[uuid.UUID]bool),
	}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	customers := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, *c)
	}
	return customers, nil
}

func (r *stubCustomerRepo) Search(_ context.Context, query string, limit int) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, *c)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	c.UpdatedAt = time.Now()
	r.customers[c.ID] = c
	return nil
}

// Delete cascades cycle history like the real repository does, so tests see
// whether customers with settled cycles can actually go away.
func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.debts != nil {
		for cid, c := range r.debts.cycles {
			if c.UserID == id {
				_ = r.debts.DeleteCycleTx(nil, cid)
			}
		}
	}
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) HasUnpaidCycle(_ context.Context, id uuid.UUID) (bool, error) {
	return r.unpaid[id], nil
}

// stubDebtRepo keeps cycles and line items in memory. CreateCycleTx enforces
// the one-open-cycle-per-customer constraint the way the partial unique
// index does, returning gorm.ErrDuplicatedKey on a second open cycle.
type stubDebtRepo struct {
	cycles    map[uuid.UUID]*model.DebtCycle
	debts     []model.Debt
	customers *stubCustomerRepo

	// onCreateCycle fires just before the open-cycle uniqueness check,
	// letting a test interleave a competing writer.
	onCreateCycle func()
}

func newStubDebtRepo(customers *stubCustomerRepo) *stubDebtRepo {
	r := &stubDebtRepo{cycles: make(map[uuid.UUID]*model.DebtCycle), customers: customers}
	customers.debts = r
	return r
}

func (r *stubDebtRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubDebtRepo) FindOpenCycleTx(_ *gorm.DB, userID uuid.UUID) (*model.DebtCycle, error) {
	for _, c := range r.cycles {
		if c.UserID == userID && !c.IsPaid {
			out := *c
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDebtRepo) CreateCycleTx(_ *gorm.DB, c *model.DebtCycle) error {
	if r.onCreateCycle != nil {
		r.onCreateCycle()
	}
	for _, existing := range r.cycles {
		if existing.UserID == c.UserID && !existing.IsPaid {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cycles[c.ID] = c
	return nil
}

func (r *stubDebtRepo) CreateDebtTx(_ *gorm.DB, d *model.Debt) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.debts = append(r.debts, *d)
	return nil
}

func (r *stubDebtRepo) IncrementCycleTotalTx(_ *gorm.DB, cycleID uuid.UUID, amount decimal.Decimal) error {
	c, ok := r.cycles[cycleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Total = c.Total.Add(amount)
	return nil
}

func (r *stubDebtRepo) DeleteCycleTx(_ *gorm.DB, cycleID uuid.UUID) error {
	delete(r.cycles, cycleID)
	kept := r.debts[:0]
	for _, d := range r.debts {
		if d.CycleID != cycleID {
			kept = append(kept, d)
		}
	}
	r.debts = kept
	return nil
}

func (r *stubDebtRepo) FindOpenCycle(ctx context.Context, userID uuid.UUID) (*model.DebtCycle, error) {
	return r.FindOpenCycleTx(nil, userID)
}

func (r *stubDebtRepo) FindCycleByID(_ context.Context, id uuid.UUID) (*model.DebtCycle, error) {
	c, ok := r.cycles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	if cust, ok := r.customers.customers[c.UserID]; ok {
		out.User = cust
	}
	return &out, nil
}

func (r *stubDebtRepo) ListCycles(_ context.Context, _ dto.ListFilter, _ int) ([]model.DebtCycle, int64, error) {
	cycles := make([]model.DebtCycle, 0, len(r.cycles))
	for id := range r.cycles {
		c, _ := r.FindCycleByID(context.Background(), id)
		cycles = append(cycles, *c)
	}
	return cycles, int64(len(cycles)), nil
}

func (r *stubDebtRepo) ListOpenCycles(_ context.Context, _ string, limit int) ([]model.DebtCycle, error) {
	var out []model.DebtCycle
	for id, c := range r.cycles {
		if c.IsPaid {
			continue
		}
		full, _ := r.FindCycleByID(context.Background(), id)
		out = append(out, *full)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubDebtRepo) OutstandingByUser(_ context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, c := range r.cycles {
		if !c.IsPaid {
			out[c.UserID] = out[c.UserID].Add(c.Total)
		}
	}
	return out, nil
}

type stubPaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
	debts    *stubDebtRepo

	// onSettle fires before the settle update, letting a test slip a
	// concurrent settlement in between the read and the write.
	onSettle func()
}

func newStubPaymentRepo(debts *stubDebtRepo) *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[uuid.UUID]*model.Payment), debts: debts}
}

// Transaction rolls created payments back on error, matching what a real
// database transaction does.
func (r *stubPaymentRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	snapshot := make(map[uuid.UUID]*model.Payment, len(r.payments))
	for id, p := range r.payments {
		snapshot[id] = p
	}
	if err := fn(nil); err != nil {
		r.payments = snapshot
		return err
	}
	return nil
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.payments[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) SettleCycleTx(_ *gorm.DB, cycleID uuid.UUID, paidAt time.Time) (int64, error) {
	if r.onSettle != nil {
		r.onSettle()
	}
	c, ok := r.debts.cycles[cycleID]
	if !ok || c.IsPaid {
		return 0, nil
	}
	c.IsPaid = true
	c.PaidAt = &paidAt
	return 1, nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	if c, err := r.debts.FindCycleByID(context.Background(), p.CycleID); err == nil {
		out.Cycle = c
	}
	return &out, nil
}

func (r *stubPaymentRepo) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	p, ok := r.payments[id]
	if !ok || p.DeletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	p.DeletedAt = &at
	return nil
}

func (r *stubPaymentRepo) ListActive(_ context.Context, _ string) ([]model.Payment, error) {
	var out []model.Payment
	for id, p := range r.payments {
		if p.DeletedAt != nil {
			continue
		}
		full, _ := r.FindByID(context.Background(), id)
		out = append(out, *full)
	}
	return out, nil
}

func (r *stubPaymentRepo) ListDeleted(_ context.Context) ([]model.Payment, error) {
	var out []model.Payment
	for id, p := range r.payments {
		if p.DeletedAt == nil {
			continue
		}
		full, _ := r.FindByID(context.Background(), id)
		out = append(out, *full)
	}
	return out, nil
}

func (r *stubPaymentRepo) PurgeDeletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for id, p := range r.payments {
		if p.DeletedAt != nil && p.DeletedAt.Before(cutoff) {
			delete(r.payments, id)
			purged++
		}
	}
	return purged, nil
}

// ── Session store stub ────────────────────────────────────────────────────────

var errStoreDown = errors.New("session store unreachable")

type stubSessionStore struct {
	active    map[string]string
	blacklist map[string]bool
	// failing simulates an unreachable cache: every call errors.
	failing  bool
	setCalls int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		active:    make(map[string]string),
		blacklist: make(map[string]bool),
	}
}

func (s *stubSessionStore) SetActiveToken(_ context.Context, adminID, token string, _ time.Duration) error {
	s.setCalls++
	if s.failing {
		return errStoreDown
	}
	s.active[adminID] = token
	return nil
}

func (s *stubSessionStore) ActiveToken(_ context.Context, adminID string) (string, error) {
	if s.failing {
		return "", errStoreDown
	}
	token, ok := s.active[adminID]
	if !ok {
		return "", session.ErrNoSession
	}
	return token, nil
}

func (s *stubSessionStore) DeleteActiveToken(_ context.Context, adminID string) error {
	if s.failing {
		return errStoreDown
	}
	delete(s.active, adminID)
	return nil
}

func (s *stubSessionStore) Blacklist(_ context.Context, token string, _ time.Duration) error {
	if s.failing {
		return errStoreDown
	}
	s.blacklist[token] = true
	return nil
}

func (s *stubSessionStore) IsBlacklisted(_ context.Context, token string) (bool, error) {
	if s.failing {
		return false, errStoreDown
	}
	return s.blacklist[token], nil
}
