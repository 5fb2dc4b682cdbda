package service

import (
	"context"
	"testing"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"
	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func seedCustomer(repo *stubCustomerRepo, name string) *model.Customer {
	c := &model.Customer{ID: uuid.New(), Name: name, Phone: "081234567890", Address: "Jl. Mawar 1"}
	repo.customers[c.ID] = c
	return c
}

func TestCreateCustomer(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:    "Budi Santoso",
		Phone:   "081234567890",
		Address: "Jl. Melati 5",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resp.Name)
	assert.Len(t, repo.customers, 1)
}

func TestUpdateCustomerPartialPatch(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo)
	c := seedCustomer(repo, "Budi")

	phone := "089876543210"
	resp, err := svc.Update(context.Background(), c.ID.String(), dto.UpdateCustomerRequest{Phone: &phone})
	assert.NoError(t, err)
	assert.Equal(t, "089876543210", resp.Phone)
	assert.Equal(t, "Budi", resp.Name)
}

func TestDeleteCustomerWithUnpaidCycle(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo)
	c := seedCustomer(repo, "Budi")
	repo.unpaid[c.ID] = true

	err := svc.Delete(context.Background(), c.ID.String())
	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.State, ae.Kind)
	// customer stays
	assert.Len(t, repo.customers, 1)
}

func TestDeleteCustomerWithoutDebt(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo)
	c := seedCustomer(repo, "Budi")

	assert.NoError(t, svc.Delete(context.Background(), c.ID.String()))
	assert.Empty(t, repo.customers)
}

// A customer whose cycles are all settled still has rows referencing them;
// deletion must take that history along instead of failing on it.
func TestDeleteCustomerWithSettledHistory(t *testing.T) {
	repo := newStubCustomerRepo()
	debts := newStubDebtRepo(repo)
	svc := NewCustomerService(repo)
	c := seedCustomer(repo, "Budi")

	paidAt := time.Now()
	cycle := &model.DebtCycle{
		ID:     uuid.New(),
		UserID: c.ID,
		Total:  decimal.NewFromInt(150000),
		IsPaid: true,
		PaidAt: &paidAt,
	}
	debts.cycles[cycle.ID] = cycle
	debts.debts = append(debts.debts, model.Debt{ID: uuid.New(), CycleID: cycle.ID, Amount: cycle.Total})

	assert.NoError(t, svc.Delete(context.Background(), c.ID.String()))
	assert.Empty(t, repo.customers)
	assert.Empty(t, debts.cycles)
	assert.Empty(t, debts.debts)
}

func TestSearchCustomers(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo)
	seedCustomer(repo, "Budi Santoso")
	seedCustomer(repo, "Siti Aminah")

	options, err := svc.Search(context.Background(), "budi")
	assert.NoError(t, err)
	assert.Len(t, options, 1)
	assert.Equal(t, "Budi Santoso", options[0].Name)
}
