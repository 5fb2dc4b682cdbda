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

func newDebtFixture(t *testing.T) (DebtService, *stubDebtRepo, *stubCustomerRepo, *model.Customer) {
	t.Helper()
	customers := newStubCustomerRepo()
	debts := newStubDebtRepo(customers)
	customer := seedCustomer(customers, "Budi Santoso")
	return NewDebtService(debts, customers), debts, customers, customer
}

func today() string { return time.Now().Format("2006-01-02") }

func TestCreateDebtOpensCycle(t *testing.T) {
	svc, debts, _, customer := newDebtFixture(t)

	resp, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(150000),
		Date:   today(),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resp.UserName)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(150000)))
	assert.Len(t, debts.cycles, 1)
}

func TestCreateDebtAccumulatesIntoOpenCycle(t *testing.T) {
	svc, debts, _, customer := newDebtFixture(t)

	first, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(150000),
		Date:   today(),
	})
	assert.NoError(t, err)

	second, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(50000),
		Date:   today(),
	})
	assert.NoError(t, err)

	// both line items land in the same cycle, total accumulates
	assert.Equal(t, first.CycleID, second.CycleID)
	assert.True(t, second.Total.Equal(decimal.NewFromInt(200000)))
	assert.Len(t, debts.cycles, 1)
	assert.Len(t, debts.debts, 2)
}

// Two requests race to open a customer's first cycle: the loser's insert
// trips the open-cycle unique index and the transaction runs again from the
// top, landing the line item in the winner's cycle.
func TestCreateDebtRetriesWhenCycleRaceLost(t *testing.T) {
	svc, debts, _, customer := newDebtFixture(t)

	var winnerID uuid.UUID
	debts.onCreateCycle = func() {
		debts.onCreateCycle = nil
		winner := &model.DebtCycle{ID: uuid.New(), UserID: customer.ID}
		debts.cycles[winner.ID] = winner
		winnerID = winner.ID
	}

	resp, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(75000),
		Date:   today(),
	})
	assert.NoError(t, err)
	assert.Equal(t, winnerID.String(), resp.CycleID)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(75000)))
	assert.Len(t, debts.cycles, 1)
	assert.Len(t, debts.debts, 1)
}

func TestCreateDebtAfterSettlementOpensNewCycle(t *testing.T) {
	svc, debts, _, customer := newDebtFixture(t)

	first, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(100000),
		Date:   today(),
	})
	assert.NoError(t, err)

	firstID := uuid.MustParse(first.CycleID)
	now := time.Now()
	debts.cycles[firstID].IsPaid = true
	debts.cycles[firstID].PaidAt = &now

	second, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(25000),
		Date:   today(),
	})
	assert.NoError(t, err)
	assert.NotEqual(t, first.CycleID, second.CycleID)
	assert.True(t, second.Total.Equal(decimal.NewFromInt(25000)))
}

func TestCreateDebtFutureDateRejected(t *testing.T) {
	svc, _, _, customer := newDebtFixture(t)

	_, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(10000),
		Date:   time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
	})
	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.Validation, ae.Kind)
	assert.Contains(t, ae.Fields["date"][0], "tidak boleh lebih dari sekarang")
}

func TestCreateDebtUnknownCustomer(t *testing.T) {
	svc, _, _, _ := newDebtFixture(t)

	_, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: uuid.NewString(),
		Amount: decimal.NewFromInt(10000),
		Date:   today(),
	})
	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "User yang dipilih tidak ditemukan.", ae.Message)
}

func TestDeleteUnsettledCycleRejected(t *testing.T) {
	svc, _, _, customer := newDebtFixture(t)

	resp, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(10000),
		Date:   today(),
	})
	assert.NoError(t, err)

	_, err = svc.DeleteCycle(context.Background(), resp.CycleID)
	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "Tidak bisa menghapus utang karena masih ada utang yang belum lunas.", ae.Message)
}

func TestDeleteSettledCycleCascades(t *testing.T) {
	svc, debts, _, customer := newDebtFixture(t)

	resp, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
		UserID: customer.ID.String(),
		Amount: decimal.NewFromInt(10000),
		Date:   today(),
	})
	assert.NoError(t, err)

	cycleID := uuid.MustParse(resp.CycleID)
	now := time.Now()
	debts.cycles[cycleID].IsPaid = true
	debts.cycles[cycleID].PaidAt = &now

	userName, err := svc.DeleteCycle(context.Background(), resp.CycleID)
	assert.NoError(t, err)
	assert.Equal(t, "Budi Santoso", userName)
	assert.Empty(t, debts.cycles)
	assert.Empty(t, debts.debts)
}

func TestListOpenCyclesCapsLimit(t *testing.T) {
	svc, _, customers, _ := newDebtFixture(t)

	for i := 0; i < 3; i++ {
		c := seedCustomer(customers, "Pelanggan")
		_, err := svc.CreateDebt(context.Background(), dto.CreateDebtRequest{
			UserID: c.ID.String(),
			Amount: decimal.NewFromInt(5000),
			Date:   today(),
		})
		assert.NoError(t, err)
	}

	items, err := svc.ListOpenCycles(context.Background(), "", 2)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}
