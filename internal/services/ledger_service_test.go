package services

import (
	"testing"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/pagination"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/testutil"
)

func TestEnsureBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(db)

	testutil.AssertNoError(t, svc.EnsureBudget())
	// A second call must not reset an existing allocation.
	testutil.AssertNoError(t, svc.EnsureBudget())

	summary, err := svc.Summary()
	testutil.AssertNoError(t, err)
	if summary.Total != 0 || summary.Spent != 0 {
		t.Errorf("expected fresh budget 0/0, got %d/%d", summary.Spent, summary.Total)
	}
}

func TestDebit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleApprover)
		testutil.CreateTestBudget(t, db, 100000, 0)

		summary, err := svc.Debit(40000, "Deduction for approved request", actor.ID)
		testutil.AssertNoError(t, err)

		if summary.Spent != 40000 {
			t.Errorf("expected spent 40000, got %d", summary.Spent)
		}
		if summary.Remaining != 60000 {
			t.Errorf("expected remaining 60000, got %d", summary.Remaining)
		}

		var entry models.BudgetHistory
		testutil.AssertNoError(t, db.Order("id DESC").First(&entry).Error)
		if entry.Delta != -40000 {
			t.Errorf("expected delta -40000, got %d", entry.Delta)
		}
		if entry.AdjustmentType != models.AdjustmentDeduction {
			t.Errorf("expected deduction entry, got %s", entry.AdjustmentType)
		}
		if entry.BalanceAfter != 40000 {
			t.Errorf("expected balance after 40000, got %d", entry.BalanceAfter)
		}
	})

	t.Run("exact_remaining", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleApprover)
		testutil.CreateTestBudget(t, db, 100000, 60000)

		summary, err := svc.Debit(40000, "final debit", actor.ID)
		testutil.AssertNoError(t, err)
		if summary.Remaining != 0 {
			t.Errorf("expected remaining 0, got %d", summary.Remaining)
		}
	})

	t.Run("insufficient_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleApprover)
		testutil.CreateTestBudget(t, db, 100000, 70000)

		_, err := svc.Debit(40000, "too much", actor.ID)
		testutil.AssertAppError(t, err, "INSUFFICIENT_BUDGET")

		// Balance and history must be untouched by the failed attempt.
		summary, err := svc.Summary()
		testutil.AssertNoError(t, err)
		if summary.Spent != 70000 {
			t.Errorf("expected spent to remain 70000, got %d", summary.Spent)
		}
		var count int64
		testutil.AssertNoError(t, db.Model(&models.BudgetHistory{}).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected no history rows after failed debit, got %d", count)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleApprover)
		testutil.CreateTestBudget(t, db, 100000, 0)

		_, err := svc.Debit(-1, "bogus", actor.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)

		_, err := svc.Debit(100, "no budget row", 1)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestCredit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 40000)

		summary, err := svc.Credit(40000, "Refund for reversed request", actor.ID)
		testutil.AssertNoError(t, err)
		if summary.Spent != 0 {
			t.Errorf("expected spent 0, got %d", summary.Spent)
		}

		var entry models.BudgetHistory
		testutil.AssertNoError(t, db.Order("id DESC").First(&entry).Error)
		if entry.Delta != 40000 {
			t.Errorf("expected delta 40000, got %d", entry.Delta)
		}
		if entry.AdjustmentType != models.AdjustmentRefund {
			t.Errorf("expected refund entry, got %s", entry.AdjustmentType)
		}
	})

	t.Run("floors_at_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 10000)

		summary, err := svc.Credit(25000, "over-refund", actor.ID)
		testutil.AssertNoError(t, err)
		if summary.Spent != 0 {
			t.Errorf("expected spent floored at 0, got %d", summary.Spent)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 10000)

		_, err := svc.Credit(-5, "bogus", actor.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSetAllocation(t *testing.T) {
	t.Run("grow", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 30000)

		summary, err := svc.SetAllocation(150000, "annual top-up", actor.ID)
		testutil.AssertNoError(t, err)
		if summary.Total != 150000 || summary.Spent != 30000 {
			t.Errorf("expected 30000/150000, got %d/%d", summary.Spent, summary.Total)
		}

		var entry models.BudgetHistory
		testutil.AssertNoError(t, db.Order("id DESC").First(&entry).Error)
		if entry.Delta != 50000 {
			t.Errorf("expected allocation delta 50000, got %d", entry.Delta)
		}
		if entry.AdjustmentType != models.AdjustmentAllocation {
			t.Errorf("expected allocation entry, got %s", entry.AdjustmentType)
		}
	})

	t.Run("shrink_above_committed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 30000)

		summary, err := svc.SetAllocation(30000, "cut to committed", actor.ID)
		testutil.AssertNoError(t, err)
		if summary.Remaining != 0 {
			t.Errorf("expected remaining 0, got %d", summary.Remaining)
		}
	})

	t.Run("below_committed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 30000)

		_, err := svc.SetAllocation(20000, "too low", actor.ID)
		testutil.AssertAppError(t, err, "BELOW_COMMITTED")

		summary, err := svc.Summary()
		testutil.AssertNoError(t, err)
		if summary.Total != 100000 {
			t.Errorf("expected total to remain 100000, got %d", summary.Total)
		}
	})

	t.Run("negative_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 0)

		_, err := svc.SetAllocation(-1, "bogus", actor.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLedgerHistory(t *testing.T) {
	t.Run("newest_first_with_running_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 0)

		_, err := svc.Debit(40000, "first trip", actor.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.Debit(30000, "second trip", actor.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.Credit(40000, "first trip reversed", actor.ID)
		testutil.AssertNoError(t, err)

		page, err := svc.History(pagination.PageRequest{}, HistoryFilter{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 3 {
			t.Fatalf("expected 3 history entries, got %d", len(page.Data))
		}
		// Newest first: refund, then the two deductions.
		if page.Data[0].AdjustmentType != models.AdjustmentRefund {
			t.Errorf("expected refund first, got %s", page.Data[0].AdjustmentType)
		}
		wantBalances := []int64{30000, 70000, 40000}
		for i, want := range wantBalances {
			if page.Data[i].BalanceAfter != want {
				t.Errorf("entry %d: expected balance after %d, got %d", i, want, page.Data[i].BalanceAfter)
			}
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		actor := testutil.CreateTestFaculty(t, db, models.RoleAccountant)
		testutil.CreateTestBudget(t, db, 100000, 0)

		_, err := svc.Debit(10000, "trip", actor.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.SetAllocation(200000, "top-up", actor.ID)
		testutil.AssertNoError(t, err)

		kind := models.AdjustmentAllocation
		page, err := svc.History(pagination.PageRequest{}, HistoryFilter{AdjustmentType: &kind})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 allocation entry, got %d", len(page.Data))
		}
		if page.Data[0].Delta != 100000 {
			t.Errorf("expected allocation delta 100000, got %d", page.Data[0].Delta)
		}
	})
}
