package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/circulation/services/lending/domain"
)

var (
	testNow    = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testPeriod = 30 * 24 * time.Hour
)

func TestNewLoan(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()
	loan := NewLoan(userID, itemID, testNow, testPeriod)

	t.Run("opens active", func(t *testing.T) {
		if loan.Status != LoanActive {
			t.Fatalf("expected active, got %s", loan.Status)
		}
		if !loan.Open() {
			t.Fatal("new loan must be open")
		}
	})

	t.Run("due date is borrow time plus period", func(t *testing.T) {
		want := testNow.Add(testPeriod)
		if !loan.DueAt.Equal(want) {
			t.Fatalf("expected due at %v, got %v", want, loan.DueAt)
		}
	})

	t.Run("starts with zero renewals and overdue days", func(t *testing.T) {
		if loan.RenewCount != 0 || loan.OverdueDays != 0 {
			t.Fatalf("expected zeroed counters, got renew=%d overdue=%d", loan.RenewCount, loan.OverdueDays)
		}
		if loan.ReturnedAt != nil {
			t.Fatal("expected nil ReturnedAt")
		}
	})
}

func TestLoan_Close(t *testing.T) {
	t.Run("returns an active loan on time", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		returnedAt := testNow.Add(10 * 24 * time.Hour)
		if err := loan.Close(returnedAt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loan.Status != LoanReturned {
			t.Fatalf("expected returned, got %s", loan.Status)
		}
		if loan.OverdueDays != 0 {
			t.Fatalf("on-time return must have 0 overdue days, got %d", loan.OverdueDays)
		}
		if loan.ReturnedAt == nil || !loan.ReturnedAt.Equal(returnedAt) {
			t.Fatalf("expected ReturnedAt %v, got %v", returnedAt, loan.ReturnedAt)
		}
	})

	t.Run("recomputes overdue days for a late return", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		loan.MarkOverdue(loan.DueAt.Add(24 * time.Hour))

		late := loan.DueAt.Add(3*24*time.Hour + 6*time.Hour)
		if err := loan.Close(late); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loan.OverdueDays != 3 {
			t.Fatalf("expected 3 overdue days, got %d", loan.OverdueDays)
		}
	})

	t.Run("rejects a second return", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		if err := loan.Close(testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := loan.Close(testNow); !errors.Is(err, domain.ErrAlreadyReturned) {
			t.Fatalf("expected ErrAlreadyReturned, got %v", err)
		}
	})
}

func TestLoan_Renew(t *testing.T) {
	renewPeriod := 15 * 24 * time.Hour

	t.Run("extends the due date", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		originalDue := loan.DueAt
		if err := loan.Renew(renewPeriod, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !loan.DueAt.Equal(originalDue.Add(renewPeriod)) {
			t.Fatalf("expected due at %v, got %v", originalDue.Add(renewPeriod), loan.DueAt)
		}
		if loan.RenewCount != 1 {
			t.Fatalf("expected renew count 1, got %d", loan.RenewCount)
		}
	})

	t.Run("rejects a second renewal", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		if err := loan.Renew(renewPeriod, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := loan.Renew(renewPeriod, 1); !errors.Is(err, domain.ErrRenewLimitReached) {
			t.Fatalf("expected ErrRenewLimitReached, got %v", err)
		}
	})

	t.Run("rejects renewing an overdue loan", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		loan.MarkOverdue(loan.DueAt.Add(time.Hour))
		if err := loan.Renew(renewPeriod, 1); !errors.Is(err, domain.ErrAlreadyOverdue) {
			t.Fatalf("expected ErrAlreadyOverdue, got %v", err)
		}
	})

	t.Run("rejects renewing a returned loan", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		if err := loan.Close(testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := loan.Renew(renewPeriod, 1); !errors.Is(err, domain.ErrAlreadyReturned) {
			t.Fatalf("expected ErrAlreadyReturned, got %v", err)
		}
	})
}

func TestLoan_MarkOverdue(t *testing.T) {
	t.Run("marks an expired active loan", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		now := loan.DueAt.Add(2*24*time.Hour + time.Hour)
		if !loan.MarkOverdue(now) {
			t.Fatal("expected transition")
		}
		if loan.Status != LoanOverdue {
			t.Fatalf("expected overdue, got %s", loan.Status)
		}
		if loan.OverdueDays != 2 {
			t.Fatalf("expected 2 overdue days, got %d", loan.OverdueDays)
		}
	})

	t.Run("leaves a loan within its period alone", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		if loan.MarkOverdue(loan.DueAt) {
			t.Fatal("loan due exactly now must not transition")
		}
		if loan.Status != LoanActive {
			t.Fatalf("expected active, got %s", loan.Status)
		}
	})

	t.Run("leaves a returned loan alone", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		if err := loan.Close(testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loan.MarkOverdue(loan.DueAt.Add(time.Hour)) {
			t.Fatal("returned loan must not transition")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		loan := NewLoan(uuid.New(), uuid.New(), testNow, testPeriod)
		now := loan.DueAt.Add(24 * time.Hour)
		if !loan.MarkOverdue(now) {
			t.Fatal("expected first transition")
		}
		if loan.MarkOverdue(now.Add(24 * time.Hour)) {
			t.Fatal("second call must be a no-op")
		}
	})
}

func TestOverdueDays(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before due", due.Add(-time.Hour), 0},
		{"exactly due", due, 0},
		{"under one day", due.Add(23 * time.Hour), 0},
		{"one day", due.Add(24 * time.Hour), 1},
		{"partial days floor", due.Add(49 * time.Hour), 2},
		{"ten days", due.Add(10 * 24 * time.Hour), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OverdueDays(due, tc.now); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
