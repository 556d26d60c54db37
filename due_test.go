package cashflow

import (
	"testing"
)

func TestDueItems(t *testing.T) {
	today := day("2025-03-10")
	txs := []Transaction{
		expense("next-week", 10, "2025-03-17"),
		expense("tomorrow", 20, "2025-03-11"),
		paid(expense("done", 30, "2025-03-09"), "2025-03-09"),
		expense("late", 40, "2025-03-01"),
		income("today", 50, "2025-03-10"),
		expense("edge", 60, "2025-03-16"),
	}
	got := DueItems(txs, today, 7)
	want := []struct {
		alert  string
		status Status
		left   int
	}{
		{"late@2025-03-01", Overdue, -9},
		{"today@2025-03-10", Pending, 0},
		{"tomorrow@2025-03-11", Scheduled, 1},
		{"edge@2025-03-16", Scheduled, 6},
	}
	if len(got) != len(want) {
		t.Fatalf("DueItems() returned %d items, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].AlertID != w.alert || got[i].Status != w.status || got[i].DaysLeft != w.left {
			t.Errorf("DueItems()[%d] = %s %s %d, want %s %s %d", i, got[i].AlertID, got[i].Status, got[i].DaysLeft, w.alert, w.status, w.left)
		}
	}
}

func TestActiveDueItems(t *testing.T) {
	today := day("2025-03-10")
	items := DueItems([]Transaction{
		expense("a", 1, "2025-03-09"),
		expense("b", 1, "2025-03-10"),
		expense("c", 1, "2025-03-11"),
	}, today, 7)

	dismissals := DismissalMap{}
	dismissals.Dismiss("a@2025-03-09", day("2025-03-09")) // snooze expired
	dismissals.Dismiss("b@2025-03-10", today)
	dismissals.Dismiss("c@2025-03-04", today) // another occurrence

	got := ActiveDueItems(items, dismissals, today)
	var ids []string
	for _, it := range got {
		ids = append(ids, it.Transaction.ID)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Errorf("ActiveDueItems() = %v, want [a c]", ids)
	}
	if len(items) != 3 {
		t.Errorf("ActiveDueItems() modified its input")
	}
	if got := ActiveDueItems(items, nil, today); len(got) != 3 {
		t.Errorf("ActiveDueItems(nil) returned %d items, want 3", len(got))
	}
}
