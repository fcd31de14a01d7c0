package order

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPendingPayment, StatusCancelled},
		{StatusProcessing, StatusCompleted},
		{StatusProcessing, StatusCancelled},
		{StatusCancelled, StatusRefunded},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Fatalf("expected %q -> %q to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{StatusPendingPayment, StatusCompleted},
		{StatusPendingPayment, StatusRefunded},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusRefunded},
		{StatusRefunded, StatusCancelled},
		{StatusProcessing, StatusRefunded},
		{"bogus", StatusCancelled},
	}
	for _, tr := range denied {
		if CanTransition(tr[0], tr[1]) {
			t.Fatalf("expected %q -> %q to be denied", tr[0], tr[1])
		}
	}
}
