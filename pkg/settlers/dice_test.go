package settlers

import "testing"

func TestNextRoll_Range(t *testing.T) {
	g, err := NewGame(2, 17)
	if err != nil {
		t.Fatal(err)
	}
	counts := make(map[int]int)
	const n = 10000
	for i := 0; i < n; i++ {
		total := g.nextRoll()
		if total < 2 || total > 12 {
			t.Fatalf("rolled %d", total)
		}
		counts[total]++
	}

	// 2d6: sevens land near 1/6, snake eyes near 1/36.
	if f := float64(counts[7]) / n; f < 0.14 || f > 0.20 {
		t.Errorf("P(7) = %.3f, want about 0.167", f)
	}
	if f := float64(counts[2]) / n; f < 0.015 || f > 0.045 {
		t.Errorf("P(2) = %.3f, want about 0.028", f)
	}
	if counts[7] <= counts[2] || counts[7] <= counts[12] {
		t.Error("7 is not the most frequent total")
	}
}

func TestNextRoll_ForcedQueue(t *testing.T) {
	g, err := NewGame(2, 17)
	if err != nil {
		t.Fatal(err)
	}
	g.forcedRolls = []int{4, 11}
	if got := g.nextRoll(); got != 4 {
		t.Errorf("first forced roll = %d", got)
	}
	if got := g.nextRoll(); got != 11 {
		t.Errorf("second forced roll = %d", got)
	}
	if got := g.nextRoll(); got < 2 || got > 12 {
		t.Errorf("post-queue roll = %d", got)
	}
}
