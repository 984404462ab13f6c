package integration

import (
	"testing"
	"time"
)

func TestDevelopmentHealth_Clean(t *testing.T) {
	score := DevelopmentHealth(2, 10, 0, 24)
	if score != 100 {
		t.Errorf("expected 100 for a clean tracker, got %d", score)
	}
}

func TestDevelopmentHealth_Penalties(t *testing.T) {
	// 100 - 15 (1 critical) - 10 (open ratio 0.4) - 5 (96h resolution) = 70
	score := DevelopmentHealth(4, 6, 1, 96)
	if score != 70 {
		t.Errorf("expected 70, got %d", score)
	}
}

func TestDevelopmentHealth_ResolutionCap(t *testing.T) {
	// Resolution penalty caps at 30 regardless of how slow it gets.
	// 100 - 30 = 70
	score := DevelopmentHealth(0, 10, 0, 10000)
	if score != 70 {
		t.Errorf("expected 70, got %d", score)
	}
}

func TestDevelopmentHealth_CriticalIssuesMonotonic(t *testing.T) {
	prev := 101
	for criticals := 0; criticals <= 5; criticals++ {
		score := DevelopmentHealth(3, 7, criticals, 48)
		if score > prev {
			t.Errorf("score increased from %d to %d when criticals rose to %d", prev, score, criticals)
		}
		prev = score
	}
}

func TestDevelopmentHealth_ClampsToZero(t *testing.T) {
	score := DevelopmentHealth(50, 0, 10, 500)
	if score != 0 {
		t.Errorf("expected clamp to 0, got %d", score)
	}
}

func TestSupportHealth_Clean(t *testing.T) {
	score := SupportHealth(0, 10, 0, 4, 0, 0)
	if score != 100 {
		t.Errorf("expected 100 for a clean queue, got %d", score)
	}
}

func TestSupportHealth_SatisfactionBlend(t *testing.T) {
	// Clean queue blended with 80% satisfaction: 100*0.7 + 80*0.3 = 94
	score := SupportHealth(0, 10, 0, 4, 80, 5)
	if score != 94 {
		t.Errorf("expected 94, got %d", score)
	}
}

func TestSupportHealth_NoRatingsSkipsBlend(t *testing.T) {
	// A satisfaction score with zero ratings behind it must be ignored.
	score := SupportHealth(0, 10, 0, 4, 80, 0)
	if score != 100 {
		t.Errorf("expected 100 without ratings, got %d", score)
	}
}

func TestSupportHealth_Penalties(t *testing.T) {
	// 100 - 20 (2 urgent) - 25 (open ratio 0.4: 0.2*125) - 5 (36h response) = 50
	score := SupportHealth(4, 6, 2, 36, 0, 0)
	if score != 50 {
		t.Errorf("expected 50, got %d", score)
	}
}

func TestSalesHealth_Customer(t *testing.T) {
	now := time.Now()
	recent := now.Add(-24 * time.Hour)
	// 0.3*100 + 0.7*100 = 100, no adjustments.
	score := SalesHealth(nil, "customer", &recent, 0, 0, 0, now)
	if score != 100 {
		t.Errorf("expected 100 for an active customer, got %d", score)
	}
}

func TestSalesHealth_Lead(t *testing.T) {
	now := time.Now()
	recent := now.Add(-24 * time.Hour)
	// 0.3*100 + 0.7*40 = 58
	score := SalesHealth(nil, "lead", &recent, 0, 0, 0, now)
	if score != 58 {
		t.Errorf("expected 58, got %d", score)
	}
}

func TestSalesHealth_UnknownStage(t *testing.T) {
	now := time.Now()
	// 0.3*100 + 0.7*30 = 51
	score := SalesHealth(nil, "something-else", nil, 0, 0, 0, now)
	if score != 51 {
		t.Errorf("expected 51 for an unknown stage, got %d", score)
	}
}

func TestSalesHealth_InactivityPenalty(t *testing.T) {
	now := time.Now()
	stale := now.Add(-60 * 24 * time.Hour)
	// 100 - min(20, 30/30*10) = 90
	score := SalesHealth(nil, "customer", &stale, 0, 0, 0, now)
	if score != 90 {
		t.Errorf("expected 90, got %d", score)
	}
}

func TestSalesHealth_OpenDealBonusCaps(t *testing.T) {
	now := time.Now()
	recent := now.Add(-24 * time.Hour)
	// Lead base 58 + min(15, 10*5) = 73
	score := SalesHealth(nil, "lead", &recent, 10, 0, 0, now)
	if score != 73 {
		t.Errorf("expected 73, got %d", score)
	}
}

func TestSalesHealth_WinRateAdjustment(t *testing.T) {
	now := time.Now()
	recent := now.Add(-24 * time.Hour)

	// Win rate 1.0: lead base 58 + (1.0-0.5)*20 = 68
	score := SalesHealth(nil, "lead", &recent, 0, 4, 0, now)
	if score != 68 {
		t.Errorf("expected 68 for a perfect win rate, got %d", score)
	}

	// Win rate 0.0: 58 + (0.0-0.5)*20 = 48
	score = SalesHealth(nil, "lead", &recent, 0, 0, 4, now)
	if score != 48 {
		t.Errorf("expected 48 for a zero win rate, got %d", score)
	}

	// Win rate 0.4 sits in the dead zone and adjusts nothing.
	score = SalesHealth(nil, "lead", &recent, 0, 2, 3, now)
	if score != 58 {
		t.Errorf("expected 58 for a 0.4 win rate, got %d", score)
	}
}

func TestFormulas_Range(t *testing.T) {
	now := time.Now()
	cases := []int{
		DevelopmentHealth(100, 0, 50, 5000),
		SupportHealth(100, 0, 50, 5000, 0, 10),
		SalesHealth(nil, "unknown", nil, 0, 0, 100, now),
		DevelopmentHealth(0, 0, 0, 0),
		SupportHealth(0, 0, 0, 0, 100, 10),
		SalesHealth(nil, "customer", nil, 100, 100, 0, now),
	}
	for i, score := range cases {
		if score < 0 || score > 100 {
			t.Errorf("case %d: score %d outside [0,100]", i, score)
		}
	}
}
