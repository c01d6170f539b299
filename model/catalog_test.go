package model

import "testing"

func TestParseEntityKind(t *testing.T) {
	if _, err := ParseEntityKind("hospital"); err != nil {
		t.Errorf("Unexpected error for hospital: %v", err)
	}
	if _, err := ParseEntityKind("doctor"); err != nil {
		t.Errorf("Unexpected error for doctor: %v", err)
	}
	if _, err := ParseEntityKind("clinic"); err == nil {
		t.Error("Expected an error for unknown entity kind")
	}
	if _, err := ParseEntityKind(""); err == nil {
		t.Error("Expected an error for empty entity kind")
	}
}

func TestParseTierLevel(t *testing.T) {
	for _, valid := range []string{"grade3A", "grade3B", "grade2A", "grade2B", "other"} {
		if _, err := ParseTierLevel(valid); err != nil {
			t.Errorf("Unexpected error for %q: %v", valid, err)
		}
	}
	for _, invalid := range []string{"grade1A", "3A", "三甲", ""} {
		if _, err := ParseTierLevel(invalid); err == nil {
			t.Errorf("Expected an error for %q", invalid)
		}
	}
}

func TestTierLevelRankOrdering(t *testing.T) {
	ordered := []TierLevel{Tier3A, Tier3B, Tier2A, Tier2B, TierOther}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("Expected %s to rank above %s", ordered[i-1], ordered[i])
		}
	}

	if TierLevel("grade9Z").Rank() <= TierOther.Rank() {
		t.Error("Unknown tiers must rank below every known tier")
	}
}
