package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPaybackMonths_JSON(t *testing.T) {
	data, err := json.Marshal(ROI{PaybackPeriodMonths: PaybackMonths(math.Inf(1))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded ROI
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.PaybackPeriodMonths.Unbounded() {
		t.Errorf("expected null to decode as unbounded, got %v", decoded.PaybackPeriodMonths)
	}

	data, _ = json.Marshal(PaybackMonths(2.5))
	if string(data) != "2.5" {
		t.Errorf("expected 2.5, got %s", data)
	}
}
