package operation

import (
	"testing"
	"time"
)

func measurementAt(day int, buccal, lingual, mesial float64) ISQMeasurement {
	return ISQMeasurement{
		MeasuredAt: time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC),
		Buccal:     buccal,
		Lingual:    lingual,
		Mesial:     mesial,
	}
}

func TestWeightedISQ(t *testing.T) {
	cases := []struct {
		name    string
		buccal  float64
		lingual float64
		mesial  float64
		want    float64
	}{
		{"uniform readings", 70, 70, 70, 70},
		{"buccal counts double", 60, 80, 80, 70},
		{"rounds to one decimal", 65, 67, 66, 65.8},
		{"low buccal drags average", 50, 75, 75, 62.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ISQMeasurement{Buccal: tc.buccal, Lingual: tc.lingual, Mesial: tc.mesial}
			if got := WeightedISQ(m); got != tc.want {
				t.Errorf("WeightedISQ = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSuggestStatusExplantedIsFailed(t *testing.T) {
	when := time.Now()
	pose := &ImplantPose{Status: StatusOsseointegrated, ExplantedAt: &when}
	// Even a perfect reading cannot save an explanted implant.
	got := SuggestStatus(pose, []ISQMeasurement{measurementAt(1, 80, 80, 80)})
	if got.Status != StatusFailed {
		t.Errorf("status = %s, want %s", got.Status, StatusFailed)
	}
}

func TestSuggestStatusNoHistoryKeepsCurrent(t *testing.T) {
	pose := &ImplantPose{Status: StatusPlaced}
	got := SuggestStatus(pose, nil)
	if got.Status != StatusPlaced {
		t.Errorf("status = %s, want %s", got.Status, StatusPlaced)
	}
}

func TestSuggestStatusThresholds(t *testing.T) {
	pose := &ImplantPose{Status: StatusPlaced}
	cases := []struct {
		name string
		isq  float64
		want string
	}{
		{"well above threshold", 75, StatusOsseointegrated},
		{"exactly at osseointegration threshold", 70, StatusOsseointegrated},
		{"just below threshold", 69.9, StatusMonitor},
		{"exactly at monitor floor", 60, StatusMonitor},
		{"below monitor floor single reading", 57, StatusAtRisk},
		{"well below", 40, StatusAtRisk},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SuggestStatus(pose, []ISQMeasurement{measurementAt(1, tc.isq, tc.isq, tc.isq)})
			if got.Status != tc.want {
				t.Errorf("ISQ %v: status = %s, want %s", tc.isq, got.Status, tc.want)
			}
		})
	}
}

func TestSuggestStatusLowButImproving(t *testing.T) {
	pose := &ImplantPose{Status: StatusPlaced}
	history := []ISQMeasurement{
		measurementAt(1, 54, 54, 54),
		measurementAt(15, 57, 57, 57),
	}
	got := SuggestStatus(pose, history)
	if got.Status != StatusMonitor {
		t.Errorf("improving implant in [55,60) should be monitor, got %s", got.Status)
	}
}

func TestSuggestStatusLowAndDeclining(t *testing.T) {
	pose := &ImplantPose{Status: StatusPlaced}
	history := []ISQMeasurement{
		measurementAt(1, 62, 62, 62),
		measurementAt(15, 57, 57, 57),
	}
	got := SuggestStatus(pose, history)
	if got.Status != StatusAtRisk {
		t.Errorf("declining implant in [55,60) should be at-risk, got %s", got.Status)
	}
}

func TestSuggestStatusUsesLatestByTime(t *testing.T) {
	pose := &ImplantPose{Status: StatusPlaced}
	// Out of order on purpose; the newest reading wins.
	history := []ISQMeasurement{
		measurementAt(20, 75, 75, 75),
		measurementAt(1, 40, 40, 40),
	}
	got := SuggestStatus(pose, history)
	if got.Status != StatusOsseointegrated {
		t.Errorf("latest reading should drive the suggestion, got %s", got.Status)
	}
}

func TestValidToothPosition(t *testing.T) {
	valid := []int{11, 18, 21, 28, 31, 38, 41, 48, 25}
	invalid := []int{0, 10, 19, 29, 49, 50, 55, 111, -11}
	for _, n := range valid {
		if !ValidToothPosition(n) {
			t.Errorf("%d should be valid", n)
		}
	}
	for _, n := range invalid {
		if ValidToothPosition(n) {
			t.Errorf("%d should be invalid", n)
		}
	}
}
