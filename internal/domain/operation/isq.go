package operation

import (
	"math"
	"sort"
	"strconv"
)

// Implant stability thresholds on the weighted ISQ scale. Above the
// osseointegration threshold an implant is considered stable enough to
// load; below the risk threshold it needs intervention.
const (
	isqOsseointegrated = 70.0
	isqMonitorFloor    = 60.0
	isqImprovingFloor  = 55.0
)

// Pose statuses.
const (
	StatusPlanned         = "planned"
	StatusPlaced          = "placed"
	StatusOsseointegrated = "osseointegrated"
	StatusMonitor         = "monitor"
	StatusAtRisk          = "at-risk"
	StatusFailed          = "failed"
)

// WeightedISQ combines the three directional readings. The buccal
// reading counts double: buccal bone is the thinnest and resorbs first,
// so its stability dominates the prognosis.
func WeightedISQ(m ISQMeasurement) float64 {
	avg := (2*m.Buccal + m.Lingual + m.Mesial) / 4
	return math.Round(avg*10) / 10
}

// Suggestion is the outcome of the status-suggestion rules.
type Suggestion struct {
	Status string `json:"suggested_status"`
	Reason string `json:"reason"`
}

// SuggestStatus classifies an implant from its ISQ history. Rules, in
// order:
//   - an explanted pose is failed regardless of readings
//   - no readings yet: keep the current status, nothing to suggest from
//   - latest weighted ISQ >= 70: osseointegrated
//   - 60 <= latest < 70: monitor
//   - 55 <= latest < 60 and improving since the previous visit: monitor
//   - otherwise: at-risk
func SuggestStatus(pose *ImplantPose, history []ISQMeasurement) Suggestion {
	if pose.ExplantedAt != nil {
		return Suggestion{Status: StatusFailed, Reason: "implant was explanted"}
	}
	if len(history) == 0 {
		return Suggestion{Status: pose.Status, Reason: "no ISQ measurements recorded"}
	}

	sorted := make([]ISQMeasurement, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MeasuredAt.Before(sorted[j].MeasuredAt) })

	latest := WeightedISQ(sorted[len(sorted)-1])

	switch {
	case latest >= isqOsseointegrated:
		return Suggestion{Status: StatusOsseointegrated, Reason: formatReason(latest, "at or above the osseointegration threshold")}
	case latest >= isqMonitorFloor:
		return Suggestion{Status: StatusMonitor, Reason: formatReason(latest, "in the monitoring range")}
	case latest >= isqImprovingFloor && len(sorted) >= 2:
		previous := WeightedISQ(sorted[len(sorted)-2])
		if latest > previous {
			return Suggestion{Status: StatusMonitor, Reason: formatReason(latest, "low but improving since the previous visit")}
		}
		return Suggestion{Status: StatusAtRisk, Reason: formatReason(latest, "low and not improving")}
	default:
		return Suggestion{Status: StatusAtRisk, Reason: formatReason(latest, "below the stability threshold")}
	}
}

func formatReason(isq float64, detail string) string {
	return "weighted ISQ " + strconv.FormatFloat(isq, 'f', -1, 64) + " is " + detail
}
