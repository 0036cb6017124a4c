package session

import "fmt"

// MilestoneStepMiles is the fixed interval between distance milestones.
const MilestoneStepMiles = 0.25

// FirstMilestoneMiles is the threshold a fresh session starts counting toward.
const FirstMilestoneMiles = 0.25

// CrossedMilestones returns every threshold crossed when cumulative distance
// reaches distanceMiles with nextMiles still pending, plus the new pending
// threshold. A single large jump (a GPS gap) crosses several thresholds and
// yields one entry per threshold, in order. Pure; the session is the only
// caller and the only place alerts are triggered from the result.
func CrossedMilestones(distanceMiles, nextMiles float64) ([]float64, float64) {
	var crossed []float64
	for distanceMiles >= nextMiles {
		crossed = append(crossed, nextMiles)
		nextMiles += MilestoneStepMiles
	}
	return crossed, nextMiles
}

func milestoneMessage(miles float64) string {
	return fmt.Sprintf("You have reached %.2f miles", miles)
}
