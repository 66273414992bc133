// Package delay turns pairs of scheduled and realtime timestamps into the
// rider-facing delay strings shown on boards and journey cards.
package delay

import (
	"fmt"
	"math"

	"explorer.navitia.org/internal/navitia"
)

// OnTime is the label shown when schedule and realtime agree.
const OnTime = "À l'heure"

// Delay formats the difference between a scheduled and a realtime timestamp,
// both in Navitia wire format.
//
// Either input being empty yields "" with a nil error, meaning "nothing to
// show". Equal instants yield OnTime. Otherwise the difference is rendered in
// whole (floored) minutes, "+{n}min" under an hour and "+{h}h{m}min" from an
// hour up; the sign of the minute count is preserved, so a train running
// three minutes early renders as "+-3min".
func Delay(baseDateTime, realtimeDateTime string) (string, error) {
	minutes, known, err := delayMinutes(baseDateTime, realtimeDateTime)
	if err != nil || !known {
		return "", err
	}
	if minutes == 0 {
		return OnTime, nil
	}
	return format(minutes), nil
}

// DelayMinutes returns the floored whole-minute difference between the two
// timestamps. Either input being empty yields 0 with a nil error, which makes
// "missing" and "zero delay" indistinguishable here; callers needing the
// distinction use Delay and check for "".
func DelayMinutes(baseDateTime, realtimeDateTime string) (int, error) {
	minutes, _, err := delayMinutes(baseDateTime, realtimeDateTime)
	return minutes, err
}

func delayMinutes(baseDateTime, realtimeDateTime string) (int, bool, error) {
	if baseDateTime == "" || realtimeDateTime == "" {
		return 0, false, nil
	}
	base, err := navitia.ParseDateTime(baseDateTime)
	if err != nil {
		return 0, false, err
	}
	realtime, err := navitia.ParseDateTime(realtimeDateTime)
	if err != nil {
		return 0, false, err
	}
	minutes := int(math.Floor(realtime.Sub(base).Minutes()))
	return minutes, true, nil
}

// format renders a non-zero minute count. The hour quotient is floored and
// the remainder keeps the sign of the dividend, so 75 renders "+1h15min";
// negative counts keep their embedded signs verbatim.
func format(minutes int) string {
	if abs(minutes) < 60 {
		return fmt.Sprintf("+%dmin", minutes)
	}
	hours := int(math.Floor(float64(minutes) / 60))
	return fmt.Sprintf("+%dh%dmin", hours, minutes%60)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// MaxDelay picks between two already-formatted delay strings by comparing the
// numeric delays recomputed from their timestamp pairs. The arrival string
// wins only when its delay is strictly greater; ties and missing data resolve
// to the departure string.
func MaxDelay(departureDelay, arrivalDelay, baseDeparture, realtimeDeparture, baseArrival, realtimeArrival string) (string, error) {
	depMinutes, err := DelayMinutes(baseDeparture, realtimeDeparture)
	if err != nil {
		return "", fmt.Errorf("departure delay: %w", err)
	}
	arrMinutes, err := DelayMinutes(baseArrival, realtimeArrival)
	if err != nil {
		return "", fmt.Errorf("arrival delay: %w", err)
	}
	if arrMinutes > depMinutes {
		return arrivalDelay, nil
	}
	return departureDelay, nil
}
