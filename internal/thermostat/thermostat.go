package thermostat

import "github.com/akvaristik/aquamon/internal/model"

// Next returns the heater command that follows prev for the given water
// temperature and target. The band is asymmetric: the heater switches on
// only once clearly below target, and off only once the target itself is
// reached, so small ripples around the setpoint never toggle it.
// A disconnected probe leaves the command as it was.
func Next(prev bool, water model.Temperature, target, hysteresis float64) bool {
	if !water.Valid {
		return prev
	}
	switch {
	case water.Degrees < target-hysteresis:
		return true
	case water.Degrees > target:
		return false
	}
	return prev
}
