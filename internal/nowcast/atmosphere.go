package nowcast

import "math"

// International Standard Atmosphere constants (SI), valid in the
// troposphere (0–11 km).
const (
	seaLevelTempK  = 288.15    // K
	lapseRateKPerM = -0.0065   // K/m
	gravityMPerS2  = 9.80665   // m/s²
	molarMassAir   = 0.0289644 // kg/mol
	gasConstant    = 8.3144598 // J/(mol·K)

	hPaToPa = 100.0

	// lclMetersPerDegC is the usual LCL approximation: the cloud base
	// sits about 125 m higher per °C of dew-point depression.
	lclMetersPerDegC = 125.0
)

// AdjustPressureToReference moves a pressure measured at hMeasM to the
// equivalent pressure at a fixed reference altitude hRefM using the
// tropospheric barometric formula:
//
//	P_ref = P_meas * [ T0 / (T0 + L0*(H_ref − H_meas)) ]^( g·M0 / (R·L0) )
//
// Adjusting all measurements to one altitude makes pressure tendencies
// reflect atmospheric change rather than elevation change while hiking.
func AdjustPressureToReference(pMeasHPa, hMeasM, hRefM float64) float64 {
	denom := seaLevelTempK + lapseRateKPerM*(hRefM-hMeasM)
	if denom <= 0 {
		// Outside model validity; clamp rather than blow up.
		denom = 1e-6
	}
	exponent := (gravityMPerS2 * molarMassAir) / (gasConstant * lapseRateKPerM)
	pPa := pMeasHPa * hPaToPa
	return pPa * math.Pow(seaLevelTempK/denom, exponent) / hPaToPa
}

// LCLAboveSensorM estimates the lifting condensation level height above
// the sensor, clamped at zero to absorb noisy inputs.
func LCLAboveSensorM(tempC, dewPointC float64) float64 {
	return math.Max(0, lclMetersPerDegC*(tempC-dewPointC))
}
