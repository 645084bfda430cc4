package compliance

import "Spraytower/internal/calc/props"

// Absolute pressures above which the framework's pressure-vessel code applies.
const (
	euThresholdPa = props.StdPressurePa + 50000.0  // 0.5 bar(g), PED scope
	usThresholdPa = props.StdPressurePa + 103421.4 // 15 psig, ASME VIII scope
)

type Result struct {
	Framework          props.Framework `json:"framework"`
	LimitsMet          bool            `json:"limits_met"`
	LimitMgNm3         *float64        `json:"limit_mg_nm3,omitempty"`
	PressureVesselCode string          `json:"pressure_vessel_code"`
	SafetyClass        *string         `json:"safety_class,omitempty"`
}

// Evaluate checks the outlet concentration against the framework's emission
// limit for the pollutant and picks the pressure-vessel code for the operating
// pressure. A pollutant the framework does not list is treated as compliant.
func Evaluate(lib props.Library, fw props.Framework, outletMgNm3, pressurePa float64, pt props.PollutantType) Result {
	res := Result{Framework: fw, LimitsMet: true}
	if limit, ok := lib.EmissionLimit(fw, pt); ok {
		l := limit
		res.LimitMgNm3 = &l
		res.LimitsMet = outletMgNm3 <= limit
	}
	res.PressureVesselCode, res.SafetyClass = vesselCode(fw, pressurePa)
	return res
}

func vesselCode(fw props.Framework, pressurePa float64) (string, *string) {
	switch fw {
	case props.FrameworkUS:
		if pressurePa > usThresholdPa {
			return "ASME BPVC Section VIII Div. 1", nil
		}
		return "ASME VIII exempt (<= 15 psig)", nil
	default:
		if pressurePa > euThresholdPa {
			class := "PED Category I"
			return "PED 2014/68/EU (EN 13445)", &class
		}
		return "EN 13445 exempt (<= 0.5 bar g)", nil
	}
}
