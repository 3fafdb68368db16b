package weather

// wmoConditions maps WMO weather interpretation codes, as reported by
// Open-Meteo, to semantic conditions.
var wmoConditions = map[int]Condition{
	0:  ConditionClear,
	1:  ConditionPartlyCloudy,
	2:  ConditionCloudy,
	3:  ConditionOvercast,
	45: ConditionMist,
	48: ConditionMist,
	51: ConditionDrizzle,
	61: ConditionRain,
	63: ConditionRain,
	65: ConditionHeavyRain,
	71: ConditionSnow,
	73: ConditionSnow,
	75: ConditionHeavySnow,
	80: ConditionShowers,
	81: ConditionShowers,
	82: ConditionHeavyShowers,
	95: ConditionStorm,
	96: ConditionStorm,
	99: ConditionStorm,
}

// TranslateCondition maps a provider weather code to a semantic condition.
// Codes missing from the table fall back to ConditionClear.
func TranslateCondition(code int) Condition {
	if c, ok := wmoConditions[code]; ok {
		return c
	}
	return ConditionClear
}
