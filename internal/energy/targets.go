package energy

import "math"

type CalorieTargets struct {
	BMR           int `json:"bmr"`
	Maintenance   int `json:"maintenance"`
	FatLoss       int `json:"fatLoss"`
	AggressiveCut int `json:"aggressiveCut"`
	LeanBulk      int `json:"leanBulk"`
}

func TargetsFor(bmr float64, tdee int) CalorieTargets {
	return CalorieTargets{
		BMR:           int(math.Round(bmr)),
		Maintenance:   tdee,
		FatLoss:       tdee - 300,
		AggressiveCut: tdee - 500,
		LeanBulk:      tdee + 300,
	}
}

type ProteinTargets struct {
	MaintenanceG int `json:"maintenanceG"`
	CutLowG      int `json:"cutLowG"`
	CutHighG     int `json:"cutHighG"`
}

func ProteinFor(weightKg float64) ProteinTargets {
	return ProteinTargets{
		MaintenanceG: int(math.Round(weightKg * 1.2)),
		CutLowG:      int(math.Round(weightKg * 1.6)),
		CutHighG:     int(math.Round(weightKg * 2.0)),
	}
}

type WaterTarget struct {
	Liters  float64 `json:"liters"`
	Glasses int     `json:"glasses"`
}

// WaterFor uses 35 ml per kg of body weight and 250 ml glasses.
func WaterFor(weightKg float64) WaterTarget {
	ml := weightKg * 35
	return WaterTarget{
		Liters:  math.Round(ml/100) / 10,
		Glasses: int(math.Round(ml / 250)),
	}
}
