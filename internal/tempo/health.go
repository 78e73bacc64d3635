package tempo

import "fmt"

// HealthDay mirrors /api/v1/health: a wide per-day metric set. Every field
// is optional and server-computed; the client only formats them.
type HealthDay struct {
	Date    string
	Summary string
	Score   *float64

	// Activity
	Steps           *int
	ActiveEnergy    *float64
	ExerciseMinutes *int
	StandHours      *int
	DistanceKM      *float64

	// Heart
	RestingHeartRate *int
	HeartRateAvg     *int
	HRV              *float64
	VO2Max           *float64

	// Sleep
	SleepHours      *float64
	SleepEfficiency *float64
	BedtimeAt       string
	WakeAt          string

	// Nutrition
	CaloriesIn   *float64
	ProteinGrams *float64
	CarbsGrams   *float64
	FatGrams     *float64
	FiberGrams   *float64
	WaterLiters  *float64

	// Body
	WeightKG        *float64
	BodyFatPercent  *float64
	MindfulMinutes  *int
	StressLevel     *float64
	ReadinessRating string
}

func (h *HealthDay) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("health day: %w", err)
	}
	*h = HealthDay{
		Date:    obj.str("date"),
		Summary: obj.str("summary"),
		Score:   obj.num("score"),

		Steps:           obj.intPtr("steps"),
		ActiveEnergy:    obj.num("active_energy_kcal"),
		ExerciseMinutes: obj.intPtr("exercise_minutes"),
		StandHours:      obj.intPtr("stand_hours"),
		DistanceKM:      obj.num("distance_km"),

		RestingHeartRate: obj.intPtr("resting_heart_rate"),
		HeartRateAvg:     obj.intPtr("heart_rate_avg"),
		HRV:              obj.num("hrv_ms"),
		VO2Max:           obj.num("vo2_max"),

		SleepHours:      obj.num("sleep_hours"),
		SleepEfficiency: obj.num("sleep_efficiency"),
		BedtimeAt:       obj.str("bedtime_at"),
		WakeAt:          obj.str("wake_at"),

		CaloriesIn:   obj.num("calories_in"),
		ProteinGrams: obj.num("protein_grams"),
		CarbsGrams:   obj.num("carbs_grams"),
		FatGrams:     obj.num("fat_grams"),
		FiberGrams:   obj.num("fiber_grams"),
		WaterLiters:  obj.num("water_liters"),

		WeightKG:        obj.num("weight_kg"),
		BodyFatPercent:  obj.num("body_fat_percent"),
		MindfulMinutes:  obj.intPtr("mindful_minutes"),
		StressLevel:     obj.num("stress_level"),
		ReadinessRating: obj.str("readiness_rating"),
	}
	return nil
}
