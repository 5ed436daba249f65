package constants

const (
	// Day window used for free-time derivation. Comparison is lexicographic on
	// zero-padded HH:MM strings.
	DayWindowStart = "06:00"
	DayWindowEnd   = "22:00"

	// Cat defaults
	DefaultCatName   = "Xiaoju"
	DefaultCatWeight = 4.0
	MinCatWeight     = 0.0
	MaxCatWeight     = 10.0

	// Five feedings add 0.1 kg in total.
	FeedsPerWeightStep = 5
	WeightStepKg       = 0.1

	// Streak milestones (exact equality on the new streak value)
	MilestoneCanStreak   = 5
	MilestoneToyStreak   = 10
	MilestoneStripStreak = 30

	ToyYarnBall = "yarn ball"

	// Temperature bands (°C) for activity recommendation
	RecommendMinTemp  = 5.0
	RecommendCoolTemp = 15.0
	RecommendMildTemp = 25.0
	RecommendMaxTemp  = 30.0
)
