package models

// Declarant types tallied by the statistics aggregator.
const (
	DeclarantParticulier    = "particulier"
	DeclarantPersonneMorale = "personne_morale"
)

// DailyBucket is one day of the weekly activity histogram.
type DailyBucket struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// MonthlyBucket is one month of the monthly histogram, split by declarant type.
type MonthlyBucket struct {
	Month          string `json:"month"`
	Particulier    int    `json:"particulier"`
	PersonneMorale int    `json:"personne_morale"`
}

// AdminStats is the dashboard aggregation served to admins.
type AdminStats struct {
	Total        int             `json:"total"`
	Completed    int             `json:"completed"`
	InProgress   int             `json:"inProgress"`
	Abandoned    int             `json:"abandoned"`
	TodayNew     int             `json:"todayNew"`
	WeeklyGrowth int             `json:"weeklyGrowth"`
	ByType       map[string]int  `json:"byType"`
	ByNature     map[string]int  `json:"byNature"`
	Weekly       []DailyBucket   `json:"weekly"`
	Monthly      []MonthlyBucket `json:"monthly"`
}
