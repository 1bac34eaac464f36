package stats

import (
	"time"

	"urbania/models"
)

// French histogram labels. Weekday order follows time.Weekday (Sunday first).
var (
	weekdayLabels = [7]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}
	monthLabels   = [12]string{"Jan", "Fév", "Mar", "Avr", "Mai", "Juin", "Juil", "Août", "Sept", "Oct", "Nov", "Déc"}
)

// Compute aggregates dossiers and active drafts into the admin dashboard
// shape. It is a pure point-in-time computation: all bucketing is relative
// to now, in now's location.
func Compute(dossiers []models.Dossier, activeDrafts []models.DraftSession, now time.Time) *models.AdminStats {
	stats := &models.AdminStats{
		InProgress: len(activeDrafts),
		ByType: map[string]int{
			models.DeclarantParticulier:    0,
			models.DeclarantPersonneMorale: 0,
		},
		ByNature: map[string]int{},
	}

	startOfDay := startOfDay(now)
	sevenDaysAgo := now.AddDate(0, 0, -7)
	fourteenDaysAgo := now.AddDate(0, 0, -14)

	lastWeek, prevWeek := 0, 0
	for _, d := range dossiers {
		switch d.Status {
		case models.DossierStatusCompleted:
			stats.Completed++
		case models.DossierStatusAbandoned:
			stats.Abandoned++
		}
		if !d.CreatedAt.Before(startOfDay) {
			stats.TodayNew++
		}
		if !d.CreatedAt.Before(sevenDaysAgo) {
			lastWeek++
		} else if !d.CreatedAt.Before(fourteenDaysAgo) {
			prevWeek++
		}
	}
	stats.Total = len(dossiers) + stats.InProgress
	stats.WeeklyGrowth = growthPercent(prevWeek, lastWeek)

	// Distributions merge finalized dossier snapshots with live drafts,
	// without deduplication.
	tally := func(data models.FormData) {
		if len(data) == 0 {
			return
		}
		if t, ok := data["typeDeclarant"].(string); ok && t != "" {
			stats.ByType[t]++
		}
		if natures, ok := data["natureTravaux"].([]interface{}); ok {
			for _, n := range natures {
				if tag, ok := n.(string); ok && tag != "" {
					stats.ByNature[tag]++
				}
			}
		}
	}
	for _, d := range dossiers {
		tally(d.Data)
	}
	for _, s := range activeDrafts {
		tally(s.Data)
	}

	stats.Weekly = dailyHistogram(dossiers, now)
	stats.Monthly = monthlyHistogram(dossiers, now)
	return stats
}

// growthPercent reports the percentage change between two windows. An empty
// prior window with activity in the current one counts as 100% growth.
func growthPercent(prev, current int) int {
	if prev > 0 {
		return int(float64(current-prev) / float64(prev) * 100)
	}
	if current > 0 {
		return 100
	}
	return 0
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dailyHistogram buckets dossier creations into the last 7 calendar days,
// oldest first.
func dailyHistogram(dossiers []models.Dossier, now time.Time) []models.DailyBucket {
	buckets := make([]models.DailyBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := startOfDay(now.AddDate(0, 0, -i))
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		for _, d := range dossiers {
			if !d.CreatedAt.Before(dayStart) && d.CreatedAt.Before(dayEnd) {
				count++
			}
		}
		buckets = append(buckets, models.DailyBucket{
			Day:   weekdayLabels[dayStart.Weekday()],
			Count: count,
		})
	}
	return buckets
}

// monthlyHistogram buckets dossier creations into the last 4 calendar
// months, oldest first, split by declarant type. Month boundaries are walked
// backward with explicit year rollover.
func monthlyHistogram(dossiers []models.Dossier, now time.Time) []models.MonthlyBucket {
	buckets := make([]models.MonthlyBucket, 0, 4)
	curr := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := 0; i < 4; i++ {
		var next time.Time
		if curr.Month() == time.December {
			next = time.Date(curr.Year()+1, time.January, 1, 0, 0, 0, 0, curr.Location())
		} else {
			next = time.Date(curr.Year(), curr.Month()+1, 1, 0, 0, 0, 0, curr.Location())
		}

		bucket := models.MonthlyBucket{Month: monthLabels[curr.Month()-1]}
		for _, d := range dossiers {
			if d.CreatedAt.Before(curr) || !d.CreatedAt.Before(next) {
				continue
			}
			switch t, _ := d.Data["typeDeclarant"].(string); t {
			case models.DeclarantParticulier:
				bucket.Particulier++
			case models.DeclarantPersonneMorale:
				bucket.PersonneMorale++
			}
		}
		buckets = append([]models.MonthlyBucket{bucket}, buckets...)

		if curr.Month() == time.January {
			curr = time.Date(curr.Year()-1, time.December, 1, 0, 0, 0, 0, curr.Location())
		} else {
			curr = time.Date(curr.Year(), curr.Month()-1, 1, 0, 0, 0, 0, curr.Location())
		}
	}
	return buckets
}
