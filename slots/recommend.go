package slots

import (
	"slices"

	"github.com/ayoisaiah/studyfocus/internal/timeutil"
)

// Preferences restrict which slots are worth offering. Earliest and Latest
// are minutes after midnight bounding the slot start. A slot matches
// PreferredDurations when it is at least as long as any of them; an empty
// list accepts every length.
type Preferences struct {
	PreferredDurations []int `json:"preferred_durations" mapstructure:"preferred_durations"`
	Earliest           int   `json:"earliest"            mapstructure:"earliest"`
	Latest             int   `json:"latest"              mapstructure:"latest"`
}

// FilterByPreferences keeps the slots that start within the preferred hours
// and are long enough for one of the preferred durations.
func FilterByPreferences(s []FreeSlot, prefs Preferences) []FreeSlot {
	var out []FreeSlot

	for _, slot := range s {
		start := timeutil.MinuteOfDay(slot.Start)
		if start < prefs.Earliest || start > prefs.Latest {
			continue
		}

		if !longEnough(slot.DurationMinutes, prefs.PreferredDurations) {
			continue
		}

		out = append(out, slot)
	}

	return out
}

func longEnough(minutes int, preferred []int) bool {
	if len(preferred) == 0 {
		return true
	}

	for _, d := range preferred {
		if minutes >= d {
			return true
		}
	}

	return false
}

// Optimal returns the n best slots. A non-positive n returns all of them.
func Optimal(s []FreeSlot, n int) []FreeSlot {
	out := slices.Clone(s)
	sortSlots(out)

	if n > 0 && len(out) > n {
		out = out[:n]
	}

	return out
}

// History summarises past study behaviour for recommendations.
type History struct {
	BestTimeOfDay timeutil.TimeOfDay
	Consistency   int
}

// Recommendation is a ranked slot with a human readable reason.
type Recommendation struct {
	Reason     string   `json:"reason"`
	Slot       FreeSlot `json:"slot"`
	Priority   int      `json:"priority"`
	Confidence int      `json:"confidence"`
}

const maxRecommendations = 5

// Recommend ranks up to n slots (five when n is not positive) and explains
// each pick using the user's study history.
func Recommend(s []FreeSlot, h History, n int) []Recommendation {
	if n <= 0 {
		n = maxRecommendations
	}

	best := Optimal(s, n)
	out := make([]Recommendation, 0, len(best))

	for i, slot := range best {
		out = append(out, Recommendation{
			Slot:       slot,
			Priority:   i + 1,
			Reason:     reason(slot, h),
			Confidence: confidence(slot, h),
		})
	}

	return out
}

func reason(s FreeSlot, h History) string {
	switch {
	case s.QualityScore >= 80:
		return "High-quality time slot"
	case s.DurationMinutes >= 90:
		return "Perfect for deep work"
	case h.BestTimeOfDay != "" && s.TimeOfDay == h.BestTimeOfDay:
		return "Matches your productive hours"
	case s.TimeOfDay == timeutil.Morning:
		return "Morning focus time"
	}

	return "Available study time"
}

func confidence(s FreeSlot, h History) int {
	c := s.QualityScore

	if h.BestTimeOfDay != "" && s.TimeOfDay == h.BestTimeOfDay {
		c += 10
	}

	if h.Consistency > 70 {
		c += 5
	}

	return min(c, 100)
}
