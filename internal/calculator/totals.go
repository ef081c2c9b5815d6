package calculator

import "github.com/mmynk/chamaa/internal/models"

// MemberTotal is one member's aggregate contribution to a group.
type MemberTotal struct {
	MemberID string  `json:"memberId"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// Summary aggregates a group's contributions.
type Summary struct {
	GroupID string `json:"groupId"`

	// Total is the sum of every contribution amount.
	Total float64 `json:"total"`

	// Count is the number of contributions.
	Count int `json:"count"`

	// Members lists per-member totals, ordered by each member's first
	// contribution.
	Members []MemberTotal `json:"members"`
}

// Summarize totals contributions for groupID. Contributions belonging to
// other groups are ignored, so callers may pass an unfiltered list.
//
// Amounts are summed in input order; no rounding is applied.
func Summarize(groupID string, contributions []models.Contribution) Summary {
	summary := Summary{GroupID: groupID, Members: []MemberTotal{}}

	// Index into summary.Members per member
	index := make(map[string]int)

	for _, c := range contributions {
		if c.GroupID != groupID {
			continue
		}

		summary.Total += c.Amount
		summary.Count++

		i, seen := index[c.MemberID]
		if !seen {
			i = len(summary.Members)
			index[c.MemberID] = i
			summary.Members = append(summary.Members, MemberTotal{MemberID: c.MemberID})
		}
		summary.Members[i].Total += c.Amount
		summary.Members[i].Count++
	}

	return summary
}
