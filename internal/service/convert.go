package service

import (
	"github.com/mmynk/chamaa/internal/calculator"
	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/pkg/api"
)

func toAPIAdmin(a models.Admin) api.Admin {
	return api.Admin{ID: a.ID, Name: a.Name, Email: a.Email, CreatedAt: a.CreatedAt}
}

func toAPIGroup(g models.Group) api.Group {
	members := make([]string, len(g.Members))
	copy(members, g.Members)
	return api.Group{
		ID:        g.ID,
		Name:      g.Name,
		AdminID:   g.AdminID,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIMember(m models.Member) api.Member {
	return api.Member{ID: m.ID, Name: m.Name, Email: m.Email, CreatedAt: m.CreatedAt}
}

func toAPIContribution(c models.Contribution) api.Contribution {
	return api.Contribution{
		ID:        c.ID,
		GroupID:   c.GroupID,
		MemberID:  c.MemberID,
		Amount:    c.Amount,
		CreatedAt: c.CreatedAt,
	}
}

func toAPISummary(s calculator.Summary) api.Summary {
	members := make([]api.MemberTotal, len(s.Members))
	for i, m := range s.Members {
		members[i] = api.MemberTotal{MemberID: m.MemberID, Total: m.Total, Count: m.Count}
	}
	return api.Summary{GroupID: s.GroupID, Total: s.Total, Count: s.Count, Members: members}
}

// convertAll maps a list, always returning a non-nil slice so empty lists
// encode as [].
func convertAll[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
