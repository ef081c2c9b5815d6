package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chamaa/pkg/api"
)

// CreateContribution records a member's payment into a group.
func (s *LedgerService) CreateContribution(ctx context.Context, req *connect.Request[api.CreateContributionRequest]) (*connect.Response[api.CreateContributionResponse], error) {
	slog.Info("CreateContribution request received",
		"group_id", req.Msg.GroupID,
		"member_id", req.Msg.MemberID,
		"amount", req.Msg.Amount,
	)

	contribution, err := s.ledger.CreateContribution(ctx, req.Msg.GroupID, req.Msg.MemberID, req.Msg.Amount)
	if err != nil {
		slog.Error("CreateContribution failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Contribution created",
		"contribution_id", contribution.ID,
		"group_id", contribution.GroupID,
	)

	return connect.NewResponse(&api.CreateContributionResponse{
		Contribution: toAPIContribution(contribution),
	}), nil
}

// ListContributionsForGroup retrieves a group's contributions in the order
// they were recorded.
func (s *LedgerService) ListContributionsForGroup(ctx context.Context, req *connect.Request[api.ListContributionsForGroupRequest]) (*connect.Response[api.ListContributionsForGroupResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("ListContributionsForGroup request received", "group_id", groupID)

	contributions, err := s.ledger.ListContributionsForGroup(ctx, groupID)
	if err != nil {
		slog.Error("ListContributionsForGroup failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListContributionsForGroup successful",
		"group_id", groupID,
		"count", len(contributions),
	)

	return connect.NewResponse(&api.ListContributionsForGroupResponse{
		Contributions: convertAll(contributions, toAPIContribution),
	}), nil
}

// GroupSummary totals a group's contributions per member.
func (s *LedgerService) GroupSummary(ctx context.Context, req *connect.Request[api.GroupSummaryRequest]) (*connect.Response[api.GroupSummaryResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GroupSummary request received", "group_id", groupID)

	summary, err := s.ledger.GroupSummary(ctx, groupID)
	if err != nil {
		slog.Error("GroupSummary failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GroupSummary successful",
		"group_id", groupID,
		"contributions_count", summary.Count,
		"members_count", len(summary.Members),
	)

	return connect.NewResponse(&api.GroupSummaryResponse{Summary: toAPISummary(summary)}), nil
}
