package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chamaa/pkg/api"
)

// CreateGroup creates a new group owned by an existing admin.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"admin_id", req.Msg.AdminID,
	)

	group, err := s.ledger.CreateGroup(ctx, req.Msg.Name, req.Msg.AdminID)
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.ledger.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.ledger.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: convertAll(groups, toAPIGroup)}), nil
}

// AddMember adds an existing member to a group.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received",
		"group_id", req.Msg.GroupID,
		"member_id", req.Msg.MemberID,
	)

	group, err := s.ledger.AddMember(ctx, req.Msg.GroupID, req.Msg.MemberID)
	if err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member added to group",
		"group_id", group.ID,
		"members_count", len(group.Members),
	)

	return connect.NewResponse(&api.AddMemberResponse{Group: toAPIGroup(group)}), nil
}
