package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chamaa/pkg/api"
)

// CreateMember registers a member with a unique email.
func (s *LedgerService) CreateMember(ctx context.Context, req *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error) {
	slog.Info("CreateMember request received", "name", req.Msg.Name)

	member, err := s.ledger.CreateMember(ctx, req.Msg.Name, req.Msg.Email)
	if err != nil {
		slog.Error("CreateMember failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member created", "member_id", member.ID)

	return connect.NewResponse(&api.CreateMemberResponse{Member: toAPIMember(member)}), nil
}

// GetMember retrieves a member by ID.
func (s *LedgerService) GetMember(ctx context.Context, req *connect.Request[api.GetMemberRequest]) (*connect.Response[api.GetMemberResponse], error) {
	slog.Info("GetMember request received", "member_id", req.Msg.MemberID)

	member, err := s.ledger.GetMember(ctx, req.Msg.MemberID)
	if err != nil {
		slog.Error("GetMember failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetMemberResponse{Member: toAPIMember(member)}), nil
}

// ListMembers retrieves all members.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	slog.Info("ListMembers request received")

	members, err := s.ledger.ListMembers(ctx)
	if err != nil {
		slog.Error("ListMembers failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListMembers successful", "count", len(members))

	return connect.NewResponse(&api.ListMembersResponse{Members: convertAll(members, toAPIMember)}), nil
}
