package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chamaa/pkg/api"
)

// CreateAdmin registers a new admin.
func (s *LedgerService) CreateAdmin(ctx context.Context, req *connect.Request[api.CreateAdminRequest]) (*connect.Response[api.CreateAdminResponse], error) {
	slog.Info("CreateAdmin request received", "name", req.Msg.Name)

	admin, err := s.ledger.CreateAdmin(ctx, req.Msg.Name, req.Msg.Email)
	if err != nil {
		slog.Error("CreateAdmin failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Admin created", "admin_id", admin.ID)

	return connect.NewResponse(&api.CreateAdminResponse{Admin: toAPIAdmin(admin)}), nil
}

// ListAdmins retrieves all admins.
func (s *LedgerService) ListAdmins(ctx context.Context, req *connect.Request[api.ListAdminsRequest]) (*connect.Response[api.ListAdminsResponse], error) {
	slog.Info("ListAdmins request received")

	admins, err := s.ledger.ListAdmins(ctx)
	if err != nil {
		slog.Error("ListAdmins failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListAdmins successful", "count", len(admins))

	return connect.NewResponse(&api.ListAdminsResponse{Admins: convertAll(admins, toAPIAdmin)}), nil
}
