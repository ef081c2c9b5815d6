package service

import (
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/chamaa/internal/ledger"
	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/pkg/api"
)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService over the given ledger.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// NewHandler mounts every LedgerService procedure and returns the path
// prefix to register it under. The JSON codec is always installed; opts may
// add interceptors.
func NewHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(api.CreateAdminProcedure, connect.NewUnaryHandler(api.CreateAdminProcedure, svc.CreateAdmin, opts...))
	mux.Handle(api.ListAdminsProcedure, connect.NewUnaryHandler(api.ListAdminsProcedure, svc.ListAdmins, opts...))
	mux.Handle(api.CreateGroupProcedure, connect.NewUnaryHandler(api.CreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(api.GetGroupProcedure, connect.NewUnaryHandler(api.GetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(api.ListGroupsProcedure, connect.NewUnaryHandler(api.ListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(api.AddMemberProcedure, connect.NewUnaryHandler(api.AddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(api.CreateMemberProcedure, connect.NewUnaryHandler(api.CreateMemberProcedure, svc.CreateMember, opts...))
	mux.Handle(api.GetMemberProcedure, connect.NewUnaryHandler(api.GetMemberProcedure, svc.GetMember, opts...))
	mux.Handle(api.ListMembersProcedure, connect.NewUnaryHandler(api.ListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(api.CreateContributionProcedure, connect.NewUnaryHandler(api.CreateContributionProcedure, svc.CreateContribution, opts...))
	mux.Handle(api.ListContributionsForGroupProcedure, connect.NewUnaryHandler(api.ListContributionsForGroupProcedure, svc.ListContributionsForGroup, opts...))
	mux.Handle(api.GroupSummaryProcedure, connect.NewUnaryHandler(api.GroupSummaryProcedure, svc.GroupSummary, opts...))

	return "/" + api.ServiceName + "/", mux
}

// toConnectError maps ledger error kinds onto Connect codes. Store failures
// and anything unrecognised become Internal.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
