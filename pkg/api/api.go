// Package api defines the wire surface of the chamaa ledger: the Connect
// procedure names, the request and response messages, and a typed client.
//
// Messages are plain Go structs carried by the JSON codec in this package.
package api

import "time"

// ServiceName is the fully-qualified name of the ledger service.
const ServiceName = "chamaa.v1.LedgerService"

// Procedure paths, one per unary RPC.
const (
	CreateAdminProcedure               = "/" + ServiceName + "/CreateAdmin"
	ListAdminsProcedure                = "/" + ServiceName + "/ListAdmins"
	CreateGroupProcedure               = "/" + ServiceName + "/CreateGroup"
	GetGroupProcedure                  = "/" + ServiceName + "/GetGroup"
	ListGroupsProcedure                = "/" + ServiceName + "/ListGroups"
	AddMemberProcedure                 = "/" + ServiceName + "/AddMember"
	CreateMemberProcedure              = "/" + ServiceName + "/CreateMember"
	GetMemberProcedure                 = "/" + ServiceName + "/GetMember"
	ListMembersProcedure               = "/" + ServiceName + "/ListMembers"
	CreateContributionProcedure        = "/" + ServiceName + "/CreateContribution"
	ListContributionsForGroupProcedure = "/" + ServiceName + "/ListContributionsForGroup"
	GroupSummaryProcedure              = "/" + ServiceName + "/GroupSummary"
)

// Admin owns groups.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Group is a savings pool and its ordered member IDs.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AdminID   string    `json:"adminId"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

// Member is a person who can join groups.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contribution is one payment into a group.
type Contribution struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	MemberID  string    `json:"memberId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberTotal is one member's share of a group summary.
type MemberTotal struct {
	MemberID string  `json:"memberId"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// Summary totals a group's contributions.
type Summary struct {
	GroupID string        `json:"groupId"`
	Total   float64       `json:"total"`
	Count   int           `json:"count"`
	Members []MemberTotal `json:"members"`
}

type CreateAdminRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateAdminResponse struct {
	Admin Admin `json:"admin"`
}

type ListAdminsRequest struct{}

type ListAdminsResponse struct {
	Admins []Admin `json:"admins"`
}

type CreateGroupRequest struct {
	Name    string `json:"name"`
	AdminID string `json:"adminId"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
}

type AddMemberResponse struct {
	Group Group `json:"group"`
}

type CreateMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateMemberResponse struct {
	Member Member `json:"member"`
}

type GetMemberRequest struct {
	MemberID string `json:"memberId"`
}

type GetMemberResponse struct {
	Member Member `json:"member"`
}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []Member `json:"members"`
}

// CreateContributionRequest carries a new contribution. An omitted or zero
// amount is rejected as missing.
type CreateContributionRequest struct {
	GroupID  string  `json:"groupId"`
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount,omitempty"`
}

type CreateContributionResponse struct {
	Contribution Contribution `json:"contribution"`
}

type ListContributionsForGroupRequest struct {
	GroupID string `json:"groupId"`
}

type ListContributionsForGroupResponse struct {
	Contributions []Contribution `json:"contributions"`
}

type GroupSummaryRequest struct {
	GroupID string `json:"groupId"`
}

type GroupSummaryResponse struct {
	Summary Summary `json:"summary"`
}
