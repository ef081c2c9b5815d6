package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client calls the ledger service over Connect.
type Client struct {
	createAdmin               *connect.Client[CreateAdminRequest, CreateAdminResponse]
	listAdmins                *connect.Client[ListAdminsRequest, ListAdminsResponse]
	createGroup               *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup                  *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups                *connect.Client[ListGroupsRequest, ListGroupsResponse]
	addMember                 *connect.Client[AddMemberRequest, AddMemberResponse]
	createMember              *connect.Client[CreateMemberRequest, CreateMemberResponse]
	getMember                 *connect.Client[GetMemberRequest, GetMemberResponse]
	listMembers               *connect.Client[ListMembersRequest, ListMembersResponse]
	createContribution        *connect.Client[CreateContributionRequest, CreateContributionResponse]
	listContributionsForGroup *connect.Client[ListContributionsForGroupRequest, ListContributionsForGroupResponse]
	groupSummary              *connect.Client[GroupSummaryRequest, GroupSummaryResponse]
}

// NewClient returns a Client for the service at baseURL
// (e.g. http://localhost:8080). The JSON codec is always installed.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &Client{
		createAdmin:               connect.NewClient[CreateAdminRequest, CreateAdminResponse](httpClient, baseURL+CreateAdminProcedure, opts...),
		listAdmins:                connect.NewClient[ListAdminsRequest, ListAdminsResponse](httpClient, baseURL+ListAdminsProcedure, opts...),
		createGroup:               connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+CreateGroupProcedure, opts...),
		getGroup:                  connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GetGroupProcedure, opts...),
		listGroups:                connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+ListGroupsProcedure, opts...),
		addMember:                 connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+AddMemberProcedure, opts...),
		createMember:              connect.NewClient[CreateMemberRequest, CreateMemberResponse](httpClient, baseURL+CreateMemberProcedure, opts...),
		getMember:                 connect.NewClient[GetMemberRequest, GetMemberResponse](httpClient, baseURL+GetMemberProcedure, opts...),
		listMembers:               connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+ListMembersProcedure, opts...),
		createContribution:        connect.NewClient[CreateContributionRequest, CreateContributionResponse](httpClient, baseURL+CreateContributionProcedure, opts...),
		listContributionsForGroup: connect.NewClient[ListContributionsForGroupRequest, ListContributionsForGroupResponse](httpClient, baseURL+ListContributionsForGroupProcedure, opts...),
		groupSummary:              connect.NewClient[GroupSummaryRequest, GroupSummaryResponse](httpClient, baseURL+GroupSummaryProcedure, opts...),
	}
}

func (c *Client) CreateAdmin(ctx context.Context, req *connect.Request[CreateAdminRequest]) (*connect.Response[CreateAdminResponse], error) {
	return c.createAdmin.CallUnary(ctx, req)
}

func (c *Client) ListAdmins(ctx context.Context, req *connect.Request[ListAdminsRequest]) (*connect.Response[ListAdminsResponse], error) {
	return c.listAdmins.CallUnary(ctx, req)
}

func (c *Client) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *Client) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *Client) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *Client) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *Client) CreateMember(ctx context.Context, req *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error) {
	return c.createMember.CallUnary(ctx, req)
}

func (c *Client) GetMember(ctx context.Context, req *connect.Request[GetMemberRequest]) (*connect.Response[GetMemberResponse], error) {
	return c.getMember.CallUnary(ctx, req)
}

func (c *Client) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *Client) CreateContribution(ctx context.Context, req *connect.Request[CreateContributionRequest]) (*connect.Response[CreateContributionResponse], error) {
	return c.createContribution.CallUnary(ctx, req)
}

func (c *Client) ListContributionsForGroup(ctx context.Context, req *connect.Request[ListContributionsForGroupRequest]) (*connect.Response[ListContributionsForGroupResponse], error) {
	return c.listContributionsForGroup.CallUnary(ctx, req)
}

func (c *Client) GroupSummary(ctx context.Context, req *connect.Request[GroupSummaryRequest]) (*connect.Response[GroupSummaryResponse], error) {
	return c.groupSummary.CallUnary(ctx, req)
}
