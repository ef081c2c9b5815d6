package httpapi

import "net/http"

type createAdminRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

type createGroupRequest struct {
	Name    string `json:"name" validate:"required"`
	AdminID string `json:"adminId" validate:"required"`
}

type createMemberRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

type createContributionRequest struct {
	GroupID  string  `json:"groupId" validate:"required"`
	MemberID string  `json:"memberId" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.ledger.ListAdmins(r.Context())
	if err != nil {
		h.fail(w, r, "list admins", err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	admin, err := h.ledger.CreateAdmin(r.Context(), req.Name, req.Email)
	if err != nil {
		h.fail(w, r, "create admin", err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.ledger.ListGroups(r.Context())
	if err != nil {
		h.fail(w, r, "list groups", err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	group, err := h.ledger.CreateGroup(r.Context(), req.Name, req.AdminID)
	if err != nil {
		h.fail(w, r, "create group", err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.ledger.GetGroup(r.Context(), r.PathValue("groupId"))
	if err != nil {
		h.fail(w, r, "get group", err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	group, err := h.ledger.AddMember(r.Context(), r.PathValue("groupId"), r.PathValue("memberId"))
	if err != nil {
		h.fail(w, r, "add member", err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) listContributions(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.ledger.ListContributionsForGroup(r.Context(), r.PathValue("groupId"))
	if err != nil {
		h.fail(w, r, "list contributions", err)
		return
	}
	writeJSON(w, http.StatusOK, contributions)
}

func (h *Handler) groupSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.GroupSummary(r.Context(), r.PathValue("groupId"))
	if err != nil {
		h.fail(w, r, "summarize group", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.ledger.ListMembers(r.Context())
	if err != nil {
		h.fail(w, r, "list members", err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	member, err := h.ledger.CreateMember(r.Context(), req.Name, req.Email)
	if err != nil {
		h.fail(w, r, "create member", err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.ledger.GetMember(r.Context(), r.PathValue("memberId"))
	if err != nil {
		h.fail(w, r, "get member", err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) createContribution(w http.ResponseWriter, r *http.Request) {
	var req createContributionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	contribution, err := h.ledger.CreateContribution(r.Context(), req.GroupID, req.MemberID, req.Amount)
	if err != nil {
		h.fail(w, r, "create contribution", err)
		return
	}
	writeJSON(w, http.StatusCreated, contribution)
}
