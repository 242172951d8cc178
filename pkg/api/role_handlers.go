package api

import (
	"net/http"

	"github.com/marketbay/marketbay/pkg/httputil"
	"github.com/marketbay/marketbay/pkg/rbac"
)

// rolesResponse is the payload for GET /api/roles
type rolesResponse struct {
	Success bool        `json:"success"`
	Data    []rbac.Role `json:"data"`
}

// listRoles handles GET /api/roles. The route is guarded: only Admin and
// Analyst may read reference data.
func (s *Server) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.roles.ListRoles(r.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to list roles")
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rolesResponse{Success: true, Data: roles})
}
