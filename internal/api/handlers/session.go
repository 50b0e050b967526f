package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/bigkaa/mygov-admin/internal/api/errors"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/session"
)

// sessionInfoResponse — ответ GET /api/session.
type sessionInfoResponse struct {
	Authenticated  bool   `json:"authenticated"`
	Role           string `json:"role"`
	Username       string `json:"username,omitempty"`
	Email          string `json:"email,omitempty"`
	IsSuperAdmin   bool   `json:"is_super_admin"`
	IsMyGovAdmin   bool   `json:"is_mygov_admin"`
	Landing        string `json:"landing"`
	TokenExpiresAt string `json:"token_expires_at,omitempty"`
}

// SessionInfo — сведения о текущей сессии для диагностики.
// Токен в ответ не попадает.
func SessionInfo(w http.ResponseWriter, r *http.Request) {
	store := session.FromContext(r.Context())
	if store == nil {
		apierrors.Unauthorized(w, "Сессия не найдена")
		return
	}
	sess := store.Get()
	if sess == nil {
		apierrors.Unauthorized(w, "Сессия не найдена")
		return
	}

	resp := sessionInfoResponse{
		Authenticated: true,
		Role:          sess.Role,
		IsSuperAdmin:  rbac.IsElevated(sess.Role),
		IsMyGovAdmin:  rbac.IsAnyAdmin(sess.Role),
		Landing:       rbac.LandingPath(sess.Role),
	}
	if sess.Profile != nil {
		resp.Username = sess.Profile.Username
		resp.Email = sess.Profile.Email
	}
	if exp, ok := session.TokenExpiry(sess.Token); ok {
		resp.TokenExpiresAt = exp.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
