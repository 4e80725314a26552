package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/internal/session"
	"harvest-market/services/market/helpers"
	"harvest-market/utils"

	"github.com/gin-gonic/gin"
)

var errMissingToken = errors.New("missing or malformed bearer token")

// RequireSession resolves the bearer token to a live, authenticated session
func (h *MarketHandler) RequireSession(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		h.abortUnauthorized(c, errMissingToken)
		return
	}

	claims, err := h.tokens.Parse(parts[1])
	if err != nil {
		h.abortUnauthorized(c, err)
		return
	}

	sess, ok := h.sessions.Get(claims.SessionID)
	if !ok {
		h.abortUnauthorized(c, fmt.Errorf("session %s: %w", claims.SessionID, marketerrors.ErrNotAuthenticated))
		return
	}
	current, ok := sess.Current()
	if !ok || current.ID != claims.Subject {
		h.abortUnauthorized(c, fmt.Errorf("session %s: %w", claims.SessionID, marketerrors.ErrNotAuthenticated))
		return
	}

	c.Set(ctxSession, sess)
	c.Set(ctxSessionID, claims.SessionID)
	c.Next()
}

func (h *MarketHandler) abortUnauthorized(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusUnauthorized, err, "authentication required")
	utils.Warn("RequireSession: rejected request", map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.Abort()
}

// RequireRole admits only principals that resolve to role. It must run after RequireSession.
func (h *MarketHandler) RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		res, err := h.accounts.WhoAmI(c.Request.Context(), sess)
		if err != nil {
			status, message := helpers.MapErrorToHTTP(err)
			utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
			c.Abort()
			return
		}
		if res.Role != role {
			err := fmt.Errorf("%s only: %w", role, marketerrors.ErrForbidden)
			utils.JSONError(c, http.StatusForbidden, err, "operation not permitted")
			utils.Warn("RequireRole: role mismatch", map[string]any{
				"principal_id": res.PrincipalID,
				"required":     string(role),
				"actual":       string(res.Role),
			})
			c.Abort()
			return
		}

		c.Set(ctxResolution, res)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Manager {
	sess, _ := c.MustGet(ctxSession).(*session.Manager)
	return sess
}

func resolutionFrom(c *gin.Context) models.Resolution {
	res, _ := c.MustGet(ctxResolution).(models.Resolution)
	return res
}
