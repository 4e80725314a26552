package handler

import (
	"errors"
	"fmt"
	"net/http"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/services/market/helpers"
	"harvest-market/utils"

	"github.com/gin-gonic/gin"
)

// RegisterProducerHandler handles POST /accounts/producers
func (h *MarketHandler) RegisterProducerHandler(c *gin.Context) {
	var req helpers.RegisterProducerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterProducerHandler", err)
		return
	}

	profile, err := profileFields(req.Details, map[string]string{
		"fullName":     req.FullName,
		"phoneNumber":  req.PhoneNumber,
		"farmLocation": req.FarmLocation,
	})
	if err != nil {
		helpers.HandleBindError(c, "RegisterProducerHandler", err)
		return
	}

	sid, sess := h.sessions.Open()
	res, err := h.accounts.RegisterProducer(c.Request.Context(), sess, req.Email, req.Password, profile)
	h.finishSignIn(c, "RegisterProducerHandler", http.StatusCreated, "producer registered successfully", sid, res, err)
}

// RegisterPurchaserHandler handles POST /accounts/purchasers
func (h *MarketHandler) RegisterPurchaserHandler(c *gin.Context) {
	var req helpers.RegisterPurchaserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterPurchaserHandler", err)
		return
	}

	profile, err := profileFields(req.Details, map[string]string{
		"businessName":  req.BusinessName,
		"businessType":  req.BusinessType,
		"contactPerson": req.ContactPerson,
		"phoneNumber":   req.PhoneNumber,
	})
	if err != nil {
		helpers.HandleBindError(c, "RegisterPurchaserHandler", err)
		return
	}

	sid, sess := h.sessions.Open()
	res, err := h.accounts.RegisterPurchaser(c.Request.Context(), sess, req.Email, req.Password, profile)
	h.finishSignIn(c, "RegisterPurchaserHandler", http.StatusCreated, "purchaser registered successfully", sid, res, err)
}

// LoginHandler handles POST /sessions
func (h *MarketHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	sid, sess := h.sessions.Open()
	res, err := h.accounts.Login(c.Request.Context(), sess, req.Email, req.Password)
	if errors.Is(err, marketerrors.ErrNotFound) {
		err = fmt.Errorf("invalid email or password: %w", marketerrors.ErrNotAuthenticated)
	}
	h.finishSignIn(c, "LoginHandler", http.StatusOK, "signed in successfully", sid, res, err)
}

// finishSignIn issues the session token, or drops the session when sign-in failed
func (h *MarketHandler) finishSignIn(c *gin.Context, handlerName string, status int, message, sid string, res models.Resolution, err error) {
	if err == nil {
		var token string
		token, err = h.tokens.Issue(sid, res.PrincipalID)
		if err == nil {
			utils.JSONResponse(c, status, helpers.SessionResponse{
				Token:       token,
				PrincipalID: res.PrincipalID,
				Role:        string(res.Role),
				Profile:     helpers.ProfileView(res.Profile),
			}, message)
			helpers.LogSuccess(handlerName, message, map[string]any{
				"principal_id": res.PrincipalID,
				"role":         string(res.Role),
			})
			return
		}
	}

	h.sessions.Close(sid)
	errStatus, errMessage := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, errStatus, fmt.Errorf("%s: %w", errMessage, err), errMessage)
	utils.Warn(handlerName+": sign-in failed", map[string]any{
		"handler": handlerName,
		"error":   err.Error(),
	})
}

// WhoAmIHandler handles GET /sessions/me
func (h *MarketHandler) WhoAmIHandler(c *gin.Context) {
	res, err := h.accounts.WhoAmI(c.Request.Context(), sessionFrom(c))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WhoAmIHandler: resolution failed", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.SessionResponse{
		PrincipalID: res.PrincipalID,
		Role:        string(res.Role),
		Profile:     helpers.ProfileView(res.Profile),
	}, "principal resolved successfully")
}

// LogoutHandler handles DELETE /sessions
func (h *MarketHandler) LogoutHandler(c *gin.Context) {
	sid, _ := c.MustGet(ctxSessionID).(string)
	h.accounts.Logout(sessionFrom(c))
	h.sessions.Close(sid)

	utils.JSONResponse(c, http.StatusOK, nil, "signed out successfully")
	helpers.LogSuccess("LogoutHandler", "signed out successfully", map[string]any{"session_id": sid})
}

// profileFields merges free-form details with the typed request fields; empty
// typed values are left out
func profileFields(details map[string]any, typed map[string]string) (models.Fields, error) {
	fields, err := models.NewFields(details)
	if err != nil {
		return nil, err
	}
	for k := range fields {
		if models.IsReserved(k) {
			return nil, fmt.Errorf("details: %q: %w", k, marketerrors.ErrReservedField)
		}
	}
	for k, v := range typed {
		if v != "" {
			fields[k] = models.String(v)
		}
	}
	return fields, nil
}
