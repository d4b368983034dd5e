package handlers

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api/middleware"
	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/utils"
)

const (
	oauthSessionName    = "oauth_state"
	oauthStateTTL       = 10 * time.Minute
	defaultCallbackPath = "/dashboard"
)

// AuthSettings carries the deployment details the auth flow needs.
type AuthSettings struct {
	FrontendURL string
	Secure      bool
}

type AuthHandler struct {
	provider services.IdentityProvider
	identity *services.IdentityService
	sessions *services.SessionManager
	store    sessions.Store
	settings AuthSettings
	log      *zap.Logger
}

func NewAuthHandler(provider services.IdentityProvider, identity *services.IdentityService, sessionManager *services.SessionManager, store sessions.Store, settings AuthSettings, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		identity: identity,
		sessions: sessionManager,
		store:    store,
		settings: settings,
		log:      log,
	}
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Auth
// @Param callbackUrl query string false "Path to return to after login"
// @Success 307
// @Router /api/auth/google/login [get]
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	callback := safeCallbackPath(r.URL.Query().Get("callbackUrl"))

	state, err := GenerateState(map[string]string{"callbackUrl": callback})
	if err != nil {
		h.log.Error("failed to generate oauth state", zap.Error(err))
		h.failLogin(w, r, "state_error")
		return
	}

	// A corrupt or stale cookie just yields a fresh session.
	sess, _ := h.store.Get(r, oauthSessionName)
	sess.Options = h.stateCookieOptions(int(oauthStateTTL.Seconds()))
	sess.Values["state"] = state
	if err := sess.Save(r, w); err != nil {
		h.log.Error("failed to save oauth state", zap.Error(err))
		h.failLogin(w, r, "state_error")
		return
	}

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback godoc
// @Summary Complete Google sign-in
// @Description Sets the session cookie and redirects to the frontend. Failures redirect to the login page with an error code.
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307
// @Router /api/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if providerErr := r.FormValue("error"); providerErr != "" {
		h.log.Info("provider rejected sign-in", zap.String("error", providerErr))
		h.failLogin(w, r, "access_denied")
		return
	}

	sess, _ := h.store.Get(r, oauthSessionName)
	expected, _ := sess.Values["state"].(string)
	// The state is single use.
	delete(sess.Values, "state")
	sess.Options = h.stateCookieOptions(-1)
	_ = sess.Save(r, w)

	state := r.FormValue("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		h.failLogin(w, r, "invalid_state")
		return
	}
	stateData, err := DecodeState(state)
	if err != nil {
		h.failLogin(w, r, "invalid_state")
		return
	}

	identity, err := h.provider.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		h.log.Warn("oauth exchange failed", zap.Error(err))
		h.failLogin(w, r, "exchange_failed")
		return
	}

	user, issued, err := h.identity.SignIn(r.Context(), identity)
	if err != nil {
		h.log.Error("sign-in failed", zap.String("email", identity.Email), zap.Error(err))
		h.failLogin(w, r, "signin_failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    issued.Token,
		Path:     "/",
		MaxAge:   int(h.sessions.MaxAge().Seconds()),
		Expires:  issued.ExpiresAt,
		HttpOnly: true,
		Secure:   h.settings.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.log.Info("user signed in", zap.String("userId", user.ID.String()))
	http.Redirect(w, r, h.settings.FrontendURL+safeCallbackPath(stateData["callbackUrl"]), http.StatusTemporaryRedirect)
}

// Session godoc
// @Summary Current session
// @Description Returns the signed-in user's stored profile, or no data for anonymous callers
// @Description and sessions whose user has been deleted.
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload{data=services.Principal}
// @Router /api/auth/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	payload := utils.Payload{Success: true}
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		current, err := h.identity.Current(r.Context(), principal)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		if current != nil {
			payload.Data = current
		}
	}
	utils.JSONResponse(w, http.StatusOK, payload)
}

// Logout godoc
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.settings.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (h *AuthHandler) stateCookieOptions(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/api/auth",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.settings.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.settings.FrontendURL+"/login?error="+url.QueryEscape(code), http.StatusTemporaryRedirect)
}
