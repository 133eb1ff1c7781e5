package http

import (
	"context"
	"net/http"
	"strings"

	"element-quiz-service/internal/auth"
	"element-quiz-service/internal/catalog"
	"element-quiz-service/internal/domain"
	"element-quiz-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

// IdentityProvider is the account surface the REST API exposes.
type IdentityProvider interface {
	SignUp(ctx context.Context, in auth.SignUpInput) (domain.Profile, error)
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	SignOut(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (domain.Principal, error)
	OAuthRedirectURL(provider, origin string) (string, error)
}

type APIHandler struct {
	identity IdentityProvider
	log      *logger.Logger
}

func NewAPIHandler(identity IdentityProvider, log *logger.Logger) *APIHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &APIHandler{identity: identity, log: log}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type categoryResponse struct {
	ID    domain.Category `json:"id"`
	Label string          `json:"label"`
}

type oauthResponse struct {
	Provider    string `json:"provider"`
	RedirectURL string `json:"redirectUrl"`
}

func (h *APIHandler) ListElements(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	respondJSON(w, http.StatusOK, catalog.ByCategory(category))
}

func (h *APIHandler) GetElement(w http.ResponseWriter, r *http.Request) {
	element, ok := catalog.BySymbol(chi.URLParam(r, "symbol"))
	if !ok {
		handleError(w, h.log, domain.ErrElementNotFound)
		return
	}
	respondJSON(w, http.StatusOK, element)
}

func (h *APIHandler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	categories := catalog.Categories()
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c, Label: c.Label()})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *APIHandler) ListAchievements(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, catalog.Achievements())
}

func (h *APIHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in auth.SignUpInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, h.log, err)
		return
	}
	profile, err := h.identity.SignUp(r.Context(), in)
	if err != nil {
		handleError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, profile)
}

func (h *APIHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in signInRequest
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, h.log, err)
		return
	}
	session, err := h.identity.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		handleError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *APIHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		handleError(w, h.log, domain.ErrInvalidToken)
		return
	}
	if err := h.identity.SignOut(r.Context(), token); err != nil {
		handleError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) OAuthRedirect(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	origin := r.Header.Get("Origin")
	if origin == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		origin = scheme + "://" + r.Host
	}
	redirect, err := h.identity.OAuthRedirectURL(provider, origin)
	if err != nil {
		handleError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, oauthResponse{Provider: provider, RedirectURL: redirect})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
