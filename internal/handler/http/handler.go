package http

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/emreyozkan/SportConnect/internal/auth"
	"github.com/emreyozkan/SportConnect/internal/feed"
	"github.com/emreyozkan/SportConnect/internal/user"
	"github.com/emreyozkan/SportConnect/web"
)

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Fullname        string `json:"fullname" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AddPostRequest struct {
	Content string `json:"content"`
}

type Handler struct {
	auth     auth.Service
	feed     feed.Service
	validate *validator.Validate
	renderer *Renderer
	cookies  cookieCodec
}

func NewHandler(authSvc auth.Service, feedSvc feed.Service, renderer *Renderer, sessionSecret string) *Handler {
	return &Handler{
		auth:     authSvc,
		feed:     feedSvc,
		validate: validator.New(),
		renderer: renderer,
		cookies:  newCookieCodec(sessionSecret),
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/login", h.handleLoginPage)
	router.Get("/register", h.handleRegisterPage)
	router.Post("/register", h.handleRegister)
	router.Post("/login", h.handleLogin)
	router.Get("/logout", h.handleLogout)

	router.Get("/", h.requirePage(h.handleHome))
	router.Get("/activities", h.requirePage(h.handleActivities))
	router.Get("/profile", h.requirePage(h.handleProfile))

	router.Post("/update-bio", h.requireAPI(h.handleUpdateBio))
	router.Post("/add-post", h.requireAPI(h.handleAddPost))

	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		// The static directory is embedded; missing means a broken build.
		panic(err)
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

type authedHandler func(w http.ResponseWriter, r *http.Request, userID uuid.UUID)

// requirePage gates a rendered page: an unauthenticated request is sent
// to the login page.
func (h *Handler) requirePage(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.auth.Authorize(r.Context(), h.cookies.tokenFromRequest(r))
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, userID)
	}
}

// requireAPI gates a JSON endpoint: an unauthenticated request gets 401.
func (h *Handler) requireAPI(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.auth.Authorize(r.Context(), h.cookies.tokenFromRequest(r))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, userID)
	}
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "login.html", nil)
}

func (h *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "register.html", nil)
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	view, err := h.feed.Home(r.Context(), userID)
	if err != nil {
		// A session pointing at a deleted user falls back to login.
		if errors.Is(err, user.ErrNotFound) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error().Err(err).Msg("Failed to build home view")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	h.renderPage(w, "index.html", view)
}

func (h *Handler) handleActivities(w http.ResponseWriter, r *http.Request, _ uuid.UUID) {
	h.renderPage(w, "activities.html", nil)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	view, err := h.feed.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error().Err(err).Msg("Failed to build profile view")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	h.renderPage(w, "profile.html", view)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	requestPayload := RegisterRequest{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		Fullname:        r.PostFormValue("fullname"),
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	err := h.auth.Register(r.Context(), auth.RegisterInput{
		Email:           requestPayload.Email,
		Password:        requestPayload.Password,
		ConfirmPassword: requestPayload.ConfirmPassword,
		Fullname:        requestPayload.Fullname,
	})
	if err != nil {
		var clientMessage string
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			clientMessage = "Passwords do not match"
		case errors.Is(err, user.ErrEmailExists):
			clientMessage = "Email already in use"
		default:
			log.Error().Err(err).Msg("Failed to register user")
			clientMessage = "Server error"
		}
		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	requestPayload := LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	token, err := h.auth.Login(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Failed to log user in")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.cookies.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), h.cookies.tokenFromRequest(r)); err != nil {
		log.Error().Err(err).Msg("Failed to destroy session")
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) handleUpdateBio(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.feed.UpdateBio(r.Context(), userID, r.PostFormValue("bio")); err != nil {
		log.Error().Err(err).Msg("Failed to update bio")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *Handler) handleAddPost(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var requestPayload AddPostRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.feed.CreatePost(r.Context(), userID, requestPayload.Content)
	if err != nil {
		if errors.Is(err, feed.ErrEmptyContent) {
			respondWithError(w, http.StatusBadRequest, "Post content cannot be empty")
			return
		}
		log.Error().Err(err).Msg("Failed to create post")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithJSON(w, http.StatusOK, created)
}

func (h *Handler) respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "All fields are required",
			Details: formatValidationErrors(validationErrors),
		})
		return
	}
	log.Error().Err(err).Msg("Unexpected error type during validation")
	respondWithError(w, http.StatusInternalServerError, "Internal validation error")
}

func (h *Handler) renderPage(w http.ResponseWriter, name string, data any) {
	if err := h.renderer.Render(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render page")
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
