package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/samersoltani/dewini-server/internal/application"
	"github.com/samersoltani/dewini-server/internal/domain/entity"
	"github.com/samersoltani/dewini-server/pkg/response"
	"github.com/samersoltani/dewini-server/pkg/validation"
)

// UserHandler exposes registration, login, and the password-reset flow.
// User-facing copy is French, matching the Dewini frontend.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Email         string `json:"email" binding:"required,email"`
	Telephone     string `json:"telephone"`
	DateNaissance string `json:"dateNaissance"`
	GrpSang       string `json:"grpSang"`
	Password      string `json:"password" binding:"required,pwd"`
	Role          string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Typed(c, http.StatusBadRequest, "Requête invalide", "error", gin.H{"details": validation.ToDetails(err)})
		return
	}

	u := &entity.User{
		Nom:           req.Nom,
		Prenom:        req.Prenom,
		Email:         req.Email,
		Telephone:     req.Telephone,
		DateNaissance: req.DateNaissance,
		GrpSang:       req.GrpSang,
		Password:      req.Password,
		Role:          req.Role,
	}
	if err := h.Svc.Register(c.Request.Context(), u); err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Typed(c, http.StatusBadRequest, "Email déjà utilisé", "error", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Typed(c, http.StatusBadRequest, "Erreur lors de l'inscription: "+err.Error(), "error", nil)
		return
	}
	response.Typed(c, http.StatusOK, "Inscription réussie", "success", nil)
}

// Login POST /api/users/login
// Unknown email and wrong password get the same body on purpose.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Typed(c, http.StatusBadRequest, "Email ou mot de passe incorrect", "error", nil)
		return
	}

	proj, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, application.ErrInvalidCredentials) {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Typed(c, http.StatusBadRequest, "Email ou mot de passe incorrect", "error", nil)
		return
	}
	response.Typed(c, http.StatusOK, "Connexion réussie", "success", gin.H{"user": proj})
}

// ForgotPassword POST /api/users/forgot-password
// The success body is identical whether or not the email exists.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		response.Message(c, http.StatusBadRequest, "L'email est requis")
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, application.ErrEmailSend) {
			response.Message(c, http.StatusBadRequest, "Erreur lors de l'envoi de l'email. Veuillez réessayer plus tard.")
			return
		}
		h.Logger.WithError(err).Error("forgot password failed")
		response.Message(c, http.StatusBadRequest, "Une erreur est survenue. Veuillez réessayer plus tard.")
		return
	}
	response.Message(c, http.StatusOK, "Si cet email est associé à un compte, vous recevrez un lien de réinitialisation.")
}

// ResetPassword POST /api/users/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Token invalide ou expiré")
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, application.ErrInvalidToken) {
			response.Message(c, http.StatusBadRequest, "Token invalide ou expiré")
			return
		}
		h.Logger.WithError(err).Error("reset password failed")
		response.Message(c, http.StatusBadRequest, "Erreur lors de la réinitialisation du mot de passe")
		return
	}
	response.Message(c, http.StatusOK, "Mot de passe réinitialisé avec succès")
}
