package authhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Abhinavsharma005/EduStream-2/internal/auth"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/user"
)

const tokenTTL = 7 * 24 * time.Hour

type Handler struct {
	svc user.IUserService
	jwt *auth.JWT
}

func New(svc user.IUserService, jwt *auth.JWT) *Handler {
	return &Handler{svc: svc, jwt: jwt}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/auth/signup", h.signup)
	r.POST("/api/auth/login", h.login)
	r.POST("/api/auth/logout", h.logout)
	r.GET("/api/auth/me", auth.Required(h.jwt), h.me)
}

// @Summary		Sign up
// @Description	Creates a teacher or student account and sets the auth cookie.
// @Tags			Auth
// @Param			body	body	SignupBody	true	"Account details"
// @Success		201	{object}	user.UserDTO
// @Failure		409	{object}	ErrorResponse
// @Router			/api/auth/signup [post]
func (h *Handler) signup(ginCtx *gin.Context) {
	var body SignupBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.svc.Signup(ginCtx.Request.Context(), body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, user.ErrEmailTaken) || errors.Is(err, user.ErrInvalidRole) {
			status = http.StatusConflict
		}
		ginCtx.JSON(status, &ErrorResponse{Error: err.Error()})
		return
	}

	h.setCookie(ginCtx, dto)
	ginCtx.JSON(http.StatusCreated, dto)
}

// @Summary		Log in
// @Description	Verifies credentials and sets the auth cookie.
// @Tags			Auth
// @Param			body	body	LoginBody	true	"Credentials"
// @Success		200	{object}	user.UserDTO
// @Failure		401	{object}	ErrorResponse
// @Router			/api/auth/login [post]
func (h *Handler) login(ginCtx *gin.Context) {
	var body LoginBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.svc.Authenticate(ginCtx.Request.Context(), body.Email, body.Password)
	if err != nil {
		ginCtx.JSON(http.StatusUnauthorized, &ErrorResponse{Error: user.ErrInvalidCredentials.Error()})
		return
	}

	h.setCookie(ginCtx, dto)
	ginCtx.JSON(http.StatusOK, dto)
}

// @Summary		Log out
// @Description	Clears the auth cookie.
// @Tags			Auth
// @Success		204
// @Router			/api/auth/logout [post]
func (h *Handler) logout(ginCtx *gin.Context) {
	ginCtx.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	ginCtx.Status(http.StatusNoContent)
}

// @Summary		Current user
// @Description	Returns the profile behind the auth cookie.
// @Tags			Auth
// @Success		200	{object}	user.UserDTO
// @Failure		401	{object}	ErrorResponse
// @Router			/api/auth/me [get]
func (h *Handler) me(ginCtx *gin.Context) {
	id := auth.From(ginCtx)
	dto, err := h.svc.GetProfile(ginCtx.Request.Context(), id.UserID)
	if err != nil {
		ginCtx.JSON(http.StatusNotFound, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, dto)
}

func (h *Handler) setCookie(ginCtx *gin.Context, dto *user.UserDTO) {
	tok, err := h.jwt.Sign(dto.ID, dto.Role, tokenTTL)
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.SetCookie(auth.CookieName, tok, int(tokenTTL.Seconds()), "/", "", false, true)
}
