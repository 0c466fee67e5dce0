package mediahandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhinavsharma005/EduStream-2/internal/auth"
	"github.com/Abhinavsharma005/EduStream-2/internal/media"
)

type TokenResponse struct {
	Token     string `json:"token"`
	ServerURL string `json:"serverUrl"`
} // @name MediaTokenResponse

type ErrorResponse struct {
	Error string `json:"error"`
} // @name MediaErrorResponse

type Handler struct {
	issuer *media.TokenIssuer
	jwt    *auth.JWT
}

func New(issuer *media.TokenIssuer, jwt *auth.JWT) *Handler {
	return &Handler{issuer: issuer, jwt: jwt}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/api/media/token", auth.Required(h.jwt), h.token)
}

// @Summary		Issue a media join token
// @Description	Returns a video-room access token; teachers may publish.
// @Tags			Media
// @Param			room	query		string	true	"Room (session) ID"
// @Success		200	{object}	TokenResponse
// @Failure		400	{object}	ErrorResponse
// @Router			/api/media/token [get]
func (h *Handler) token(ginCtx *gin.Context) {
	room := ginCtx.Query("room")
	if room == "" {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: "room is required"})
		return
	}

	id := auth.From(ginCtx)
	tok, url, err := h.issuer.AccessToken(room, id.UserID, id.Role == auth.RoleTeacher)
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, TokenResponse{Token: tok, ServerURL: url})
}
