package sessionhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhinavsharma005/EduStream-2/internal/auth"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/session"
)

type Handler struct {
	svc session.ISessionService
	jwt *auth.JWT
}

func New(svc session.ISessionService, jwt *auth.JWT) *Handler {
	return &Handler{svc: svc, jwt: jwt}
}

func (h *Handler) Register(r gin.IRoutes) {
	required := auth.Required(h.jwt)
	r.GET("/api/sessions", required, h.list)
	r.POST("/api/sessions", required, auth.RequireRole(auth.RoleTeacher), h.create)
	r.GET("/api/sessions/:id", required, h.info)
	r.POST("/api/sessions/:id/join", required, h.join)
	r.POST("/api/sessions/:id/end", required, h.end)
}

// @Summary		Create a session
// @Description	Teacher schedules a new class session.
// @Tags			Sessions
// @Param			body	body	CreateSessionBody	true	"Session details"
// @Success		201	{object}	session.SessionDTO
// @Failure		403	{object}	ErrorResponse
// @Router			/api/sessions [post]
func (h *Handler) create(ginCtx *gin.Context) {
	var body CreateSessionBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	id := auth.From(ginCtx)
	dto, err := h.svc.CreateSession(ginCtx.Request.Context(),
		id.UserID, body.Topic, body.Description, body.StartTime, body.DurationMins)
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusCreated, dto)
}

// @Summary		List sessions
// @Description	Teachers see sessions they host; students see sessions they joined.
// @Tags			Sessions
// @Success		200	{array}	session.SessionDTO
// @Router			/api/sessions [get]
func (h *Handler) list(ginCtx *gin.Context) {
	id := auth.From(ginCtx)

	var (
		out []session.SessionDTO
		err error
	)
	if id.Role == auth.RoleTeacher {
		out, err = h.svc.ListForHost(ginCtx.Request.Context(), id.UserID)
	} else {
		out, err = h.svc.ListForParticipant(ginCtx.Request.Context(), id.UserID)
	}
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, out)
}

// @Summary		Get session details
// @Tags			Sessions
// @Param			id	path		string	true	"Session ID"
// @Success		200	{object}	session.SessionDTO
// @Failure		404	{object}	ErrorResponse
// @Router			/api/sessions/{id} [get]
func (h *Handler) info(ginCtx *gin.Context) {
	dto, err := h.svc.GetSession(ginCtx.Request.Context(), ginCtx.Param("id"))
	if err != nil {
		ginCtx.JSON(http.StatusNotFound, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, dto)
}

// @Summary		Join a session
// @Description	Host's first join flips the session live; students self-enrol.
// @Tags			Sessions
// @Param			id	path		string	true	"Session ID"
// @Success		200	{object}	session.SessionDTO
// @Failure		409	{object}	ErrorResponse
// @Router			/api/sessions/{id}/join [post]
func (h *Handler) join(ginCtx *gin.Context) {
	id := auth.From(ginCtx)
	dto, err := h.svc.JoinSession(ginCtx.Request.Context(), ginCtx.Param("id"), id.UserID)
	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, session.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		ginCtx.JSON(status, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, dto)
}

// @Summary		End a session
// @Description	Host marks the session ended.
// @Tags			Sessions
// @Param			id	path	string	true	"Session ID"
// @Success		202
// @Failure		409	{object}	ErrorResponse
// @Router			/api/sessions/{id}/end [post]
func (h *Handler) end(ginCtx *gin.Context) {
	id := auth.From(ginCtx)
	if err := h.svc.EndSession(ginCtx.Request.Context(), ginCtx.Param("id"), id.UserID); err != nil {
		status := http.StatusConflict
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, session.ErrNotHost):
			status = http.StatusForbidden
		}
		ginCtx.JSON(status, &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.Status(http.StatusAccepted)
}
