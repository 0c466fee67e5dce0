package http_server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Abhinavsharma005/EduStream-2/internal/auth"
	"github.com/Abhinavsharma005/EduStream-2/internal/http/authhandler"
	"github.com/Abhinavsharma005/EduStream-2/internal/http/mediahandler"
	"github.com/Abhinavsharma005/EduStream-2/internal/http/sessionhandler"
	"github.com/Abhinavsharma005/EduStream-2/internal/media"
	"github.com/Abhinavsharma005/EduStream-2/internal/metrics"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/session"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/user"
	"github.com/Abhinavsharma005/EduStream-2/internal/ws"
)

type httpServer struct {
	listenPort   uint16
	corsAllowUrl string
	srv          http.Server
	ln           net.Listener
	ctx          context.Context

	wsSrv       *ws.WsServer
	jwt         *auth.JWT
	userSvc     user.IUserService
	sessionSvc  session.ISessionService
	mediaIssuer *media.TokenIssuer
}

func NewHttpServer(
	ctx context.Context,
	listenPort uint16,
	corsAllowUrl string,
	wsSrv *ws.WsServer,
	jwt *auth.JWT,
	userSvc user.IUserService,
	sessionSvc session.ISessionService,
	mediaIssuer *media.TokenIssuer,
) *httpServer {
	return &httpServer{
		listenPort:   listenPort,
		corsAllowUrl: corsAllowUrl,
		ctx:          ctx,
		wsSrv:        wsSrv,
		jwt:          jwt,
		userSvc:      userSvc,
		sessionSvc:   sessionSvc,
		mediaIssuer:  mediaIssuer,
	}
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	routerEngine := gin.New()
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	// health + metrics
	routerEngine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	routerEngine.GET("/metrics", gin.WrapH(metrics.Handler()))

	// websocket endpoint
	routerEngine.GET("/ws", h.wsSrv.Handle)

	// REST API
	authhandler.New(h.userSvc, h.jwt).Register(routerEngine)
	sessionhandler.New(h.sessionSvc, h.jwt).Register(routerEngine)
	mediahandler.New(h.mediaIssuer, h.jwt).Register(routerEngine)

	// The dashboard runs on its own origin and sends the auth cookie.
	corsWrap := cors.New(cors.Options{
		AllowedOrigins:   []string{h.corsAllowUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	h.srv = http.Server{
		Handler: corsWrap.Handler(routerEngine),
	}

	return h.srv.Serve(h.ln)
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(h.ctx, 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err // e.g. active conns didn't finish in time
	}

	if ctx.Err() == context.DeadlineExceeded {
		zap.L().Error("http_dispose", zap.Error(errors.New("shutdown timed out")))
		log.Println("shutdown timeout (10 s)")
	}

	return nil
}
