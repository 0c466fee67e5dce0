package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Abhinavsharma005/EduStream-2/internal/metrics"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/liveroom"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 20 * time.Second // must be < pongWait
	readLimit  = 4096
)

var (
	ErrNotJoined     = errors.New("join-room required first")
	ErrAlreadyJoined = errors.New("connection already joined another room")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true }, // dev-only
}

// ConnContext carries the identity a connection established at join time.
// RoomID/UserID stay empty until a join-room event succeeds.
type ConnContext struct {
	ConnID string
	RoomID string
	UserID string
	conn   *clientConn
}

// WsServer is the room event router: every inbound event runs the same
// mutate-then-fan-out pipeline against the liveroom state.
type WsServer struct {
	hub    *Hub
	router *Router
	state  *liveroom.State
}

func NewWsServer(h *Hub, state *liveroom.State) *WsServer {
	srv := &WsServer{
		hub:    h,
		router: NewRouter(),
		state:  state,
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}

	conn := &clientConn{id: uuid.NewString(), rawConn: rawConn}
	metrics.WsConnections.Inc()
	zap.L().Debug("ws.connected", zap.String("conn_id", conn.id))

	go s.reader(conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Event handlers: event → mutation → fan-out
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	// 🔹 join-room ------------------------------------------------------------
	Register(s.router, EvtJoinRoom,
		func(_ context.Context, cc *ConnContext, req JoinRoomBody) error {
			if cc.RoomID != "" && (cc.RoomID != req.RoomID || cc.UserID != req.UserID) {
				return ErrAlreadyJoined
			}

			s.state.Registry.Register(cc.ConnID, req.RoomID, req.UserID)
			s.hub.Join(req.RoomID, cc.conn)
			res := s.state.Membership.Join(req.RoomID, req.UserID, cc.ConnID)
			cc.RoomID, cc.UserID = req.RoomID, req.UserID

			zap.L().Debug("ws.join",
				zap.String("room_id", req.RoomID),
				zap.String("user_id", req.UserID),
				zap.Int("unique_users", res.UniqueUsers))

			// Everyone sees the distinct-user count, multi-tab collapsed.
			s.hub.Broadcast(req.RoomID,
				encodeEvent(EvtParticipantCount, ParticipantCountBody{Count: res.UniqueUsers}))

			// Catch the joiner up before anything else reaches them.
			snap := s.state.Interactions.Snapshot(req.RoomID)
			if err := cc.conn.write(websocket.TextMessage, encodeEvent(EvtSyncRoomState, snap)); err != nil {
				zap.L().Warn("ws.sync_room_state", zap.Error(err))
			}

			s.hub.BroadcastExcept(req.RoomID,
				encodeEvent(EvtUserJoined, UserJoinedBody{UserID: req.UserID}), cc.conn)
			return nil
		})

	// 🔹 send-message ---------------------------------------------------------
	// The payload's roomId is ignored past validation: a connection only ever
	// acts on the room it joined, whatever its frames claim.
	Register(s.router, EvtSendMessage,
		func(_ context.Context, cc *ConnContext, req ChatMessageBody) error {
			if cc.RoomID == "" {
				return ErrNotJoined
			}
			s.hub.Broadcast(cc.RoomID, encodeEvent(EvtNewMessage, NewMessageBody{
				RoomID:    cc.RoomID,
				Message:   req.Message,
				Sender:    req.Sender,
				SenderID:  req.SenderID,
				Timestamp: time.Now().UnixMilli(),
			}))
			return nil
		})

	// 🔹 create-poll ----------------------------------------------------------
	Register(s.router, EvtCreatePoll,
		func(_ context.Context, cc *ConnContext, req CreatePollBody) error {
			if cc.RoomID == "" {
				return ErrNotJoined
			}
			poll := s.state.Interactions.CreatePoll(cc.RoomID, req.Question, req.Options)
			s.hub.Broadcast(cc.RoomID, encodeEvent(EvtNewPoll, poll))
			return nil
		})

	// 🔹 vote-poll ------------------------------------------------------------
	Register(s.router, EvtVotePoll,
		func(_ context.Context, cc *ConnContext, req VotePollBody) error {
			if cc.RoomID == "" {
				return ErrNotJoined
			}
			poll, err := s.state.Interactions.Vote(cc.RoomID, req.PollID, req.OptionIndex, cc.UserID)
			if err != nil {
				return err
			}
			s.hub.Broadcast(cc.RoomID, encodeEvent(EvtUpdatePollResults, PollResultsBody{Poll: poll}))
			return nil
		})

	// 🔹 create-quiz ----------------------------------------------------------
	Register(s.router, EvtCreateQuiz,
		func(_ context.Context, cc *ConnContext, req CreateQuizBody) error {
			if cc.RoomID == "" {
				return ErrNotJoined
			}
			quiz, err := s.state.Interactions.CreateQuiz(cc.RoomID, req.Question, req.Options, req.CorrectIndex)
			if err != nil {
				return err
			}
			s.hub.Broadcast(cc.RoomID, encodeEvent(EvtNewQuiz, quiz))
			return nil
		})

	// 🔹 answer-quiz ----------------------------------------------------------
	Register(s.router, EvtAnswerQuiz,
		func(_ context.Context, cc *ConnContext, req AnswerQuizBody) error {
			if cc.RoomID == "" {
				return ErrNotJoined
			}
			answers, err := s.state.Interactions.Answer(cc.RoomID, req.QuizID, req.OptionIndex, cc.UserID)
			if err != nil {
				return err
			}
			s.hub.Broadcast(cc.RoomID,
				encodeEvent(EvtUpdateQuizResults, QuizResultsBody{QuizID: req.QuizID, Answers: answers}))
			return nil
		})
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) reader(conn *clientConn) {
	defer s.teardown(conn)

	conn.rawConn.SetReadLimit(readLimit)
	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: conn.id, conn: conn}

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed or errored
		}
		metrics.WsEvents.WithLabelValues(env.Event).Inc()

		// ---- error -> {"event":"error", "body":{...}} ---------------
		if err := s.router.dispatch(context.Background(), cc, env); err != nil {
			metrics.WsEventErrors.WithLabelValues(env.Event).Inc()
			_ = conn.writeJSON(map[string]any{
				"event": EvtError,
				"body":  ErrorBody{Error: err.Error()},
			})
		}
	}
}

// teardown runs when the transport reports the connection gone. The
// registry tells us what to clean up; connections that never joined have
// nothing registered and only the socket to close.
func (s *WsServer) teardown(conn *clientConn) {
	defer metrics.WsConnections.Dec()
	defer conn.close()

	roomID, userID, ok := s.state.Registry.Lookup(conn.id)
	if !ok {
		return
	}

	res := s.state.Membership.Leave(roomID, userID, conn.id)
	s.state.Registry.Unregister(conn.id)
	s.hub.Leave(roomID, conn)

	zap.L().Debug("ws.disconnect",
		zap.String("room_id", roomID),
		zap.String("user_id", userID),
		zap.Bool("user_removed", res.UserRemoved))

	// Only a fully departed user changes the visible count; a closed tab of
	// a still-present user is invisible to the room.
	if res.UserRemoved && !res.RoomRemoved {
		s.hub.Broadcast(roomID,
			encodeEvent(EvtParticipantCount, ParticipantCountBody{Count: res.UniqueUsers}))
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			conn.close()
			return
		}
	}
}
