package question

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// QuizSocket plays a quiz over a WebSocket. Each connection remembers the
// questions it has served, so clients only send the category.
type QuizSocket struct {
	service  *Service
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

func NewQuizSocket(service *Service, upgrader *websocket.Upgrader, logger zerolog.Logger) *QuizSocket {
	return &QuizSocket{
		service:  service,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "quiz_ws").Logger(),
	}
}

// quizSession is owned by the connection's read loop.
type quizSession struct {
	asked IDSet
}

// HandleWebSocket handles GET /quizzes/ws
func (s *QuizSocket) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	ctx := r.Context()
	logger := logging.FromContextOr(ctx, s.logger)
	c := ws.NewConnection(conn, logger)
	go c.WritePump()

	session := &quizSession{asked: NewIDSet()}
	logger.Info().Msg("quiz socket opened")
	c.ReadPump(func(msg ws.Message) error {
		return s.dispatch(ctx, c, session, msg)
	})
	c.Close()
	logger.Info().Int("asked", len(session.asked)).Msg("quiz socket closed")
}

func (s *QuizSocket) dispatch(ctx context.Context, c *ws.Connection, session *quizSession, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeNextQuestion:
		return s.nextQuestion(ctx, c, session, msg)
	case ws.TypeResetQuiz:
		session.asked = NewIDSet()
		return s.send(c, ws.TypeQuizReset, nil, msg.RequestID)
	case ws.TypePing:
		return s.send(c, ws.TypePong, nil, msg.RequestID)
	default:
		return s.send(c, ws.TypeError, ws.ErrorPayload{
			Code:    ws.ErrCodeUnknownMessageType,
			Message: "Unknown message type: " + msg.Type,
		}, msg.RequestID)
	}
}

func (s *QuizSocket) nextQuestion(ctx context.Context, c *ws.Connection, session *quizSession, msg ws.Message) error {
	var payload ws.NextQuestionPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return s.sendInvalid(c, "Invalid next_question payload", msg.RequestID)
		}
	}

	filter, err := ParseCategoryFilter(payload.QuizCategory)
	if err != nil {
		return s.sendInvalid(c, "quiz_category.id is required", msg.RequestID)
	}

	next, err := s.service.NextQuizQuestion(ctx, QuizState{Filter: filter, Previous: session.asked})
	if err != nil {
		sendErr := s.send(c, ws.TypeError, ws.ErrorPayload{
			Code:    ws.ErrCodeInternal,
			Message: "Could not draw a question",
		}, msg.RequestID)
		return errors.Join(err, sendErr)
	}

	if next == nil {
		return s.send(c, ws.TypeQuizExhausted, ws.QuizExhaustedPayload{Asked: len(session.asked)}, msg.RequestID)
	}

	session.asked.Add(next.ID)
	return s.send(c, ws.TypeQuestion, ws.QuestionPayload{
		ID:         next.ID,
		Question:   next.Question,
		Answer:     next.Answer,
		Difficulty: next.Difficulty,
		Category:   next.Category,
		Asked:      len(session.asked),
	}, msg.RequestID)
}

func (s *QuizSocket) sendInvalid(c *ws.Connection, message, requestID string) error {
	return s.send(c, ws.TypeError, ws.ErrorPayload{
		Code:    ws.ErrCodeInvalidPayload,
		Message: message,
	}, requestID)
}

func (s *QuizSocket) send(c *ws.Connection, msgType string, payload interface{}, requestID string) error {
	msg, err := ws.NewMessage(msgType, payload, requestID)
	if err != nil {
		return err
	}
	return c.Send(msg)
}
