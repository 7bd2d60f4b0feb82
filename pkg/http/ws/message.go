package ws

import "encoding/json"

// MessageType constants for the quiz socket protocol.
const (
	// Client -> Server
	TypeNextQuestion = "next_question"
	TypeResetQuiz    = "reset_quiz"
	TypePing         = "ping"

	// Server -> Client
	TypeQuestion      = "question"
	TypeQuizExhausted = "quiz_exhausted"
	TypeQuizReset     = "quiz_reset"
	TypeError         = "error"
	TypePong          = "pong"
)

// Error codes carried by TypeError messages.
const (
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeInternal           = "internal_error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a Message. A nil payload is omitted.
func NewMessage(msgType string, payload interface{}, requestID string) (Message, error) {
	msg := Message{Type: msgType, RequestID: requestID}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = data
	return msg, nil
}

// Client Messages (incoming)

type NextQuestionPayload struct {
	QuizCategory json.RawMessage `json:"quiz_category"`
}

// Server Messages (outgoing)

type QuestionPayload struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
	Asked      int    `json:"asked"`
}

type QuizExhaustedPayload struct {
	Asked int `json:"asked"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
