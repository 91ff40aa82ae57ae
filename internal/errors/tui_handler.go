package errors

import (
	"sync"
	"time"
)

// TUIHandler stores messages for display as transient notices in the TUI.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	onMsg    func(msg Message)
	now      func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// String returns the label shown in front of a notice.
func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeSuccess:
		return "success"
	default:
		return "info"
	}
}

// NewTUIHandler creates a handler; onMsg, if set, is called for every message.
func NewTUIHandler(onMsg func(msg Message)) *TUIHandler {
	return &TUIHandler{onMsg: onMsg, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, msgType MessageType) {
	h.mu.Lock()
	message := Message{Text: text, Type: msgType, Timestamp: h.now()}
	h.messages = append(h.messages, message)
	onMsg := h.onMsg
	h.mu.Unlock()

	if onMsg != nil {
		onMsg(message)
	}
}

// GetLatest returns the most recent message.
func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Active returns the most recent message if it is younger than ttl.
func (h *TUIHandler) Active(ttl time.Duration) (Message, bool) {
	msg, ok := h.GetLatest()
	if !ok || h.now().Sub(msg.Timestamp) >= ttl {
		return Message{}, false
	}
	return msg, true
}

func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

func (h *TUIHandler) GetAll() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}
