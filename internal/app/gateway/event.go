/*
Package gateway implements the realtime messaging core: connection
lifecycle, identity binding, message relay with durable persistence,
read-state tracking and assignment notifications.

This file defines the wire protocol: a closed set of tagged events in both
directions, decoded and validated at the transport boundary so handlers
never touch raw payloads.
*/
package gateway

import (
	"encoding/json"

	"sehra/internal/app/message"
	"sehra/internal/app/user"
	"sehra/internal/pkg/errs"
)

// Client → server event names.
const (
	EventAuthenticate        = "authenticate"
	EventSendMessage         = "send_message"
	EventMarkMessagesRead    = "mark_messages_read"
	EventSupervisorAllocated = "supervisor_allocated"
)

// Server → client event names.
const (
	EventAuthenticated       = "authenticated"
	EventAuthenticationError = "authentication_error"
	EventUnreadCount         = "unread_count"
	EventReceiveMessage      = "receive_message"
	EventMessageSent         = "message_sent"
	EventMessageStatusUpdate = "message_status_update"
	EventMessagesMarkedRead  = "messages_marked_read"
	EventSupervisorAssigned  = "supervisor_assigned"
	EventClientAssigned      = "client_assigned"
	EventAllocationSuccess   = "allocation_success"
	EventError               = "error"
)

// Event is the outbound wire frame.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// envelope is the inbound wire frame before payload decoding.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IdentityClaim is the authenticate payload. Email is required; Token is an
// optional session JWT that, when present, must match the claimed account.
type IdentityClaim struct {
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// SendMessagePayload is the send_message payload.
type SendMessagePayload struct {
	ToUserID int64        `json:"toUserId"`
	Message  string       `json:"message"`
	Type     message.Type `json:"type,omitempty"`
}

// MarkReadPayload is the mark_messages_read payload.
type MarkReadPayload struct {
	FromUserID int64 `json:"fromUserId"`
}

// AllocationPayload is the supervisor_allocated payload.
type AllocationPayload struct {
	ClientID     int64 `json:"clientId"`
	SupervisorID int64 `json:"supervisorId"`
}

// Inbound is the decoded client event. Exactly one variant is non-nil after
// a successful DecodeInbound.
type Inbound struct {
	Authenticate *IdentityClaim
	Send         *SendMessagePayload
	MarkRead     *MarkReadPayload
	Allocation   *AllocationPayload
}

// DecodeInbound parses a raw frame into its typed variant. Unknown event
// names and malformed payloads are rejected here, before any handler runs.
func DecodeInbound(raw []byte) (Inbound, *errs.CustomError) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Inbound{}, errs.NewError(errs.ErrInvalidJSONFormat)
	}

	decode := func(dst any) *errs.CustomError {
		if len(env.Payload) == 0 {
			return errs.NewError(errs.ErrInvalidParams)
		}
		if err := json.Unmarshal(env.Payload, dst); err != nil {
			return errs.NewError(errs.ErrInvalidParams)
		}
		return nil
	}

	switch env.Event {
	case EventAuthenticate:
		var p IdentityClaim
		if cerr := decode(&p); cerr != nil {
			return Inbound{}, cerr
		}
		return Inbound{Authenticate: &p}, nil

	case EventSendMessage:
		var p SendMessagePayload
		if cerr := decode(&p); cerr != nil {
			return Inbound{}, cerr
		}
		return Inbound{Send: &p}, nil

	case EventMarkMessagesRead:
		var p MarkReadPayload
		if cerr := decode(&p); cerr != nil {
			return Inbound{}, cerr
		}
		return Inbound{MarkRead: &p}, nil

	case EventSupervisorAllocated:
		var p AllocationPayload
		if cerr := decode(&p); cerr != nil {
			return Inbound{}, cerr
		}
		return Inbound{Allocation: &p}, nil
	}

	return Inbound{}, errs.NewError(errs.ErrInvalidParams)
}

// AuthResultPayload is pushed as authenticated after a successful bind.
type AuthResultPayload struct {
	Success bool      `json:"success"`
	UserID  int64     `json:"userId,omitempty"`
	Role    user.Role `json:"role,omitempty"`
}

// UnreadCountPayload is pushed right after authentication.
type UnreadCountPayload struct {
	Count int64 `json:"count"`
}

// MessageSentPayload acknowledges a relayed message to its sender.
type MessageSentPayload struct {
	Success   bool  `json:"success"`
	MessageID int64 `json:"messageId"`
}

// StatusUpdatePayload carries a read receipt back to a sender.
type StatusUpdatePayload struct {
	ToUserID int64 `json:"toUserId"`
	Read     bool  `json:"read"`
}

// MarkedReadPayload acknowledges a bulk mark-read to the reader.
type MarkedReadPayload struct {
	Success bool `json:"success"`
}

// SupervisorAssignedPayload notifies a client of its new supervisor.
type SupervisorAssignedPayload struct {
	SupervisorID int64  `json:"supervisorId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// ClientAssignedPayload notifies a supervisor of its new client.
type ClientAssignedPayload struct {
	ClientID int64  `json:"clientId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Package  string `json:"package"`
}

// AllocationSuccessPayload acknowledges an allocation to the admin.
type AllocationSuccessPayload struct {
	Success bool `json:"success"`
}
