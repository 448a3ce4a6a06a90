// Package protocol defines the line-delimited JSON wire format spoken
// between the pomo CLI and the daemon over the Unix socket. Each connection
// carries exactly one request and one response, both single JSON objects
// terminated by a newline.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/pomokit/pomo/internal/timer"
)

// Size limits in bytes.
const (
	// MaxRequestSize caps one request line on the server side.
	MaxRequestSize = 4096
	// MaxResponseSize caps one response line on the client side.
	MaxResponseSize = 64 * 1024
)

// Command names.
const (
	CmdStart  = "start"
	CmdPause  = "pause"
	CmdResume = "resume"
	CmdStop   = "stop"
	CmdStatus = "status"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request is one client command. Params carries overrides for start and is
// an empty object for every other command.
type Request struct {
	Command string       `json:"command"`
	Params  *StartParams `json:"params,omitempty"`
}

// StartParams are the optional per-session overrides of a start command.
// Absent fields fall back to the daemon's configured defaults.
type StartParams struct {
	WorkMinutes      *int    `json:"workMinutes,omitempty"`
	BreakMinutes     *int    `json:"breakMinutes,omitempty"`
	LongBreakMinutes *int    `json:"longBreakMinutes,omitempty"`
	TaskName         *string `json:"taskName,omitempty"`
	AutoCycle        *bool   `json:"autoCycle,omitempty"`
	FocusMode        *bool   `json:"focusMode,omitempty"`
}

// Response is the daemon's reply. Data is omitted on errors.
type Response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    *timer.Snapshot `json:"data,omitempty"`
}

// Success reports whether the response carries a success status.
func (r *Response) Success() bool {
	return r.Status == StatusSuccess
}

// KnownCommand reports whether name is a command the daemon understands.
func KnownCommand(name string) bool {
	switch name {
	case CmdStart, CmdPause, CmdResume, CmdStop, CmdStatus:
		return true
	}
	return false
}

// SuccessResponse builds a success reply with a state snapshot.
func SuccessResponse(message string, snap timer.Snapshot) Response {
	return Response{Status: StatusSuccess, Message: message, Data: &snap}
}

// ErrorResponse builds an error reply. Data stays unset.
func ErrorResponse(message string) Response {
	return Response{Status: StatusError, Message: message}
}

// Encode marshals the request as one newline-terminated line.
func (r Request) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return append(data, '\n'), nil
}

// Encode marshals the response as one newline-terminated line.
func (r Response) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeRequest parses one request line.
func DecodeRequest(line []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &req, nil
}

// DecodeResponse parses one response line.
func DecodeResponse(line []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}
