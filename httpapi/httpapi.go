// Package httpapi holds the JSON response helpers shared by the program
// handlers.
package httpapi

import (
	"encoding/json"
	"net/http"

	"soldash/anchor"
)

// ErrorResponse is the uniform error payload. Every failure, whatever its
// cause, is flattened to a display string for the dashboard's notification
// area.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Message     string   `json:"message"`
	Code        int      `json:"code"`
	ProgramLogs []string `json:"program_logs,omitempty"`
}

// JSON writes data with the given status.
func JSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes a plain error payload.
func Error(w http.ResponseWriter, message string, status int) {
	JSON(w, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}, status)
}

// ProgramError writes a remote-call failure, mapping custom program error
// codes through the program's table and attaching any program logs.
func ProgramError(w http.ResponseWriter, err error, programErrors map[int]string) {
	JSON(w, ErrorResponse{
		Error:       http.StatusText(http.StatusBadGateway),
		Message:     anchor.Describe(err, programErrors),
		Code:        http.StatusBadGateway,
		ProgramLogs: anchor.ProgramLogs(err),
	}, http.StatusBadGateway)
}
