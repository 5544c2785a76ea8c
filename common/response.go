// file: common/response.go

package common

import (
	"encoding/json"
	"net/http"
	"time"
)

// ResponseBody is the envelope every endpoint answers with: the HTTP status
// code repeated in the payload, a human readable message, a success flag, an
// optional body and the server timestamp.
type ResponseBody struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Status   bool   `json:"status"`
	Body     any    `json:"body"`
	Datetime string `json:"datetime"`
}

// WriteResponse writes a success envelope with the given code, message and body.
func WriteResponse(w http.ResponseWriter, code int, message string, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ResponseBody{
		Code:     code,
		Message:  message,
		Status:   code >= 200 && code < 300,
		Body:     body,
		Datetime: time.Now().Format(time.RFC3339),
	})
}
