// Package response implements the wire envelope shared by every API
// endpoint: a JSON object {status, message, data?, error?} carried over an
// HTTP 200, with the application status inside the payload. Redirect
// endpoints are the only ones that bypass it.
package response

import (
	"encoding/json"
	"mime"
	"net/http"
)

// Envelope is the uniform API response body.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Write sends an envelope with no data payload.
func Write(w http.ResponseWriter, status int, message string) {
	write(w, Envelope{Status: status, Message: message})
}

// WriteData sends an envelope carrying a data payload.
func WriteData(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, Envelope{Status: status, Message: message, Data: data})
}

// WriteError sends a 500 envelope with the underlying error attached for
// diagnostics.
func WriteError(w http.ResponseWriter, err error) {
	write(w, Envelope{Status: 500, Message: "Internal Server Error", Error: err.Error()})
}

func write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

// DecodeBody reads a request body submitted either as JSON or as a
// urlencoded form and returns the fields as a generic map. Form values are
// always strings; JSON preserves the submitted types so validation can tell
// a non-string apart from a missing field.
func DecodeBody(r *http.Request) (map[string]interface{}, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		body := map[string]interface{}{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, err
		}
		return body, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	body := make(map[string]interface{}, len(r.PostForm))
	for k := range r.PostForm {
		body[k] = r.PostForm.Get(k)
	}
	return body, nil
}

// Str returns the named field when it is present and a string.
func Str(body map[string]interface{}, key string) string {
	if s, ok := body[key].(string); ok {
		return s
	}
	return ""
}
