// Package http exposes the injected services to the frontend over a JSON
// REST surface plus a websocket change feed.
package http

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

const (
	// time allowed for connections to resolve before server shuts down.
	serverShutdownTime = 3 * time.Second
	// heartbeat for websocket connections.
	websocketPingConnections = 5 * time.Second
	websocketWriteTimeout    = 5 * time.Second
)

// errResponse represents the structure of an error sent over http.
type errResponse struct {
	Status int    `json:"status"`
	Trace  string `json:"trace"`
}

// SendErr sends the err over http and logs internal errors.
func SendErr(w http.ResponseWriter, r *http.Request, err error) {
	code, message := contoso.ErrorCode(err), contoso.ErrorMessage(err)

	if code == contoso.EINTERNAL {
		LogError(r, err)
	}

	status := FromErrorCodeToStatus(code)
	w.WriteHeader(status)
	WriteJSON(w, errResponse{Status: status, Trace: message})
}

func LogError(r *http.Request, err error) {
	log.Printf("[HTTP] error: %s %s: %s\n", r.URL.Path, r.Method, err)
}

func WriteJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(data)
}

var codes = map[string]int{
	contoso.ECONFLICT:       http.StatusConflict,
	contoso.EINVALID:        http.StatusBadRequest,
	contoso.ENOTFOUND:       http.StatusNotFound,
	contoso.ENOTIMPLEMENTED: http.StatusNotImplemented,
	contoso.EUNAUTHORIZED:   http.StatusUnauthorized,
	contoso.EINTERNAL:       http.StatusInternalServerError,
}

// FromErrorCodeToStatus maps an application error code to a http status code,
// if no mapping is possible status code 500 is returned.
func FromErrorCodeToStatus(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// queryInt parses an optional integer query parameter, nil when absent.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, contoso.Errorf(contoso.EINVALID, "invalid %s format", name)
	}
	return &v, nil
}
