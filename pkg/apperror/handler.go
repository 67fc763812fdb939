package apperror

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteError writes err as the JSON error envelope used by every endpoint:
//
//	{"error": {"code": "...", "message": "..."}}
//
// 5xx errors are logged at error level.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	code, body := ToHTTPError(err)

	if code >= 500 {
		log.Error("request error",
			slog.Int("status", code),
			slog.String("method", r.Method),
			slog.String("uri", r.URL.RequestURI()),
			slog.String("error", err.Error()),
		)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}
