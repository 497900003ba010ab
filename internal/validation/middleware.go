package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/eventhub/backend/internal/api"
)

// Require returns middleware that evaluates the rule set against the
// request body. On any violation it responds 400 with every failure
// listed and the handler is never invoked. On success the body is
// restored so the handler can decode it again.
func Require(rules RuleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf, err := io.ReadAll(r.Body)
			if err != nil {
				api.Error(w, http.StatusBadRequest, "Invalid request body", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(buf))

			body := map[string]any{}
			if len(bytes.TrimSpace(buf)) > 0 {
				if err := json.Unmarshal(buf, &body); err != nil {
					api.Error(w, http.StatusBadRequest, "Invalid request body", err)
					return
				}
			}

			if errs := rules.Validate(body); len(errs) > 0 {
				out := make([]map[string]string, 0, len(errs))
				for _, e := range errs {
					out = append(out, map[string]string{e.Field: e.Message})
				}
				api.JSON(w, http.StatusBadRequest, map[string]any{"errors": out})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
