package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// optionalString returns nil for an absent or empty query parameter.
func optionalString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

// optionalInts parses integer query parameters, collecting every malformed
// one into a single validation error.
func optionalInts(r *http.Request, names ...string) (map[string]*int, error) {
	var errs validator.ValidationErrors
	out := make(map[string]*int, len(names))
	for _, name := range names {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			out[name] = nil
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add(name, name+" must be an integer")
			continue
		}
		out[name] = &n
	}
	return out, errs.Err()
}
