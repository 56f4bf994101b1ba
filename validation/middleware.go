package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// Middleware is the shape router chains compose with.
type Middleware func(http.Handler) http.Handler

func writeFailed(w http.ResponseWriter, errs []FieldError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"message": "Validation failed",
		"errors":  errs,
	})
}

func writeMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Query validates the query parameters named by schema. Absent parameters
// stay absent (they are not coerced to empty strings), so optional rules
// skip them entirely.
func Query(schema Schema) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			data := make(map[string]any, len(schema))
			for _, f := range schema {
				if q.Has(f.Name) {
					data[f.Name] = q.Get(f.Name)
				}
			}

			if errs := Validate(data, schema); len(errs) > 0 {
				writeFailed(w, errs)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Params validates path values named by the schema's fields. The route
// pattern must declare a matching wildcard for each field.
func Params(schema Schema) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := make(map[string]any, len(schema))
			for _, f := range schema {
				data[f.Name] = r.PathValue(f.Name)
			}

			if errs := Validate(data, schema); len(errs) > 0 {
				writeFailed(w, errs)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UpdateUserBody validates a user update request: the path id first (its
// errors short-circuit before the body is even read), then the body fields,
// and finally the body-level requirement that at least one updatable field
// is present. The raw body is restored for the handler to decode.
func UpdateUserBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idData := map[string]any{"id": r.PathValue("id")}
		if errs := Validate(idData, UserIDSchema); len(errs) > 0 {
			writeFailed(w, errs)
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeMessage(w, "Invalid request body")
			return
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))

		body := map[string]any{}
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				writeMessage(w, "Invalid request body")
				return
			}
		}

		if errs := Validate(body, UpdateUserSchema); len(errs) > 0 {
			writeFailed(w, errs)
			return
		}

		// Presence is checked on the raw body keys, independent of whether
		// the values themselves were valid.
		hasAny := false
		for _, name := range updatableUserFields {
			if _, ok := body[name]; ok {
				hasAny = true
				break
			}
		}
		if !hasAny {
			writeMessage(w, "At least one field is required to update")
			return
		}

		next.ServeHTTP(w, r)
	})
}
