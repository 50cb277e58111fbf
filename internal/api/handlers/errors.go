package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"Votocon/internal/api/validation"
)

// MaxRequestBodyBytes caps JSON request bodies (1MB)
const MaxRequestBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent, nothing more to tell the client
		log.Printf("Failed to encode response: %v", err)
	}
}

// DecodeJSON reads the request body, checks it against the named schema and decodes it into dst.
// On failure it writes the error response and returns false:
// 413 for an oversized body, 400 for malformed JSON, 422 for a schema mismatch.
func DecodeJSON(w http.ResponseWriter, r *http.Request, schema string, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large (max 1MB)")
			return false
		}
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "Failed to read request body")
		return false
	}

	if !json.Valid(body) {
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}

	return ValidateAndDecode(w, schema, body, dst)
}

// ValidateAndDecode runs the schema check on an already-read JSON document and decodes it into dst
func ValidateAndDecode(w http.ResponseWriter, schema string, body []byte, dst interface{}) bool {
	if err := validation.Validate(schema, body); err != nil {
		var schemaErr *validation.SchemaError
		if errors.As(err, &schemaErr) {
			WriteError(w, http.StatusUnprocessableEntity, "ValidationFailed", schemaErr.Error())
			return false
		}
		log.Printf("Schema validation error: %v", err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}
