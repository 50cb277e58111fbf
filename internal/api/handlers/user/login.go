package user

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/validation"
	"Votocon/internal/core/users"
)

// LoginHandler exchanges credentials for an access token
type LoginHandler struct {
	userService users.UserService
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(userService users.UserService) *LoginHandler {
	return &LoginHandler{userService: userService}
}

// HandleLogin handles POST /login
// Accepts either a JSON body or an OAuth2 password-grant style form, both with username and password.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if !decodeLoginForm(w, r, mediaType, &req) {
			return
		}
	default:
		if !handlers.DecodeJSON(w, r, validation.Login, &req) {
			return
		}
	}

	token, err := h.userService.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, token)
}

// decodeLoginForm reads form credentials and runs them through the login schema
func decodeLoginForm(w http.ResponseWriter, r *http.Request, mediaType string, req *users.LoginRequest) bool {
	r.Body = http.MaxBytesReader(w, r.Body, handlers.MaxRequestBodyBytes)

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(handlers.MaxRequestBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large (max 1MB)")
			return false
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid form body")
		return false
	}

	fields := map[string]string{}
	for _, key := range []string{"username", "password"} {
		if r.PostForm.Has(key) {
			fields[key] = r.PostForm.Get(key)
		}
	}

	body, err := json.Marshal(fields)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid form body")
		return false
	}
	return handlers.ValidateAndDecode(w, validation.Login, body, req)
}
