package handlers

import (
	"fmt"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"shippingerp/services"
)

type UserHandler struct {
	Service UserService
	Log     *zap.Logger
}

// Signup handler
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	user, err := h.Service.Signup(r.Context(), in)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeOK(w, http.StatusCreated, "User signed up successfully", user.Out())
}

// Login accepts a JSON body or an OAuth2 password form, where username holds
// the email. The token is returned as is so OAuth2 clients can read it.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			writeError(w, r, h.Log, fmt.Errorf("%w: invalid form: %v", services.ErrValidation, err))
			return
		}
		creds.Email = r.PostFormValue("username")
		if creds.Email == "" {
			creds.Email = r.PostFormValue("email")
		}
		creds.Password = r.PostFormValue("password")
	default:
		if err := decodeJSON(r, &creds); err != nil {
			writeError(w, r, h.Log, err)
			return
		}
	}

	token, err := h.Service.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// Me returns the caller. It also serves the staff and admin probe routes.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "", CurrentUser(r).Out())
}
