package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/todo-webapp/internal/models"
	"github.com/ayush/todo-webapp/internal/response"
	"github.com/ayush/todo-webapp/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, username, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users    UserStore
	sessions SessionStore
}

func NewHandler(users UserStore, sessions SessionStore) *Handler {
	return &Handler{users: users, sessions: sessions}
}

// Register creates a new user and redirects to the login page.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := response.DecodeBody(r)
	if err != nil {
		response.Write(w, 400, "Invalid request body")
		return
	}
	name := response.Str(body, "name")
	email := response.Str(body, "email")
	username := response.Str(body, "username")
	password := response.Str(body, "password")

	if err := ValidateRegistration(name, email, username, password); err != nil {
		response.Write(w, 400, err.Error())
		return
	}

	if _, err := h.users.GetUserByEmail(r.Context(), email); err == nil {
		response.Write(w, 400, "Email already exist")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		response.WriteError(w, err)
		return
	}

	if _, err := h.users.GetUserByUsername(r.Context(), username); err == nil {
		response.Write(w, 400, "Username already exist")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		response.WriteError(w, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if _, err := h.users.CreateUser(r.Context(), name, email, username, string(hashed)); err != nil {
		response.WriteError(w, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Login verifies credentials, creates an authenticated session, and
// redirects to the dashboard. loginId may be an email or a username.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := response.DecodeBody(r)
	if err != nil {
		response.Write(w, 400, "Invalid request body")
		return
	}
	loginID := response.Str(body, "loginId")
	password := response.Str(body, "password")

	if loginID == "" || password == "" {
		response.Write(w, 400, "Missing user Credentials")
		return
	}

	var user *models.User
	if IsEmail(loginID) {
		user, err = h.users.GetUserByEmail(r.Context(), loginID)
	} else {
		user, err = h.users.GetUserByUsername(r.Context(), loginID)
	}
	if errors.Is(err, store.ErrNotFound) {
		response.Write(w, 400, "Invalid Credentials")
		return
	}
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		response.Write(w, 400, "Password is incorrect")
		return
	}

	sess, err := h.sessions.Create(r.Context(), models.UserSnapshot{
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	})
	if err != nil {
		response.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout destroys the current session and redirects to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
		response.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

// LogoutAll destroys every session belonging to the current user and
// reports how many were removed.
func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	deleted, err := h.sessions.DeleteByUsername(r.Context(), sess.User.Username)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteData(w, 200, "Logged out from all devices successfully", map[string]int64{
		"deletedCount": deleted,
	})
}
