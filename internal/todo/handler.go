package todo

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ayush/todo-webapp/internal/auth"
	"github.com/ayush/todo-webapp/internal/models"
	"github.com/ayush/todo-webapp/internal/response"
	"github.com/ayush/todo-webapp/internal/store"
)

// pageLimit is the fixed page size for listing; callers paginate by passing
// a cumulative skip of already-seen items.
const pageLimit = 10

// Store defines the interface for todo persistence.
type Store interface {
	Insert(ctx context.Context, text, username string) (*models.Todo, error)
	ListByOwner(ctx context.Context, username string, skip, limit int64) ([]models.Todo, error)
	GetByID(ctx context.Context, id string) (*models.Todo, error)
	UpdateText(ctx context.Context, id, text string) (*models.Todo, error)
	Delete(ctx context.Context, id string) (*models.Todo, error)
}

// Handler holds todo HTTP handlers. Every handler takes the requesting
// username from the session the auth gate attached.
type Handler struct {
	todos Store
}

func NewHandler(todos Store) *Handler {
	return &Handler{todos: todos}
}

// Create validates the submitted text and persists a new item owned by the
// current user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	body, err := response.DecodeBody(r)
	if err != nil {
		response.Write(w, 400, "Invalid request body")
		return
	}

	text, err := ValidateText(body["todo"])
	if err != nil {
		response.Write(w, 400, err.Error())
		return
	}

	created, err := h.todos.Insert(r.Context(), text, sess.User.Username)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteData(w, 201, "Todo created successfully", created)
}

// List returns the next page of the current user's items. skip counts
// already-seen items; the page size is fixed at 10.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	skip, err := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	if err != nil {
		skip = 0
	}

	todos, err := h.todos.ListByOwner(r.Context(), sess.User.Username, skip, pageLimit)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if len(todos) == 0 {
		response.Write(w, 204, "No todos found")
		return
	}

	response.WriteData(w, 200, "Todo read successfully", todos)
}

// Edit replaces an item's text. The response carries the document as it
// was before the update. Existence is checked before ownership, and
// ownership before mutation.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	body, err := response.DecodeBody(r)
	if err != nil {
		response.Write(w, 400, "Invalid request body")
		return
	}

	todoID := response.Str(body, "todoId")
	if todoID == "" {
		response.Write(w, 400, "Missing todoId")
		return
	}

	text, err := ValidateText(body["newData"])
	if err != nil {
		response.Write(w, 400, err.Error())
		return
	}

	existing, err := h.todos.GetByID(r.Context(), todoID)
	if errors.Is(err, store.ErrNotFound) {
		response.Write(w, 404, "Todo not found")
		return
	}
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if existing.Username != sess.User.Username {
		response.Write(w, 401, "Unauthorized")
		return
	}

	prev, err := h.todos.UpdateText(r.Context(), todoID, text)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteData(w, 200, "Todo updated successfully", prev)
}

// Delete removes an item and returns the deleted document as confirmation.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	body, err := response.DecodeBody(r)
	if err != nil {
		response.Write(w, 400, "Invalid request body")
		return
	}

	todoID := response.Str(body, "todoId")
	if todoID == "" {
		response.Write(w, 400, "Missing todoId")
		return
	}

	existing, err := h.todos.GetByID(r.Context(), todoID)
	if errors.Is(err, store.ErrNotFound) {
		response.Write(w, 404, "Todo not found")
		return
	}
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if existing.Username != sess.User.Username {
		response.Write(w, 401, "Unauthorized to delete")
		return
	}

	deleted, err := h.todos.Delete(r.Context(), todoID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteData(w, 200, "Todo deleted successfully", deleted)
}
