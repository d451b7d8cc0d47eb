package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/todo-webapp/internal/auth"
	"github.com/ayush/todo-webapp/internal/models"
	"github.com/ayush/todo-webapp/internal/response"
	"github.com/ayush/todo-webapp/internal/store"
)

// fakeStore is an in-memory Store keeping natural insertion order.
type fakeStore struct {
	todos []models.Todo
	err   error
}

func (f *fakeStore) Insert(_ context.Context, text, username string) (*models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now().UTC()
	t := models.Todo{
		ID:        primitive.NewObjectID(),
		Todo:      text,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.todos = append(f.todos, t)
	return &t, nil
}

func (f *fakeStore) ListByOwner(_ context.Context, username string, skip, limit int64) ([]models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if skip < 0 {
		return nil, fmt.Errorf("invalid skip %d", skip)
	}
	var owned []models.Todo
	for _, t := range f.todos {
		if t.Username == username {
			owned = append(owned, t)
		}
	}
	if skip >= int64(len(owned)) {
		return nil, nil
	}
	owned = owned[skip:]
	if int64(len(owned)) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.todos {
		if t.ID.Hex() == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) UpdateText(_ context.Context, id, text string) (*models.Todo, error) {
	for i, t := range f.todos {
		if t.ID.Hex() == id {
			prev := t
			f.todos[i].Todo = text
			f.todos[i].UpdatedAt = time.Now().UTC()
			return &prev, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) (*models.Todo, error) {
	for i, t := range f.todos {
		if t.ID.Hex() == id {
			deleted := t
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, store.ErrNotFound
}

func sessionFor(username string) *models.Session {
	return &models.Session{
		ID:            "sess-" + username,
		Authenticated: true,
		User:          models.UserSnapshot{Username: username, Email: username + "@example.com", UserID: "u-" + username},
	}
}

func doJSON(t *testing.T, h http.HandlerFunc, sess *models.Session, method, target string, payload interface{}) response.Envelope {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithSession(req.Context(), sess))

	rec := httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env response.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestCreate(t *testing.T) {
	fs := &fakeStore{}
	h := NewHandler(fs)
	alice := sessionFor("alice")

	t.Run("success", func(t *testing.T) {
		env := doJSON(t, h.Create, alice, "POST", "/create-item", map[string]interface{}{"todo": "Buy milk"})
		assert.Equal(t, 201, env.Status)
		assert.Equal(t, "Todo created successfully", env.Message)
		require.Len(t, fs.todos, 1)
		assert.Equal(t, "Buy milk", fs.todos[0].Todo)
		assert.Equal(t, "alice", fs.todos[0].Username)
	})

	t.Run("invalid text not persisted", func(t *testing.T) {
		before := len(fs.todos)
		env := doJSON(t, h.Create, alice, "POST", "/create-item", map[string]interface{}{"todo": "ab"})
		assert.Equal(t, 400, env.Status)
		assert.Equal(t, "todo text length should be 3-100", env.Message)
		assert.Len(t, fs.todos, before)
	})

	t.Run("non-string text", func(t *testing.T) {
		env := doJSON(t, h.Create, alice, "POST", "/create-item", map[string]interface{}{"todo": 5})
		assert.Equal(t, 400, env.Status)
		assert.Equal(t, "todo text is not a text", env.Message)
	})

	t.Run("store error", func(t *testing.T) {
		broken := NewHandler(&fakeStore{err: fmt.Errorf("boom")})
		env := doJSON(t, broken.Create, alice, "POST", "/create-item", map[string]interface{}{"todo": "Buy milk"})
		assert.Equal(t, 500, env.Status)
		assert.Equal(t, "boom", env.Error)
	})
}

func TestListPagination(t *testing.T) {
	fs := &fakeStore{}
	h := NewHandler(fs)
	alice := sessionFor("alice")
	bob := sessionFor("bob")

	for i := 0; i < 23; i++ {
		_, err := fs.Insert(context.Background(), fmt.Sprintf("alice item %02d", i), "alice")
		require.NoError(t, err)
	}
	_, err := fs.Insert(context.Background(), "bob item", "bob")
	require.NoError(t, err)

	// Pages of <=10 partition the 23 items with no duplicates or omissions,
	// then a single empty 204 page.
	seen := map[string]bool{}
	skip := 0
	pages := 0
	for {
		req := httptest.NewRequest("GET", fmt.Sprintf("/read-item?skip=%d", skip), nil)
		req = req.WithContext(auth.WithSession(req.Context(), alice))
		rec := httptest.NewRecorder()
		h.List(rec, req)

		var env response.Envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))

		if env.Status == 204 {
			assert.Equal(t, "No todos found", env.Message)
			break
		}
		require.Equal(t, 200, env.Status)
		items := env.Data.([]interface{})
		require.LessOrEqual(t, len(items), 10)
		for _, it := range items {
			text := it.(map[string]interface{})["todo"].(string)
			assert.False(t, seen[text], "duplicate item %q", text)
			seen[text] = true
		}
		skip += len(items)
		pages++
		require.Less(t, pages, 10, "pagination failed to terminate")
	}
	assert.Len(t, seen, 23)

	// Bob only ever sees his own item.
	env := doJSON(t, http.HandlerFunc(h.List), bob, "GET", "/read-item", nil)
	assert.Equal(t, 200, env.Status)
	assert.Len(t, env.Data.([]interface{}), 1)
}

func TestListEmpty(t *testing.T) {
	h := NewHandler(&fakeStore{})
	env := doJSON(t, h.List, sessionFor("alice"), "GET", "/read-item", nil)
	assert.Equal(t, 204, env.Status)
	assert.Equal(t, "No todos found", env.Message)
	assert.Nil(t, env.Data)
}

func TestEdit(t *testing.T) {
	fs := &fakeStore{}
	h := NewHandler(fs)
	alice := sessionFor("alice")
	bob := sessionFor("bob")

	created, err := fs.Insert(context.Background(), "Buy milk", "alice")
	require.NoError(t, err)

	t.Run("missing id", func(t *testing.T) {
		env := doJSON(t, h.Edit, alice, "POST", "/edit-item", map[string]interface{}{"newData": "Buy bread"})
		assert.Equal(t, 400, env.Status)
		assert.Equal(t, "Missing todoId", env.Message)
	})

	t.Run("invalid text", func(t *testing.T) {
		env := doJSON(t, h.Edit, alice, "POST", "/edit-item", map[string]interface{}{
			"todoId": created.ID.Hex(), "newData": "ab",
		})
		assert.Equal(t, 400, env.Status)
	})

	t.Run("not found before ownership", func(t *testing.T) {
		// Bob probing an unknown id gets a 404, not an ownership error.
		env := doJSON(t, h.Edit, bob, "POST", "/edit-item", map[string]interface{}{
			"todoId": primitive.NewObjectID().Hex(), "newData": "Buy bread",
		})
		assert.Equal(t, 404, env.Status)
		assert.Equal(t, "Todo not found", env.Message)
	})

	t.Run("foreign owner", func(t *testing.T) {
		env := doJSON(t, h.Edit, bob, "POST", "/edit-item", map[string]interface{}{
			"todoId": created.ID.Hex(), "newData": "Buy bread",
		})
		assert.Equal(t, 401, env.Status)
		assert.Equal(t, "Unauthorized", env.Message)
		assert.Equal(t, "Buy milk", fs.todos[0].Todo, "foreign edit must not modify the item")
	})

	t.Run("success returns pre-update document", func(t *testing.T) {
		env := doJSON(t, h.Edit, alice, "POST", "/edit-item", map[string]interface{}{
			"todoId": created.ID.Hex(), "newData": "Buy bread",
		})
		assert.Equal(t, 200, env.Status)
		assert.Equal(t, "Todo updated successfully", env.Message)
		data := env.Data.(map[string]interface{})
		assert.Equal(t, "Buy milk", data["todo"])
		assert.Equal(t, "Buy bread", fs.todos[0].Todo)
	})
}

func TestDelete(t *testing.T) {
	fs := &fakeStore{}
	h := NewHandler(fs)
	alice := sessionFor("alice")
	bob := sessionFor("bob")

	created, err := fs.Insert(context.Background(), "Buy bread", "alice")
	require.NoError(t, err)

	t.Run("missing id", func(t *testing.T) {
		env := doJSON(t, h.Delete, alice, "POST", "/delete-item", map[string]interface{}{})
		assert.Equal(t, 400, env.Status)
		assert.Equal(t, "Missing todoId", env.Message)
	})

	t.Run("not found", func(t *testing.T) {
		env := doJSON(t, h.Delete, alice, "POST", "/delete-item", map[string]interface{}{
			"todoId": primitive.NewObjectID().Hex(),
		})
		assert.Equal(t, 404, env.Status)
	})

	t.Run("foreign owner", func(t *testing.T) {
		env := doJSON(t, h.Delete, bob, "POST", "/delete-item", map[string]interface{}{
			"todoId": created.ID.Hex(),
		})
		assert.Equal(t, 401, env.Status)
		assert.Equal(t, "Unauthorized to delete", env.Message)
		assert.Len(t, fs.todos, 1)
	})

	t.Run("success returns deleted document", func(t *testing.T) {
		env := doJSON(t, h.Delete, alice, "POST", "/delete-item", map[string]interface{}{
			"todoId": created.ID.Hex(),
		})
		assert.Equal(t, 200, env.Status)
		assert.Equal(t, "Todo deleted successfully", env.Message)
		data := env.Data.(map[string]interface{})
		assert.Equal(t, "Buy bread", data["todo"])
		assert.Empty(t, fs.todos)
	})
}
