package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVariants(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, 201, "Todo created successfully", map[string]string{"todo": "Buy milk"})

	assert.Equal(t, http.StatusOK, rec.Code, "application status travels inside the payload")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, 201, env.Status)
	assert.Equal(t, "Todo created successfully", env.Message)
	assert.Equal(t, "Buy milk", env.Data.(map[string]interface{})["todo"])

	rec = httptest.NewRecorder()
	WriteError(rec, errors.New("connection refused"))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, 500, env.Status)
	assert.Equal(t, "Internal Server Error", env.Message)
	assert.Equal(t, "connection refused", env.Error)
}

func TestDecodeBodyJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/create-item", strings.NewReader(`{"todo":"Buy milk","n":7}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	body, err := DecodeBody(req)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", Str(body, "todo"))
	assert.Equal(t, 7.0, body["n"], "JSON types are preserved")
	assert.Equal(t, "", Str(body, "n"), "Str only returns strings")
}

func TestDecodeBodyForm(t *testing.T) {
	form := url.Values{"todoId": {"abc123"}, "newData": {"Buy bread"}}
	req := httptest.NewRequest("POST", "/edit-item", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := DecodeBody(req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", Str(body, "todoId"))
	assert.Equal(t, "Buy bread", Str(body, "newData"))
}

func TestDecodeBodyBadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/create-item", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")

	_, err := DecodeBody(req)
	assert.Error(t, err)
}
