package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFor(t *testing.T, body string, dst any) (bool, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return decodeBody(rec, req, zerolog.Nop(), dst), rec
}

func TestDecodeBodyValidationMessages(t *testing.T) {
	cases := []struct {
		name string
		body string
		dst  any
		want string
	}{
		{"missing email", `{"name":"a","password":"abc12345"}`, &registerRequest{}, `"email" is required`},
		{"bad email", `{"name":"a","email":"nope","password":"abc12345"}`, &registerRequest{}, `"email" must be a valid email`},
		{"slash in email", `{"name":"a","email":"a/b@x.com","password":"abc12345"}`, &registerRequest{}, `"email" must be a valid email`},
		{"short password", `{"name":"a","email":"a@x.com","password":"abc1"}`, &registerRequest{}, "password must be at least 8 characters"},
		{"no digit", `{"name":"a","email":"a@x.com","password":"abcdefgh"}`, &registerRequest{}, "password must be at least 8 characters"},
		{"short address", `{"address":"too short"}`, &addressRequest{}, `"address" length must be between 20 and 1024 characters`},
		{"missing quantity", `{"productId":"p1"}`, &cartItemRequest{}, `"quantity" is required`},
		{"negative quantity", `{"productId":"p1","quantity":-1}`, &cartItemRequest{}, `"quantity" must not be negative`},
		{"missing product", `{"quantity":1}`, &cartItemRequest{}, `"productId" is required`},
		{"login bad email", `{"email":"x","password":"p"}`, &loginRequest{}, `"email" must be a valid email`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, rec := decodeFor(t, tc.body, tc.dst)
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Message, tc.want)
		})
	}
}

func TestDecodeBodyAcceptsValidRequests(t *testing.T) {
	var reg registerRequest
	ok, _ := decodeFor(t, `{"name":"crio","email":"crio@example.com","password":"learnwithcrio1"}`, &reg)
	assert.True(t, ok)
	assert.Equal(t, "crio@example.com", reg.Email)

	var item cartItemRequest
	ok, _ = decodeFor(t, `{"productId":"p1","quantity":0}`, &item)
	assert.True(t, ok)
	if assert.NotNil(t, item.Quantity) {
		assert.Equal(t, 0, *item.Quantity)
	}
}
