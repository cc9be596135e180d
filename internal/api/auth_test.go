package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAuthResponseTokenUser(t *testing.T) {
	body := []byte(`{"token":"t1","user":{"id":"u1","fullName":"A","email":"a@example.com"}}`)

	result, err := normalizeAuthResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "t1", result.Token)
	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "A", result.User.FullName)
}

func TestNormalizeAuthResponseBareUser(t *testing.T) {
	body := []byte(`{"id":"u2","fullName":"B","email":"b@example.com","password":"x"}`)

	result, err := normalizeAuthResponse(body)
	require.NoError(t, err)
	assert.Empty(t, result.Token)
	assert.Equal(t, "u2", result.User.ID)
}

func TestNormalizeAuthResponseArray(t *testing.T) {
	body := []byte(`[{"id":"u2","fullName":"B","password":"x","email":"b@example.com"}]`)

	result, err := normalizeAuthResponse(body)
	require.NoError(t, err)
	assert.Empty(t, result.Token)
	assert.Equal(t, "u2", result.User.ID)
	assert.Equal(t, "B", result.User.FullName)
}

func TestNormalizeAuthResponseEmptyArray(t *testing.T) {
	_, err := normalizeAuthResponse([]byte(`[]`))
	require.Error(t, err)
	assert.Equal(t, ErrAuthEmptyResult, CodeOf(err))
}

func TestNormalizeAuthResponseUnrecognized(t *testing.T) {
	bodies := [][]byte{
		[]byte(`"just a string"`),
		[]byte(`42`),
		[]byte(`{"status":"ok"}`),
		[]byte(`{"user":{"id":"u1"}}`), // user without token matches no known shape
		[]byte(``),
		[]byte(`[{"status":"ok"}]`), // array element is not a user
	}
	for _, body := range bodies {
		_, err := normalizeAuthResponse(body)
		require.Error(t, err, "body %s", body)
		assert.Equal(t, ErrAuthShapeUnrecognized, CodeOf(err), "body %s", body)
	}
}
