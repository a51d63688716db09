package tokenx

import (
	"encoding/base64"
	"testing"

	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding.EncodeToString
	header := enc([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + enc([]byte(payload)) + ".signature"
}

func TestExtractUserID(t *testing.T) {
	id, err := ExtractUserID(makeToken(t, `{"id":"u1"}`))
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestExtractUserID_MissingClaim(t *testing.T) {
	_, err := ExtractUserID(makeToken(t, `{"sub":"u1"}`))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestExtractUserID_Malformed(t *testing.T) {
	for _, in := range []string{"", "not-a-token", "a.b", "a.!!!.c"} {
		_, err := ExtractUserID(in)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", in)
	}
}
