package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var v struct {
		D Duration `json:"d"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"d":"5s"}`), &v))
	assert.Equal(t, 5*time.Second, v.D.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"d":1500000000}`), &v))
	assert.Equal(t, 1500*time.Millisecond, v.D.Duration)

	assert.Error(t, json.Unmarshal([]byte(`{"d":"bogus"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"d":true}`), &v))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{3 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"3s"`, string(b))
}
