package lwerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsgImmutable(t *testing.T) {
	e := New(400, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")
	changed := e.Msg("limit out of range: %d", 20000)

	assert.NotEqual(t, changed.Message, e.Message, "Msg must not mutate the original error")
	assert.Equal(t, "limit out of range: 20000", changed.Message)
	assert.Equal(t, e.StatusCode, changed.StatusCode)
	assert.Equal(t, e.ErrorCode, changed.ErrorCode)
}

func TestInvalidViolations(t *testing.T) {
	e := NewInvalidViolations([]string{"limit must be between 1 and 10000"})

	assert.NotNil(t, e.Extras)
	assert.Contains(t, *e.Extras, "violations")
	assert.Nil(t, ErrInvalidReq.Extras, "sentinel must stay untouched")
}
