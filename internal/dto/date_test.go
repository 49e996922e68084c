package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAcceptsCalendarDates(t *testing.T) {
	var req CreateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","dueDate":"2025-12-31"}`), &req))

	due := req.DueDate.Ptr()
	require.NotNil(t, due)
	assert.True(t, due.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestDateAcceptsTimestamps(t *testing.T) {
	var req CreateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2025-12-31T15:04:05+09:00"}`), &req))

	due := req.DueDate.Ptr()
	require.NotNil(t, due)
	assert.True(t, due.Equal(time.Date(2025, 12, 31, 6, 4, 5, 0, time.UTC)))
}

func TestDateEmptyAndNullMeanNoDate(t *testing.T) {
	for _, body := range []string{`{"dueDate":""}`, `{"dueDate":null}`, `{}`} {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Nil(t, req.DueDate.Ptr(), body)
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	for _, body := range []string{`{"dueDate":"31/12/2025"}`, `{"dueDate":20251231}`} {
		var req CreateTaskRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}
