package machine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	p := NewProgress()
	assert.Equal(t, Report{}, p.Load())

	ch := p.Changed()
	select {
	case <-ch:
		t.Fatal("changed before store")
	default:
	}

	p.Store(Report{Remaining: 3, Status: StatusRunning})
	p.Store(Report{Remaining: 2, Status: StatusRunning})

	select {
	case <-ch:
	default:
		t.Fatal("changed not closed")
	}
	assert.Equal(t, Report{Remaining: 2, Status: StatusRunning}, p.Load())
}

func TestReport_JSON(t *testing.T) {
	data, err := json.Marshal(Report{Remaining: 7, Status: StatusCancelling})
	require.NoError(t, err)
	assert.JSONEq(t, `{"remaining":7,"status":"cancelling"}`, string(data))

	var r Report
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, StatusCancelling, r.Status)
}
