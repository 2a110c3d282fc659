package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/texcode-accounts/internal/model"
	"github.com/dtroode/texcode-accounts/internal/testutil"
)

func TestLog_Send(t *testing.T) {
	l, buf := testutil.MakeBufferLogger()
	m := NewLog(l)

	require.NoError(t, m.Send(context.Background(), model.Message{To: "a@example.com", Subject: "hello"}))
	assert.Contains(t, buf.String(), "to=a@example.com")
	assert.Contains(t, buf.String(), "subject=hello")
}
