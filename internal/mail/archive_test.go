package mail

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/texcode-accounts/internal/model"
)

type fakeStorage struct {
	key         string
	body        string
	size        int64
	contentType string
	err         error
}

func (f *fakeStorage) Upload(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	b, _ := io.ReadAll(r)
	f.key, f.body, f.size, f.contentType = key, string(b), size, contentType
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	return key == f.key, nil
}

func TestArchive_Send(t *testing.T) {
	st := &fakeStorage{}
	a := NewArchive(st)
	a.now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }

	err := a.Send(context.Background(), model.Message{To: "a@example.com", Subject: "S", HTML: "<p>x</p>"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(st.key, "mail/2026-03-04/a@example.com/"))
	assert.True(t, strings.HasSuffix(st.key, ".html"))
	assert.Contains(t, st.body, "<!-- subject: S -->")
	assert.Contains(t, st.body, "<p>x</p>")
	assert.Equal(t, int64(len(st.body)), st.size)
	assert.Contains(t, st.contentType, "text/html")
}

func TestArchive_Send_Error(t *testing.T) {
	a := NewArchive(&fakeStorage{err: errors.New("bucket gone")})
	err := a.Send(context.Background(), model.Message{To: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to archive email")
}

func TestKey_Unique(t *testing.T) {
	now := time.Now()
	assert.NotEqual(t, Key(now, "a@example.com"), Key(now, "a@example.com"))
}
