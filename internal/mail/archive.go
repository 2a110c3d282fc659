package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/texcode-accounts/internal/model"
)

var _ model.Mailer = (*Archive)(nil)

// Archive drops rendered messages into object storage instead of sending them.
// Objects are keyed by date and recipient so they can be browsed by hand.
type Archive struct {
	storage model.Storage
	now     func() time.Time
}

// NewArchive creates Archive mailer.
func NewArchive(storage model.Storage) *Archive {
	return &Archive{
		storage: storage,
		now:     time.Now,
	}
}

// Key returns the object key for a message sent at t.
func Key(t time.Time, to string) string {
	return fmt.Sprintf("mail/%s/%s/%s.html", t.UTC().Format("2006-01-02"), to, uuid.NewString())
}

func (a *Archive) Send(ctx context.Context, msg model.Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<!-- to: %s -->\n<!-- subject: %s -->\n", msg.To, msg.Subject)
	b.WriteString(msg.HTML)

	body := b.String()
	key := Key(a.now(), msg.To)

	if err := a.storage.Upload(ctx, key, strings.NewReader(body), int64(len(body)), "text/html; charset=utf-8"); err != nil {
		return fmt.Errorf("failed to archive email: %w", err)
	}

	return nil
}
