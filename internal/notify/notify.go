package notify

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notifier delivers a notification outside the app's own screen. Delivery is
// best-effort; callers must show their own fallback signal when it errors.
type Notifier interface {
	Notify(title, body string) error
}

// Bell rings the terminal bell. Most terminal emulators surface it as a
// sound or a window highlight even when the app is in the background.
type Bell struct {
	w   io.Writer
	log *zap.Logger
}

func NewBell(w io.Writer, log *zap.Logger) *Bell {
	return &Bell{w: w, log: log}
}

func (b *Bell) Notify(title, body string) error {
	b.log.Info("notify", zap.String("title", title), zap.String("body", body))
	if _, err := fmt.Fprint(b.w, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
