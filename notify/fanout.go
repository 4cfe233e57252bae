// Package notify implements the new-activity email fan-out: every user
// who opted in for the activity's ZIP code gets one message, each
// dispatch isolated from the others.
package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Recipient is the slice of a user profile the fan-out needs.
type Recipient struct {
	UserID uint
	Email  string
}

// RecipientStore lists profiles that opted in to notifications for an
// exact ZIP code.
type RecipientStore interface {
	ListByZip(ctx context.Context, zip string) ([]Recipient, error)
}

// Mailer sends a single message. Implementations must respect ctx.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Fanout dispatches one email per matching recipient when a new activity
// carries a ZIP code.
type Fanout struct {
	Store   RecipientStore
	Mailer  Mailer
	Timeout time.Duration // per-message deadline
}

const defaultSendTimeout = 10 * time.Second

func NewFanout(store RecipientStore, mailer Mailer) *Fanout {
	return &Fanout{Store: store, Mailer: mailer, Timeout: defaultSendTimeout}
}

// Dispatch sends one notification per opted-in profile matching zip.
// Recipients without an email address are skipped. Sends run
// concurrently and independently: a failed send is logged and counted but
// never blocks, aborts, or retries the others. Dispatch returns once
// every send has finished or timed out; the returned count is the number
// of failed sends. An empty zip is a no-op, not an error, and performs no
// store query.
func (f *Fanout) Dispatch(ctx context.Context, zip, placeName string) (failed int, err error) {
	if zip == "" {
		log.Printf("notify: activity %q has no zip, skipping fan-out", placeName)
		return 0, nil
	}

	recipients, err := f.Store.ListByZip(ctx, zip)
	if err != nil {
		return 0, fmt.Errorf("list recipients for zip %s: %w", zip, err)
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	subject := fmt.Sprintf("New activity near %s", zip)
	body := fmt.Sprintf("A new activity was just posted near you: %s (%s). Log in to check it out!", placeName, zip)

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, r := range recipients {
		if r.Email == "" {
			continue
		}

		wg.Add(1)
		go func(r Recipient) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if sendErr := f.Mailer.Send(sendCtx, r.Email, subject, body); sendErr != nil {
				log.Printf("notify: send to user %d failed: %v", r.UserID, sendErr)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Printf("notify: sent new-activity mail to user %d (zip %s)", r.UserID, zip)
		}(r)
	}
	wg.Wait()

	return failed, nil
}
