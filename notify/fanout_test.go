package notify_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/notify"
)

// ---- fakes -----------------------------------------------------------------

type fakeStore struct {
	listByZip func(ctx context.Context, zip string) ([]notify.Recipient, error)
	calls     int
}

func (f *fakeStore) ListByZip(ctx context.Context, zip string) ([]notify.Recipient, error) {
	f.calls++
	return f.listByZip(ctx, zip)
}

var _ notify.RecipientStore = (*fakeStore)(nil)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	fail map[string]error
	slow time.Duration
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.slow > 0 {
		select {
		case <-time.After(f.slow):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err, ok := f.fail[to]; ok {
		return err
	}
	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.mu.Unlock()
	return nil
}

var _ notify.Mailer = (*fakeMailer)(nil)

func (f *fakeMailer) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.sent...)
	sort.Strings(out)
	return out
}

// ---- Dispatch --------------------------------------------------------------

// Only the opted-in profile with the matching ZIP gets mail.
func TestDispatch_MatchesOnAllowAndZip(t *testing.T) {
	// The store plays the role of the query "allow=true AND zip=?": of the
	// three stored profiles only a@x.com survives the filter.
	store := &fakeStore{listByZip: func(_ context.Context, zip string) ([]notify.Recipient, error) {
		require.Equal(t, "95060", zip)
		return []notify.Recipient{{UserID: 1, Email: "a@x.com"}}, nil
	}}
	mailer := &fakeMailer{}

	failed, err := notify.NewFanout(store, mailer).Dispatch(context.Background(), "95060", "Natural Bridges")

	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, []string{"a@x.com"}, mailer.sentTo())
}

func TestDispatch_EmptyZipSkipsStoreQuery(t *testing.T) {
	store := &fakeStore{listByZip: func(context.Context, string) ([]notify.Recipient, error) {
		t.Fatal("store must not be queried for an empty zip")
		return nil, nil
	}}
	mailer := &fakeMailer{}

	failed, err := notify.NewFanout(store, mailer).Dispatch(context.Background(), "", "Somewhere")

	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Zero(t, store.calls)
	assert.Empty(t, mailer.sentTo())
}

func TestDispatch_NoMatchesIsNoop(t *testing.T) {
	store := &fakeStore{listByZip: func(context.Context, string) ([]notify.Recipient, error) {
		return nil, nil
	}}
	mailer := &fakeMailer{}

	failed, err := notify.NewFanout(store, mailer).Dispatch(context.Background(), "90210", "The Ivy")

	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Empty(t, mailer.sentTo())
}

// A matching profile without an email address is skipped silently, not
// counted as a failure.
func TestDispatch_SkipsRecipientsWithoutEmail(t *testing.T) {
	store := &fakeStore{listByZip: func(context.Context, string) ([]notify.Recipient, error) {
		return []notify.Recipient{
			{UserID: 1, Email: "a@x.com"},
			{UserID: 2, Email: ""},
		}, nil
	}}
	mailer := &fakeMailer{}

	failed, err := notify.NewFanout(store, mailer).Dispatch(context.Background(), "95060", "West Cliff")

	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, []string{"a@x.com"}, mailer.sentTo())
}

// One recipient's failure must not prevent the others from getting mail.
func TestDispatch_FailureIsolation(t *testing.T) {
	store := &fakeStore{listByZip: func(context.Context, string) ([]notify.Recipient, error) {
		return []notify.Recipient{
			{UserID: 1, Email: "a@x.com"},
			{UserID: 2, Email: "b@x.com"},
			{UserID: 3, Email: "c@x.com"},
		}, nil
	}}
	mailer := &fakeMailer{fail: map[string]error{"b@x.com": errors.New("mailbox on fire")}}

	failed, err := notify.NewFanout(store, mailer).Dispatch(context.Background(), "95060", "Seabright")

	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"a@x.com", "c@x.com"}, mailer.sentTo())
}

func TestDispatch_StoreErrorPropagates(t *testing.T) {
	store := &fakeStore{listByZip: func(context.Context, string) ([]notify.Recipient, error) {
		return nil, errors.New("db down")
	}}
	mailer := &fakeMailer{}

	_, err := notify.NewFanout(store, mailer).Dispatch(context.Background(), "95060", "Boardwalk")

	require.Error(t, err)
	assert.Empty(t, mailer.sentTo())
}

// A slow recipient hits the per-message deadline instead of stalling the
// whole dispatch.
func TestDispatch_SlowSendHitsPerMessageTimeout(t *testing.T) {
	store := &fakeStore{listByZip: func(context.Context, string) ([]notify.Recipient, error) {
		return []notify.Recipient{{UserID: 1, Email: "slow@x.com"}}, nil
	}}
	mailer := &fakeMailer{slow: time.Second}

	f := notify.NewFanout(store, mailer)
	f.Timeout = 10 * time.Millisecond

	start := time.Now()
	failed, err := f.Dispatch(context.Background(), "95060", "Pleasure Point")

	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
