package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikoly240702/tender-sniper/internal/domain/notification"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/domain/user"
	"github.com/nikoly240702/tender-sniper/internal/matching"
)

type fakeNotificationRepo struct {
	byUserTender map[string]*notification.Notification
	byUser       map[string][]*notification.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		byUserTender: make(map[string]*notification.Notification),
		byUser:       make(map[string][]*notification.Notification),
	}
}

func (r *fakeNotificationRepo) key(userID, tenderNumber string) string {
	return userID + "\x1f" + tenderNumber
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	k := r.key(n.UserID, n.TenderNumber)
	if _, exists := r.byUserTender[k]; exists {
		return nil
	}
	r.byUserTender[k] = n
	r.byUser[n.UserID] = append([]*notification.Notification{n}, r.byUser[n.UserID]...)
	return nil
}

func (r *fakeNotificationRepo) ExistsForTender(ctx context.Context, userID, tenderNumber string) (bool, error) {
	_, exists := r.byUserTender[r.key(userID, tenderNumber)]
	return exists, nil
}

func (r *fakeNotificationRepo) CountSentSince(ctx context.Context, userID string, since time.Time) (int, error) {
	count := 0
	for _, n := range r.byUser[userID] {
		if !n.SentAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	list := r.byUser[userID]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeNotificationRepo) ClearHistory(ctx context.Context, userID string) error {
	for k, n := range r.byUserTender {
		if n.UserID == userID {
			delete(r.byUserTender, k)
		}
	}
	delete(r.byUser, userID)
	return nil
}

type fakeUserRepo struct {
	byID map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	for _, u := range r.byID {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) ListMonitoringEnabled(ctx context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range r.byID {
		if u.MonitoringEnabled {
			out = append(out, u)
		}
	}
	return out, nil
}

func mustUser(t *testing.T, id, externalID string) *user.User {
	t.Helper()
	u, err := user.New(externalID)
	require.NoError(t, err)
	u.ID = id
	return u
}

func TestStore_IsAlreadyNotified(t *testing.T) {
	notifications := newFakeNotificationRepo()
	store := NewStore(notifications, newFakeUserRepo())

	already, err := store.IsAlreadyNotified(context.Background(), "user-1", "tender-1")
	require.NoError(t, err)
	assert.False(t, already)

	notifications.byUserTender["user-1\x1ftender-1"] = &notification.Notification{UserID: "user-1", TenderNumber: "tender-1"}

	already, err = store.IsAlreadyNotified(context.Background(), "user-1", "tender-1")
	require.NoError(t, err)
	assert.True(t, already)
}

// HasQuota returns true and persists a reset when the 24h window has elapsed.
func TestStore_HasQuota_LazyReset(t *testing.T) {
	users := newFakeUserRepo()
	store := NewStore(newFakeNotificationRepo(), users)

	u := mustUser(t, "user-1", "chat-1")
	u.NotificationsSentToday = 5
	u.LastNotificationReset = time.Now().Add(-48 * time.Hour)
	require.NoError(t, users.Create(context.Background(), u))

	hasQuota, err := store.HasQuota(context.Background(), u, 3)
	require.NoError(t, err)
	assert.True(t, hasQuota)
	assert.Equal(t, 0, u.NotificationsSentToday)

	persisted, err := users.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, persisted.NotificationsSentToday)
}

func TestStore_HasQuota_ExhaustedWithinWindow(t *testing.T) {
	store := NewStore(newFakeNotificationRepo(), newFakeUserRepo())

	u := mustUser(t, "user-1", "chat-1")
	u.NotificationsSentToday = 3
	u.LastNotificationReset = time.Now()

	hasQuota, err := store.HasQuota(context.Background(), u, 3)
	require.NoError(t, err)
	assert.False(t, hasQuota)
}

func TestStore_RecordDelivered_IncrementsCounterAndPersists(t *testing.T) {
	notifications := newFakeNotificationRepo()
	users := newFakeUserRepo()
	store := NewStore(notifications, users)

	u := mustUser(t, "user-1", "chat-1")
	require.NoError(t, users.Create(context.Background(), u))

	tn, err := tender.NewTender("0173200001426000001", "Поставка компьютеров", "https://zakupki.gov.ru/1", time.Now())
	require.NoError(t, err)

	m := matching.Match{Score: 80, MatchedKeywords: []string{"компьютер"}}

	err = store.RecordDelivered(context.Background(), u, "filter-1", "my filter", tn, m, notification.SourceAutoMonitoring, "msg-1")
	require.NoError(t, err)

	assert.Equal(t, 1, u.NotificationsSentToday)

	exists, err := store.IsAlreadyNotified(context.Background(), "user-1", tn.Number)
	require.NoError(t, err)
	assert.True(t, exists)

	list, err := store.ListUserTenders(context.Background(), "user-1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "msg-1", list[0].ExternalMessageID)
}

func TestStore_ClearHistory(t *testing.T) {
	notifications := newFakeNotificationRepo()
	store := NewStore(notifications, newFakeUserRepo())
	notifications.byUserTender["user-1\x1ftender-1"] = &notification.Notification{UserID: "user-1", TenderNumber: "tender-1"}
	notifications.byUser["user-1"] = []*notification.Notification{{UserID: "user-1", TenderNumber: "tender-1"}}

	require.NoError(t, store.ClearHistory(context.Background(), "user-1"))

	already, err := store.IsAlreadyNotified(context.Background(), "user-1", "tender-1")
	require.NoError(t, err)
	assert.False(t, already)
}
