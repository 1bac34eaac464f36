package session

import (
	"testing"
	"time"

	"urbania/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeSessionRepo stores at most one session per user and reports an insert
// only the first time a user is seen, like the Mongo upsert does.
type fakeSessionRepo struct {
	sessions map[string]*models.DraftSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.DraftSession{}}
}

func (r *fakeSessionRepo) GetOrCreate(userID, username, email string) (*models.DraftSession, bool, error) {
	if sess, ok := r.sessions[userID]; ok {
		return sess, false, nil
	}
	now := time.Now().UTC()
	sess := &models.DraftSession{
		UserID:    userID,
		Username:  username,
		UserEmail: email,
		Data:      models.FormData{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.sessions[userID] = sess
	return sess, true, nil
}

func (r *fakeSessionRepo) Save(userID, username, email string, update models.SessionUpdate) (*models.DraftSession, bool, error) {
	sess, created, err := r.GetOrCreate(userID, username, email)
	if err != nil {
		return nil, false, err
	}
	if update.Data != nil {
		sess.Data = *update.Data
	}
	if update.CurrentStep != nil {
		sess.CurrentStep = *update.CurrentStep
	}
	sess.UpdatedAt = time.Now().UTC()
	return sess, created, nil
}

func (r *fakeSessionRepo) ListAll() ([]models.DraftSession, error) {
	out := make([]models.DraftSession, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, *sess)
	}
	return out, nil
}

func (r *fakeSessionRepo) ListActive() ([]models.DraftSession, error) {
	var out []models.DraftSession
	for _, sess := range r.sessions {
		if len(sess.Data) > 0 {
			out = append(out, *sess)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	user *models.User
}

func (r *fakeUserRepo) Create(*models.User) error                { return nil }
func (r *fakeUserRepo) Update(*models.User) error                { return nil }
func (r *fakeUserRepo) UpdateTokenHash(id, tokenHash string) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(string) (*models.User, error)    { return nil, nil }
func (r *fakeUserRepo) GetByUsername(string) (*models.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return r.GetByID(id)
}
func (r *fakeUserRepo) ListByRole(string) ([]models.User, error) { return nil, nil }

type fakeActivityRepo struct {
	entries []models.ActivityLog
}

func (r *fakeActivityRepo) Insert(entry *models.ActivityLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) ListRecent(int) ([]models.ActivityLog, error) { return r.entries, nil }

type fakeNotificationRepo struct {
	notifications []models.AdminNotification
}

func (r *fakeNotificationRepo) Insert(n *models.AdminNotification) error {
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) ListRecent(int) ([]models.AdminNotification, error) {
	return r.notifications, nil
}

func (r *fakeNotificationRepo) MarkAllRead() (int64, error) { return 0, nil }

func testService() (*DefaultSessionService, *fakeActivityRepo, *fakeNotificationRepo) {
	activity := &fakeActivityRepo{}
	notifications := &fakeNotificationRepo{}
	svc := &DefaultSessionService{
		Sessions: newFakeSessionRepo(),
		Users: &fakeUserRepo{user: &models.User{
			ID:       "u1",
			Username: "marie",
			Email:    "marie@example.fr",
		}},
		Activity:      activity,
		Notifications: notifications,
	}
	return svc, activity, notifications
}

func TestGetRecordsCreationOnceAcrossRepeatedReads(t *testing.T) {
	svc, activity, notifications := testService()

	for i := 0; i < 3; i++ {
		sess, err := svc.Get("u1")
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, "marie@example.fr", sess.UserEmail)
	}

	require.Len(t, activity.entries, 1)
	assert.Equal(t, models.ActivitySessionCreated, activity.entries[0].ActivityType)
	require.Len(t, notifications.notifications, 1)
	assert.Equal(t, models.NotificationNewSession, notifications.notifications[0].NotificationType)
}

func TestSaveRecordsCreationOnlyOnInsert(t *testing.T) {
	svc, activity, notifications := testService()

	step := 2
	data := models.FormData{"natureTravaux": "abri de jardin"}

	sess, err := svc.Save("u1", models.SessionUpdate{Data: &data, CurrentStep: &step})
	require.NoError(t, err)
	assert.Equal(t, 2, sess.CurrentStep)
	require.Len(t, activity.entries, 1)

	step = 3
	sess, err = svc.Save("u1", models.SessionUpdate{CurrentStep: &step})
	require.NoError(t, err)
	assert.Equal(t, 3, sess.CurrentStep)
	assert.Equal(t, data, sess.Data)

	assert.Len(t, activity.entries, 1)
	assert.Len(t, notifications.notifications, 1)
}

func TestGetRejectsUnknownUser(t *testing.T) {
	svc, activity, _ := testService()

	sess, err := svc.Get("missing")
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.Empty(t, activity.entries)
}
