package child

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare/internal/apperr"
	"daycare/internal/storage"
	"daycare/internal/user"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fixture struct {
	svc    *Service
	repo   *MemoryRepository
	users  *user.MemoryRepository
	images *storage.Local
	owner  user.User
}

func setup(t *testing.T) fixture {
	t.Helper()
	users := user.NewMemoryRepository()
	owner, err := users.Create(context.Background(), user.User{Name: "Parent", Email: "parent@example.com", Role: user.RoleParent})
	require.NoError(t, err)

	repo := NewMemoryRepository()
	images := storage.NewLocal(t.TempDir(), "http://localhost")
	return fixture{
		svc:    NewService(repo, users, images, log.NewNopLogger()),
		repo:   repo,
		users:  users,
		images: images,
		owner:  owner,
	}
}

func intPtr(i int) *int            { return &i }
func strPtr(s string) *string      { return &s }
func int64Ptr(i int64) *int64      { return &i }
func picture(name string) *Picture { return &Picture{Filename: name, Data: pngHeader} }

func TestCreateAppliesDefaults(t *testing.T) {
	f := setup(t)
	p, err := f.svc.Create(context.Background(), CreateInput{
		UserID:  f.owner.ID,
		Name:    "Kofi",
		Age:     intPtr(4),
		Picture: picture("kofi.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultMood, p.Mood)
	assert.Equal(t, DefaultBehaviouralOverview, p.BehaviouralOverview)
	assert.Equal(t, DefaultLearningProgress, p.LearningProgress)
	assert.Contains(t, p.ProfilePic, "/images/")

	_, err = os.Stat(filepath.Join(f.images.Dir, p.ProfilePicID))
	assert.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Create(context.Background(), CreateInput{
		UserID:  999,
		Picture: &Picture{Filename: "notes.txt", Data: []byte("hello")},
	})
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	byField := verr.ByField()
	assert.Contains(t, byField, "user_id")
	assert.Contains(t, byField, "name")
	assert.Contains(t, byField, "age")
	assert.Contains(t, byField, "profile_pic")

	_, err = f.svc.Create(context.Background(), CreateInput{
		UserID:  f.owner.ID,
		Name:    "Kofi",
		Age:     intPtr(4),
		Picture: &Picture{Filename: "fake.png", Data: []byte("plain text")},
	})
	assert.True(t, apperr.IsValidation(err))

	big := make([]byte, MaxPictureBytes+1)
	copy(big, pngHeader)
	_, err = f.svc.Create(context.Background(), CreateInput{
		UserID:  f.owner.ID,
		Name:    "Kofi",
		Age:     intPtr(4),
		Picture: &Picture{Filename: "big.png", Data: big},
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateReplacesPicture(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	p, err := f.svc.Create(ctx, CreateInput{UserID: f.owner.ID, Name: "Kofi", Age: intPtr(4), Picture: picture("a.png")})
	require.NoError(t, err)
	oldPic := filepath.Join(f.images.Dir, p.ProfilePicID)

	updated, err := f.svc.Update(ctx, p.ID, UpdateInput{
		Age:              intPtr(5),
		LearningProgress: strPtr("Reading short words"),
		Picture:          picture("b.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kofi", updated.Name)
	assert.Equal(t, 5, updated.Age)
	assert.Equal(t, "Reading short words", updated.LearningProgress)
	assert.NotEqual(t, p.ProfilePic, updated.ProfilePic)

	_, err = os.Stat(oldPic)
	assert.True(t, os.IsNotExist(err))

	_, err = f.svc.Update(ctx, p.ID, UpdateInput{UserID: int64Ptr(12345)})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.svc.Update(ctx, 404, UpdateInput{})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	p, err := f.svc.Create(ctx, CreateInput{UserID: f.owner.ID, Name: "Kofi", Age: intPtr(4), Picture: picture("a.png")})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, p.ID))
	_, err = f.svc.Get(ctx, p.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(f.svc.Delete(ctx, p.ID)))

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestResolveChildByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	clock := time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }
	resolver := NewResolver(repo)

	_, err := resolver.ResolveChildByUser(ctx, 1)
	assert.True(t, apperr.IsNotFound(err))

	first, err := repo.Create(ctx, Profile{UserID: 1, Name: "First"})
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	second, err := repo.Create(ctx, Profile{UserID: 1, Name: "Second"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, Profile{UserID: 2, Name: "Other"})
	require.NoError(t, err)

	got, err := resolver.ResolveChildByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	// same creation time: the later row wins
	third, err := repo.Create(ctx, Profile{UserID: 1, Name: "Third"})
	require.NoError(t, err)
	got, err = resolver.ResolveChildByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, third.ID, got.ID)

	require.NoError(t, repo.Delete(ctx, third.ID))
	require.NoError(t, repo.Delete(ctx, second.ID))
	got, err = resolver.ResolveChildByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestSetMood(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	p, err := repo.Create(ctx, Profile{UserID: 1, Name: "Kofi", Mood: DefaultMood})
	require.NoError(t, err)

	require.NoError(t, repo.SetMood(ctx, p.ID, "tired"))
	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "tired", got.Mood)
	assert.True(t, apperr.IsNotFound(repo.SetMood(ctx, 99, "sad")))
}
