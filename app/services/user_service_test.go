package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/pkg/auth"
)

func TestRegisterForcesDonorRole(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewUserService(store, nil, nil)

	user, err := svc.Register(context.Background(), services.RegisterInput{
		Name:  "Eve",
		Email: "EVE@X.com",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleDonor, user.Role)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.Equal(t, "eve@x.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRegisterHashesOptionalPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewUserService(store, nil, nil)

	user, err := svc.Register(context.Background(), services.RegisterInput{
		Name:     "Eve",
		Email:    "eve@x.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret-pass"))
}

func TestGetUnknownUserIsNotFound(t *testing.T) {
	svc := services.NewUserService(newFakeUserStore(), nil, nil)

	_, err := svc.Get(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetRoleValidatesAndAudits(t *testing.T) {
	store := newFakeUserStore(models.User{Email: "a@x.com", Role: models.RoleDonor, Status: models.StatusActive})
	audit := &fakeAudit{}
	svc := services.NewUserService(store, audit, nil)

	target, err := store.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	err = svc.SetRole(context.Background(), "admin@x.com", target.ID.Hex(), "volunteer")
	require.NoError(t, err)

	updated, err := store.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleVolunteer, updated.Role)

	require.Len(t, audit.events, 1)
	assert.Equal(t, "user.role", audit.events[0].Action)
	assert.Equal(t, "admin@x.com", audit.events[0].Actor)

	err = svc.SetRole(context.Background(), "admin@x.com", target.ID.Hex(), "superuser")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSetStatusBlocksUser(t *testing.T) {
	store := newFakeUserStore(models.User{Email: "a@x.com", Role: models.RoleDonor, Status: models.StatusActive})
	svc := services.NewUserService(store, &fakeAudit{}, nil)

	target, err := store.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), "admin@x.com", target.ID.Hex(), "blocked"))

	updated, err := store.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, updated.Blocked())

	err = svc.SetStatus(context.Background(), "admin@x.com", target.ID.Hex(), "suspended")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestIsAdmin(t *testing.T) {
	store := newFakeUserStore(
		models.User{Email: "admin@x.com", Role: models.RoleAdmin, Status: models.StatusActive},
		models.User{Email: "donor@x.com", Role: models.RoleDonor, Status: models.StatusActive},
	)
	svc := services.NewUserService(store, nil, nil)
	ctx := context.Background()

	ok, err := svc.IsAdmin(ctx, "admin@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdmin(ctx, "donor@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	// Absent user is not an error, just not an admin.
	ok, err = svc.IsAdmin(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetAvatarStoresAndPatchesURL(t *testing.T) {
	store := newFakeUserStore(models.User{Email: "a@x.com", Role: models.RoleDonor, Status: models.StatusActive})
	disk := newFakeDisk()
	svc := services.NewUserService(store, nil, disk)

	url, err := svc.SetAvatar(context.Background(), "a@x.com", "me.PNG", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, "/storage/avatars/a@x.com.png", url)

	updated, err := store.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, url, updated.Avatar)
}

func TestSetAvatarRejectsUnknownExtension(t *testing.T) {
	store := newFakeUserStore(models.User{Email: "a@x.com", Role: models.RoleDonor, Status: models.StatusActive})
	svc := services.NewUserService(store, nil, newFakeDisk())

	_, err := svc.SetAvatar(context.Background(), "a@x.com", "nasty.exe", []byte{0x4d})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
