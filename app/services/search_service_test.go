package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/app/services"
)

func searchFixture() *services.SearchService {
	users := newFakeUserStore(
		models.User{Email: "d1@x.com", Role: models.RoleDonor, Status: models.StatusActive, BloodGroup: "O+", District: "Dhaka", Upazila: "Dhanmondi"},
		models.User{Email: "d2@x.com", Role: models.RoleDonor, Status: models.StatusActive, BloodGroup: "A+", District: "Dhaka", Upazila: "Gulshan"},
		models.User{Email: "blocked@x.com", Role: models.RoleDonor, Status: models.StatusBlocked, BloodGroup: "O+", District: "Dhaka"},
		models.User{Email: "vol@x.com", Role: models.RoleVolunteer, Status: models.StatusActive, BloodGroup: "O+", District: "Dhaka"},
	)
	return services.NewSearchService(users)
}

func TestDonorSearchBaseFilter(t *testing.T) {
	svc := searchFixture()

	// Redis is not connected in tests, so the cache is a no-op passthrough.
	donors, err := svc.Donors(context.Background(), "", "", "")
	require.NoError(t, err)

	emails := make([]string, 0, len(donors))
	for _, d := range donors {
		emails = append(emails, d.Email)
	}
	assert.ElementsMatch(t, []string{"d1@x.com", "d2@x.com"}, emails)
}

func TestDonorSearchNarrowing(t *testing.T) {
	svc := searchFixture()

	donors, err := svc.Donors(context.Background(), "O+", "Dhaka", "Dhanmondi")
	require.NoError(t, err)
	require.Len(t, donors, 1)
	assert.Equal(t, "d1@x.com", donors[0].Email)
}

func TestDonorSearchNoMatchIsEmptyNotError(t *testing.T) {
	svc := searchFixture()

	donors, err := svc.Donors(context.Background(), "AB-", "", "")
	require.NoError(t, err)
	assert.Empty(t, donors)
}
