// Package seeders loads the baseline user fixtures.
package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/database"
)

// Run upserts one user per role so a fresh database is immediately usable.
// Existing records keyed by email are left untouched apart from role and
// status.
func Run(ctx context.Context) error {
	users := []models.User{
		{
			Name:   "Site Admin",
			Email:  "admin@bloodlink.local",
			Role:   models.RoleAdmin,
			Status: models.StatusActive,
		},
		{
			Name:   "Volunteer One",
			Email:  "volunteer@bloodlink.local",
			Role:   models.RoleVolunteer,
			Status: models.StatusActive,
		},
		{
			Name:       "Donor One",
			Email:      "donor@bloodlink.local",
			Role:       models.RoleDonor,
			Status:     models.StatusActive,
			BloodGroup: "O+",
			District:   "Dhaka",
			Upazila:    "Dhanmondi",
		},
	}

	col := database.Users()
	opts := options.Update().SetUpsert(true)

	for _, u := range users {
		update := bson.M{
			"$set": bson.M{
				"role":   u.Role,
				"status": u.Status,
			},
			"$setOnInsert": bson.M{
				"name":       u.Name,
				"bloodGroup": u.BloodGroup,
				"district":   u.District,
				"upazila":    u.Upazila,
				"createdAt":  time.Now(),
			},
		}
		if _, err := col.UpdateOne(ctx, bson.M{"email": u.Email}, update, opts); err != nil {
			return fmt.Errorf("seed %s: %w", u.Email, err)
		}
	}

	return nil
}
