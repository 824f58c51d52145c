package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/auth"
)

// UserStore is the slice of the user repository the directory service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, email string, fields bson.M) error
	SetRole(ctx context.Context, id string, role models.Role) error
	SetStatus(ctx context.Context, id string, status models.UserStatus) error
	List(ctx context.Context, status string) ([]models.User, error)
}

// AuditRecorder receives admin mutation events. May be nil-free via noop.
type AuditRecorder interface {
	Record(actorEmail, action, targetID string, detail bson.M)
}

// AvatarDisk is the slice of pkg/storage the avatar upload needs.
type AvatarDisk interface {
	Put(path string, content []byte) error
	URL(path string) string
}

// RegisterInput is the payload for POST /users. Role is forced to donor
// server-side regardless of what the client sends.
type RegisterInput struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"nullable,min=8"`
	BloodGroup string `json:"bloodGroup" validate:"nullable,in=A+,A-,B+,B-,AB+,AB-,O+,O-"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Avatar     string `json:"avatar"`
}

// ProfileInput is the whitelist of self-editable fields for PATCH /users/{email}.
// Email, role, status, and createdAt are never touched.
type ProfileInput struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Avatar     string `json:"avatar"`
	BloodGroup string `json:"bloodGroup" validate:"nullable,in=A+,A-,B+,B-,AB+,AB-,O+,O-"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// UserService owns the user directory: registration, lookups, profile edits,
// and the admin-only role/status mutations.
type UserService struct {
	users  UserStore
	audit  AuditRecorder
	avatar AvatarDisk
}

func NewUserService(users UserStore, audit AuditRecorder, avatar AvatarDisk) *UserService {
	return &UserService{users: users, audit: audit, avatar: avatar}
}

// Register creates a user with the donor role and active status.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	user := models.User{
		Name:       in.Name,
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Role:       models.RoleDonor,
		Status:     models.StatusActive,
		BloodGroup: in.BloodGroup,
		District:   in.District,
		Upazila:    in.Upazila,
		Avatar:     in.Avatar,
		CreatedAt:  time.Now(),
	}

	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Get fetches one user by email.
func (s *UserService) Get(ctx context.Context, email string) (models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// UpdateProfile overwrites the whitelisted profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, email string, in ProfileInput) error {
	fields := bson.M{
		"name":       in.Name,
		"avatar":     in.Avatar,
		"bloodGroup": in.BloodGroup,
		"district":   in.District,
		"upazila":    in.Upazila,
	}
	return s.users.UpdateProfile(ctx, email, fields)
}

// List returns users, optionally filtered by status.
func (s *UserService) List(ctx context.Context, status string) ([]models.User, error) {
	if status != "" && !models.ValidUserStatus(status) {
		return []models.User{}, nil
	}
	return s.users.List(ctx, status)
}

// SetRole changes a user's role. Admin-gated at the route level; the actor
// is recorded in the audit trail.
func (s *UserService) SetRole(ctx context.Context, actorEmail, id, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", models.ErrInvalidInput, role)
	}

	if err := s.users.SetRole(ctx, id, models.ParseRole(role)); err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.Record(actorEmail, "user.role", id, bson.M{"role": role})
	}
	return nil
}

// SetStatus blocks or unblocks a user.
func (s *UserService) SetStatus(ctx context.Context, actorEmail, id, status string) error {
	if !models.ValidUserStatus(status) {
		return fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}

	if err := s.users.SetStatus(ctx, id, models.UserStatus(status)); err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.Record(actorEmail, "user.status", id, bson.M{"status": status})
	}
	return nil
}

// IsAdmin reports whether the user with this email holds the admin role.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

// SetAvatar stores the uploaded image and patches the user's avatar URL.
func (s *UserService) SetAvatar(ctx context.Context, email, filename string, data []byte) (string, error) {
	if s.avatar == nil {
		return "", fmt.Errorf("avatar storage not configured")
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		return "", fmt.Errorf("%w: unsupported avatar type %q", models.ErrInvalidInput, ext)
	}

	key := fmt.Sprintf("avatars/%s%s", strings.ToLower(email), ext)
	if err := s.avatar.Put(key, data); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	url := s.avatar.URL(key)
	if err := s.users.UpdateProfile(ctx, email, bson.M{"avatar": url}); err != nil {
		return "", err
	}
	return url, nil
}
