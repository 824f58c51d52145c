package services_test

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mahfuzanam/bloodlink/app/models"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = primitive.NewObjectID()
	s.users[user.Email] = *user
	return nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (s *fakeUserStore) UpdateProfile(ctx context.Context, email string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return models.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["avatar"].(string); ok {
		u.Avatar = v
	}
	if v, ok := fields["bloodGroup"].(string); ok {
		u.BloodGroup = v
	}
	if v, ok := fields["district"].(string); ok {
		u.District = v
	}
	if v, ok := fields["upazila"].(string); ok {
		u.Upazila = v
	}
	s.users[email] = u
	return nil
}

func (s *fakeUserStore) SetRole(ctx context.Context, id string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, u := range s.users {
		if u.ID.Hex() == id {
			u.Role = role
			s.users[email] = u
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeUserStore) SetStatus(ctx context.Context, id string, status models.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, u := range s.users {
		if u.ID.Hex() == id {
			u.Status = status
			s.users[email] = u
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeUserStore) List(ctx context.Context, status string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		if status == "" || string(u.Status) == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) SearchDonors(ctx context.Context, bloodGroup, district, upazila string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		if u.Role != models.RoleDonor || u.Status != models.StatusActive {
			continue
		}
		if bloodGroup != "" && u.BloodGroup != bloodGroup {
			continue
		}
		if district != "" && u.District != district {
			continue
		}
		if upazila != "" && u.Upazila != upazila {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// fakeDonationStore mirrors the conditional-update semantics of the real
// repository, including the ErrNotFound-on-no-match contract.
type fakeDonationStore struct {
	mu   sync.Mutex
	reqs map[string]models.DonationRequest
}

func newFakeDonationStore() *fakeDonationStore {
	return &fakeDonationStore{reqs: make(map[string]models.DonationRequest)}
}

func (s *fakeDonationStore) Insert(ctx context.Context, req *models.DonationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = primitive.NewObjectID()
	s.reqs[req.ID.Hex()] = *req
	return nil
}

func (s *fakeDonationStore) FindByID(ctx context.Context, id string) (models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.reqs[id]
	if !ok {
		return models.DonationRequest{}, models.ErrNotFound
	}
	return req, nil
}

func (s *fakeDonationStore) ClaimPending(ctx context.Context, id, donorName, donorEmail string) (models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.reqs[id]
	if !ok || req.Status != models.RequestPending {
		return models.DonationRequest{}, models.ErrNotFound
	}
	req.Status = models.RequestInProgress
	req.DonorName = donorName
	req.DonorEmail = donorEmail
	s.reqs[id] = req
	return req, nil
}

func (s *fakeDonationStore) UpdateStatusFrom(ctx context.Context, id string, from, to models.RequestStatus) (models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.reqs[id]
	if !ok || req.Status != from {
		return models.DonationRequest{}, models.ErrNotFound
	}
	req.Status = to
	s.reqs[id] = req
	return req, nil
}

func (s *fakeDonationStore) UpdateFields(ctx context.Context, id string, fields bson.M) (models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.reqs[id]
	if !ok {
		return models.DonationRequest{}, models.ErrNotFound
	}
	if v, ok := fields["recipientName"].(string); ok {
		req.RecipientName = v
	}
	if v, ok := fields["hospitalName"].(string); ok {
		req.HospitalName = v
	}
	if v, ok := fields["bloodGroup"].(string); ok {
		req.BloodGroup = v
	}
	s.reqs[id] = req
	return req, nil
}

func (s *fakeDonationStore) ListByRequester(ctx context.Context, email, status string, page, size int64) ([]models.DonationRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.DonationRequest{}
	for _, req := range s.reqs {
		if req.RequesterEmail != email {
			continue
		}
		if status != "" && status != "all" && string(req.Status) != status {
			continue
		}
		matched = append(matched, req)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := page * size
	if start >= total {
		return []models.DonationRequest{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakeDonationStore) Recent(ctx context.Context, email string, limit int64) ([]models.DonationRequest, error) {
	items, _, err := s.ListByRequester(ctx, email, "", 0, limit)
	return items, err
}

func (s *fakeDonationStore) ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.DonationRequest{}
	for _, req := range s.reqs {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

// auditEvent captures one Record call for assertions.
type auditEvent struct {
	Actor  string
	Action string
	Target string
}

type fakeAudit struct {
	mu     sync.Mutex
	events []auditEvent
}

func (a *fakeAudit) Record(actorEmail, action, targetID string, detail bson.M) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, auditEvent{Actor: actorEmail, Action: action, Target: targetID})
}

// fakeDisk records puts in memory.
type fakeDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeDisk() *fakeDisk { return &fakeDisk{files: make(map[string][]byte)} }

func (d *fakeDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = content
	return nil
}

func (d *fakeDisk) URL(path string) string { return "/storage/" + path }
