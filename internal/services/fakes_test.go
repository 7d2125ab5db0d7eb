package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"findthem_backend/internal/email"
	"findthem_backend/internal/models"
	"findthem_backend/internal/repositories"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository that mimics the database
// uniqueness and single-use token semantics.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) ConsumeVerificationToken(ctx context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.VerificationToken != nil && *user.VerificationToken == token {
			user.IsVerified = true
			user.VerificationToken = nil
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrTokenNotFound
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, userID string, role models.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Role = role
	return nil
}

// fakeCaseRepo is an in-memory CaseRepository. Comments are separate
// records keyed to their case, as in the real store.
type fakeCaseRepo struct {
	mu       sync.Mutex
	cases    map[string]*models.Case
	comments map[string][]models.Comment
	nextID   uint

	// appendFailures makes the first N comment appends fail with this
	// error before succeeding, to exercise the retry path.
	appendFailures int
	appendErr      error
	appendCalls    int
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{
		cases:    make(map[string]*models.Case),
		comments: make(map[string][]models.Comment),
	}
}

func (f *fakeCaseRepo) Create(ctx context.Context, c *models.Case) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	clone := *c
	f.cases[c.ID] = &clone
	return nil
}

func (f *fakeCaseRepo) FindByID(ctx context.Context, id string) (*models.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.cases[id]
	if !ok {
		return nil, repositories.ErrCaseNotFound
	}
	clone := *c
	clone.Comments = append([]models.Comment(nil), f.comments[id]...)
	return &clone, nil
}

func (f *fakeCaseRepo) FindPublished(ctx context.Context, search string) ([]models.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Case
	for _, c := range f.cases {
		if c.Pending {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		clone := *c
		clone.Comments = append([]models.Comment(nil), f.comments[c.ID]...)
		out = append(out, clone)
	}
	return out, nil
}

func (f *fakeCaseRepo) FindPending(ctx context.Context) ([]models.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Case
	for _, c := range f.cases {
		if c.Pending {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCaseRepo) UpdateStatus(ctx context.Context, id string, status models.CaseStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.cases[id]
	if !ok {
		return repositories.ErrCaseNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCaseRepo) SetPending(ctx context.Context, id string, pending bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.cases[id]
	if !ok {
		return repositories.ErrCaseNotFound
	}
	c.Pending = pending
	return nil
}

func (f *fakeCaseRepo) AppendComment(ctx context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.appendCalls++
	if f.appendFailures > 0 {
		f.appendFailures--
		return f.appendErr
	}

	if _, ok := f.cases[comment.CaseID]; !ok {
		return repositories.ErrCaseNotFound
	}

	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.comments[comment.CaseID] = append(f.comments[comment.CaseID], *comment)
	return nil
}

// fakeEmailProvider records verification sends.
type fakeEmailProvider struct {
	mu    sync.Mutex
	sent  []string
	links []string
	done  chan struct{}
}

func newFakeEmailProvider() *fakeEmailProvider {
	return &fakeEmailProvider{done: make(chan struct{}, 16)}
}

func (f *fakeEmailProvider) Send(msg *email.Email) error { return nil }

func (f *fakeEmailProvider) SendVerification(to, firstName, verificationLink string) error {
	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.links = append(f.links, verificationLink)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

// waitForSend blocks until a verification email has been dispatched.
func (f *fakeEmailProvider) waitForSend(timeout time.Duration) bool {
	select {
	case <-f.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
