package application

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samersoltani/dewini-server/internal/domain/entity"
	"github.com/samersoltani/dewini-server/internal/resettoken"
	"github.com/samersoltani/dewini-server/pkg/helpers"
	"github.com/samersoltani/dewini-server/pkg/mailer"
)

// --- fakes ---

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // keyed by id

	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	u.ID = "u" + strconv.Itoa(f.seq)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Password = hash
	return nil
}

func (f *fakeUserRepo) countByEmail(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

type fakeSender struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (f *fakeSender) Send(_ context.Context, job mailer.EmailJob) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newUserService(repo *fakeUserRepo, sender *fakeSender) *UserService {
	return NewUserService(repo, resettoken.NewMemory(), sender,
		"http://localhost:5173/reset-password", 0, testLogger())
}

func registered(t *testing.T, svc *UserService, email, password string) *entity.User {
	t.Helper()
	u := &entity.User{Nom: "Soltani", Prenom: "Samer", Email: email, Password: password, Role: "patient"}
	require.NoError(t, svc.Register(context.Background(), u))
	return u
}

// --- tests ---

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, &fakeSender{})

	u := registered(t, svc, "samer@dewini.tn", "motdepasse")

	stored, err := repo.GetByEmail(context.Background(), "samer@dewini.tn")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "motdepasse", stored.Password, "plaintext must never be persisted")
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "motdepasse"))
	assert.NotEmpty(t, u.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, &fakeSender{})

	registered(t, svc, "samer@dewini.tn", "motdepasse")

	err := svc.Register(context.Background(), &entity.User{Email: "samer@dewini.tn", Password: "autre"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, repo.countByEmail("samer@dewini.tn"), "exactly one record per email")
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, &fakeSender{})
	registered(t, svc, "samer@dewini.tn", "motdepasse")

	proj, err := svc.Login(context.Background(), "samer@dewini.tn", "motdepasse")
	require.NoError(t, err)
	assert.Equal(t, "samer@dewini.tn", proj.Email)
	assert.Equal(t, "Soltani", proj.Nom)
	assert.Equal(t, "patient", proj.Role)
}

func TestLoginGenericFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, &fakeSender{})
	registered(t, svc, "samer@dewini.tn", "motdepasse")

	// wrong password and unknown email yield the same error
	_, err := svc.Login(context.Background(), "samer@dewini.tn", "faux")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "inconnu@dewini.tn", "motdepasse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := newUserService(repo, sender)

	err := svc.ForgotPassword(context.Background(), "inconnu@dewini.tn")
	require.NoError(t, err, "unknown email must look like success")
	assert.Empty(t, sender.jobs, "no email goes out for unknown accounts")
}

func TestForgotPasswordSendsResetLink(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := newUserService(repo, sender)
	registered(t, svc, "samer@dewini.tn", "motdepasse")

	require.NoError(t, svc.ForgotPassword(context.Background(), "samer@dewini.tn"))
	require.Len(t, sender.jobs, 1)

	job := sender.jobs[0]
	assert.Equal(t, "samer@dewini.tn", job.To)
	assert.Contains(t, job.Data["Link"], "http://localhost:5173/reset-password?token=")
	assert.Equal(t, "Samer", job.Data["Prenom"])
}

func TestForgotPasswordSendFailure(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := resettoken.NewMemory()
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := NewUserService(repo, tokens, sender,
		"http://localhost:5173/reset-password", 0, testLogger())
	registered(t, svc, "samer@dewini.tn", "motdepasse")

	err := svc.ForgotPassword(context.Background(), "samer@dewini.tn")
	assert.ErrorIs(t, err, ErrEmailSend)
}

func TestResetPasswordRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := newUserService(repo, sender)
	registered(t, svc, "samer@dewini.tn", "ancien")

	require.NoError(t, svc.ForgotPassword(context.Background(), "samer@dewini.tn"))
	require.Len(t, sender.jobs, 1)
	link, _ := sender.jobs[0].Data["Link"].(string)
	token := strings.TrimPrefix(link, "http://localhost:5173/reset-password?token=")
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "nouveau"))

	stored, err := repo.GetByEmail(context.Background(), "samer@dewini.tn")
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "nouveau"))
	assert.False(t, helpers.CompareHashAndPassword(stored.Password, "ancien"))

	// second redemption of the same token fails
	err = svc.ResetPassword(context.Background(), token, "encore")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, &fakeSender{})

	err := svc.ResetPassword(context.Background(), "inconnu", "peuimporte")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
