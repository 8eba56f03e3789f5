package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/repository"
	"github.com/Nycles/chat-service/internal/security"
)

type fakeUserRepo struct {
	byID       map[domain.UserID]*domain.User
	byEmail    map[string]*domain.User
	byUsername map[string]*domain.User
	nextID     domain.UserID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[domain.UserID]*domain.User),
		byEmail:    make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
		nextID:     1,
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (domain.UserID, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return 0, repository.ErrAlreadyExists
	}
	id := r.nextID
	r.nextID++
	stored := *u
	stored.ID = id
	r.byID[id] = &stored
	r.byEmail[u.Email] = &stored
	r.byUsername[u.Username] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateImageURL(_ context.Context, id domain.UserID, imageURL string) error {
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ImageURL = &imageURL
	return nil
}

type fakeFileStorage struct {
	lastKey  string
	lastMime string
	failWith error
}

func (s *fakeFileStorage) UploadFile(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	s.lastKey = key
	s.lastMime = contentType
	return "https://files.test/" + key, nil
}

func newTestUserService(repo repository.UserRepository, files FileStorage) *UserService {
	signer := security.NewJWTSigner([]byte("test-secret"), "chat-service", time.Hour, 0)
	policy := security.BcryptConfig{Cost: 4, MinLength: 4}
	return NewUserService(repo, files, signer, policy, nil)
}

func TestUserService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeFileStorage{})

	res, err := svc.Register(context.Background(), "ivan@example.com", "ivan", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.ID == 0 || res.User.Email != "ivan@example.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.AuthToken == "" {
		t.Fatal("register must issue a token")
	}
	if res.User.PasswordHash == "secret1" {
		t.Fatal("password must be stored hashed")
	}

	// токен сразу пригоден для верификации
	signer := security.NewJWTSigner([]byte("test-secret"), "chat-service", time.Hour, 0)
	userID, err := signer.Verify(res.AuthToken)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if userID != res.User.ID {
		t.Fatalf("token subject %d != user id %d", userID, res.User.ID)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeFileStorage{})

	if _, err := svc.Register(context.Background(), "ivan@example.com", "ivan", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), "ivan@example.com", "ivan2", "secret1")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeFileStorage{})

	if _, err := svc.Register(context.Background(), "ivan@example.com", "ivan", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), "petr@example.com", "ivan", "secret1")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), &fakeFileStorage{})

	_, err := svc.Register(context.Background(), "ivan@example.com", "ivan", "abc")
	if !errors.Is(err, security.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestUserService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeFileStorage{})

	if _, err := svc.Register(context.Background(), "ivan@example.com", "ivan", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(context.Background(), "ivan@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AuthToken == "" || res.User.Username != "ivan" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

// Одна и та же ошибка для неизвестного email и неверного пароля.
func TestUserService_Login_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeFileStorage{})

	if _, err := svc.Register(context.Background(), "ivan@example.com", "ivan", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "ivan@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_UploadImage(t *testing.T) {
	repo := newFakeUserRepo()
	files := &fakeFileStorage{}
	svc := newTestUserService(repo, files)

	res, err := svc.Register(context.Background(), "ivan@example.com", "ivan", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	url, err := svc.UploadImage(context.Background(), res.User.ID, []byte{0xFF, 0xD8}, "image/jpeg")
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if url == "" || files.lastMime != "image/jpeg" {
		t.Fatalf("unexpected upload: url=%q mime=%q", url, files.lastMime)
	}

	stored, err := repo.GetByID(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ImageURL == nil || *stored.ImageURL != url {
		t.Fatalf("image url not persisted: %+v", stored.ImageURL)
	}
}

func TestUserService_UploadImage_UnknownUser(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), &fakeFileStorage{})

	_, err := svc.UploadImage(context.Background(), 999, []byte{1}, "image/png")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
