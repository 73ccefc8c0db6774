package services

import (
	"errors"
	"testing"

	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/models"
)

func TestRegisterCreatesUnapprovedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "coach1",
		Email:    "coach1@example.com",
		Password: "longenough",
		Role:     "coach",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Approved {
		t.Fatal("new accounts must start unapproved")
	}
	if user.Role != models.RoleCoach {
		t.Fatalf("role = %s, want coach", user.Role)
	}
	if user.PasswordHash == "longenough" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "sneaky",
		Email:    "sneaky@example.com",
		Password: "longenough",
		Role:     "admin",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := &dto.RegisterRequest{
		Username: "dupe",
		Email:    "dupe@example.com",
		Password: "longenough",
		Role:     "player",
	}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	req.Email = "other@example.com"
	if _, err := svc.Register(req); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginBlockedUntilApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	if _, err := svc.Register(&dto.RegisterRequest{
		Username: "pending",
		Email:    "pending@example.com",
		Password: "longenough",
		Role:     "player",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	login := &dto.LoginRequest{Username: "pending", Password: "longenough"}
	if _, _, err := svc.Login(login); !errors.Is(err, ErrApprovalPending) {
		t.Fatalf("err = %v, want ErrApprovalPending", err)
	}

	// Approval opens the gate; the token comes back non-empty.
	if err := db.Model(&models.User{}).Where("username = ?", "pending").
		Update("approved", true).Error; err != nil {
		t.Fatalf("approve: %v", err)
	}
	token, user, err := svc.Login(login)
	if err != nil {
		t.Fatalf("login after approval: %v", err)
	}
	if token == "" {
		t.Fatal("expected an access token")
	}
	if user.Username != "pending" {
		t.Fatalf("user = %s, want pending", user.Username)
	}
}

func TestLoginWrongPasswordStaysGeneric(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	if _, err := svc.Register(&dto.RegisterRequest{
		Username: "someone",
		Email:    "someone@example.com",
		Password: "longenough",
		Role:     "player",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(&dto.LoginRequest{Username: "someone", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	_, _, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSeedAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	cfg := testConfig()
	cfg.SeedAdminUsername = "root"
	cfg.SeedAdminEmail = "root@example.com"
	cfg.SeedAdminPassword = "bootstrap-secret"

	if err := svc.SeedAdmin(cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Idempotent on restart.
	if err := svc.SeedAdmin(cfg); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var admins []models.User
	if err := db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("admins = %d, want 1", len(admins))
	}
	if !admins[0].Approved {
		t.Fatal("seeded admin must be approved")
	}
}
