package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/numenapp/numen-service/internal/config"
	"github.com/numenapp/numen-service/internal/ledger"
	"github.com/numenapp/numen-service/internal/middleware"
	"github.com/numenapp/numen-service/internal/models"
	"github.com/numenapp/numen-service/internal/session"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Store is the persistence collaborator consumed by the service. Writes
// are best-effort: a failed write is logged and the in-memory session
// state stays authoritative.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, occupation string, monthlyGoal float64) error
	UpdateFixedIncome(ctx context.Context, userID int64, amount float64) error
	UpdateFiscalProfile(ctx context.Context, userID int64, taxID, regime string) error
	InsertVariableIncome(ctx context.Context, userID int64, entry models.VariableIncome) error
	DeleteVariableIncome(ctx context.Context, userID, entryID int64) error
	UpsertPlannedExpense(ctx context.Context, userID int64, category models.ExpenseCategory, amount float64) error
	InsertGoal(ctx context.Context, userID int64, goal models.SavingsGoal) error
	UpdateGoalCurrent(ctx context.Context, userID, goalID int64, current float64) error
	DeleteGoal(ctx context.Context, userID, goalID int64) error
	InsertWorker(ctx context.Context, userID int64, w models.Worker) error
	SetWorkerActive(ctx context.Context, userID, workerID int64, active bool) error
	InsertPayrollRun(ctx context.Context, userID int64, run models.PayrollRun) error
	SaveLevyConfig(ctx context.Context, userID int64, cfg models.LevyConfig) error
	InsertLevyPayment(ctx context.Context, userID int64, p models.LevyPayment) error
	MarkLevyPaymentPaid(ctx context.Context, userID, paymentID int64) error
	UpsertUtilityConfig(ctx context.Context, userID int64, cfg models.UtilityConfig) error
	InsertUtilityPayment(ctx context.Context, userID int64, p models.UtilityPayment) error
	InsertTaxDeclaration(ctx context.Context, userID int64, d models.TaxDeclaration) error
	MarkDeclarationPaid(ctx context.Context, userID, declarationID int64) error
	InsertTaxPayment(ctx context.Context, userID int64, p models.TaxPayment) error
	LoadLedger(ctx context.Context, user *models.User) (*ledger.Ledger, error)
}

// ErrNoSession is returned when a request carries no live session
var ErrNoSession = errors.New("session not found")

// Service handles business logic
type Service struct {
	store    Store
	sessions *session.Manager
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(store Store, sessions *session.Manager, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, sessions: sessions, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		Occupation:   req.Occupation,
		MonthlyGoal:  req.MonthlyGoal,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user, creates an isolated session ledger
// hydrated from the store, and returns a JWT bound to the session
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	led, err := s.store.LoadLedger(ctx, user)
	if err != nil {
		// A fresh ledger still lets the session work; history is lost
		// until the store recovers.
		s.log.Errorf("Failed to hydrate ledger for %s: %v", user.Email, err)
		led = ledger.New(models.UserProfile{
			UserID:      user.ID,
			Name:        user.Name,
			Occupation:  user.Occupation,
			MonthlyGoal: user.MonthlyGoal,
			Email:       user.Email,
		})
	}

	sess := s.sessions.Create(user.ID, led)

	claims := middleware.SessionClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		s.sessions.Delete(sess.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Logout drops the session and its ledger
func (s *Service) Logout(ctx context.Context) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	s.sessions.Delete(sess.ID)
	s.log.Infof("Session closed for user %d", sess.UserID)
	return nil
}

// Dashboard returns the derived-metric snapshot for the session
func (s *Service) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	var summary models.DashboardSummary
	sess.WithLedger(func(l *ledger.Ledger) error {
		summary = l.Summary()
		return nil
	})
	return summary, nil
}

// Profile returns the session's user profile
func (s *Service) Profile(ctx context.Context) (models.UserProfile, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	var profile models.UserProfile
	sess.WithLedger(func(l *ledger.Ledger) error {
		profile = l.Profile
		return nil
	})
	return profile, nil
}

// UpdateProfile mutates the session profile and persists it
func (s *Service) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserProfile, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	var profile models.UserProfile
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		if err := l.UpdateProfile(req.Name, req.Occupation, req.MonthlyGoal); err != nil {
			return err
		}
		profile = l.Profile
		return nil
	})
	if err != nil {
		return models.UserProfile{}, err
	}
	s.persist("update profile", s.store.UpdateProfile(ctx, sess.UserID, req.Name, req.Occupation, req.MonthlyGoal))
	return profile, nil
}

func (s *Service) sessionFromContext(ctx context.Context) (*session.Session, error) {
	sessionID, ok := ctx.Value("sessionID").(string)
	if !ok || sessionID == "" {
		return nil, fmt.Errorf("session ID not found in context: %w", ErrNoSession)
	}
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session expired: %w", ErrNoSession)
	}
	return sess, nil
}

// persist logs a failed store write. The in-memory mutation stands
// either way; the session state is authoritative.
func (s *Service) persist(op string, err error) {
	if err != nil {
		s.log.Errorf("Persistence failed (%s): %v", op, err)
	}
}
