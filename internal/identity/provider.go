package identity

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"proinc-backend/internal/mailer"
	"proinc-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenValidity    = 24 * time.Hour
	sessionValidity  = 30 * 24 * time.Hour
	resendWindow     = 10 * time.Minute
	resendMaxPerMail = 5
)

// AccountStore is the slice of the accounts repository the provider needs.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	MarkEmailVerified(ctx context.Context, email string) error
}

// TokenStore is the slice of the verification-token repository the provider needs.
type TokenStore interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	FindByToken(ctx context.Context, token string) (*models.VerificationToken, error)
	MarkUsed(ctx context.Context, token string) error
	CountRecentByEmail(ctx context.Context, email string, duration time.Duration) (int64, error)
}

// Provider implements the identity surface: sign-up, sign-in, session
// reload, and email-verification issuance. Sessions are stateless JWTs, so
// sign-out is purely a client-side token discard.
type Provider struct {
	accounts  AccountStore
	tokens    TokenStore
	mail      mailer.Mailer
	jwtSecret string
	baseURL   string
}

func NewProvider(accounts AccountStore, tokens TokenStore, mail mailer.Mailer, jwtSecret, baseURL string) *Provider {
	return &Provider{
		accounts:  accounts,
		tokens:    tokens,
		mail:      mail,
		jwtSecret: jwtSecret,
		baseURL:   baseURL,
	}
}

func sessionOf(a *models.Account) Session {
	return Session{
		ID:            a.ID,
		Email:         a.Email,
		DisplayName:   a.DisplayName,
		EmailVerified: a.EmailVerified,
	}
}

// SignUp registers a new account and sends the verification email. Email
// delivery is best-effort: a failure is logged, not returned, since the
// client can always request a resend.
func (p *Provider) SignUp(ctx context.Context, email, password, displayName string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := p.accounts.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if existing != nil {
		return Session{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, err
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		return Session{}, err
	}

	session := sessionOf(account)
	if err := p.IssueVerificationEmail(ctx, session); err != nil {
		log.Printf("Error sending verification email to %s: %v", email, err)
	}
	return session, nil
}

// SignIn authenticates with email and password.
func (p *Provider) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := p.accounts.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if account == nil {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return sessionOf(account), nil
}

// FederatedSignIn handles a sign-in coming back from an external provider
// that has already verified the address. The account is created on first
// sight, without a usable password.
func (p *Provider) FederatedSignIn(ctx context.Context, email, displayName string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := p.accounts.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if account == nil {
		account = &models.Account{
			ID:            uuid.New().String(),
			Email:         email,
			DisplayName:   displayName,
			EmailVerified: true,
		}
		if err := p.accounts.Create(ctx, account); err != nil {
			return Session{}, err
		}
	}
	return sessionOf(account), nil
}

// Reload re-reads the session from the backing account, picking up any
// verification-status change. This is what the verification poller calls.
func (p *Provider) Reload(ctx context.Context, id string) (Session, error) {
	account, err := p.accounts.FindByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if account == nil {
		return Session{}, ErrAccountNotFound
	}
	return sessionOf(account), nil
}

// IssueVerificationEmail creates a single-use token and mails the
// verification link. No-op if the address is already verified. Resends are
// rate limited per email.
func (p *Provider) IssueVerificationEmail(ctx context.Context, session Session) error {
	if session.EmailVerified {
		return nil
	}

	count, err := p.tokens.CountRecentByEmail(ctx, session.Email, resendWindow)
	if err != nil {
		return err
	}
	if count >= resendMaxPerMail {
		return ErrTooManyRequests
	}

	token := &models.VerificationToken{
		Email:     session.Email,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(tokenValidity),
		IsUsed:    false,
	}
	if err := p.tokens.Create(ctx, token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", p.baseURL, token.Token)
	return p.mail.Send(ctx, session.Email, "Verify your Pro Inc. email", verificationEmailHTML(link))
}

// VerifyEmail consumes a verification token and flips the account's
// email_verified flag.
func (p *Provider) VerifyEmail(ctx context.Context, tokenValue string) error {
	token, err := p.tokens.FindByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrTokenInvalid
	}
	if token.IsExpired() {
		return ErrTokenExpired
	}
	if token.IsUsed {
		return ErrTokenUsed
	}

	if err := p.tokens.MarkUsed(ctx, tokenValue); err != nil {
		return err
	}
	return p.accounts.MarkEmailVerified(ctx, token.Email)
}

// SignedToken issues the JWT the client presents on subsequent requests.
func (p *Provider) SignedToken(session Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": session.ID,
		"email":   session.Email,
		"exp":     time.Now().Add(sessionValidity).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString([]byte(p.jwtSecret))
}

func verificationEmailHTML(link string) string {
	return fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
			<h2 style="color: #333;">Welcome to Pro Inc.</h2>
			<p>Click the button below to verify your email address:</p>
			<a href="%s" style="display: inline-block; background: #6366f1; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">
				Verify Email
			</a>
			<p style="color: #888; font-size: 14px; margin-top: 16px;">
				This link expires in 24 hours and can only be used once.
			</p>
			<p style="color: #aaa; font-size: 12px;">
				If you didn't create an account, you can safely ignore this email.
			</p>
		</div>
	`, link)
}
