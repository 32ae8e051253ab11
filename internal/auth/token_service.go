package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Logger is the minimal logging surface threaded through auth components.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Debug(format string, args ...any) { fmt.Printf("[DBG] AUTH "+newline(format), args...) }
func (d defLogger) Info(format string, args ...any)  { fmt.Printf("[INF] AUTH "+newline(format), args...) }
func (d defLogger) Warn(format string, args ...any)  { fmt.Printf("[WRN] AUTH "+newline(format), args...) }
func (d defLogger) Error(format string, args ...any) { fmt.Printf("[ERR] AUTH "+newline(format), args...) }

// DefaultLogger returns the fallback printf logger.
func DefaultLogger() Logger { return defLogger{} }

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// TokenService mints and validates purpose-scoped HMAC tokens. Session
// tokens sign with the session secret, mail-action tokens with the mail
// secret. Secrets are immutable after construction; NewTokenService fails
// when either is empty so a misconfigured process dies at startup instead
// of per request.
type TokenService struct {
	sessionSecret []byte
	mailSecret    []byte
	sessionTTL    time.Duration
	actionTTL     time.Duration
	issuer        string
	logger        Logger
}

// NewTokenService creates a TokenService. sessionTTL and actionTTL fall back
// to 24h and 1h respectively when zero.
func NewTokenService(sessionSecret, mailSecret string, sessionTTL, actionTTL time.Duration, issuer string, logger Logger) (*TokenService, error) {
	if sessionSecret == "" {
		return nil, errors.New("session signing secret is not set", errors.CategoryInternal).
			WithTextCode("missing_session_secret")
	}
	if mailSecret == "" {
		return nil, errors.New("mail signing secret is not set", errors.CategoryInternal).
			WithTextCode("missing_mail_secret")
	}

	if sessionTTL == 0 {
		sessionTTL = 24 * time.Hour
	}
	if actionTTL == 0 {
		actionTTL = time.Hour
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenService{
		sessionSecret: []byte(sessionSecret),
		mailSecret:    []byte(mailSecret),
		sessionTTL:    sessionTTL,
		actionTTL:     actionTTL,
		issuer:        issuer,
		logger:        logger,
	}, nil
}

// GenerateSession mints a login token for the given user. Pure given inputs
// and secret; no side effects.
func (ts *TokenService) GenerateSession(userID, username string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.sessionTTL)),
		},
		Username: username,
	}

	return ts.sign(claims, ts.sessionSecret)
}

// GenerateAction mints an email-verification or password-recovery token.
// Mail tokens historically carried no expiry; they now expire after
// actionTTL to bound the window a leaked link stays usable.
func (ts *TokenService) GenerateAction(purpose TokenPurpose, username, email string) (string, error) {
	if purpose != PurposeVerifyEmail && purpose != PurposeRecoverPassword {
		return "", errors.New("unsupported token purpose: "+string(purpose), errors.CategoryBadInput)
	}

	now := time.Now()
	claims := &ActionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.actionTTL)),
		},
		Username: username,
		Email:    email,
		Purpose:  string(purpose),
	}

	return ts.sign(claims, ts.mailSecret)
}

// ValidateSession parses and verifies a session token, returning its claims.
func (ts *TokenService) ValidateSession(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := ts.parse(raw, claims, ts.sessionSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateAction parses and verifies a mail-action token and checks that it
// was minted for the expected purpose. A verification token can never
// finalize a password recovery, and vice versa.
func (ts *TokenService) ValidateAction(raw string, purpose TokenPurpose) (*ActionClaims, error) {
	claims := &ActionClaims{}
	if err := ts.parse(raw, claims, ts.mailSecret); err != nil {
		return nil, err
	}

	if claims.Purpose != string(purpose) {
		ts.logger.Warn("action token purpose mismatch: want %q got %q", purpose, claims.Purpose)
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func (ts *TokenService) sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

func (ts *TokenService) parse(raw string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(errors.CodeForbidden)
	}

	if !token.Valid {
		return ErrTokenMalformed
	}

	return nil
}
