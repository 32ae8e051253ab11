package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeNoCredentials      = "auth_no_credentials"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeForbidden          = "auth_forbidden"
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeEmailUnverified    = "auth_email_unverified"
	TextCodeUserExists         = "user_already_registered"
	TextCodeInvalidData        = "invalid_data"
	TextCodeNotExist           = "resource_not_exist"
)

// Error messages mirror the public API contract of the catalog and are
// returned verbatim in response bodies.
const (
	MsgInvalidToken       = "Token invalido, sin autorización"
	MsgInvalidCredentials = "Usuario y/o contraseña invalidos"
	MsgEmailUnverified    = "Usuario debe validar su correo antes de iniciar sesión"
	MsgUserExists         = "Usuario o email ya se encuentra registrado"
	MsgInvalidData        = "Datos incorrectos"
	MsgNotExist           = "El recurso al que intenta acceder no existe"
	MsgServerError        = "Error en el servidor"
)

// ErrNoCredentials is returned when the Authorization header is missing or
// does not carry a bearer token.
var ErrNoCredentials = errors.New(MsgInvalidToken, errors.CategoryAuth).
	WithTextCode(TextCodeNoCredentials).
	WithCode(errors.CodeForbidden)

// ErrTokenMalformed is returned for tokens that fail to parse or whose
// signature does not verify.
var ErrTokenMalformed = errors.New(MsgInvalidToken, errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeForbidden)

// ErrTokenExpired is returned for structurally valid tokens past their expiry.
var ErrTokenExpired = errors.New(MsgInvalidToken, errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeForbidden)

// ErrForbidden is returned when an authenticated caller lacks the role a
// route requires. The message matches the credentials error so the response
// does not reveal which check failed.
var ErrForbidden = errors.New(MsgInvalidCredentials, errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrInvalidCredentials covers both unknown account and wrong password;
// the two cases are intentionally indistinguishable.
var ErrInvalidCredentials = errors.New(MsgInvalidCredentials, errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeBadRequest)

// ErrEmailUnverified is returned on login when the password matches but the
// account has not validated its email yet.
var ErrEmailUnverified = errors.New(MsgEmailUnverified, errors.CategoryAuth).
	WithTextCode(TextCodeEmailUnverified).
	WithCode(errors.CodeBadRequest)

// ErrUserExists is returned on registration when the username or email is taken.
var ErrUserExists = errors.New(MsgUserExists, errors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(errors.CodeBadRequest)

// ErrInvalidData is returned for payloads that fail validation.
var ErrInvalidData = errors.New(MsgInvalidData, errors.CategoryValidation).
	WithTextCode(TextCodeInvalidData).
	WithCode(errors.CodeBadRequest)

// ErrNotExist is returned when a referenced record is absent.
var ErrNotExist = errors.New(MsgNotExist, errors.CategoryNotFound).
	WithTextCode(TextCodeNotExist).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword mirrors bcrypt's mismatch as a typed error.
var ErrMismatchedHashAndPassword = errors.New("password does not match hash", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeBadRequest)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidData).
	WithCode(errors.CodeBadRequest)
