package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
)

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func registerAndVerify(t *testing.T, env *testEnv, name, email, role string) string {
	t.Helper()

	res, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name": name, "email": email, "password": "secret-password",
	}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	ctx := context.Background()
	user, err := env.repo.Users().GetByEmail(ctx, email)
	require.NoError(t, err)
	_, err = env.repo.Users().MarkValidated(ctx, user.ID)
	require.NoError(t, err)

	if role != "" && role != model.RoleViewer {
		user.Role = role
		_, err = env.repo.Users().Update(ctx, user)
		require.NoError(t, err)
	}

	res, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": email, "password": "secret-password",
	}))
	require.Equal(t, http.StatusAccepted, res.StatusCode)

	data := body["data"].(map[string]any)
	return data["token"].(string)
}

func TestHealthBanner(t *testing.T) {
	env := setupServer(t)

	res, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/", nil))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestRegisterEnvelope(t *testing.T) {
	env := setupServer(t)

	res, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name": "pepe", "email": "pepe@example.com", "password": "secret-password",
	}))

	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "pepe", data["name"])
	assert.NotContains(t, data, "password_hash")

	// Registration fires the verification email.
	require.Len(t, env.mail.emails, 1)
	assert.Contains(t, env.mail.emails[0].Text, "https://catalogo.test/users/emailAuth/")
}

func TestRegisterDuplicateBody(t *testing.T) {
	env := setupServer(t)

	payload := map[string]string{"name": "pepe", "email": "pepe@example.com", "password": "secret-password"}
	res, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", payload))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", payload))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, auth.MsgUserExists, body["error"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, http.StatusText(http.StatusBadRequest), body["statusMsg"])
}

func TestRegisterRejectsBadPayload(t *testing.T) {
	env := setupServer(t)

	res, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name": "p", "email": "not-an-email", "password": "x",
	}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, auth.MsgInvalidData, body["error"])
}

func TestLoginUnverifiedAndBadCredentials(t *testing.T) {
	env := setupServer(t)

	res, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name": "pepe", "email": "pepe@example.com", "password": "secret-password",
	}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "pepe@example.com", "password": "secret-password",
	}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, auth.MsgEmailUnverified, body["error"])

	res, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "pepe@example.com", "password": "wrong",
	}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, auth.MsgInvalidCredentials, body["error"])

	res, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "nadie@example.com", "password": "whatever",
	}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, auth.MsgInvalidCredentials, body["error"])
}

func TestVerifyEmailRoute(t *testing.T) {
	env := setupServer(t)

	res, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name": "pepe", "email": "pepe@example.com", "password": "secret-password",
	}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	text := env.mail.emails[0].Text
	marker := "https://catalogo.test/users/emailAuth/"
	idx := strings.Index(text, marker)
	require.GreaterOrEqual(t, idx, 0)
	token := text[idx+len(marker):]
	if end := strings.IndexAny(token, " \n\"<"); end >= 0 {
		token = token[:end]
	}

	res, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/users/auth/"+token, nil))
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["validation"])
}

func TestSessionEcho(t *testing.T) {
	env := setupServer(t)
	token := registerAndVerify(t, env, "pepe", "pepe@example.com", "")

	req := httptest.NewRequest(http.MethodGet, "/api/users/login", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	res, body := env.do(t, req)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "pepe", data["name"])
	assert.NotEmpty(t, data["id"])
}

func TestUsersListRequiresAdmin(t *testing.T) {
	env := setupServer(t)

	res, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, auth.MsgInvalidToken, body["error"])

	viewer := registerAndVerify(t, env, "pepe", "pepe@example.com", "")
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+viewer)
	res, body = env.do(t, req)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, auth.MsgInvalidCredentials, body["error"])

	admin := registerAndVerify(t, env, "root", "root@example.com", model.RoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
	res, body = env.do(t, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, body["data"], 2)
}

func TestRecoveryRoutes(t *testing.T) {
	env := setupServer(t)
	registerAndVerify(t, env, "pepe", "pepe@example.com", "")

	res, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/users/recover", map[string]string{
		"email": "pepe@example.com",
	}))
	assert.Equal(t, http.StatusAccepted, res.StatusCode)

	// Unknown addresses get the same answer.
	res, _ = env.do(t, jsonRequest(t, http.MethodPost, "/api/users/recover", map[string]string{
		"email": "nadie@example.com",
	}))
	assert.Equal(t, http.StatusAccepted, res.StatusCode)

	text := env.mail.emails[len(env.mail.emails)-1].Text
	marker := "https://catalogo.test/users/recover/"
	idx := strings.Index(text, marker)
	require.GreaterOrEqual(t, idx, 0)
	token := text[idx+len(marker):]
	if end := strings.IndexAny(token, " \n\"<"); end >= 0 {
		token = token[:end]
	}

	res, _ = env.do(t, jsonRequest(t, http.MethodPost, "/api/users/recover/"+token, map[string]string{
		"password": "new-password-456",
	}))
	assert.Equal(t, http.StatusAccepted, res.StatusCode)

	res, _ = env.do(t, jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "pepe@example.com", "password": "new-password-456",
	}))
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
}

func TestProfileRoutes(t *testing.T) {
	env := setupServer(t)
	token := registerAndVerify(t, env, "pepe", "pepe@example.com", "")

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, body := env.do(t, req)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, auth.MsgNotExist, body["error"])

	create := jsonRequest(t, http.MethodPost, "/api/profile", map[string]string{
		"firstName": "María", "lastName": "Quispe", "phone": "+593991234567",
	})
	create.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, _ = env.do(t, create)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, body = env.do(t, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "María", data["firstName"])
}

func locationPayload(name string) map[string]any {
	return map[string]any{
		"name":          name,
		"description":   "Laguna volcánica en el cráter",
		"province":      "Cotopaxi",
		"city":          "Zumbahua",
		"weather":       "Frío",
		"accessibility": "Bus",
		"direction":     "vía Latacunga",
		"map":           "https://maps.example.com/quilotoa",
		"contact":       "+593991234567",
	}
}

func TestLocationRoutes(t *testing.T) {
	env := setupServer(t)
	token := registerAndVerify(t, env, "pepe", "pepe@example.com", "")

	// Creation requires a session.
	res, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/locations", locationPayload("Quilotoa")))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	create := jsonRequest(t, http.MethodPost, "/api/locations", locationPayload("Quilotoa"))
	create.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, body := env.do(t, create)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := body["data"].(map[string]any)
	id := created["id"].(string)

	// Reads are public.
	res, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/locations", nil))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, body["data"], 1)

	res, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/locations/"+id, nil))
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Unknown and malformed IDs are the same 404.
	res, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/locations/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, auth.MsgNotExist, body["error"])

	// Patch a single field.
	edit := jsonRequest(t, http.MethodPut, "/api/locations/edit", map[string]any{
		"id": id, "city": "Otavalo",
	})
	edit.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, body = env.do(t, edit)
	require.Equal(t, http.StatusOK, res.StatusCode)
	patched := body["data"].(map[string]any)
	assert.Equal(t, "Otavalo", patched["city"])
	assert.Equal(t, "Quilotoa", patched["name"])

	res, _ = env.do(t, deleteRequest(t, "/api/locations/"+id, token))
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/locations/"+id, nil))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func deleteRequest(t *testing.T, target, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestLocationPhotoUpload(t *testing.T) {
	env := setupServer(t)
	token := registerAndVerify(t, env, "pepe", "pepe@example.com", "")

	create := jsonRequest(t, http.MethodPost, "/api/locations", locationPayload("Quilotoa"))
	create.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, body := env.do(t, create)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	id := body["data"].(map[string]any)["id"].(string)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("id", id))
	part, err := form.CreateFormFile("photos", "crater.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/locations/files", &buf)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	res, body = env.do(t, req)
	require.Equal(t, http.StatusOK, res.StatusCode)

	photos := body["data"].(map[string]any)["photos"].([]any)
	require.Len(t, photos, 1)
	photo := photos[0].(map[string]any)
	assert.Contains(t, photo["url"], "https://cdn.test/")

	// And remove it again.
	remove := jsonRequest(t, http.MethodPut, "/api/locations/files/delete", map[string]string{
		"id": id, "fileId": photo["id"].(string),
	})
	remove.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, body = env.do(t, remove)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, body["data"].(map[string]any)["photos"])
	assert.Len(t, env.store.deleted, 1)
}

func TestCompanyOwnListing(t *testing.T) {
	env := setupServer(t)
	token := registerAndVerify(t, env, "pepe", "pepe@example.com", "")

	payload := map[string]any{
		"company":       "Cine Andes",
		"firstActivity": "Producción",
		"province":      "Guayas",
		"city":          "Guayaquil",
		"direction":     "Av. 9 de Octubre",
		"description":   "Casa productora",
		"descriptionENG": "Production house",
		"email":         "info@example.com",
		"phone":         "+593991234567",
		"website":       "https://example.com",
		"urlVideo":      "https://youtube.com/watch?v=x",
		"typeVideo":     "YouTube",
	}

	create := jsonRequest(t, http.MethodPost, "/api/companies", payload)
	create.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, _ := env.do(t, create)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/companies/user", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, body := env.do(t, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, body["data"], 1)

	other := registerAndVerify(t, env, "lucia", "lucia@example.com", "")
	req = httptest.NewRequest(http.MethodGet, "/api/companies/user", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+other)
	res, body = env.do(t, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, body["data"])
}

func TestServerErrorBodyIsGeneric(t *testing.T) {
	env := setupServer(t)

	// A project create with an invalid payload trips validation, not a 500.
	token := registerAndVerify(t, env, "pepe", "pepe@example.com", "")
	create := jsonRequest(t, http.MethodPost, "/api/projects", map[string]any{"name": "x"})
	create.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	res, body := env.do(t, create)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, auth.MsgInvalidData, body["error"])
	assert.Equal(t, http.StatusText(http.StatusBadRequest), body["statusMsg"])
}
