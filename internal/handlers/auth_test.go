package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/models"
)

func registerForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, name := range []string{"profileImage", "selfieImage"} {
		part, err := writer.CreateFormFile(name, name+".png")
		if err != nil {
			t.Fatalf("create file %s: %v", name, err)
		}
		if _, err := part.Write([]byte("png-bytes")); err != nil {
			t.Fatalf("write file %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func validRegisterFields() map[string]string {
	return map[string]string{
		"firstname":   "Ada",
		"lastname":    "Lovelace",
		"email":       "ada@example.com",
		"phoneNumber": "+15551234567",
		"password":    "correct horse battery",
		"gender":      "woman",
		"dob":         "1995-12-10",
	}
}

func (env *testEnv) register(t *testing.T, fields map[string]string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	body, contentType := registerForm(t, fields)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return rec, env.authHandler.Register(env.echo.NewContext(req, rec))
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, &models.User{Firstname: "Root", UserType: models.RoleAdmin})

	rec, err := env.register(t, validRegisterFields())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	user, err := env.users.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.UserType != models.RoleUser || user.Verified {
		t.Fatalf("new user state: %+v", user)
	}
	if user.Password == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}
	if user.ProfileImageURL == "" || user.SelfieImageURL == "" {
		t.Fatal("uploaded image urls not recorded")
	}

	if _, err := env.notifications.Get(context.Background(), user.ID.Hex()); err != nil {
		t.Fatalf("notification bucket missing: %v", err)
	}
	bucket, _ := env.notifications.Get(context.Background(), admin)
	if len(bucket.Notifications) != 1 || bucket.Notifications[0].Type != models.NotificationVerification {
		t.Fatalf("admin verification notice = %+v", bucket.Notifications)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.register(t, validRegisterFields()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	fields := validRegisterFields()
	fields["phoneNumber"] = "+15559999999"
	_, err := env.register(t, fields)
	if statusOf(t, err) != http.StatusConflict {
		t.Fatalf("duplicate email: %v", err)
	}

	fields = validRegisterFields()
	fields["email"] = "other@example.com"
	_, err = env.register(t, fields)
	if statusOf(t, err) != http.StatusConflict {
		t.Fatalf("duplicate phone: %v", err)
	}
}

func TestRegisterRejectsMinors(t *testing.T) {
	env := newTestEnv(t)
	fields := validRegisterFields()
	fields["dob"] = "2015-06-01"
	_, err := env.register(t, fields)
	if statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("minor registration: %v", err)
	}
}

func TestRegisterRejectsUnknownGender(t *testing.T) {
	env := newTestEnv(t)
	fields := validRegisterFields()
	fields["gender"] = "man"
	_, err := env.register(t, fields)
	if statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("unsupported gender: %v", err)
	}
}
