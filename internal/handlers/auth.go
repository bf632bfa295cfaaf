package handlers

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/auth"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
	"github.com/solace-app/backend/pkg/objectstore"
)

const minimumAge = 18

// AuthHandler serves registration and login.
type AuthHandler struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	credentials   *auth.Credentials
	objects       objectstore.ObjectStore
}

func NewAuthHandler(users repositories.UserRepository, notifications repositories.NotificationRepository, credentials *auth.Credentials, objects objectstore.ObjectStore) *AuthHandler {
	return &AuthHandler{users: users, notifications: notifications, credentials: credentials, objects: objects}
}

func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register creates an unverified account from a multipart form carrying the
// profile fields plus a profile image and a selfie for admin verification.
func (h *AuthHandler) Register(c echo.Context) error {
	req := new(models.RegisterRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Date of birth must be in YYYY-MM-DD format")
	}
	if age(dob, time.Now()) < minimumAge {
		return echo.NewHTTPError(http.StatusBadRequest, "User must be at least 18 years old")
	}

	ctx := c.Request().Context()
	if _, err := h.users.GetByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "A user with this email already exists")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return httpError(err)
	}
	if _, err := h.users.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "A user with this phone number already exists")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return httpError(err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Profile image and selfie image are required")
	}
	profileImages := form.File["profileImage"]
	selfieImages := form.File["selfieImage"]
	if len(profileImages) != 1 || len(selfieImages) != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Profile image and selfie image are required")
	}
	urls, err := h.objects.UploadFiles(ctx, []*multipart.FileHeader{profileImages[0], selfieImages[0]})
	if err != nil {
		return httpError(err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return httpError(err)
	}

	user := &models.User{
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        hashed,
		Gender:          req.Gender,
		DOB:             req.DOB,
		ProfileImageURL: urls[0],
		SelfieImageURL:  urls[1],
		UserType:        models.RoleUser,
		Verified:        false,
		IsPrivate:       false,
		Groups:          []string{},
		Following:       []string{},
		Followers:       []string{},
		BlockedList:     []string{},
		BlockedBy:       []string{},
		CreatedAt:       time.Now(),
	}
	id, err := h.users.Create(ctx, user)
	if err != nil {
		return httpError(err)
	}
	if err := h.notifications.CreateBucket(ctx, id); err != nil {
		return httpError(err)
	}
	if err := h.notifications.SendToAdmins(ctx, models.NotificationEvent{
		Type:    models.NotificationVerification,
		Content: user.Firstname + " " + user.Lastname + " is awaiting verification",
		Author:  user.AuthorSnapshot(false),
	}); err != nil {
		c.Logger().Warnf("registration: notifying admins: %v", err)
	}

	token, err := h.credentials.IssueRegistrationToken(id, user.PhoneNumber)
	if err != nil {
		return httpError(err)
	}
	setTokenCookie(c, token, auth.RegistrationTokenTTL)
	return c.JSON(http.StatusCreated, echo.Map{
		"msg":   "User registered successfully",
		"token": token,
	})
}

// Login exchanges phone number and password for a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(models.LoginRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.users.GetByPhone(c.Request().Context(), req.PhoneNumber)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		return httpError(err)
	}
	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}

	token, err := h.credentials.IssueLoginToken(user.ID.Hex(), user.PhoneNumber)
	if err != nil {
		return httpError(err)
	}
	setTokenCookie(c, token, auth.LoginTokenTTL)
	return c.JSON(http.StatusOK, echo.Map{
		"msg":        "Logged in successfully",
		"token":      token,
		"statusCode": http.StatusOK,
	})
}

func setTokenCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Path:     "/",
	})
}

func age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	return years
}
