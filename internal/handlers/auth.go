package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/hash"
	"github.com/Skotchmaster/product_catalog/internal/httpx"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/mykafka"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/tokens"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

// One message for both unknown email and wrong password, so responses carry no
// account-enumeration signal.
const loginFailedMessage = "there was a problem logging in, check your email and password or create an account"

type AuthHandler struct {
	Users     *repo.UserRepo
	JWTSecret []byte
	JWTTTL    time.Duration
	Producer  *mykafka.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if msgs := req.Validate(); len(msgs) > 0 {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return httpx.ValidationError(msgs)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user, err := h.Users.Create(ctx, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_failed", "status", 400, "reason", "email taken")
			return echo.NewHTTPError(http.StatusBadRequest, "there is already a user with the same email")
		}
		l.Error("register_failed", "status", 500, "error", err)
		return err
	}

	token, err := tokens.Issue(user.ID, user.Email, user.Role, h.JWTSecret, h.JWTTTL)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return err
	}

	h.publish(c, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return httpx.Success(c, http.StatusOK, "you have been registered successfully", echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if msgs := req.Validate(); len(msgs) > 0 {
		l.Warn("login_failed", "status", 400, "reason", "validation")
		return httpx.ValidationError(msgs)
	}

	user, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return echo.NewHTTPError(http.StatusUnauthorized, loginFailedMessage)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return echo.NewHTTPError(http.StatusUnauthorized, loginFailedMessage)
	}

	token, err := tokens.Issue(user.ID, user.Email, user.Role, h.JWTSecret, h.JWTTTL)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return err
	}

	user.PasswordHash = ""

	l.Info("login_success", "user_id", user.ID)
	return httpx.Success(c, http.StatusOK, "login successful", echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) MyProfile(c echo.Context) error {
	user := authmw.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "a token is required for authentication")
	}
	return httpx.Success(c, http.StatusOK, "", echo.Map{"user": user})
}

func (h *AuthHandler) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
