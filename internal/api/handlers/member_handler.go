package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"short_video_service/internal/member/app"
	"short_video_service/internal/member/domain"
	"short_video_service/pkg/logger"
	"short_video_service/pkg/middlewares"
)

// MemberHandler 處理使用者相關的 HTTP 請求
type MemberHandler struct {
	memberUseCase app.MemberUseCase
	sessionTTL    time.Duration
}

// NewMemberHandler 建立 MemberHandler
func NewMemberHandler(memberUseCase app.MemberUseCase, sessionTTL time.Duration) *MemberHandler {
	return &MemberHandler{memberUseCase: memberUseCase, sessionTTL: sessionTTL}
}

// LoginResponse 登入成功回應
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Register 註冊新使用者
// @Summary Register
// @Description Create an account; name defaults to username
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterInput true "register request"
// @Success 201 {object} domain.Member
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "registration closed"
// @Failure 409 {object} ErrorResponse "email or username taken"
// @Router /api/auth/register [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	logger.Log.Debug("Register request", zap.String("email", req.Email), zap.String("username", req.Username))

	member, err := h.memberUseCase.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// Login 使用者登入
// @Summary Login
// @Description Returns a bearer token and sets the auth_token cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginInput true "login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	logger.Log.Debug("Login", zap.String("email", req.Email))

	token, err := h.memberUseCase.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieToken,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(h.sessionTTL),
	})
	return c.JSON(LoginResponse{Token: token, Message: "login success"})
}

// Logout 使用者登出
// @Summary Logout
// @Description Deletes the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/logout [post]
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	if err := h.memberUseCase.Logout(c.UserContext(), viewerOf(c)); err != nil {
		return respondError(c, err)
	}
	c.ClearCookie(middlewares.CookieToken)
	return c.JSON(MessageResponse{Message: "logout success"})
}

// GetProfile 使用者個人頁
// @Summary Get user profile
// @Description Public profile with video, follower and following counts
// @Tags Users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Router /api/users/{id} [get]
func (h *MemberHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.memberUseCase.GetProfile(c.UserContext(), viewerOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile 修改自己的資料
// @Summary Update own profile
// @Description Only fields present in the body are changed; null clears a field
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Param request body domain.ProfileUpdate true "fields to update"
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/users/{id} [patch]
func (h *MemberHandler) UpdateProfile(c *fiber.Ctx) error {
	var upd domain.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.memberUseCase.UpdateProfile(c.UserContext(), viewerOf(c), c.Params("id"), upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
