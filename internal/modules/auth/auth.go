package auth

import (
	"errors"
	"time"

	"github.com/aiinasia/core/internal/middleware"
	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/jwt"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger.Named("AuthService")}
}

// Login verifies credentials and returns a signed token. A nil user with a
// nil error means the credentials were wrong.
func (s *Service) Login(username, password, ip string) (*models.UserModel, string, error) {
	var user models.UserModel
	err := s.db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.logger.Warn("failed login attempt",
			zap.String("username", username), zap.String("ip", ip))
		return nil, "", nil
	}

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_time": &now,
		"last_login_ip":   ip,
	})
	return &user, token, nil
}

func (s *Service) GetUser(id string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the old password and stores a bcrypt hash of the
// new one.
func (s *Service) ChangePassword(id, oldPassword, newPassword string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password", string(hash)).Error
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.GET("/me", authMW, h.me)
		authGroup.PUT("/password", authMW, h.changePassword)
	}
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.svc.Login(dto.Username, dto.Password, c.ClientIP())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, gin.H{"token": token, "user": user})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, user)
}

func (h *Handler) changePassword(c *gin.Context) {
	var dto changePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.ChangePassword(middleware.CurrentUserID(c), dto.OldPassword, dto.NewPassword); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.NoContent(c)
}
