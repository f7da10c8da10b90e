package user

import (
	"errors"
	"math"
	"strings"

	"bascula-backend/internal/database"
	"bascula-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"` // defaults to ROLE_USER
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// POST /api/users (admin only)
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.FirstName == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "first_name, email and password are required")
		}

		role := models.RoleUser
		if body.Role != "" {
			parsed, err := parseRole(body.Role)
			if err != nil {
				return err
			}
			role = parsed
		}

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			FirstName:    strings.TrimSpace(body.FirstName),
			LastName:     strings.TrimSpace(body.LastName),
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&user))
	}
}

// GET /api/users?page=&page_size=&search= (admin only)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		pageSize := c.QueryInt("page_size", 10)
		if pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		query := database.DB.Model(&models.User{})
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)",
				pattern, pattern, pattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count users")
		}

		var users []models.User
		if err := query.Order("first_name ASC, last_name ASC").
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		data := make([]UserResponse, 0, len(users))
		for i := range users {
			data = append(data, toResponse(&users[i]))
		}

		return c.JSON(UserListResponse{
			Data:       data,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		})
	}
}

// GET /api/users/:id (admin only)
func GetUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := findUser(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(user))
	}
}

// PUT /api/users/:id (admin only)
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := findUser(c)
		if err != nil {
			return err
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.FirstName != nil {
			user.FirstName = strings.TrimSpace(*body.FirstName)
		}
		if body.LastName != nil {
			user.LastName = strings.TrimSpace(*body.LastName)
		}
		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "email cannot be empty")
			}
			var count int64
			database.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Email is already registered")
			}
			user.Email = email
		}
		if body.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
			}
			user.PasswordHash = string(hash)
		}

		if err := database.DB.Save(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}

		return c.JSON(toResponse(user))
	}
}

// PATCH /api/users/:id/role (admin only)
func ChangeRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := findUser(c)
		if err != nil {
			return err
		}

		var body ChangeRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		role, err := parseRole(body.Role)
		if err != nil {
			return err
		}

		user.Role = role
		if err := database.DB.Save(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not change role")
		}

		return c.JSON(toResponse(user))
	}
}

// DELETE /api/users/:id (admin only)
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := findUser(c)
		if err != nil {
			return err
		}

		var reportCount int64
		database.DB.Model(&models.Report{}).
			Where("user_id = ?", user.ID).
			Count(&reportCount)
		if reportCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "User has issued reports and cannot be deleted")
		}

		if err := database.DB.Delete(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

func parseRole(s string) (models.UserRole, error) {
	switch models.UserRole(s) {
	case models.RoleAdmin, models.RoleUser:
		return models.UserRole(s), nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "role must be ROLE_ADMIN or ROLE_USER")
}

func findUser(c *fiber.Ctx) (*models.User, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "User id is not valid")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load user")
	}
	return &user, nil
}

func toResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
