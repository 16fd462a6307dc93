package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func currentUser(c *fiber.Ctx) (models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, false
	}
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND enabled = ?", userID, false, true).
		First(&user).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

func targetUserID(c *fiber.Ctx) (uint, error) {
	idStr := strings.TrimSpace(c.Params("user_id"))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
	}
	return uint(id), nil
}

// AdminListUsers lists accounts with optional role filter and pagination
func AdminListUsers(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	role := strings.ToUpper(c.Query("role"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminSetUserEnabled enables or disables an account
func AdminSetUserEnabled(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID, err := targetUserID(c)
	if err != nil {
		return err
	}

	reqData := new(struct {
		Enabled *bool `json:"enabled"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Enabled == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enabled flag is required!", nil)
	}

	updated, serr := services.SetUserEnabled(database.Database.Db, user, userID, *reqData.Enabled)
	if serr != nil {
		return middleware.ServiceErrorResponse(c, serr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", updated)
}

// AdminUpdateUser edits an account's display fields
func AdminUpdateUser(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID, err := targetUserID(c)
	if err != nil {
		return err
	}

	reqData := new(struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updated, serr := services.UpdateUser(database.Database.Db, user, userID, services.UserUpdateInput{
		FullName: reqData.FullName,
		Email:    reqData.Email,
	})
	if serr != nil {
		return middleware.ServiceErrorResponse(c, serr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", updated)
}

// AdminDeleteUser soft deletes an account without dependent records
func AdminDeleteUser(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID, err := targetUserID(c)
	if err != nil {
		return err
	}

	if serr := services.DeleteUser(database.Database.Db, user, userID); serr != nil {
		return middleware.ServiceErrorResponse(c, serr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}
