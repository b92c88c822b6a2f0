package routes

import (
	"net/http"

	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

// GET /api/admin/users — paginated user list with optional search/role filters
func AdminListUsers(ctx iris.Context) {
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.User{})
	if q := ctx.URLParam("q"); q != "" {
		search := "%" + q + "%"
		query = query.Where(
			"lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?) OR lower(email) LIKE lower(?)",
			search, search, search)
	}
	if role := ctx.URLParam("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, users, page, limit, total)
}

// GET /api/admin/users/:id — full user info + recent notifications
func AdminGetUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	var reservationCount int64
	storage.DB.Model(&models.Reservation{}).Where("user_id = ?", id).Count(&reservationCount)

	var actions []models.AuditLog
	storage.DB.Where("resource_type = ? AND resource_id = ?", "user", id).
		Order("created_at DESC").Limit(50).Find(&actions)

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{
		"user":             user,
		"reservationCount": reservationCount,
		"recentAdminActions": actions,
	}})
}

// PATCH /api/admin/users/:id/role { role }
func AdminUpdateUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := ctx.ReadJSON(&body); err != nil ||
		!slices.Contains([]string{"player", "venue_owner", "admin"}, body.Role) {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "role must be player/venue_owner/admin")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if user.Role == "super_admin" {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "super_admin role cannot be changed")
		return
	}

	before := user
	user.Role = body.Role
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "user.role", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"success": true, "data": user})
}

// DELETE /api/admin/users/:id — admin accounts are protected
func AdminDeleteUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if user.Role == "admin" || user.Role == "super_admin" {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "admin accounts cannot be deleted")
		return
	}

	if err := storage.DB.Delete(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "user.delete", "user", user.ID, user, nil)
	ctx.JSON(iris.Map{"success": true, "message": "user deleted"})
}

// GET /api/admin/venues — paginated, inactive included
func AdminListVenues(ctx iris.Context) {
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.Venue{})
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("lower(city) = lower(?)", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	var venues []models.Venue
	if err := query.Preload("Owner").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&venues).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, venues, page, limit, total)
}

// PATCH /api/admin/venues/:id/active { isActive }
func AdminSetVenueActive(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		IsActive bool `json:"isActive"`
	}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "isActive is required")
		return
	}

	var venue models.Venue
	if err := storage.DB.First(&venue, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "venue not found")
		return
	}

	before := venue
	venue.IsActive = body.IsActive
	if err := storage.DB.Save(&venue).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "venue.active", "venue", venue.ID, before, venue)
	ctx.JSON(iris.Map{"success": true, "data": venue})
}
