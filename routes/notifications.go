package routes

import (
	"time"

	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
)

// ListNotifications returns the caller's notifications with an unread count.
func ListNotifications(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var unread int64
	storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread)

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	ctx.JSON(iris.Map{
		"success":     true,
		"data":        notifications,
		"unreadCount": unread,
		"pagination":  utils.Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages},
	})
}

func MarkNotificationRead(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().GetUintDefault("id", 0)

	var notification models.Notification
	if err := storage.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Notification not found"})
		return
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := storage.DB.Save(&notification).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": notification})
}

func MarkAllNotificationsRead(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	now := time.Now()
	if err := storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "All notifications marked as read"})
}
