package routes

import (
	"net/http"

	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

// GET /api/admin/reservations — paginated with optional status/field filters
func AdminListReservations(ctx iris.Context) {
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.Reservation{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if fieldID := ctx.URLParamIntDefault("fieldId", 0); fieldID > 0 {
		query = query.Where("field_id = ?", fieldID)
	}
	if dateStr := ctx.URLParam("date"); dateStr != "" {
		date, err := normalizeDate(dateStr)
		if err != nil {
			utils.JSONError(ctx, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		query = query.Where("date = ?", date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	var reservations []models.Reservation
	if err := query.Preload("Field").Preload("User").Preload("Team").
		Order("date DESC, start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reservations).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, reservations, page, limit, total)
}

// PATCH /api/admin/reservations/:id/status { status }
// Admin- or time-driven transitions: confirm, complete, no_show, cancel.
// Completing a reservation bumps every roster player's match count.
func AdminUpdateReservationStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	validStatuses := []string{
		models.ReservationStatusPending,
		models.ReservationStatusConfirmed,
		models.ReservationStatusCancelled,
		models.ReservationStatusCompleted,
		models.ReservationStatusNoShow,
	}
	if err := ctx.ReadJSON(&body); err != nil || !slices.Contains(validStatuses, body.Status) {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload",
			"status must be pending/confirmed/cancelled/completed/no_show")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	before := reservation
	wasCompleted := reservation.Status == models.ReservationStatusCompleted
	reservation.Status = body.Status
	if err := storage.DB.Save(&reservation).Error; err != nil {
		if storage.IsExclusionViolation(err) {
			// Reviving a cancelled reservation can collide with a newer booking
			utils.CreateConflict(ctx, "overlapping_reservation", "This time slot is already booked")
			return
		}
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if body.Status == models.ReservationStatusCompleted && !wasCompleted {
		storage.DB.Exec(
			"UPDATE users SET matches_played = matches_played + 1 WHERE id IN (SELECT user_id FROM reservation_players WHERE reservation_id = ?)",
			reservation.ID)
	}

	utils.Audit(ctx, "reservation.status", "reservation", reservation.ID, before, reservation)
	ctx.JSON(iris.Map{"success": true, "data": reservation})
}

// PATCH /api/admin/reservations/:id/payment { paymentStatus }
func AdminUpdateReservationPayment(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := ctx.ReadJSON(&body); err != nil ||
		!slices.Contains([]string{"unpaid", "paid", "refunded"}, body.PaymentStatus) {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "paymentStatus must be unpaid/paid/refunded")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	before := reservation
	reservation.PaymentStatus = body.PaymentStatus
	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "reservation.payment", "reservation", reservation.ID, before, reservation)
	ctx.JSON(iris.Map{"success": true, "data": reservation})
}
