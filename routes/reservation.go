package routes

import (
	"fmt"
	"strings"
	"time"

	"halisaha-server/models"
	"halisaha-server/services"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateReservationInput struct {
	FieldID   uint   `json:"fieldID" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	TeamID    *uint  `json:"teamID"`
	PlayerIDs []uint `json:"playerIDs"`
	Notes     string `json:"notes" validate:"max=500"`
}

type ReservationResponse struct {
	ID            uint    `json:"id"`
	FieldID       uint    `json:"fieldID"`
	UserID        uint    `json:"userID"`
	TeamID        *uint   `json:"teamID,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalPrice    float64 `json:"totalPrice"`
	Notes         string  `json:"notes,omitempty"`
	PlayerCount   int     `json:"playerCount"`
}

// normalizeDate accepts "2006-01-02" or a full ISO timestamp and reduces it to
// a plain calendar date. The time component is dropped before parsing so that
// a client sending "2025-06-01T00:00:00.000Z" from another timezone can never
// shift the booking to the previous or next day.
func normalizeDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if i := strings.Index(s, "T"); i != -1 {
		s = s[:i]
	}
	return time.Parse("2006-01-02", s)
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(input string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(input))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// rangesOverlap reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Back-to-back slots (aEnd == bStart) do not overlap.
func rangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// reservationEnded reports whether the reservation's end timestamp is in the past.
func reservationEnded(date time.Time, endTime string, now time.Time) bool {
	minutes, err := parseClock(endTime)
	if err != nil {
		return false
	}
	end := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location()).
		Add(time.Duration(minutes) * time.Minute)
	return end.Before(now)
}

// CreateReservation books a field slot. The reservation row and its roster
// rows are written in one transaction; a concurrent booking of an overlapping
// slot loses against the reservations_no_overlap constraint and surfaces as
// 409 with the overlapping_reservation code.
func CreateReservation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	date, err := normalizeDate(input.Date)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	startMinutes, err := parseClock(input.StartTime)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "startTime must be HH:MM")
		return
	}
	endMinutes, err := parseClock(input.EndTime)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "endTime must be HH:MM")
		return
	}
	if endMinutes <= startMinutes {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time_range", "endTime must be after startTime")
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		utils.JSONError(ctx, iris.StatusBadRequest, "past_date", "Cannot book a field in the past")
		return
	}

	var field models.Field
	if err := storage.DB.First(&field, input.FieldID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Field not found"})
		return
	}

	var venue models.Venue
	if err := storage.DB.First(&venue, field.VenueID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !venue.IsActive {
		utils.JSONError(ctx, iris.StatusBadRequest, "venue_inactive", "This venue is not accepting reservations")
		return
	}

	// Roster: the booker, the team's captain and active members, plus any
	// manually listed players. Duplicates collapse in the set.
	rosterSources := map[uint]string{userID: "booker"}

	if input.TeamID != nil {
		var team models.Team
		if err := storage.DB.First(&team, *input.TeamID).Error; err != nil {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Team not found"})
			return
		}

		var membership models.TeamMember
		if err := storage.DB.Where("team_id = ? AND user_id = ? AND status = ?",
			team.ID, userID, "active").First(&membership).Error; err != nil {
			ctx.StatusCode(iris.StatusForbidden)
			ctx.JSON(iris.Map{"message": "You are not an active member of this team"})
			return
		}

		var members []models.TeamMember
		storage.DB.Where("team_id = ? AND status = ?", team.ID, "active").Find(&members)
		for _, member := range members {
			if _, ok := rosterSources[member.UserID]; !ok {
				rosterSources[member.UserID] = "team"
			}
		}
	}

	for _, playerID := range input.PlayerIDs {
		if _, ok := rosterSources[playerID]; !ok {
			rosterSources[playerID] = "manual"
		}
	}

	// Fast pre-check against existing bookings. The exclusion constraint is
	// the real arbiter; this only avoids opening a transaction for a slot
	// that is visibly taken.
	var booked []models.Reservation
	storage.DB.
		Where("field_id = ? AND date = ? AND status NOT IN ?",
			input.FieldID, date, []string{models.ReservationStatusCancelled, models.ReservationStatusNoShow}).
		Find(&booked)
	for _, other := range booked {
		otherStart, startErr := parseClock(other.StartTime)
		otherEnd, endErr := parseClock(other.EndTime)
		if startErr != nil || endErr != nil {
			continue
		}
		if rangesOverlap(startMinutes, endMinutes, otherStart, otherEnd) {
			utils.CreateConflict(ctx, "overlapping_reservation", "This time slot is already booked")
			return
		}
	}

	rate := field.PricePerHour
	if rate == 0 {
		rate = venue.PricePerHour
	}
	totalPrice := rate * float64(endMinutes-startMinutes) / 60.0

	reservation := models.Reservation{
		FieldID:    input.FieldID,
		UserID:     userID,
		TeamID:     input.TeamID,
		Date:       date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Status:     models.ReservationStatusPending,
		TotalPrice: totalPrice,
		Notes:      input.Notes,
	}

	tx := storage.DB.Begin()
	if err := tx.Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.Create(&reservation).Error; err != nil {
		if storage.IsExclusionViolation(err) {
			utils.CreateConflict(ctx, "overlapping_reservation", "This time slot is already booked")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	for playerID, source := range rosterSources {
		player := models.ReservationPlayer{
			ReservationID: reservation.ID,
			UserID:        playerID,
			Source:        source,
		}
		if err := tx.Create(&player).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		if storage.IsExclusionViolation(err) {
			utils.CreateConflict(ctx, "overlapping_reservation", "This time slot is already booked")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	// Best-effort, outside the transaction
	notificationService := services.NewNotificationService()
	go notificationService.SendReservationCreatedNotification(
		reservation.ID, userID, venue.Name, date.Format("2006-01-02"), input.StartTime)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Reservation created successfully",
		"data": ReservationResponse{
			ID:            reservation.ID,
			FieldID:       reservation.FieldID,
			UserID:        reservation.UserID,
			TeamID:        reservation.TeamID,
			Date:          date.Format("2006-01-02"),
			StartTime:     reservation.StartTime,
			EndTime:       reservation.EndTime,
			Status:        reservation.Status,
			PaymentStatus: "unpaid",
			TotalPrice:    reservation.TotalPrice,
			Notes:         reservation.Notes,
			PlayerCount:   len(rosterSources),
		},
	})
}

// GetFieldAvailability returns the booked [start,end) intervals of a field on
// a date so clients can grey out taken slots. Cancelled and no-show
// reservations do not block a slot.
func GetFieldAvailability(ctx iris.Context) {
	fieldID := ctx.Params().GetUintDefault("fieldId", 0)
	if fieldID == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid field id")
		return
	}

	dateStr := ctx.URLParam("date")
	if dateStr == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "missing_date", "date query parameter is required")
		return
	}
	date, err := normalizeDate(dateStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	var reservations []models.Reservation
	if err := storage.DB.
		Where("field_id = ? AND date = ? AND status NOT IN ?",
			fieldID, date, []string{models.ReservationStatusCancelled, models.ReservationStatusNoShow}).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	slots := make([]iris.Map, 0, len(reservations))
	for _, reservation := range reservations {
		slots = append(slots, iris.Map{
			"startTime": reservation.StartTime,
			"endTime":   reservation.EndTime,
			"status":    reservation.Status,
		})
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{
		"fieldID":     fieldID,
		"date":        date.Format("2006-01-02"),
		"bookedSlots": slots,
	}})
}

// cancellableStatus reports whether a reservation in the given status may be
// cancelled; when it may not, the rejection code is returned. A second cancel
// attempt is rejected, not silently accepted.
func cancellableStatus(status string) (bool, string) {
	switch status {
	case models.ReservationStatusCancelled:
		return false, "already_cancelled"
	case models.ReservationStatusCompleted, models.ReservationStatusNoShow:
		return false, "not_cancellable"
	}
	return true, ""
}

// CancelReservation transitions a caller-owned reservation to cancelled.
func CancelReservation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	reservationID := ctx.Params().GetUintDefault("id", 0)
	if reservationID == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid reservation id")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Where("id = ? AND user_id = ?", reservationID, userID).
		First(&reservation).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Reservation not found"})
		return
	}

	if ok, code := cancellableStatus(reservation.Status); !ok {
		message := fmt.Sprintf("A %s reservation cannot be cancelled", reservation.Status)
		if code == "already_cancelled" {
			message = "Reservation is already cancelled"
		}
		utils.JSONError(ctx, iris.StatusBadRequest, code, message)
		return
	}

	reservation.Status = models.ReservationStatusCancelled
	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Reservation cancelled successfully"})
}

// ListMyReservations returns the caller's reservations, newest first.
func ListMyReservations(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.Reservation{}).Where("user_id = ?", userID)
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var reservations []models.Reservation
	if err := query.Preload("Field").Preload("Team").
		Order("date DESC, start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reservations, page, limit, total)
}

// GetReservation returns one reservation with its roster, for participants.
func GetReservation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	reservationID := ctx.Params().GetUintDefault("id", 0)

	var reservation models.Reservation
	if err := storage.DB.Preload("Field").Preload("Team").Preload("User").
		First(&reservation, reservationID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Reservation not found"})
		return
	}

	var roster []models.ReservationPlayer
	storage.DB.Where("reservation_id = ?", reservationID).Preload("User").Find(&roster)

	onRoster := reservation.UserID == userID
	for _, player := range roster {
		if player.UserID == userID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "You are not part of this reservation"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{
		"reservation": reservation,
		"players":     roster,
	}})
}
