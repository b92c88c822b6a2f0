package routes

import (
	"time"

	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
)

type RatePlayerInput struct {
	ReservationID uint   `json:"reservationID" validate:"required"`
	RateeID       uint   `json:"rateeID" validate:"required"`
	Stars         int    `json:"stars" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"max=500"`
}

// RatePlayer records a rating for a fellow player of a finished reservation.
// One rating per (reservation, rater, ratee); the unique index is the final
// arbiter, duplicates surface as 409.
func RatePlayer(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input RatePlayerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.RateeID == userID {
		utils.JSONError(ctx, iris.StatusBadRequest, "self_rating", "You cannot rate yourself")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, input.ReservationID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Reservation not found"})
		return
	}

	if !reservationEnded(reservation.Date, reservation.EndTime, time.Now()) {
		utils.JSONError(ctx, iris.StatusBadRequest, "reservation_not_finished",
			"Players can only be rated after the match has ended")
		return
	}

	// Both sides must have been on the roster.
	var rosterCount int64
	storage.DB.Model(&models.ReservationPlayer{}).
		Where("reservation_id = ? AND user_id IN ?", input.ReservationID, []uint{userID, input.RateeID}).
		Count(&rosterCount)
	if rosterCount != 2 {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Both players must have taken part in this reservation"})
		return
	}

	rating := models.PlayerRating{
		ReservationID: input.ReservationID,
		RaterID:       userID,
		RateeID:       input.RateeID,
		Stars:         input.Stars,
		Comment:       input.Comment,
	}
	if err := storage.DB.Create(&rating).Error; err != nil {
		if storage.IsUniqueViolation(err) {
			utils.CreateConflict(ctx, "duplicate_rating", "You already rated this player for this match")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	updateTrustScore(input.RateeID, input.Stars)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": rating})
}

// updateTrustScore folds a new star value into the ratee's running average.
func updateTrustScore(rateeID uint, stars int) {
	var ratee models.User
	if err := storage.DB.First(&ratee, rateeID).Error; err != nil {
		return
	}
	ratee.TrustScore = (ratee.TrustScore*float64(ratee.RatingCount) + float64(stars)) / float64(ratee.RatingCount+1)
	ratee.RatingCount++
	storage.DB.Model(&ratee).Select("trust_score", "rating_count").Updates(&ratee)
}

// GetPlayerRatings lists ratings received by a user, newest first.
func GetPlayerRatings(ctx iris.Context) {
	rateeID := ctx.Params().GetUintDefault("id", 0)
	if rateeID == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.PlayerRating{}).Where("ratee_id = ?", rateeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var ratings []models.PlayerRating
	if err := query.Preload("Rater").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ratings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, ratings, page, limit, total)
}
