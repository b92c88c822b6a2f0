package routes

import (
	"fmt"
	"time"

	"halisaha-server/models"
	"halisaha-server/services"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
)

type CreatePlayerSearchInput struct {
	ReservationID uint   `json:"reservationID" validate:"required"`
	PlayersNeeded int    `json:"playersNeeded" validate:"required,min=1,max=10"`
	Description   string `json:"description" validate:"max=500"`
}

type JoinPlayerSearchInput struct {
	Message string `json:"message" validate:"max=500"`
}

type RespondToJoinRequestInput struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// listingStatusForAccepted decides the listing status after an accept:
// reaching the needed count closes the listing.
func listingStatusForAccepted(acceptedCount, playersNeeded int) string {
	if acceptedCount >= playersNeeded {
		return "filled"
	}
	return "open"
}

func acceptedParticipantCount(listingID uint) int64 {
	var count int64
	storage.DB.Model(&models.PlayerSearchParticipant{}).
		Where("listing_id = ? AND status = ?", listingID, "accepted").
		Count(&count)
	return count
}

// CreatePlayerSearch opens a listing asking for extra players on the caller's
// own upcoming reservation. One open listing per reservation.
func CreatePlayerSearch(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreatePlayerSearchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Where("id = ? AND user_id = ?", input.ReservationID, userID).
		First(&reservation).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Reservation not found"})
		return
	}
	if reservation.Status == models.ReservationStatusCancelled {
		utils.JSONError(ctx, iris.StatusBadRequest, "reservation_cancelled",
			"Cannot search players for a cancelled reservation")
		return
	}
	if reservationEnded(reservation.Date, reservation.EndTime, time.Now()) {
		utils.JSONError(ctx, iris.StatusBadRequest, "reservation_past",
			"Cannot search players for a past reservation")
		return
	}

	var existing models.PlayerSearchListing
	if err := storage.DB.Where("reservation_id = ? AND status IN ?",
		input.ReservationID, []string{"open", "filled"}).First(&existing).Error; err == nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "listing_exists",
			"There is already a player search for this reservation")
		return
	}

	listing := models.PlayerSearchListing{
		ReservationID: input.ReservationID,
		OrganizerID:   userID,
		PlayersNeeded: input.PlayersNeeded,
		Description:   input.Description,
		Status:        "open",
	}
	if err := storage.DB.Create(&listing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": listing})
}

// ListPlayerSearches returns open listings, newest first.
func ListPlayerSearches(ctx iris.Context) {
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.PlayerSearchListing{}).Where("status = ?", "open")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var listings []models.PlayerSearchListing
	if err := query.Preload("Reservation").
		Preload("Reservation.Field").
		Preload("Organizer").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&listings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, listings, page, limit, total)
}

// JoinPlayerSearch files a pending request to join a listing.
func JoinPlayerSearch(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	listingID := ctx.Params().GetUintDefault("id", 0)

	var input JoinPlayerSearchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var listing models.PlayerSearchListing
	if err := storage.DB.First(&listing, listingID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Listing not found"})
		return
	}
	if listing.Status == "filled" {
		utils.JSONError(ctx, iris.StatusBadRequest, "listing_filled", "Enough players found")
		return
	}
	if listing.Status != "open" {
		utils.JSONError(ctx, iris.StatusBadRequest, "listing_closed", "This listing is no longer open")
		return
	}
	if listing.OrganizerID == userID {
		utils.JSONError(ctx, iris.StatusBadRequest, "own_listing", "You cannot join your own listing")
		return
	}

	var existing models.PlayerSearchParticipant
	if err := storage.DB.Where("listing_id = ? AND user_id = ? AND status IN ?",
		listingID, userID, []string{"pending", "accepted"}).First(&existing).Error; err == nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "already_requested",
			"You already requested to join this match")
		return
	}

	participant := models.PlayerSearchParticipant{
		ListingID: listingID,
		UserID:    userID,
		Status:    "pending",
		Message:   input.Message,
	}
	if err := storage.DB.Create(&participant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var requester models.User
	storage.DB.First(&requester, userID)
	notificationService := services.NewNotificationService()
	notificationService.SendJoinRequestNotification(listing.ID, listing.OrganizerID,
		fmt.Sprintf("%s %s", requester.FirstName, requester.LastName))

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": participant})
}

// ListJoinRequests shows a listing's join requests to the organizer.
func ListJoinRequests(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	listingID := ctx.Params().GetUintDefault("id", 0)

	var listing models.PlayerSearchListing
	if err := storage.DB.First(&listing, listingID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Listing not found"})
		return
	}
	if listing.OrganizerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only the organizer can view join requests"})
		return
	}

	var participants []models.PlayerSearchParticipant
	if err := storage.DB.Where("listing_id = ?", listingID).
		Preload("User").
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": participants})
}

// RespondToJoinRequest lets the organizer accept or reject a pending request.
// Accepting writes a roster row on the reservation, capped at playersNeeded;
// reaching the cap closes the listing as filled.
func RespondToJoinRequest(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	listingID := ctx.Params().GetUintDefault("id", 0)
	requestID := ctx.Params().GetUintDefault("requestId", 0)

	var input RespondToJoinRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var listing models.PlayerSearchListing
	if err := storage.DB.First(&listing, listingID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Listing not found"})
		return
	}
	if listing.OrganizerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only the organizer can respond to join requests"})
		return
	}

	var participant models.PlayerSearchParticipant
	if err := storage.DB.Where("id = ? AND listing_id = ?", requestID, listingID).
		First(&participant).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Join request not found"})
		return
	}
	if participant.Status != "pending" {
		utils.JSONError(ctx, iris.StatusBadRequest, "already_responded",
			"This request has already been responded to")
		return
	}

	if input.Status == "accepted" {
		accepted := int(acceptedParticipantCount(listing.ID))
		if accepted >= listing.PlayersNeeded {
			utils.JSONError(ctx, iris.StatusBadRequest, "listing_filled", "Enough players found")
			return
		}

		participant.Status = "accepted"
		if err := storage.DB.Save(&participant).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		// Attach the accepted player to the reservation roster, ignoring a
		// duplicate if they were already listed manually.
		rosterRow := models.ReservationPlayer{
			ReservationID: listing.ReservationID,
			UserID:        participant.UserID,
			Source:        "player_search",
		}
		if err := storage.DB.Create(&rosterRow).Error; err != nil && !storage.IsUniqueViolation(err) {
			utils.CreateInternalServerError(ctx)
			return
		}

		if status := listingStatusForAccepted(accepted+1, listing.PlayersNeeded); status != listing.Status {
			listing.Status = status
			storage.DB.Save(&listing)
		}
	} else {
		participant.Status = "rejected"
		if err := storage.DB.Save(&participant).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	notificationService := services.NewNotificationService()
	notificationService.SendJoinResponseNotification(listing.ID, participant.UserID, participant.Status)

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{
		"request": participant,
		"listing": listing,
	}})
}

// WithdrawFromPlayerSearch removes the caller's pending or accepted request.
// Withdrawing an accepted spot reopens a filled listing.
func WithdrawFromPlayerSearch(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	listingID := ctx.Params().GetUintDefault("id", 0)

	var listing models.PlayerSearchListing
	if err := storage.DB.First(&listing, listingID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Listing not found"})
		return
	}

	var participant models.PlayerSearchParticipant
	if err := storage.DB.Where("listing_id = ? AND user_id = ? AND status IN ?",
		listingID, userID, []string{"pending", "accepted"}).First(&participant).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "You have no active request on this listing"})
		return
	}

	wasAccepted := participant.Status == "accepted"
	participant.Status = "withdrawn"
	if err := storage.DB.Save(&participant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if wasAccepted {
		storage.DB.Where("reservation_id = ? AND user_id = ? AND source = ?",
			listing.ReservationID, userID, "player_search").
			Delete(&models.ReservationPlayer{})

		if listing.Status == "filled" {
			listing.Status = "open"
			storage.DB.Save(&listing)
		}
	}

	ctx.JSON(iris.Map{"success": true, "message": "Request withdrawn"})
}
