package routes

import (
	"strings"
	"time"

	"halisaha-server/models"
	"halisaha-server/services"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateOpponentListingInput struct {
	City          string `json:"city" validate:"max=64"`
	PreferredDate string `json:"preferredDate"`
	TimeRange     string `json:"timeRange" validate:"max=32"`
	Description   string `json:"description" validate:"max=500"`
}

type CreateMatchProposalInput struct {
	ListingID    uint   `json:"listingID" validate:"required"`
	ProposedDate string `json:"proposedDate" validate:"required"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Message      string `json:"message" validate:"max=500"`
}

type RespondToProposalInput struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// optionalClock validates an optional "HH:MM" value. The empty string maps to
// nil so the time column stays NULL instead of an empty literal Postgres
// rejects.
func optionalClock(input string) (*string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := parseClock(trimmed); err != nil {
		return nil, err
	}
	return &trimmed, nil
}

// CreateOpponentListing publishes a team's ad for an opponent. Captain only.
func CreateOpponentListing(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateOpponentListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var team models.Team
	if err := storage.DB.Where("captain_id = ?", userID).First(&team).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only a team captain can create an opponent listing"})
		return
	}

	listing := models.OpponentSearchListing{
		TeamID:      team.ID,
		CreatedByID: userID,
		City:        input.City,
		TimeRange:   input.TimeRange,
		Description: input.Description,
		Status:      "open",
	}
	if listing.City == "" {
		listing.City = team.City
	}
	if input.PreferredDate != "" {
		date, err := normalizeDate(input.PreferredDate)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "preferredDate must be YYYY-MM-DD")
			return
		}
		listing.PreferredDate = &date
	}

	if err := storage.DB.Create(&listing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": listing})
}

// ListOpponentListings returns open listings, optional city/date filters.
func ListOpponentListings(ctx iris.Context) {
	page, limit := utils.PageParams(ctx)

	query := storage.DB.Model(&models.OpponentSearchListing{}).Where("status = ?", "open")
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("lower(city) = lower(?)", city)
	}
	if dateStr := ctx.URLParam("date"); dateStr != "" {
		date, err := normalizeDate(dateStr)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		query = query.Where("preferred_date = ?", date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var listings []models.OpponentSearchListing
	if err := query.Preload("Team").Preload("Team.Captain").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&listings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, listings, page, limit, total)
}

// CreateMatchProposal makes a concrete offer against a listing. A team cannot
// propose to its own listing.
func CreateMatchProposal(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateMatchProposalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var proposingTeam models.Team
	if err := storage.DB.Where("captain_id = ?", userID).First(&proposingTeam).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only a team captain can propose a match"})
		return
	}

	var listing models.OpponentSearchListing
	if err := storage.DB.Preload("Team").First(&listing, input.ListingID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Listing not found"})
		return
	}
	if listing.Status != "open" {
		utils.JSONError(ctx, iris.StatusBadRequest, "listing_closed", "This listing is no longer open")
		return
	}
	if listing.TeamID == proposingTeam.ID {
		utils.JSONError(ctx, iris.StatusBadRequest, "own_listing", "You cannot propose a match to your own team")
		return
	}

	date, err := normalizeDate(input.ProposedDate)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "proposedDate must be YYYY-MM-DD")
		return
	}
	startTime, err := optionalClock(input.StartTime)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "startTime must be HH:MM")
		return
	}
	endTime, err := optionalClock(input.EndTime)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "endTime must be HH:MM")
		return
	}
	if startTime != nil && endTime != nil {
		startMinutes, _ := parseClock(*startTime)
		endMinutes, _ := parseClock(*endTime)
		if endMinutes <= startMinutes {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time_range", "endTime must be after startTime")
			return
		}
	}

	proposal := models.MatchProposal{
		ListingID:       listing.ID,
		ProposingTeamID: proposingTeam.ID,
		ProposedByID:    userID,
		ProposedDate:    date,
		StartTime:       startTime,
		EndTime:         endTime,
		Message:         input.Message,
		Status:          "pending",
	}
	if err := storage.DB.Create(&proposal).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	notificationService := services.NewNotificationService()
	notificationService.SendMatchProposalNotification(proposal.ID, listing.Team.CaptainID,
		proposingTeam.Name, date.Format("2006-01-02"))

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": proposal})
}

// ListListingProposals shows proposals against a listing to its team captain.
func ListListingProposals(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	listingID := ctx.Params().GetUintDefault("id", 0)

	var listing models.OpponentSearchListing
	if err := storage.DB.Preload("Team").First(&listing, listingID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Listing not found"})
		return
	}
	if listing.Team.CaptainID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only the listing's team captain can view proposals"})
		return
	}

	var proposals []models.MatchProposal
	if err := storage.DB.Where("listing_id = ?", listingID).
		Preload("ProposingTeam").
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": proposals})
}

// RespondToProposal accepts or rejects a proposal. Restricted to the target
// team's captain; a proposal can be responded to once.
func RespondToProposal(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	proposalID := ctx.Params().GetUintDefault("id", 0)

	var input RespondToProposalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var proposal models.MatchProposal
	if err := storage.DB.Preload("Listing").Preload("Listing.Team").
		First(&proposal, proposalID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Proposal not found"})
		return
	}
	if proposal.Listing.Team.CaptainID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only the listing's team captain can respond"})
		return
	}
	if proposal.Status != "pending" {
		utils.JSONError(ctx, iris.StatusBadRequest, "already_responded",
			"This proposal has already been responded to")
		return
	}

	now := time.Now()
	proposal.Status = input.Status
	proposal.RespondedAt = &now
	if err := storage.DB.Save(&proposal).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.Status == "accepted" {
		storage.DB.Model(&models.OpponentSearchListing{}).
			Where("id = ?", proposal.ListingID).
			Update("status", "matched")
	}

	notificationService := services.NewNotificationService()
	notificationService.SendProposalResponseNotification(proposal.ID, proposal.ProposedByID,
		proposal.Listing.Team.Name, input.Status)

	ctx.JSON(iris.Map{"success": true, "data": proposal})
}
