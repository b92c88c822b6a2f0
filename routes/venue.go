package routes

import (
	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

type VenueInput struct {
	Name         string  `json:"name" validate:"required,max=100"`
	City         string  `json:"city" validate:"required,max=64"`
	District     string  `json:"district" validate:"max=64"`
	Address      string  `json:"address" validate:"max=255"`
	PhoneNumber  string  `json:"phoneNumber"`
	Description  string  `json:"description" validate:"max=2000"`
	OpeningHour  string  `json:"openingHour"`
	ClosingHour  string  `json:"closingHour"`
	PricePerHour float64 `json:"pricePerHour" validate:"required,min=0"`
}

type FieldInput struct {
	Name         string  `json:"name" validate:"required,max=64"`
	SurfaceType  string  `json:"surfaceType"`
	Size         string  `json:"size"`
	Indoor       bool    `json:"indoor"`
	PricePerHour float64 `json:"pricePerHour" validate:"min=0"`
}

func CreateVenue(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input VenueInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.OpeningHour != "" {
		if _, err := parseClock(input.OpeningHour); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "openingHour must be HH:MM")
			return
		}
	}
	if input.ClosingHour != "" {
		if _, err := parseClock(input.ClosingHour); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "closingHour must be HH:MM")
			return
		}
	}

	venue := models.Venue{
		OwnerID:      userID,
		Name:         input.Name,
		City:         input.City,
		District:     input.District,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		Description:  input.Description,
		PricePerHour: input.PricePerHour,
		IsActive:     true,
	}
	if input.OpeningHour != "" {
		venue.OpeningHour = input.OpeningHour
	}
	if input.ClosingHour != "" {
		venue.ClosingHour = input.ClosingHour
	}

	if err := storage.DB.Create(&venue).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": venue})
}

// ListVenues is public: active venues, optional city filter, paginated.
func ListVenues(ctx iris.Context) {
	page, limit := utils.PageParams(ctx)
	city := ctx.URLParamDefault("city", "")

	query := storage.DB.Model(&models.Venue{}).Where("is_active = ?", true)
	if city != "" {
		query = query.Where("lower(city) = lower(?)", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var venues []models.Venue
	if err := query.Preload("Fields").
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&venues).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, venues, page, limit, total)
}

func GetVenue(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid venue id")
		return
	}

	var venue models.Venue
	if err := storage.DB.Preload("Fields").Preload("Owner").First(&venue, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": venue})
}

func UpdateVenue(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().GetUintDefault("id", 0)

	var venue models.Venue
	if err := storage.DB.First(&venue, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if venue.OwnerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "You can only update your own venues"})
		return
	}

	var input VenueInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.OpeningHour != "" {
		if _, err := parseClock(input.OpeningHour); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "openingHour must be HH:MM")
			return
		}
	}
	if input.ClosingHour != "" {
		if _, err := parseClock(input.ClosingHour); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_time", "closingHour must be HH:MM")
			return
		}
	}

	venue.Name = input.Name
	venue.City = input.City
	venue.District = input.District
	venue.Address = input.Address
	venue.PhoneNumber = input.PhoneNumber
	venue.Description = input.Description
	venue.PricePerHour = input.PricePerHour
	if input.OpeningHour != "" {
		venue.OpeningHour = input.OpeningHour
	}
	if input.ClosingHour != "" {
		venue.ClosingHour = input.ClosingHour
	}

	if err := storage.DB.Save(&venue).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": venue})
}

func CreateField(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	venueID := ctx.Params().GetUintDefault("id", 0)

	var venue models.Venue
	if err := storage.DB.First(&venue, venueID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if venue.OwnerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "You can only add fields to your own venues"})
		return
	}

	var input FieldInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Size != "" && !slices.Contains([]string{"5v5", "6v6", "7v7", "8v8"}, input.Size) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_size", "size must be one of 5v5, 6v6, 7v7, 8v8")
		return
	}

	field := models.Field{
		VenueID:      venueID,
		Name:         input.Name,
		Size:         input.Size,
		Indoor:       input.Indoor,
		PricePerHour: input.PricePerHour,
	}
	if input.SurfaceType != "" {
		field.SurfaceType = input.SurfaceType
	}

	if err := storage.DB.Create(&field).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": field})
}

func DeleteField(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	venueID := ctx.Params().GetUintDefault("id", 0)
	fieldID := ctx.Params().GetUintDefault("fieldId", 0)

	var venue models.Venue
	if err := storage.DB.First(&venue, venueID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if venue.OwnerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "You can only remove fields from your own venues"})
		return
	}

	var field models.Field
	if err := storage.DB.Where("id = ? AND venue_id = ?", fieldID, venueID).First(&field).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Delete(&field).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Field removed"})
}
