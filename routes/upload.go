package routes

import (
	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
)

type UploadImageInput struct {
	Image string `json:"image" validate:"required"`
}

// UploadAvatar stores a base64 profile picture on disk and updates the user.
func UploadAvatar(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	url, err := storage.SaveBase64Image(input.Image, "avatars")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_image", "Could not decode image")
		return
	}

	if user.AvatarURL != "" {
		storage.DeleteUploadedImage(user.AvatarURL)
	}
	user.AvatarURL = url
	if err := storage.DB.Model(&user).Update("avatar_url", url).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"url": url}})
}

// UploadTeamLogo stores a team logo (captain only).
func UploadTeamLogo(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	teamID := ctx.Params().GetUintDefault("id", 0)

	var team models.Team
	if err := storage.DB.First(&team, teamID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if team.CaptainID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only the captain can change the team logo"})
		return
	}

	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	url, err := storage.SaveBase64Image(input.Image, "logos")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_image", "Could not decode image")
		return
	}

	if team.LogoURL != "" {
		storage.DeleteUploadedImage(team.LogoURL)
	}
	if err := storage.DB.Model(&team).Update("logo_url", url).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"url": url}})
}

// UploadVenuePhoto stores a venue photo (owner only).
func UploadVenuePhoto(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	venueID := ctx.Params().GetUintDefault("id", 0)

	var venue models.Venue
	if err := storage.DB.First(&venue, venueID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if venue.OwnerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "You can only upload photos for your own venues"})
		return
	}

	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	url, err := storage.SaveBase64Image(input.Image, "venues")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_image", "Could not decode image")
		return
	}

	if venue.PhotoURL != "" {
		storage.DeleteUploadedImage(venue.PhotoURL)
	}
	if err := storage.DB.Model(&venue).Update("photo_url", url).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"url": url}})
}
