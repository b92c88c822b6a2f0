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

type InviteToTeamInput struct {
	InviteeID uint   `json:"inviteeID" validate:"required"`
	Message   string `json:"message" validate:"max=500"`
}

type RespondToInvitationInput struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// InviteToTeam creates a pending invitation. Captain only; a user already in
// an active team cannot be invited.
func InviteToTeam(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input InviteToTeamInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var team models.Team
	if err := storage.DB.Where("captain_id = ?", userID).First(&team).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only a team captain can invite players"})
		return
	}

	var invitee models.User
	if err := storage.DB.First(&invitee, input.InviteeID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	membership, err := activeTeamMembership(invitee.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if membership != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "already_in_team",
			"This player already belongs to an active team")
		return
	}

	var pending models.TeamInvitation
	if err := storage.DB.Where("team_id = ? AND invitee_id = ? AND status = ?",
		team.ID, invitee.ID, "pending").First(&pending).Error; err == nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "already_invited",
			"This player already has a pending invitation")
		return
	}

	invitation := models.TeamInvitation{
		TeamID:    team.ID,
		InviterID: userID,
		InviteeID: invitee.ID,
		Status:    "pending",
		Message:   input.Message,
	}
	if err := storage.DB.Create(&invitation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var inviter models.User
	storage.DB.First(&inviter, userID)
	notificationService := services.NewNotificationService()
	notificationService.SendTeamInviteNotification(invitation.ID, invitee.ID, team.Name,
		fmt.Sprintf("%s %s", inviter.FirstName, inviter.LastName))

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": invitation})
}

// ListMyInvitations returns pending invitations addressed to the caller.
func ListMyInvitations(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var invitations []models.TeamInvitation
	if err := storage.DB.Where("invitee_id = ? AND status = ?", userID, "pending").
		Preload("Team").
		Preload("Inviter").
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": invitations})
}

// RespondToInvitation accepts or rejects a pending invitation. Acceptance
// re-checks that the invitee still has no active team before writing the
// roster row. Both paths notify the inviter.
func RespondToInvitation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	invitationID := ctx.Params().GetUintDefault("id", 0)

	var input RespondToInvitationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var invitation models.TeamInvitation
	if err := storage.DB.Preload("Team").First(&invitation, invitationID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Invitation not found"})
		return
	}
	if invitation.InviteeID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "This invitation is not addressed to you"})
		return
	}
	if invitation.Status != "pending" {
		utils.JSONError(ctx, iris.StatusBadRequest, "already_responded",
			"This invitation has already been responded to")
		return
	}

	if input.Status == "accepted" {
		membership, err := activeTeamMembership(userID)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		if membership != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "already_in_team",
				"You already belong to an active team")
			return
		}

		member := models.TeamMember{
			TeamID:   invitation.TeamID,
			UserID:   userID,
			Role:     "member",
			Status:   "active",
			JoinedAt: time.Now(),
		}
		if err := storage.DB.Create(&member).Error; err != nil {
			if storage.IsUniqueViolation(err) {
				utils.JSONError(ctx, iris.StatusBadRequest, "already_in_team",
					"You already belong to an active team")
				return
			}
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	now := time.Now()
	invitation.Status = input.Status
	invitation.RespondedAt = &now
	if err := storage.DB.Save(&invitation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var invitee models.User
	storage.DB.First(&invitee, userID)
	notificationService := services.NewNotificationService()
	notificationService.SendInviteResponseNotification(invitation.ID, invitation.InviterID,
		fmt.Sprintf("%s %s", invitee.FirstName, invitee.LastName), invitation.Team.Name, input.Status)

	ctx.JSON(iris.Map{"success": true, "data": invitation})
}
