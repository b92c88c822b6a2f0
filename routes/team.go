package routes

import (
	"errors"
	"time"

	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateTeamInput struct {
	Name        string `json:"name" validate:"required,min=3,max=64"`
	City        string `json:"city" validate:"max=64"`
	Description string `json:"description" validate:"max=500"`
}

// activeTeamMembership returns the user's active membership row, if any.
// A user may belong to at most one active team at a time; this read-then-write
// check is the enforcement point (no DB constraint).
func activeTeamMembership(userID uint) (*models.TeamMember, error) {
	var membership models.TeamMember
	err := storage.DB.Where("user_id = ? AND status = ?", userID, "active").First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func CreateTeam(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateTeamInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

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

	var existing models.Team
	if err := storage.DB.Where("lower(name) = lower(?)", input.Name).First(&existing).Error; err == nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "name_taken", "A team with this name already exists")
		return
	}

	team := models.Team{
		Name:        input.Name,
		CaptainID:   userID,
		City:        input.City,
		Description: input.Description,
	}

	tx := storage.DB.Begin()
	if err := tx.Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.Create(&team).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	captain := models.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     "captain",
		Status:   "active",
		JoinedAt: time.Now(),
	}
	if err := tx.Create(&captain).Error; err != nil {
		if storage.IsUniqueViolation(err) {
			utils.JSONError(ctx, iris.StatusBadRequest, "already_in_team",
				"You already belong to an active team")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": team})
}

func GetMyTeam(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	membership, err := activeTeamMembership(userID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if membership == nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "You do not belong to a team"})
		return
	}

	var team models.Team
	if err := storage.DB.Preload("Captain").
		Preload("Members", "status = ?", "active").
		Preload("Members.User").
		First(&team, membership.TeamID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": team})
}

func GetTeam(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid team id")
		return
	}

	var team models.Team
	if err := storage.DB.Preload("Captain").
		Preload("Members", "status = ?", "active").
		Preload("Members.User").
		First(&team, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": team})
}

func ListTeams(ctx iris.Context) {
	page, limit := utils.PageParams(ctx)
	city := ctx.URLParamDefault("city", "")

	query := storage.DB.Model(&models.Team{})
	if city != "" {
		query = query.Where("lower(city) = lower(?)", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var teams []models.Team
	if err := query.Preload("Captain").
		Order("elo DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&teams).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, teams, page, limit, total)
}

// LeaveTeam removes the caller from their active team. The captain cannot
// leave; they disband the team instead.
func LeaveTeam(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	membership, err := activeTeamMembership(userID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if membership == nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "You do not belong to a team"})
		return
	}
	if membership.Role == "captain" {
		utils.JSONError(ctx, iris.StatusBadRequest, "captain_cannot_leave",
			"The captain cannot leave the team, disband it instead")
		return
	}

	if err := storage.DB.Delete(&models.TeamMember{}, membership.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "You left the team"})
}

// DisbandTeam deletes the caller's team and its memberships (captain only).
func DisbandTeam(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	teamID := ctx.Params().GetUintDefault("id", 0)

	var team models.Team
	if err := storage.DB.First(&team, teamID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if team.CaptainID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only the captain can disband the team"})
		return
	}

	tx := storage.DB.Begin()
	if err := tx.Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.Where("team_id = ?", team.ID).Delete(&models.TeamMember{}).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := tx.Delete(&team).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Team disbanded"})
}

// RemoveTeamMember lets the captain remove a member from the roster.
func RemoveTeamMember(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	teamID := ctx.Params().GetUintDefault("id", 0)
	memberID := ctx.Params().GetUintDefault("memberId", 0)

	var team models.Team
	if err := storage.DB.First(&team, teamID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if team.CaptainID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Only the captain can remove members"})
		return
	}

	var member models.TeamMember
	if err := storage.DB.Where("id = ? AND team_id = ?", memberID, teamID).First(&member).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if member.UserID == userID {
		utils.JSONError(ctx, iris.StatusBadRequest, "cannot_remove_self", "Use disband to remove yourself as captain")
		return
	}

	if err := storage.DB.Delete(&member).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Member removed"})
}
