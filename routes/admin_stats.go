package routes

import (
	"time"

	"halisaha-server/models"
	"halisaha-server/storage"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats — dashboard counters
func AdminStats(ctx iris.Context) {
	var userCount, teamCount, venueCount, reservationCount int64
	storage.DB.Model(&models.User{}).Count(&userCount)
	storage.DB.Model(&models.Team{}).Count(&teamCount)
	storage.DB.Model(&models.Venue{}).Count(&venueCount)
	storage.DB.Model(&models.Reservation{}).Count(&reservationCount)

	statuses := []string{
		models.ReservationStatusPending,
		models.ReservationStatusConfirmed,
		models.ReservationStatusCancelled,
		models.ReservationStatusCompleted,
		models.ReservationStatusNoShow,
	}
	reservationsByStatus := iris.Map{}
	for _, status := range statuses {
		var count int64
		storage.DB.Model(&models.Reservation{}).Where("status = ?", status).Count(&count)
		reservationsByStatus[status] = count
	}

	today := time.Now().Format("2006-01-02")
	var todayCount int64
	storage.DB.Model(&models.Reservation{}).
		Where("date = ? AND status NOT IN ?", today,
			[]string{models.ReservationStatusCancelled, models.ReservationStatusNoShow}).
		Count(&todayCount)

	var openPlayerSearches, openOpponentListings int64
	storage.DB.Model(&models.PlayerSearchListing{}).Where("status = ?", "open").Count(&openPlayerSearches)
	storage.DB.Model(&models.OpponentSearchListing{}).Where("status = ?", "open").Count(&openOpponentListings)

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{
		"users":                userCount,
		"teams":                teamCount,
		"venues":               venueCount,
		"reservations":         reservationCount,
		"reservationsByStatus": reservationsByStatus,
		"reservationsToday":    todayCount,
		"openPlayerSearches":   openPlayerSearches,
		"openOpponentListings": openOpponentListings,
	}})
}
