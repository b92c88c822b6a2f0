package main

import (
	"fmt"
	"log"
	"os"

	"halisaha-server/routes"
	"halisaha-server/storage"
	"halisaha-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeUploads()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the web dashboard and the mobile client
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	verifyUser := accessTokenVerifierMiddleware
	loadUserID := utils.UserIDFromTokenMiddleware
	authenticated := []iris.Handler{verifyUser, loadUserID}

	// Uploaded assets are served straight from local disk
	app.HandleDir("/uploads", iris.Dir(storage.UploadDir()))

	users := app.Party("/api/users")
	{
		users.Post("/register", routes.Register)
		users.Post("/login", routes.Login)
		users.Get("/me", verifyUser, loadUserID, routes.GetCurrentUser)
		users.Patch("/me", verifyUser, loadUserID, routes.UpdateProfile)
		users.Get("/search", verifyUser, loadUserID, routes.SearchUsers)
		users.Get("/{id:uint}", verifyUser, loadUserID, routes.GetUserProfile)
		users.Get("/{id:uint}/ratings", verifyUser, loadUserID, routes.GetPlayerRatings)
	}

	venues := app.Party("/api/venues")
	{
		venues.Get("/", routes.ListVenues)
		venues.Get("/{id:uint}", routes.GetVenue)
		venues.Post("/", verifyUser, utils.VenueOwnerOnlyMiddleware, routes.CreateVenue)
		venues.Put("/{id:uint}", verifyUser, utils.VenueOwnerOnlyMiddleware, routes.UpdateVenue)
		venues.Post("/{id:uint}/fields", verifyUser, utils.VenueOwnerOnlyMiddleware, routes.CreateField)
		venues.Delete("/{id:uint}/fields/{fieldId:uint}", verifyUser, utils.VenueOwnerOnlyMiddleware, routes.DeleteField)
		venues.Post("/{id:uint}/photo", verifyUser, utils.VenueOwnerOnlyMiddleware, routes.UploadVenuePhoto)
	}

	reservations := app.Party("/api/reservations", authenticated...)
	{
		reservations.Post("/", routes.CreateReservation)
		reservations.Get("/", routes.ListMyReservations)
		reservations.Get("/{id:uint}", routes.GetReservation)
		reservations.Post("/{id:uint}/cancel", routes.CancelReservation)
	}

	fields := app.Party("/api/fields")
	{
		fields.Get("/{fieldId:uint}/availability", routes.GetFieldAvailability)
	}

	teams := app.Party("/api/teams", authenticated...)
	{
		teams.Post("/", routes.CreateTeam)
		teams.Get("/", routes.ListTeams)
		teams.Get("/me", routes.GetMyTeam)
		teams.Get("/{id:uint}", routes.GetTeam)
		teams.Post("/leave", routes.LeaveTeam)
		teams.Delete("/{id:uint}", routes.DisbandTeam)
		teams.Delete("/{id:uint}/members/{memberId:uint}", routes.RemoveTeamMember)
		teams.Post("/{id:uint}/logo", routes.UploadTeamLogo)
	}

	invitations := app.Party("/api/invitations", authenticated...)
	{
		invitations.Post("/", routes.InviteToTeam)
		invitations.Get("/", routes.ListMyInvitations)
		invitations.Post("/{id:uint}/respond", routes.RespondToInvitation)
	}

	opponentSearch := app.Party("/api/opponent-search", authenticated...)
	{
		opponentSearch.Post("/", routes.CreateOpponentListing)
		opponentSearch.Get("/", routes.ListOpponentListings)
		opponentSearch.Get("/{id:uint}/proposals", routes.ListListingProposals)
		opponentSearch.Post("/proposals", routes.CreateMatchProposal)
		opponentSearch.Post("/proposals/{id:uint}/respond", routes.RespondToProposal)
	}

	playerSearch := app.Party("/api/player-search", authenticated...)
	{
		playerSearch.Post("/", routes.CreatePlayerSearch)
		playerSearch.Get("/", routes.ListPlayerSearches)
		playerSearch.Post("/{id:uint}/join", routes.JoinPlayerSearch)
		playerSearch.Get("/{id:uint}/requests", routes.ListJoinRequests)
		playerSearch.Post("/{id:uint}/requests/{requestId:uint}/respond", routes.RespondToJoinRequest)
		playerSearch.Post("/{id:uint}/withdraw", routes.WithdrawFromPlayerSearch)
	}

	ratings := app.Party("/api/ratings", authenticated...)
	{
		ratings.Post("/", routes.RatePlayer)
	}

	notifications := app.Party("/api/notifications", authenticated...)
	{
		notifications.Get("/", routes.ListNotifications)
		notifications.Post("/{id:uint}/read", routes.MarkNotificationRead)
		notifications.Post("/read-all", routes.MarkAllNotificationsRead)
	}

	uploads := app.Party("/api/upload", authenticated...)
	{
		uploads.Post("/avatar", routes.UploadAvatar)
	}

	admin := app.Party("/api/admin", verifyUser, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Patch("/users/{id:uint}/role", routes.AdminUpdateUserRole)
		admin.Delete("/users/{id:uint}", routes.AdminDeleteUser)
		admin.Get("/venues", routes.AdminListVenues)
		admin.Patch("/venues/{id:uint}/active", routes.AdminSetVenueActive)
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Patch("/reservations/{id:uint}/status", routes.AdminUpdateReservationStatus)
		admin.Patch("/reservations/{id:uint}/payment", routes.AdminUpdateReservationPayment)
		admin.Get("/stats", routes.AdminStats)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
