package storage

import (
	"errors"
	"log"
	"os"

	"halisaha-server/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Field{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamInvitation{},
		&models.Reservation{},
		&models.ReservationPlayer{},
		&models.OpponentSearchListing{},
		&models.MatchProposal{},
		&models.PlayerSearchListing{},
		&models.PlayerSearchParticipant{},
		&models.PlayerRating{},
		&models.Notification{},
		&models.AuditLog{},
	)

	ensureReservationConstraints(db)
	ensureMembershipConstraints(db)
}

// ensureReservationConstraints installs the overlap-prevention exclusion
// constraint on reservations. GORM tags cannot express EXCLUDE constraints, so
// this is raw SQL run after AutoMigrate. Two non-cancelled reservations for the
// same field whose [start,end) ranges intersect on the same date violate the
// constraint; tsrange is half-open so back-to-back slots are allowed.
func ensureReservationConstraints(db *gorm.DB) {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		log.Panic("failed to enable btree_gist extension: " + err.Error())
	}

	var count int64
	db.Raw(
		"SELECT COUNT(*) FROM pg_constraint WHERE conname = ?",
		"reservations_no_overlap",
	).Scan(&count)
	if count > 0 {
		return
	}

	constraint := `ALTER TABLE reservations
		ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (
			field_id WITH =,
			tsrange(date + start_time, date + end_time) WITH &&
		) WHERE (status NOT IN ('cancelled', 'no_show'))`
	if err := db.Exec(constraint).Error; err != nil {
		log.Panic("failed to create reservations_no_overlap constraint: " + err.Error())
	}
}

// ensureMembershipConstraints installs the one-active-team-per-user rule.
// Partial unique indexes cannot be expressed in GORM tags, so raw SQL again.
// Concurrent accepts of two invitations lose here as a 23505.
func ensureMembershipConstraints(db *gorm.DB) {
	index := `CREATE UNIQUE INDEX IF NOT EXISTS team_members_one_active
		ON team_members (user_id) WHERE (status = 'active')`
	if err := db.Exec(index).Error; err != nil {
		log.Panic("failed to create team_members_one_active index: " + err.Error())
	}
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)

	return db
}

// IsExclusionViolation reports whether err is the Postgres exclusion constraint
// violation (23P01), i.e. an overlapping reservation.
func IsExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (23505), e.g. a duplicate player rating.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
