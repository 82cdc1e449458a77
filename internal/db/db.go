package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/config"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// Índices parciais que sustentam as invariantes da fila mesmo se algum
// caminho escapar do lock por profissional.
var queueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_queue_waiting_position
        ON queue_entries (barber_id, queue_position)
        WHERE status = 'waiting'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_queue_one_in_progress
        ON queue_entries (barber_id)
        WHERE status = 'in_progress'`,
	`CREATE INDEX IF NOT EXISTS ix_appointments_barber_window
        ON appointments (barber_id, start_time, end_time)`,
}

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Shop{},
		&models.Barber{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.QueueEntry{},
		&models.Invoice{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	for _, stmt := range queueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
