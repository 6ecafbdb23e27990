package mock

import (
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fintrack/backend/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory sqlite connection for integration tests.
type Db struct {
	Conn *gorm.DB
}

// NewDb opens the shared test database and migrates the full schema. The
// connection pool is capped at one so every scenario sees the same memory
// database. TranslateError is on because the repositories depend on gorm
// sentinels for duplicate detection.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	if err := conn.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.RecurringScheduleModel{},
		&model.InstallmentPlanModel{},
		&model.GoalModel{},
		&model.GoalContributionModel{},
	); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{Conn: conn}
}

// Reset wipes all rows so scenarios start from a clean database.
func (d *Db) Reset() error {
	models := []any{
		&model.GoalContributionModel{},
		&model.GoalModel{},
		&model.TransactionModel{},
		&model.RecurringScheduleModel{},
		&model.InstallmentPlanModel{},
		&model.CategoryModel{},
		&model.RefreshTokenModel{},
		&model.UserModel{},
	}
	for _, m := range models {
		if err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
