// Package repotest opens seeded sqlite databases for tests.
package repotest

import (
	"path/filepath"
	"testing"
	"time"

	"pizza-store/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the password of every seeded user except the manager, whose row holds the
// plaintext LegacyPassword.
const (
	Password       = "secret"
	LegacyPassword = "plain"
)

// Base is the timestamp seeded orders are placed relative to.
var Base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func Price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Open returns a migrated, seeded database in a temp dir. The handle is limited to one
// connection, as in production, and closed when the test ends.
//
// Seed: stores 1 and 3 open, 2 closed; items Pepperoni 12.99 and Cheese 10.50 (entree),
// Coke 1.99 (drinks), Fries 3.25 (sides); customers alice and bob, driver dan, manager mia.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pizza.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	seed(t, db)
	return db
}

func seed(t testing.TB, db *gorm.DB) {
	desc := "classic"
	require.NoError(t, db.Create(&[]models.Store{
		{StoreID: 1, Address: "1 Main St", City: "Riverside", State: "CA", IsOpen: true, ReviewScore: Price("4.5")},
		{StoreID: 2, Address: "2 Elm St", City: "Riverside", State: "CA", IsOpen: false, ReviewScore: Price("3.0")},
		{StoreID: 3, Address: "3 Oak St", City: "Corona", State: "CA", IsOpen: true, ReviewScore: Price("4.0")},
	}).Error)
	require.NoError(t, db.Create(&[]models.Item{
		{ItemName: "Pepperoni", Ingredients: "cheese, pepperoni", TypeOfItem: "entree", Price: Price("12.99"), Description: &desc},
		{ItemName: "Cheese", Ingredients: "cheese", TypeOfItem: "entree", Price: Price("10.50")},
		{ItemName: "Coke", Ingredients: "", TypeOfItem: "drinks", Price: Price("1.99")},
		{ItemName: "Fries", Ingredients: "potato", TypeOfItem: "sides", Price: Price("3.25")},
	}).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&[]models.User{
		{Login: "alice", Password: string(hash), Role: models.RoleCustomer, PhoneNum: "555-0001"},
		{Login: "bob", Password: string(hash), Role: models.RoleCustomer, PhoneNum: "555-0002"},
		{Login: "dan", Password: string(hash), Role: models.RoleDriver, PhoneNum: "555-0003"},
		{Login: "mia", Password: LegacyPassword, Role: models.RoleManager, PhoneNum: "555-0004"},
	}).Error)
}

// InsertOrder writes a finished order for login at store 1.
func InsertOrder(t testing.TB, db *gorm.DB, login string, at time.Time, total string) int64 {
	t.Helper()
	o := models.FoodOrder{
		Login:          login,
		StoreID:        1,
		OrderTimestamp: at.UTC(),
		TotalPrice:     Price(total),
		OrderStatus:    models.StatusIncomplete,
	}
	require.NoError(t, db.Create(&o).Error)
	return o.OrderID
}
