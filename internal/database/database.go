package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"immolist/server/internal/models"
)

// Database is the raw sql handle used for migrations and aggregate queries.
// Row-level CRUD goes through the gorm store in store.go.
type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_id TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			purpose TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL DEFAULT 0,
			previous_price INTEGER,
			on_promotion BOOLEAN NOT NULL DEFAULT 0,
			surface_area REAL,
			bedrooms INTEGER,
			bathrooms INTEGER,
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT 1,
			images TEXT NOT NULL DEFAULT '[]',
			latitude REAL,
			longitude REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create listings table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create categories table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT UNIQUE NOT NULL,
			customer_name TEXT NOT NULL DEFAULT '',
			customer_email TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			customer_address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Pending',
			items TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create orders table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_category
		ON listings(category);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_orders_status
		ON orders(status);
	`)
	return err
}

// GetDashboardStats computes the admin dashboard counters in one pass per
// table.
func (d *Database) GetDashboardStats() (models.DashboardStats, error) {
	var stats models.DashboardStats

	err := d.db.QueryRow(`
		SELECT
			COUNT(*) as total_listings,
			COALESCE(SUM(CASE WHEN is_available THEN 1 ELSE 0 END), 0) as available_listings,
			COUNT(DISTINCT CASE WHEN category != '' THEN LOWER(category) END) as categories_in_use
		FROM listings
	`).Scan(&stats.TotalListings, &stats.AvailableListings, &stats.CategoriesInUse)
	if err != nil {
		return stats, fmt.Errorf("failed to aggregate listings: %v", err)
	}

	err = d.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&stats.TotalCategories)
	if err != nil {
		return stats, fmt.Errorf("failed to count categories: %v", err)
	}

	err = d.db.QueryRow(`
		SELECT
			COUNT(*) as total_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as confirmed,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as delivered
		FROM orders
	`, models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusDelivered).
		Scan(&stats.TotalOrders, &stats.PendingOrders, &stats.ConfirmedOrders, &stats.DeliveredOrders)
	if err != nil {
		return stats, fmt.Errorf("failed to aggregate orders: %v", err)
	}

	return stats, nil
}
