package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"immolist/server/internal/models"
)

// OpenORM opens the gorm handle used for row-level CRUD and batch upserts.
// Schema management stays with Database.RunMigrations.
func OpenORM(dbPath string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

type ListingRow struct {
	ID            uint   `gorm:"primaryKey"`
	SourceID      string `gorm:"uniqueIndex;size:64"`
	Title         string
	Description   string
	Category      string
	Purpose       string
	Price         int64
	PreviousPrice *int64
	OnPromotion   bool
	SurfaceArea   *float64
	Bedrooms      *int
	Bathrooms     *int
	Address       string
	City          string
	IsAvailable   bool
	Images        string `gorm:"type:text"`
	Latitude      *float64
	Longitude     *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ListingRow) TableName() string { return "listings" }

type CategoryRow struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	ImageURL  string
	CreatedAt time.Time
}

func (CategoryRow) TableName() string { return "categories" }

type OrderRow struct {
	ID              uint   `gorm:"primaryKey"`
	Reference       string `gorm:"uniqueIndex"`
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	City            string
	Status          string
	Items           string `gorm:"type:text"`
	CreatedAt       time.Time
}

func (OrderRow) TableName() string { return "orders" }

func (r *ListingRow) ToModel() models.Listing {
	var images []string
	if r.Images != "" {
		// invalid stored JSON degrades to no images
		_ = json.Unmarshal([]byte(r.Images), &images)
	}

	return models.Listing{
		ID:            r.SourceID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Purpose:       r.Purpose,
		Price:         r.Price,
		PreviousPrice: r.PreviousPrice,
		OnPromotion:   r.OnPromotion,
		SurfaceArea:   r.SurfaceArea,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Address:       r.Address,
		City:          r.City,
		IsAvailable:   r.IsAvailable,
		Images:        images,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		CreatedAt:     r.CreatedAt,
	}
}

func rowFromListing(l *models.Listing) ListingRow {
	images, _ := json.Marshal(l.Images)
	return ListingRow{
		SourceID:      l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Category:      l.Category,
		Purpose:       l.Purpose,
		Price:         l.Price,
		PreviousPrice: l.PreviousPrice,
		OnPromotion:   l.OnPromotion,
		SurfaceArea:   l.SurfaceArea,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		Address:       l.Address,
		City:          l.City,
		IsAvailable:   l.IsAvailable,
		Images:        string(images),
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		CreatedAt:     l.CreatedAt,
	}
}

// Store wraps the gorm handle with the catalog's row-level operations.
type Store struct {
	orm *gorm.DB
}

func NewStore(orm *gorm.DB) *Store {
	return &Store{orm: orm}
}

func (s *Store) ORM() *gorm.DB {
	return s.orm
}

// ListListings returns every stored listing in canonical form.
func (s *Store) ListListings() ([]models.Listing, error) {
	var rows []ListingRow
	if err := s.orm.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	listings := make([]models.Listing, len(rows))
	for i := range rows {
		listings[i] = rows[i].ToModel()
	}
	return listings, nil
}

// CreateListing stores a new listing. A listing without an id gets an opaque
// one assigned here.
func (s *Store) CreateListing(l *models.Listing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}

	row := rowFromListing(l)
	if err := s.orm.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (s *Store) UpdateListing(id string, l *models.Listing) error {
	var row ListingRow
	if err := s.orm.Where("source_id = ?", id).First(&row).Error; err != nil {
		return fmt.Errorf("listing not found: %w", err)
	}

	l.ID = id
	if l.CreatedAt.IsZero() {
		l.CreatedAt = row.CreatedAt
	}
	updated := rowFromListing(l)
	updated.ID = row.ID

	if err := s.orm.Save(&updated).Error; err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return nil
}

func (s *Store) DeleteListing(id string) error {
	result := s.orm.Where("source_id = ?", id).Delete(&ListingRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("listing not found: %s", id)
	}
	return nil
}

// UpsertListings inserts or refreshes a batch of listings keyed by source id.
// Called inside the batch processor's transaction.
func UpsertListings(tx *gorm.DB, listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	rows := make([]ListingRow, len(listings))
	for i, l := range listings {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		rows[i] = rowFromListing(l)
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "category", "purpose", "price",
			"previous_price", "on_promotion", "surface_area", "bedrooms",
			"bathrooms", "address", "city", "is_available", "images",
			"latitude", "longitude", "updated_at",
		}),
	}).Create(&rows).Error
}

func (s *Store) ListCategories() ([]models.Category, error) {
	var rows []CategoryRow
	if err := s.orm.Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]models.Category, len(rows))
	for i, row := range rows {
		categories[i] = models.Category{
			ID:       int64(row.ID),
			Name:     row.Name,
			ImageURL: row.ImageURL,
		}
	}
	return categories, nil
}

func (s *Store) CreateCategory(c *models.Category) error {
	row := CategoryRow{Name: c.Name, ImageURL: c.ImageURL}
	if err := s.orm.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	c.ID = int64(row.ID)
	return nil
}

func (s *Store) UpdateCategory(id int64, c *models.Category) error {
	result := s.orm.Model(&CategoryRow{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      c.Name,
		"image_url": c.ImageURL,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("category not found: %d", id)
	}
	c.ID = id
	return nil
}

func (s *Store) DeleteCategory(id int64) error {
	result := s.orm.Delete(&CategoryRow{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("category not found: %d", id)
	}
	return nil
}

func (r *OrderRow) toModel() models.Order {
	var items []models.OrderItem
	if r.Items != "" {
		_ = json.Unmarshal([]byte(r.Items), &items)
	}
	return models.Order{
		ID:              int64(r.ID),
		Reference:       r.Reference,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		City:            r.City,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		Items:           items,
	}
}

// ListOrders returns orders newest first, optionally restricted to a status.
func (s *Store) ListOrders(status string) ([]models.Order, error) {
	query := s.orm.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []OrderRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]models.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].toModel()
	}
	return orders, nil
}

// CreateOrder stores a new order as Pending with a fresh reference code.
func (s *Store) CreateOrder(o *models.Order) error {
	items, _ := json.Marshal(o.Items)

	row := OrderRow{
		Reference:       uuid.NewString(),
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		City:            o.City,
		Status:          models.OrderStatusPending,
		Items:           string(items),
		CreatedAt:       time.Now(),
	}
	if err := s.orm.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	o.ID = int64(row.ID)
	o.Reference = row.Reference
	o.Status = row.Status
	o.CreatedAt = row.CreatedAt
	return nil
}

func (s *Store) UpdateOrderStatus(id int64, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	result := s.orm.Model(&OrderRow{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order not found: %d", id)
	}
	return nil
}

func (s *Store) DeleteOrder(id int64) error {
	result := s.orm.Delete(&OrderRow{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order not found: %d", id)
	}
	return nil
}
