package api

import (
	"net/http"
	"os"
	"strconv"

	"immolist/server/config"
	"immolist/server/internal/auth"
	"immolist/server/internal/catalog"
	"immolist/server/internal/database"
	"immolist/server/internal/geometry"
	"immolist/server/internal/models"
	"immolist/server/internal/normalize"
	"immolist/server/internal/notify"
	"immolist/server/internal/queue"
	"immolist/server/internal/source"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	db         *database.Database
	store      *database.Store
	manager    *source.Manager
	engine     *catalog.Engine
	queue      *queue.ListingQueue
	authSvc    *auth.Service
	notifier   *notify.Service
	normalizer *normalize.Normalizer
	logger     *logrus.Logger
	cfg        *config.Config
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

type OrderItemRequest struct {
	ListingID string `json:"listingId"`
	Name      string `json:"name" binding:"required"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"imageUrl"`
}

type OrderRequest struct {
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone" binding:"required"`
	CustomerAddress string             `json:"customerAddress"`
	City            string             `json:"city"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewHandler(db *database.Database, store *database.Store, manager *source.Manager,
	engine *catalog.Engine, listingQueue *queue.ListingQueue, authSvc *auth.Service,
	notifier *notify.Service, normalizer *normalize.Normalizer, cfg *config.Config,
	logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:         db,
		store:      store,
		manager:    manager,
		engine:     engine,
		queue:      listingQueue,
		authSvc:    authSvc,
		notifier:   notifier,
		normalizer: normalizer,
		logger:     logger,
		cfg:        cfg,
	}
}

// GetListings decodes the query string into a catalog query and returns the
// matching slice of the current snapshot.
func (h *Handler) GetListings(c *gin.Context) {
	q := catalog.Decode(c.Request.URL.Query(), h.engine.PriceCeiling())
	if key := catalog.SortKey(c.Query("sort")); catalog.ValidSortKey(key) {
		q.Sort = key
	}

	snapshot := h.manager.Current()
	result := h.engine.Search(snapshot.Listings, q)
	c.JSON(http.StatusOK, result)
}

// GetListing returns one listing together with its related and nearby
// companions so detail pages need a single round trip.
func (h *Handler) GetListing(c *gin.Context) {
	snapshot := h.manager.Current()
	listing := catalog.FindByID(snapshot.Listings, c.Param("id"))
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	related := h.engine.Related(snapshot.Listings, listing, h.cfg.Catalog.RelatedLimit)
	nearby := geometry.Nearby(snapshot.Listings, listing, h.cfg.Catalog.NearbyLimit)

	c.JSON(http.StatusOK, gin.H{
		"listing": listing,
		"related": related,
		"nearby":  nearby,
	})
}

func (h *Handler) GetLatestListings(c *gin.Context) {
	limit := h.cfg.Catalog.LatestLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	snapshot := h.manager.Current()
	c.JSON(http.StatusOK, h.engine.Latest(snapshot.Listings, limit))
}

func (h *Handler) GetCategories(c *gin.Context) {
	snapshot := h.manager.Current()
	categories := snapshot.Categories
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetPlaces(c *gin.Context) {
	c.JSON(http.StatusOK, config.SearchPlaces(c.Query("q")))
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		City:            req.City,
	}
	for _, item := range req.Items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		order.Items = append(order.Items, models.OrderItem{
			ListingID: item.ListingID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  quantity,
			ImageURL:  item.ImageURL,
		})
	}

	if err := h.store.CreateOrder(order); err != nil {
		h.logger.WithError(err).Error("Failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	if h.notifier != nil {
		go h.notifier.NotifyNewOrder(order)
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authSvc.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateListing normalizes the admin payload the same way ingested records
// are normalized, so hand-entered listings follow the same field rules.
func (h *Handler) CreateListing(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing := h.normalizer.Record(raw)
	if err := h.store.CreateListing(&listing); err != nil {
		h.logger.WithError(err).Error("Failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	h.rebuildSnapshot()
	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) UpdateListing(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing := h.normalizer.Record(raw)
	if err := h.store.UpdateListing(c.Param("id"), &listing); err != nil {
		h.logger.WithError(err).Error("Failed to update listing")
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	h.rebuildSnapshot()
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) DeleteListing(c *gin.Context) {
	if err := h.store.DeleteListing(c.Param("id")); err != nil {
		h.logger.WithError(err).Error("Failed to delete listing")
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	h.rebuildSnapshot()
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

// ImportListings accepts a batch of raw records and hands them to the queue.
// Persistence happens asynchronously through the batch processor.
func (h *Handler) ImportListings(c *gin.Context) {
	var raw []map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty batch"})
		return
	}

	listings := make([]*models.Listing, 0, len(raw))
	for _, record := range raw {
		listing := h.normalizer.Record(record)
		listings = append(listings, &listing)
	}

	if err := h.queue.Push(listings); err != nil {
		h.logger.WithError(err).Error("Failed to queue listing batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import queue is full"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": len(listings)})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{Name: req.Name, ImageURL: req.ImageURL}
	if err := h.store.CreateCategory(&category); err != nil {
		h.logger.WithError(err).Error("Failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	h.rebuildSnapshot()
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{ID: id, Name: req.Name, ImageURL: req.ImageURL}
	if err := h.store.UpdateCategory(id, &category); err != nil {
		h.logger.WithError(err).Error("Failed to update category")
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	h.rebuildSnapshot()
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.store.DeleteCategory(id); err != nil {
		h.logger.WithError(err).Error("Failed to delete category")
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	h.rebuildSnapshot()
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *Handler) GetOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	orders, err := h.store.ListOrders(status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpdateOrderStatus(id, req.Status); err != nil {
		h.logger.WithError(err).Error("Failed to update order status")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := h.store.DeleteOrder(id); err != nil {
		h.logger.WithError(err).Error("Failed to delete order")
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.db.GetDashboardStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RefreshCatalog triggers an immediate snapshot refresh. With a remote source
// configured this re-fetches; otherwise the snapshot is rebuilt from the
// local store.
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if h.manager.HasClient() {
		if err := h.manager.Refresh(c.Request.Context()); err != nil {
			h.logger.WithError(err).Error("Manual catalog refresh failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Refresh failed"})
			return
		}
	} else {
		h.rebuildSnapshot()
	}

	snapshot := h.manager.Current()
	c.JSON(http.StatusOK, gin.H{
		"listings":   len(snapshot.Listings),
		"categories": len(snapshot.Categories),
		"fetchedAt":  snapshot.FetchedAt,
	})
}

// rebuildSnapshot reloads the served snapshot from the local store after an
// admin write. Read errors are logged and leave the previous snapshot in
// place.
func (h *Handler) rebuildSnapshot() {
	if h.store == nil {
		return
	}

	listings, err := h.store.ListListings()
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload listings for snapshot")
		return
	}
	categories, err := h.store.ListCategories()
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload categories for snapshot")
		return
	}

	h.manager.Apply(listings, categories)
}
