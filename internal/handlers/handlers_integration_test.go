package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"adventureworks/internal/handlers"
	"adventureworks/internal/middleware"
	"adventureworks/internal/models"
	"adventureworks/internal/repositories"
	"adventureworks/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProducts = []models.Product{
	{ID: "P1", Name: "Roadster 550", Brand: "Adventure Works", Category: "road", Price: 40.00, Tag: models.TagDeal, Image: "/img/rb-550.jpg"},
	{ID: "P2", Name: "U-Lock", Brand: "Guardian", Category: "accessories", Price: 49.00},
}

var testCategories = []models.Category{
	{ID: "road", Name: "Road Bikes"},
	{ID: "accessories", Name: "Accessories"},
}

// setupApp wires the full application against flat-file stores in a
// temp directory, the same way main does, with mail left unconfigured.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	userRepo := repositories.NewJSONUserRepository(filepath.Join(dir, "users.json"))
	orderRepo := repositories.NewJSONOrderRepository(filepath.Join(dir, "orders.json"))
	productRepo := repositories.NewMemoryProductRepository(testProducts, testCategories)

	authService := services.NewAuthService(userRepo, "test_jwt_secret", "")
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, nil)
	invoiceService := services.NewInvoiceService()
	mailService := services.NewMailService(services.MailConfig{Host: "smtp.example.com", Port: 587})

	productHandler := handlers.NewProductHandler(productService)
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService, invoiceService, mailService)
	adminHandler := handlers.NewAdminHandler(authService, orderService)

	app := fiber.New()
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	productHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)

	authed := api.Group("", middleware.AuthRequired(authService))
	authed.Get("/me", authHandler.HandleMe)
	orderHandler.RegisterRoutes(authed)

	admin := api.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired(authService))
	adminHandler.RegisterRoutes(admin)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// signup creates an account and returns its session token.
func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func createOrder(t *testing.T, app *fiber.App, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/orders", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order map[string]interface{}
	decodeJSON(t, resp, &order)
	return order
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	decodeJSON(t, resp, &body)
	assert.True(t, body["ok"])
}

func TestCatalogEndpoints(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeJSON(t, resp, &products)
	assert.Len(t, products, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/products?category=road", "", nil)
	decodeJSON(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].ID)

	// Search is case-insensitive on name and brand.
	resp = doJSON(t, app, http.MethodGet, "/api/products?q=LOCK", "", nil)
	decodeJSON(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "P2", products[0].ID)

	resp = doJSON(t, app, http.MethodGet, "/api/products/P1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var product models.Product
	decodeJSON(t, resp, &product)
	assert.Equal(t, "Roadster 550", product.Name)

	resp = doJSON(t, app, http.MethodGet, "/api/products/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Not found", errBody["error"])

	resp = doJSON(t, app, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.Category
	decodeJSON(t, resp, &categories)
	assert.Len(t, categories, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/deals", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].ID)
}

func TestSignupAndSignin(t *testing.T) {
	app := setupApp(t)

	// First account ever becomes admin.
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "first@example.com", "password": "password123", "name": "First",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var signupBody struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeJSON(t, resp, &signupBody)
	assert.True(t, signupBody.User.IsAdmin)
	assert.NotEmpty(t, signupBody.Token)

	// Second account does not.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "second@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &signupBody)
	assert.False(t, signupBody.User.IsAdmin)

	// Duplicate email conflicts regardless of case.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "FIRST@EXAMPLE.COM", "password": "other", "name": "Clone",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Email already registered", errBody["error"])

	// Missing fields.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Missing fields", errBody["error"])

	// Signin
	resp = doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "first@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &signupBody)
	assert.NotEmpty(t, signupBody.Token)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "first@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Invalid credentials", errBody["error"])
}

func TestMe(t *testing.T) {
	app := setupApp(t)
	token := signup(t, app, "me@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var profile map[string]interface{}
	decodeJSON(t, resp, &profile)
	assert.Equal(t, "me@example.com", profile["email"])
	// The password hash must never serialize.
	assert.NotContains(t, profile, "hash")

	resp = doJSON(t, app, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "No token", errBody["error"])
}

func TestCreateOrder(t *testing.T) {
	app := setupApp(t)
	token := signup(t, app, "buyer@example.com")

	// 2 x (40.00 * 0.75) + 5.00 shipping = 65.00
	order := createOrder(t, app, token, map[string]interface{}{
		"items":    []map[string]interface{}{{"productId": "P1", "qty": 2}},
		"shipping": 5.00,
	})
	assert.Equal(t, 65.00, order["total"])
	assert.Equal(t, "created", order["status"])

	items := order["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, 30.00, line["unit"])
	assert.Equal(t, 60.00, line["line"])

	// Empty cart is rejected before anything persists.
	resp := doJSON(t, app, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Cart items required", errBody["error"])

	// Unknown product aborts the whole order.
	resp = doJSON(t, app, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{{"productId": "nope", "qty": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Invalid product", errBody["error"])

	// No auth, no order.
	resp = doJSON(t, app, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{{"productId": "P1", "qty": 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetOrderIsOwnerOnly(t *testing.T) {
	app := setupApp(t)
	ownerToken := signup(t, app, "owner@example.com")
	otherToken := signup(t, app, "other@example.com")

	order := createOrder(t, app, ownerToken, map[string]interface{}{
		"items": []map[string]interface{}{{"productId": "P2"}},
	})
	orderID := order["id"].(string)

	resp := doJSON(t, app, http.MethodGet, "/api/orders/"+orderID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Someone else's valid token yields not-found, never the order.
	resp = doJSON(t, app, http.MethodGet, "/api/orders/"+orderID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Not found", errBody["error"])
}

func TestInvoiceDownload(t *testing.T) {
	app := setupApp(t)
	token := signup(t, app, "buyer@example.com")

	order := createOrder(t, app, token, map[string]interface{}{
		"items": []map[string]interface{}{{"productId": "P1", "qty": 2}},
		"address": map[string]string{
			"name": "Ana", "email": "ana@example.com",
			"line1": "Calle 5", "city": "San Salvador", "country": "El Salvador",
		},
		"shipping": 5.00,
	})
	orderID := order["id"].(string)

	resp := doJSON(t, app, http.MethodGet, "/api/orders/"+orderID+"/invoice.pdf", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), orderID)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestSendInvoice(t *testing.T) {
	app := setupApp(t)
	token := signup(t, app, "buyer@example.com")

	// Order without a contact email cannot be sent anywhere.
	noEmail := createOrder(t, app, token, map[string]interface{}{
		"items": []map[string]interface{}{{"productId": "P2"}},
	})
	resp := doJSON(t, app, http.MethodPost, "/api/orders/"+noEmail["id"].(string)+"/send-invoice", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "No email address provided", errBody["error"])

	// With an address but no SMTP credentials the transport is
	// unconfigured, checked before any send attempt.
	withEmail := createOrder(t, app, token, map[string]interface{}{
		"items":   []map[string]interface{}{{"productId": "P2"}},
		"address": map[string]string{"name": "Ana", "email": "ana@example.com"},
	})
	resp = doJSON(t, app, http.MethodPost, "/api/orders/"+withEmail["id"].(string)+"/send-invoice", token, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	decodeJSON(t, resp, &errBody)
	assert.Contains(t, errBody["error"], "Email service not configured")
}

func TestAdminEndpoints(t *testing.T) {
	app := setupApp(t)
	adminToken := signup(t, app, "admin@example.com")
	userToken := signup(t, app, "user@example.com")

	// Non-admins are rejected at the gate.
	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Admin access required", errBody["error"])

	// User listing strips hashes.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var users []map[string]interface{}
	decodeJSON(t, resp, &users)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "hash")
	}

	// Order management across users.
	order := createOrder(t, app, userToken, map[string]interface{}{
		"items": []map[string]interface{}{{"productId": "P2"}},
	})
	orderID := order["id"].(string)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []map[string]interface{}
	decodeJSON(t, resp, &orders)
	assert.Len(t, orders, 1)

	resp = doJSON(t, app, http.MethodPatch, "/api/admin/orders/"+orderID, adminToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/orders/"+orderID, userToken, nil)
	var updated map[string]interface{}
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "shipped", updated["status"])

	resp = doJSON(t, app, http.MethodPatch, "/api/admin/orders/"+orderID, adminToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Status is required", errBody["error"])

	resp = doJSON(t, app, http.MethodPatch, "/api/admin/orders/ghost", adminToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Order not found", errBody["error"])
}

func TestAdminDeleteUser(t *testing.T) {
	app := setupApp(t)
	adminToken := signup(t, app, "admin@example.com")
	userToken := signup(t, app, "user@example.com")

	var users []models.User
	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", adminToken, nil)
	decodeJSON(t, resp, &users)
	require.Len(t, users, 2)

	var adminID, userID string
	for _, u := range users {
		if u.IsAdmin {
			adminID = u.ID
		} else {
			userID = u.ID
		}
	}

	// Admin accounts can never be deleted, and stay in the store.
	resp = doJSON(t, app, http.MethodDelete, "/api/admin/users/"+adminID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var errBody map[string]string
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "Cannot delete admin user", errBody["error"])

	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", adminToken, nil)
	decodeJSON(t, resp, &users)
	assert.Len(t, users, 2)

	resp = doJSON(t, app, http.MethodDelete, "/api/admin/users/ghost", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	decodeJSON(t, resp, &errBody)
	assert.Equal(t, "User not found", errBody["error"])

	// Regular accounts can.
	resp = doJSON(t, app, http.MethodDelete, "/api/admin/users/"+userID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The deleted account's token no longer resolves to a profile.
	resp = doJSON(t, app, http.MethodGet, "/api/me", userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
