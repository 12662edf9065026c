package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"zenithx_backend/internal/api"
	"zenithx_backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens the shared in-memory SQLite database and resets the
// schema so each test starts from empty collections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	// Drop tables to ensure a clean state, then migrate
	_ = db.Migrator().DropTable(&domain.User{}, &domain.Payment{}, &domain.SellerRequest{})
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Payment{}, &domain.SellerRequest{}))

	return db
}

// testRedis returns a client pointed at an address nothing listens on. Cache
// reads fail fast and every handler falls through to the database, which is
// exactly the degraded path the cache helpers promise.
func testRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:6399"})
}

// newRouter mounts every route handler without the admin middleware; the
// boundary itself is covered by the middleware package tests.
func newRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/users", api.RegisterHandler(db, rdb))
	r.GET("/user/:email", api.GetUserHandler(db))
	r.PATCH("/user/update/:email", api.UpdateProfileHandler(db, rdb))
	r.GET("/admin/users", api.ListUsersHandler(db, rdb))
	r.PATCH("/admin/users/role/:id", api.UpdateRoleHandler(db, rdb))
	r.DELETE("/admin/users/:id", api.DeleteUserHandler(db, rdb))

	r.POST("/payments", api.SubmitPaymentHandler(db, rdb))
	r.GET("/my-payments/:email", api.MyPaymentsHandler(db, rdb))
	r.GET("/admin/payments", api.ListPaymentsHandler(db, rdb))
	r.PATCH("/admin/approve-payment/:id", api.ApprovePaymentHandler(db, rdb))
	r.PATCH("/admin/reject-payment/:id", api.RejectPaymentHandler(db, rdb))

	r.POST("/seller-requests", api.ApplySellerHandler(db, rdb))
	r.GET("/admin/seller-requests", api.ListSellerRequestsHandler(db, rdb))
	r.PATCH("/admin/approve-seller/:id", api.ApproveSellerHandler(db, rdb))
	r.DELETE("/admin/reject-seller/:id", api.RejectSellerHandler(db, rdb))
	r.GET("/sellers/approved", api.ApprovedSellersHandler(db, rdb))

	return r
}

// doRequest performs a request against the router and records the response
func doRequest(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
