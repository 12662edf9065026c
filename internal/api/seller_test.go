package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"zenithx_backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySellerRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db, testRedis())

	body := []byte(`{"email":"a@x.com","status":"pending"}`)

	w := doRequest(r, http.MethodPost, "/seller-requests", body)
	require.Equal(t, http.StatusOK, w.Code)

	// A second application for the same email, regardless of status
	w = doRequest(r, http.MethodPost, "/seller-requests", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You have already applied!")

	var count int64
	require.NoError(t, db.Model(&domain.SellerRequest{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplySellerRejectsDuplicateAfterApproval(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db, testRedis())

	require.NoError(t, db.Create(&domain.SellerRequest{Email: "a@x.com", Status: "approved", IsVerified: true}).Error)

	// An approved request still blocks re-application
	w := doRequest(r, http.MethodPost, "/seller-requests", []byte(`{"email":"a@x.com","status":"pending"}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApproveSellerPromotesLinkedUser(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db, testRedis())

	require.NoError(t, db.Create(&domain.User{Email: "a@x.com", Role: "user"}).Error)
	request := domain.SellerRequest{Email: "a@x.com", Status: "pending"}
	require.NoError(t, db.Create(&request).Error)

	w := doRequest(r, http.MethodPatch, "/admin/approve-seller/"+request.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	var updated domain.SellerRequest
	require.NoError(t, db.First(&updated, "id = ?", request.ID).Error)
	assert.Equal(t, "approved", updated.Status)
	assert.True(t, updated.IsVerified)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
	assert.Equal(t, "seller", user.Role)
}

func TestApproveUnknownSellerRequestIsConflict(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db, testRedis())

	w := doRequest(r, http.MethodPatch, "/admin/approve-seller/no-such-id", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request not found")
}

func TestRejectSellerDeletesRequestAndAllowsReapply(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db, testRedis())

	request := domain.SellerRequest{Email: "a@x.com", Status: "pending"}
	require.NoError(t, db.Create(&request).Error)

	w := doRequest(r, http.MethodDelete, "/admin/reject-seller/"+request.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1.0, resp["deletedCount"])

	// No record remains, so the applicant may re-apply
	w = doRequest(r, http.MethodPost, "/seller-requests", []byte(`{"email":"a@x.com","status":"pending"}`))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestApprovedSellersListFiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db, testRedis())

	require.NoError(t, db.Create(&domain.SellerRequest{Email: "a@x.com", Status: "approved", IsVerified: true}).Error)
	require.NoError(t, db.Create(&domain.SellerRequest{Email: "b@x.com", Status: "pending"}).Error)

	w := doRequest(r, http.MethodGet, "/sellers/approved", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sellers []domain.SellerRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sellers))
	require.Len(t, sellers, 1)
	assert.Equal(t, "a@x.com", sellers[0].Email)
}

func TestSellerRequestsListIsNewestAppliedFirst(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db, testRedis())

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&domain.SellerRequest{Email: "old@x.com", Status: "pending", AppliedAt: base}).Error)
	require.NoError(t, db.Create(&domain.SellerRequest{Email: "new@x.com", Status: "pending", AppliedAt: base.Add(time.Hour)}).Error)

	w := doRequest(r, http.MethodGet, "/admin/seller-requests", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var requests []domain.SellerRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &requests))
	require.Len(t, requests, 2)
	assert.Equal(t, "new@x.com", requests[0].Email)
	assert.Equal(t, "old@x.com", requests[1].Email)
}
