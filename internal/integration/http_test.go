package integration

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tusharrdev/greencart-backend/internal/cart"
	"github.com/tusharrdev/greencart-backend/internal/catalog"
	httpserver "github.com/tusharrdev/greencart-backend/internal/http"
	"github.com/tusharrdev/greencart-backend/internal/order"
	"github.com/tusharrdev/greencart-backend/internal/testutil"
)

func TestHTTP_PlaceCODAndListOrders(t *testing.T) {
	db := testutil.StartPostgres(t)
	truncateTables(t, db)

	userID := "user-http"
	seedProduct(t, db, "p1", "Potato", 12, 10)
	seedProduct(t, db, "p2", "Milk", 6, 5)
	seedAddress(t, db, "addr-1", userID)

	logger := log.New(io.Discard, "", 0)
	svc := order.NewService(order.NewRepository(db), catalog.NewRepository(db),
		cart.NewRepository(db), stubCheckout{}, stubVerifier{}, stubPublisher{}, logger)

	const secret = "integration-secret"
	router := httpserver.NewRouter(svc, httpserver.NewAuth(secret))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": userID})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)

	body := `{"items":[{"product":"p1","quantity":2},{"product":"p2","quantity":1}],"address":"addr-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/order/cod", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "token", Value: signed})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var placed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	require.Equal(t, true, placed["success"])

	req = httptest.NewRequest(http.MethodGet, "/api/order/user", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signed})
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Success bool          `json:"success"`
		Orders  []order.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.True(t, listed.Success)
	require.Len(t, listed.Orders, 1)

	got := listed.Orders[0]
	require.Equal(t, userID, got.UserID)
	require.Equal(t, int64(25), got.Amount)
	require.Equal(t, order.PaymentCOD, got.PaymentType)
	require.False(t, got.IsPaid)
	require.NotNil(t, got.Address)
	require.Len(t, got.Items, 2)
	require.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
}

func TestHTTP_SellerListIncludesAllBuyers(t *testing.T) {
	db := testutil.StartPostgres(t)
	truncateTables(t, db)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	seedProduct(t, db, "p1", "Potato", 12, 10)
	seedAddress(t, db, "addr-1", "buyer-1")
	seedAddress(t, db, "addr-2", "buyer-2")

	repo := order.NewRepository(db)
	now := time.Now().UTC()
	for i, o := range []*order.Order{
		{UserID: "buyer-1", AddressID: "addr-1", Amount: 10, PaymentType: order.PaymentCOD,
			Items: []order.Item{{ProductID: "p1", Quantity: 1}}},
		{UserID: "buyer-2", AddressID: "addr-2", Amount: 20, PaymentType: order.PaymentCOD,
			Items: []order.Item{{ProductID: "p1", Quantity: 2}}},
	} {
		o.CreatedAt = now.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, o))
	}

	logger := log.New(io.Discard, "", 0)
	svc := order.NewService(repo, catalog.NewRepository(db), cart.NewRepository(db),
		stubCheckout{}, stubVerifier{}, stubPublisher{}, logger)
	router := httpserver.NewRouter(svc, httpserver.NewAuth("integration-secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/order/seller", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Success bool          `json:"success"`
		Orders  []order.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.True(t, listed.Success)
	require.Len(t, listed.Orders, 2)

	// newest first
	require.Equal(t, "buyer-2", listed.Orders[0].UserID)
	require.Equal(t, "buyer-1", listed.Orders[1].UserID)
}
