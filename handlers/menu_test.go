package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bunshack-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMenusIsPublic(t *testing.T) {
	env := newEnv(t)

	w := env.do(http.MethodGet, "/api/Menus", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	env.menu("Bun", "2.00")
	w = env.do(http.MethodGet, "/api/Menus", "", nil)
	var menus []models.Menu
	decode(t, w, &menus)
	assert.Len(t, menus, 1)
}

func TestCreateThenGetMenu(t *testing.T) {
	env := newEnv(t)
	_, admin := env.user("admin", true)

	for _, tc := range []struct {
		name  string
		price string
	}{
		{"Bun", "2.50"},
		{"Free Water", "0"},
		{"Feast", "123.45"},
	} {
		w := env.do(http.MethodPost, "/api/Menus", admin, map[string]interface{}{
			"foodName": tc.name, "price": decimal.RequireFromString(tc.price),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var created models.Menu
		decode(t, w, &created)
		require.NotEmpty(t, created.ID)

		w = env.do(http.MethodGet, "/api/Menus/"+created.ID, admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got models.Menu
		decode(t, w, &got)
		assert.Equal(t, tc.name, got.FoodName)
		assert.True(t, decimal.RequireFromString(tc.price).Equal(got.Price), got.Price.String())
	}
}

func TestCreateMenuValidation(t *testing.T) {
	env := newEnv(t)
	_, admin := env.user("admin", true)

	w := env.do(http.MethodPost, "/api/Menus", admin, map[string]interface{}{"foodName": "Bun", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Price must not be negative.", message(t, w))

	w = env.do(http.MethodPost, "/api/Menus", admin, map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMenuRequiresSession(t *testing.T) {
	env := newEnv(t)
	m := env.menu("Bun", "2.00")
	_, cust := env.user("cust", false)

	w := env.do(http.MethodGet, "/api/Menus/"+m.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/api/Menus/"+m.ID, cust, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/Menus/missing", cust, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Menu with ID missing not found.", message(t, w))
}

func TestMenuMutationsRequireAdmin(t *testing.T) {
	env := newEnv(t)
	m := env.menu("Bun", "2.00")
	_, cust := env.user("cust", false)

	for _, path := range []string{"/api/Menus/" + m.ID, "/api/Menus/does-not-exist"} {
		w := env.do(http.MethodDelete, path, cust, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "You have no permission to view this page.", message(t, w))

		w = env.do(http.MethodPut, path, cust, map[string]interface{}{"foodName": "x", "price": 1})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := env.do(http.MethodPost, "/api/Menus", cust, map[string]interface{}{"foodName": "x", "price": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/Menus", "", map[string]interface{}{"foodName": "x", "price": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User is not logged in.", message(t, w))

	_, err := env.menus.GetMenuByID(context.Background(), m.ID)
	assert.NoError(t, err)
}

func TestUpdateMenu(t *testing.T) {
	env := newEnv(t)
	m := env.menu("Bun", "2.00")
	_, admin := env.user("admin", true)

	w := env.do(http.MethodPut, "/api/Menus/"+m.ID, admin, map[string]interface{}{"foodName": "Big Bun", "price": 3.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Menu
	decode(t, w, &updated)
	assert.Equal(t, m.ID, updated.ID)
	assert.Equal(t, "Big Bun", updated.FoodName)

	w = env.do(http.MethodPut, "/api/Menus/missing", admin, map[string]interface{}{"foodName": "x", "price": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMenu(t *testing.T) {
	env := newEnv(t)
	free := env.menu("Bun", "2.00")
	used := env.menu("Tea", "1.00")
	owner, _ := env.user("cust", false)
	_, admin := env.user("admin", true)

	_, err := env.orders.PlaceOrder(context.Background(), &models.Order{
		CustomerName: owner.Name,
		OrderDate:    time.Now().UTC(),
		UserID:       owner.ID,
		TotalPrice:   decimal.NewFromInt(1),
		OrderMenus:   []models.OrderMenu{{MenuID: used.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	w := env.do(http.MethodDelete, "/api/Menus/"+free.ID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted models.Menu
	decode(t, w, &deleted)
	assert.Equal(t, free.ID, deleted.ID)

	w = env.do(http.MethodDelete, "/api/Menus/"+free.ID, admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodDelete, "/api/Menus/"+used.ID, admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, message(t, w), "part of existing orders")
}

func TestCreateMenuRejectsSubCentPrices(t *testing.T) {
	env := newEnv(t)
	_, admin := env.user("admin", true)

	w := env.do(http.MethodPost, "/api/Menus", admin, `{"foodName":"Bun","price":"4.999"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Price must have at most two decimal places.", message(t, w))

	m := env.menu("Tea", "1.00")
	w = env.do(http.MethodPut, "/api/Menus/"+m.ID, admin, `{"foodName":"Tea","price":1.005}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/Menus", admin, `{"foodName":"Bun","price":"4.50"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
