package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "vendorhub/internal/adapters/in/http"
	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/core/application/usecases/queries"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/generated/servers"
	"vendorhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUpdatePortionHandler struct{ mock.Mock }

func (m *MockUpdatePortionHandler) Handle(ctx context.Context, cmd commands.UpdatePortionCommand) (order.VendorView, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.VendorView), args.Error(1)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockChangeOrderStatusHandler struct{ mock.Mock }

func (m *MockChangeOrderStatusHandler) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockActiveOrdersHandler struct{ mock.Mock }

func (m *MockActiveOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetActiveVendorOrdersQuery,
) ([]order.VendorView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]order.VendorView)
	return views, args.Error(1)
}

type MockReadyForPickupHandler struct{ mock.Mock }

func (m *MockReadyForPickupHandler) Handle(
	ctx context.Context,
	query queries.GetReadyForPickupOrdersQuery,
) ([]order.VendorView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]order.VendorView)
	return views, args.Error(1)
}

type MockVendorOrderHandler struct{ mock.Mock }

func (m *MockVendorOrderHandler) Handle(ctx context.Context, query queries.GetVendorOrderQuery) (order.VendorView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(order.VendorView), args.Error(1)
}

var bakery = kernel.MustNewVendorID("bakery-7")

type fixture struct {
	e             *echo.Echo
	updatePortion *MockUpdatePortionHandler
	createOrder   *MockCreateOrderHandler
	changeStatus  *MockChangeOrderStatusHandler
	active        *MockActiveOrdersHandler
	ready         *MockReadyForPickupHandler
	detail        *MockVendorOrderHandler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		e:             echo.New(),
		updatePortion: new(MockUpdatePortionHandler),
		createOrder:   new(MockCreateOrderHandler),
		changeStatus:  new(MockChangeOrderStatusHandler),
		active:        new(MockActiveOrdersHandler),
		ready:         new(MockReadyForPickupHandler),
		detail:        new(MockVendorOrderHandler),
	}

	server := httpin.NewServer(httpin.Handlers{
		UpdatePortion:     f.updatePortion,
		CreateOrder:       f.createOrder,
		ChangeOrderStatus: f.changeStatus,
		ActiveOrders:      f.active,
		ReadyForPickup:    f.ready,
		VendorOrder:       f.detail,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, httpin.Register(f.e, server))
	return f
}

func (f fixture) do(method, target, vendor, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if vendor != "" {
		req.Header.Set(httpin.VendorIDHeader, vendor)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func bakeryView(t *testing.T, id kernel.UUID, status order.PortionStatus) order.VendorView {
	t.Helper()
	bread, err := order.NewItem("bread", "Bread", 4, kernel.MustMoney("25.00"))
	require.NoError(t, err)
	portion, err := order.RestorePortion(bakery, status, []order.Item{bread}, kernel.MustMoney("100.00"))
	require.NoError(t, err)
	view, err := order.NewVendorView(id, order.OverallPendingConfirmation, order.PaymentPaid,
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), portion)
	require.NoError(t, err)
	return view
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListActiveVendorOrders(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.active.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetActiveVendorOrdersQuery) bool {
		return q.VendorID().IsEqual(bakery)
	})).Return([]order.VendorView{bakeryView(t, id, order.PortionNew)}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/vendor/orders/active", "bakery-7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
	var body []servers.VendorOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, id.String(), body[0].OrderId.String())
	assert.Equal(t, servers.OverallStatusPendingConfirmation, body[0].OverallStatus)
	assert.Equal(t, servers.PortionStatusNew, body[0].Portion.Status)
	assert.Equal(t, "100.00", body[0].Portion.VendorSubtotal)
	assert.Equal(t, "25.00", body[0].Portion.Items[0].PricePerItem)
	assert.NotContains(t, rec.Body.String(), "grandTotal")
	f.active.AssertExpectations(t)
}

func TestListActiveVendorOrders_EmptyIsArray(t *testing.T) {
	f := newFixture(t)
	f.active.On("Handle", mock.Anything, mock.Anything).Return([]order.VendorView{}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/vendor/orders/active", "bakery-7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestVendorRoutes_RequireIdentity(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/vendor/orders/ready-for-pickup", "", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, httpin.VendorIDHeader)
	f.ready.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestListReadyForPickupOrders(t *testing.T) {
	f := newFixture(t)
	f.ready.On("Handle", mock.Anything, mock.Anything).
		Return([]order.VendorView{bakeryView(t, kernel.NewUUID(), order.PortionReadyForPickup)}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/vendor/orders/ready-for-pickup", "bakery-7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Ready for Pickup"`)
}

func TestGetVendorOrder_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{"forbidden", errs.NewForbiddenError("vendor", "bakery-7"), http.StatusForbidden},
		{"timeout", errs.NewTimeoutError("get_vendor_order"), http.StatusGatewayTimeout},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.detail.On("Handle", mock.Anything, mock.Anything).Return(order.VendorView{}, tc.err).Once()

			rec := f.do(http.MethodGet, "/api/v1/vendor/orders/"+kernel.NewUUID().String(), "bakery-7", "")

			require.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.status, body.Code)
			assert.NotContains(t, body.Message, io.ErrUnexpectedEOF.Error())
		})
	}
}

func TestGetVendorOrder_MalformedID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/vendor/orders/not-a-uuid", "bakery-7", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.detail.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUpdateVendorPortion(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.updatePortion.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdatePortionCommand) bool {
		return cmd.OrderID().IsEqual(id) &&
			cmd.VendorID().IsEqual(bakery) &&
			cmd.Status() == order.PortionPreparing &&
			len(cmd.Items()) == 1 &&
			cmd.Items()[0].TotalPrice().String() == "120.00"
	})).Return(bakeryView(t, id, order.PortionPreparing), nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/vendor/orders/"+id.String()+"/portion", "bakery-7",
		`{"status":"Preparing","items":[{"itemId":"bread","name":"Bread","quantity":4,"pricePerItem":"30.00"}]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"Preparing"`)
	f.updatePortion.AssertExpectations(t)
}

func TestUpdateVendorPortion_UnknownStatusRejectedByContract(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPatch, "/api/v1/vendor/orders/"+kernel.NewUUID().String()+"/portion", "bakery-7",
		`{"status":"Shipped"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.updatePortion.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUpdateVendorPortion_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid transition", errs.NewInvalidTransitionError("portion status", "New", "Picked Up"), http.StatusConflict},
		{"conflict", errs.NewConflictError("order", "x", 3), http.StatusConflict},
		{"validation", errs.NewValueIsInvalidError("items"), http.StatusBadRequest},
		{"forbidden", errs.NewForbiddenError("vendor", "bakery-7"), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.updatePortion.On("Handle", mock.Anything, mock.Anything).Return(order.VendorView{}, tc.err).Once()

			rec := f.do(http.MethodPatch, "/api/v1/vendor/orders/"+kernel.NewUUID().String()+"/portion",
				"bakery-7", `{"status":"Ready for Pickup"}`)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestUpdateVendorPortion_SubCentPriceRejected(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPatch, "/api/v1/vendor/orders/"+kernel.NewUUID().String()+"/portion", "bakery-7",
		`{"status":"Preparing","items":[{"itemId":"milk","name":"Milk","quantity":3,"pricePerItem":"0.335"}]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.updatePortion.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestConfirmPickup(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.updatePortion.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdatePortionCommand) bool {
		return cmd.Status() == order.PortionPickedUp && cmd.Items() == nil
	})).Return(bakeryView(t, id, order.PortionPickedUp), nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/vendor/orders/"+id.String()+"/pickup", "bakery-7", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"Picked Up"`)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.OrderID().IsEqual(id) &&
			len(cmd.Portions()) == 2 &&
			cmd.PaymentStatus() == order.PaymentPaid &&
			!cmd.CreatedAt().IsZero()
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", "", `{
		"orderId": "`+id.String()+`",
		"platformFee": "1.50",
		"paymentGatewayFee": "0.30",
		"paymentStatus": "Paid",
		"vendorPortions": [
			{"vendorId": "bakery-7", "items": [{"itemId": "bread", "name": "Bread", "quantity": 4, "pricePerItem": "25.00"}]},
			{"vendorId": "dairy-3", "items": [{"itemId": "milk", "name": "Milk", "quantity": 2, "pricePerItem": "20.00", "totalPrice": "40.00"}]}
		]
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/v1/vendor/orders/"+id.String(), rec.Header().Get(echo.HeaderLocation))
	f.createOrder.AssertExpectations(t)
}

func TestCreateOrder_MismatchedTotal(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/orders", "", `{
		"orderId": "`+kernel.NewUUID().String()+`",
		"platformFee": "0",
		"paymentGatewayFee": "0",
		"paymentStatus": "Pending",
		"vendorPortions": [
			{"vendorId": "dairy-3", "items": [{"itemId": "milk", "name": "Milk", "quantity": 2, "pricePerItem": "20.00", "totalPrice": "41.00"}]}
		]
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateOrder_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.createOrder.On("Handle", mock.Anything, mock.Anything).Return(errs.NewConflictError("order", "x", 1)).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", "", `{
		"orderId": "`+kernel.NewUUID().String()+`",
		"platformFee": "0",
		"paymentGatewayFee": "0",
		"paymentStatus": "Paid",
		"vendorPortions": [{"vendorId": "dairy-3", "items": [{"itemId": "milk", "name": "Milk", "quantity": 1, "pricePerItem": "2"}]}]
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestChangeOrderStatus(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.changeStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
		return cmd.OrderID().IsEqual(id) && cmd.Status() == order.OverallConfirmed
	})).Return(nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+id.String()+"/status", "", `{"status":"Confirmed"}`)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	f.changeStatus.AssertExpectations(t)
}

func TestSwaggerUI(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/swagger/doc.json", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vendor Fulfillment API")
}

func TestUnknownRoute_ErrorShape(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/unknown", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
}
