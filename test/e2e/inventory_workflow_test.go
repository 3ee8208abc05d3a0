//go:build e2e
// +build e2e

package e2e_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/stockdesk/internal/adapters/httpapi"
	"github.com/ammerola/stockdesk/internal/adapters/session"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/services"
	"github.com/ammerola/stockdesk/test/helpers"
)

type InventoryE2ESuite struct {
	suite.Suite
	api      *helpers.StubAPI
	sessions *session.MemoryStore
	notifier *helpers.RecordingNotifier

	auth       *services.AuthService
	guard      *services.RouteGuard
	products   *services.ProductController
	categories *services.CategoryController
	ctx        context.Context
}

func (s *InventoryE2ESuite) SetupTest() {
	s.api = helpers.StartStubAPI(s.T())
	s.sessions = helpers.NewMemorySessionStore()
	s.notifier = helpers.NewRecordingNotifier()
	s.ctx = context.Background()
	logger := helpers.TestLogger()

	var auth *services.AuthService
	client, err := httpapi.NewClient(s.api.BaseURL(), s.sessions, logger,
		httpapi.WithUnauthorizedHandler(func(ctx context.Context) { auth.HandleUnauthorized(ctx) }))
	s.Require().NoError(err)

	productGateway := httpapi.NewProductGateway(client)
	categoryGateway := httpapi.NewCategoryGateway(client)
	auth = services.NewAuthService(httpapi.NewAuthGateway(client), s.sessions, logger)
	confirm := helpers.NewStaticConfirmer(true)

	s.auth = auth
	s.guard = services.NewRouteGuard(s.sessions)
	s.products = services.NewProductController(productGateway, categoryGateway, s.notifier, confirm, logger, domain.DefaultPageSize)
	s.categories = services.NewCategoryController(categoryGateway, s.notifier, confirm, logger, domain.DefaultPageSize)

	_, err = s.auth.Login(s.ctx, domain.Credentials{Email: helpers.StubAdminEmail, Password: helpers.StubAdminPassword})
	s.Require().NoError(err)
}

// seedProducts stores n products in one category directly on the server
func (s *InventoryE2ESuite) seedProducts(n, stock int) domain.Category {
	cat, err := s.api.Store.SaveCategory(s.ctx, "Herramientas")
	s.Require().NoError(err)

	for i := 1; i <= n; i++ {
		_, err := s.api.Store.SaveProduct(s.ctx, domain.Product{
			Name:       fmt.Sprintf("Producto %02d", i),
			Price:      decimal.NewFromInt(int64(100 * i)),
			Stock:      stock,
			CategoryID: cat.ID,
		}, nil)
		s.Require().NoError(err)
	}
	return cat
}

func (s *InventoryE2ESuite) TestPagination() {
	s.seedProducts(12, 10)

	s.Require().NoError(s.products.Load(s.ctx))
	state := s.products.Snapshot()
	s.Len(state.Items, 5)
	s.Equal(3, state.Page.TotalPages)
	s.Equal(12, state.Page.TotalItems)

	s.False(s.products.ChangePage(s.ctx, 4))
	s.Equal(1, s.products.Snapshot().Page.CurrentPage)

	s.True(s.products.ChangePage(s.ctx, 3))
	state = s.products.Snapshot()
	s.Equal(3, state.Page.CurrentPage)
	s.Len(state.Items, 2)
}

func (s *InventoryE2ESuite) TestSearchResetsToFirstPage() {
	s.seedProducts(12, 10)
	s.Require().NoError(s.products.Load(s.ctx))
	s.True(s.products.ChangePage(s.ctx, 2))

	s.Require().NoError(s.products.Search(s.ctx, "Producto 1"))
	state := s.products.Snapshot()
	s.Equal(1, state.Page.CurrentPage)
	// Producto 10, 11, 12
	s.Equal(3, state.Page.TotalItems)
}

func (s *InventoryE2ESuite) TestSellRecordsExitMovement() {
	s.seedProducts(1, 10)
	s.Require().NoError(s.products.Load(s.ctx))
	product := s.products.Snapshot().Items[0]

	s.True(s.products.Sell(s.ctx, product.ID, domain.StockAdjustment{Quantity: 3, Reason: "Venta"}))

	updated, ok := s.products.Product(product.ID)
	s.Require().True(ok)
	s.Equal(7, updated.Stock)

	var exits []domain.Movement
	for _, m := range s.products.Movements(s.ctx, product.ID) {
		if m.Type == domain.MovementExit {
			exits = append(exits, m)
		}
	}
	s.Require().Len(exits, 1)
	s.Equal(3, exits[0].Quantity)
}

func (s *InventoryE2ESuite) TestSellAboveStockIsBlockedLocally() {
	s.seedProducts(1, 2)
	s.Require().NoError(s.products.Load(s.ctx))
	product := s.products.Snapshot().Items[0]

	s.False(s.products.Sell(s.ctx, product.ID, domain.StockAdjustment{Quantity: 5}))
	s.Equal(1, s.api.Store.Stats()["movements"])
}

func (s *InventoryE2ESuite) TestProductLifecycle() {
	cat := s.seedProducts(0, 0)
	s.Require().NoError(s.products.Load(s.ctx))

	s.True(s.products.Save(s.ctx, domain.ProductInput{
		Name:       "Taladro",
		Price:      decimal.RequireFromString("1999.90"),
		Stock:      4,
		SKU:        "TAL-1",
		CategoryID: cat.ID,
	}, ""))

	state := s.products.Snapshot()
	s.Require().Len(state.Items, 1)
	created := state.Items[0]
	s.Equal("Taladro", created.Name)
	s.True(created.Price.Equal(decimal.RequireFromString("1999.90")))

	s.True(s.products.Save(s.ctx, domain.ProductInput{
		Name:       "Taladro percutor",
		Price:      created.Price,
		Stock:      created.Stock,
		SKU:        created.SKU,
		CategoryID: cat.ID,
	}, created.ID))
	updated, ok := s.products.Product(created.ID)
	s.Require().True(ok)
	s.Equal("Taladro percutor", updated.Name)

	s.True(s.products.Delete(s.ctx, created.ID))
	s.Empty(s.products.Snapshot().Items)
	s.Equal(0, s.api.Store.Stats()["products"])
}

func (s *InventoryE2ESuite) TestEmptyCategoryNameIsRejectedBeforeDispatch() {
	s.Require().NoError(s.categories.Load(s.ctx))

	s.False(s.categories.Save(s.ctx, domain.CategoryInput{Name: "   "}, ""))
	s.Equal([]string{"name is required"}, s.notifier.Errors())
	s.Equal(0, s.api.Store.Stats()["categories"])

	s.True(s.categories.Save(s.ctx, domain.CategoryInput{Name: "Jardin"}, ""))
	s.Equal(1, s.api.Store.Stats()["categories"])
}

func (s *InventoryE2ESuite) TestCategoryInUseCannotBeDeleted() {
	cat := s.seedProducts(1, 1)
	s.Require().NoError(s.categories.Load(s.ctx))

	s.False(s.categories.Delete(s.ctx, cat.ID))
	s.Contains(s.notifier.Errors(), "No se puede eliminar una categoria con productos")
	s.Equal(1, s.api.Store.Stats()["categories"])
}

func (s *InventoryE2ESuite) TestLogoutClosesTheGuard() {
	s.True(s.guard.Allow(s.ctx))
	s.Equal(domain.RoleAdmin, s.auth.CurrentUser(s.ctx).Role)

	s.Require().NoError(s.auth.Logout(s.ctx))

	s.False(s.guard.Allow(s.ctx))
	s.ErrorIs(s.guard.Require(s.ctx), domain.ErrLoginRequired)
	s.Equal(domain.GuestUser(), s.auth.CurrentUser(s.ctx))
}

func (s *InventoryE2ESuite) TestRejectedTokenClearsSession() {
	s.Require().NoError(s.sessions.Set(s.ctx, domain.Session{
		Token: "not-a-valid-token",
		User:  domain.User{Name: "Ana", Role: domain.RoleAdmin},
	}))

	s.Error(s.products.Load(s.ctx))
	s.False(s.guard.Allow(s.ctx))
}

func (s *InventoryE2ESuite) TestClientCannotWrite() {
	s.Require().NoError(s.auth.Logout(s.ctx))
	_, err := s.auth.Login(s.ctx, domain.Credentials{Email: helpers.StubClientEmail, Password: helpers.StubClientPassword})
	s.Require().NoError(err)
	s.Require().NoError(s.categories.Load(s.ctx))

	s.False(s.categories.Save(s.ctx, domain.CategoryInput{Name: "Jardin"}, ""))
	s.Contains(s.notifier.Errors(), "Acceso denegado: se requiere rol ADMIN")
	s.True(s.guard.Allow(s.ctx))
}

func TestInventoryE2ESuite(t *testing.T) {
	suite.Run(t, new(InventoryE2ESuite))
}
