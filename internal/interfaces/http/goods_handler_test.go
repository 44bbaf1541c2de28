package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/goods-trace/internal/application/usecase"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	apphttp "github.com/tu-usuario/goods-trace/internal/interfaces/http"
)

// goodsRepoStub devuelve filas fijas y registra la paginación recibida.
type goodsRepoStub struct {
	gotOffset int
	gotCount  int
	sold      []*entity.SoldGoods
}

var _ repository.GoodsRepository = (*goodsRepoStub)(nil)

func (s *goodsRepoStub) BulkInsertProduced(context.Context, []entity.ProducedGoods) (int64, error) {
	return 0, nil
}
func (s *goodsRepoStub) BulkInsertSold(context.Context, []entity.SoldGoods) (int64, error) {
	return 0, nil
}
func (s *goodsRepoStub) BulkInsertTransported(context.Context, []entity.TransportedGoods) (int64, error) {
	return 0, nil
}

func (s *goodsRepoStub) ListProduced(_ context.Context, _ string, offset, count int) ([]*entity.ProducedGoods, error) {
	s.gotOffset, s.gotCount = offset, count
	return nil, nil
}

func (s *goodsRepoStub) ListSold(_ context.Context, _ string, offset, count int) ([]*entity.SoldGoods, error) {
	s.gotOffset, s.gotCount = offset, count
	return s.sold, nil
}

func (s *goodsRepoStub) ListTransported(_ context.Context, _ string, offset, count int) ([]*entity.TransportedGoods, error) {
	s.gotOffset, s.gotCount = offset, count
	return nil, nil
}

func (s *goodsRepoStub) SoldForShops(context.Context, string) ([]repository.SoldForShops, error) {
	return nil, nil
}
func (s *goodsRepoStub) SoldForVolume(context.Context, string) ([]repository.SoldForVolume, error) {
	return nil, nil
}
func (s *goodsRepoStub) SoldForOffline(context.Context, string) ([]repository.SoldForOffline, error) {
	return nil, nil
}
func (s *goodsRepoStub) SoldForOnline(context.Context, string) ([]repository.SoldForOnline, error) {
	return nil, nil
}
func (s *goodsRepoStub) SoldForShopCount(context.Context, string) ([]repository.SoldForShopCount, error) {
	return nil, nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func buildGoodsApp(repo repository.GoodsRepository) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewGoodsHandler(usecase.NewGoodsUseCase(repo), nil)
	goods := app.Group("/api/goods", apphttp.AuthMiddleware(testJWTSecret))
	goods.Get("/produced", handler.ListProduced)
	goods.Get("/sold", handler.ListSold)
	goods.Get("/transported", handler.ListTransported)
	return app
}

func getWithAuth(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", testToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestListSold_PaginacionValida_LlegaAlRepo(t *testing.T) {
	repo := &goodsRepoStub{}
	app := buildGoodsApp(repo)

	resp := getWithAuth(t, app, "/api/goods/sold?offset=40&count=20")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 40, repo.gotOffset)
	assert.Equal(t, 20, repo.gotCount)
}

func TestListSold_OffsetNegativo_Retorna422(t *testing.T) {
	repo := &goodsRepoStub{}
	app := buildGoodsApp(repo)

	resp := getWithAuth(t, app, "/api/goods/sold?offset=-1")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, repo.gotCount, "la petición inválida no debe llegar al repo")
}

func TestListSold_CountFueraDeRango_Retorna422(t *testing.T) {
	for _, q := range []string{"count=0", "count=101", "count=abc"} {
		repo := &goodsRepoStub{}
		app := buildGoodsApp(repo)

		resp := getWithAuth(t, app, "/api/goods/sold?"+q)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, q)
		assert.Zero(t, repo.gotCount, q)
	}
}

func TestListProduced_SinParametros_UsaDefaults(t *testing.T) {
	repo := &goodsRepoStub{}
	app := buildGoodsApp(repo)

	resp := getWithAuth(t, app, "/api/goods/produced")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, repo.gotOffset)
	assert.Equal(t, 100, repo.gotCount)
}

func TestListTransported_SinToken_Retorna401(t *testing.T) {
	app := buildGoodsApp(&goodsRepoStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/goods/transported", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Serialización del listado
// ──────────────────────────────────────────────────────────────────────────────

func TestListSold_SerializaFechaYPrecio(t *testing.T) {
	repo := &goodsRepoStub{sold: []*entity.SoldGoods{{
		Dt:            mustDate("2022-04-10"),
		GTIN:          "04600000000001",
		PrID:          "pr-1",
		INN:           "7701234567",
		IDSp:          "sp-77",
		TypeOperation: entity.OpRetailSale,
		Price:         decimal.RequireFromString("199.90"),
		Cnt:           3,
	}}}
	app := buildGoodsApp(repo)

	resp := getWithAuth(t, app, "/api/goods/sold")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)

	item := body.Items[0]
	assert.Equal(t, "2022-04-10", item["dt"], "la fecha se serializa como YYYY-MM-DD")
	assert.Equal(t, "sp-77", item["id_sp_"])
	assert.InDelta(t, 199.90, item["price"], 1e-9, "el precio se serializa como número")
	assert.Equal(t, float64(3), item["cnt"])
}

func TestListProduced_SinFilas_ItemsVacio(t *testing.T) {
	app := buildGoodsApp(&goodsRepoStub{})

	resp := getWithAuth(t, app, "/api/goods/produced")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []any `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotNil(t, body.Items, "items es [] y no null")
	assert.Empty(t, body.Items)
}
