package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	appstock "github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ItemHandler maneja las peticiones HTTP del registro de artículos.
type ItemHandler struct {
	items *usecase.ItemUseCase
	stock *appstock.QueryUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(items *usecase.ItemUseCase, stock *appstock.QueryUseCase) *ItemHandler {
	return &ItemHandler{items: items, stock: stock}
}

// List godoc
// @Summary      Listar artículos con stock derivado
// @Tags         items
// @Produce      json
// @Param        search            query  string  false  "Subcadena del nombre (case-insensitive)"
// @Param        category          query  string  false  "Categoría exacta"
// @Param        under_stock_only  query  bool    false  "Solo artículos bajo mínimo"
// @Param        sort_by           query  string  false  "name | category | stock_quantity | is_under_min_stock"
// @Param        sort_order        query  string  false  "asc | desc"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	rows, err := h.stock.ListWithStock(c.Context(), repository.StockQuery{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		UnderMinOnly: c.QueryBool("under_stock_only", false),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	out := dto.ItemListResponse{Items: make([]dto.ItemWithStockResponse, 0, len(rows)), Total: len(rows)}
	for _, row := range rows {
		out.Items = append(out.Items, toItemWithStock(row))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemWithStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	// Artículo recién creado: sin movimientos, stock derivado cero.
	return c.Status(fiber.StatusCreated).JSON(itemResponseWithStock(item, decimal.Zero, nil))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemWithStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	item, err := h.items.GetByID(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "artículo no encontrado"})
	}
	stock, err := h.stock.ComputeStock(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(itemResponseWithStock(item, stock, nil))
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemWithStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.Update(c.Context(), id, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	stock, err := h.stock.ComputeStock(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(itemResponseWithStock(item, stock, nil))
}

// Delete godoc
// @Summary      Eliminar artículo (stock cero y sin movimientos en 12 meses)
// @Tags         items
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Categories godoc
// @Summary      Categorías distintas para autocompletado
// @Tags         items
// @Produce      json
// @Param        search  query  string  false  "Filtro por subcadena"
// @Success      200  {array}  string
// @Router       /api/items/categories [get]
func (h *ItemHandler) Categories(c *fiber.Ctx) error {
	out, err := h.items.Categories(c.Context(), c.Query("search"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if out == nil {
		out = []string{}
	}
	return c.JSON(out)
}

// Units godoc
// @Summary      Unidades de medida distintas para autocompletado
// @Tags         items
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/items/units [get]
func (h *ItemHandler) Units(c *fiber.Ctx) error {
	out, err := h.items.Units(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	if out == nil {
		out = []string{}
	}
	return c.JSON(out)
}

func toItemWithStock(row *repository.ItemWithStock) dto.ItemWithStockResponse {
	out := itemResponseWithStock(&row.Item, row.StockQuantity, row.LastMovementAt)
	out.StockValue = row.StockValue
	out.IsUnderMinStock = row.IsUnderMinStock
	return out
}

func itemResponseWithStock(item *entity.Item, stock decimal.Decimal, lastMovementAt *time.Time) dto.ItemWithStockResponse {
	return dto.ItemWithStockResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		Unit:            item.Unit,
		Notes:           item.Notes,
		MinStock:        item.MinStock,
		UnitCost:        item.UnitCost,
		StockQuantity:   stock,
		StockValue:      stock.Mul(item.UnitCost),
		IsUnderMinStock: stock.LessThan(item.MinStock),
		LastMovementAt:  lastMovementAt,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
