package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// MovementHandler maneja el libro de movimientos: alta (IN/OUT/ADJUSTMENT) y
// listado con filtros. El reintento acotado ante LockTimeout vive aquí: el
// coordinador nunca reintenta para no enmascarar conflictos reales.
type MovementHandler struct {
	register      *inventory.RegisterMovementUseCase
	list          *inventory.ListMovementsUseCase
	retryAttempts int
}

// NewMovementHandler construye el handler. retryAttempts <= 0 desactiva reintentos.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, list *inventory.ListMovementsUseCase, retryAttempts int) *MovementHandler {
	return &MovementHandler{register: register, list: list, retryAttempts: retryAttempts}
}

// Create godoc
// @Summary      Registrar movimiento (IN/OUT/ADJUSTMENT)
// @Description  Unión etiquetada por type: IN usa quantity y unit_cost_override
//
//	opcional; OUT usa quantity y confirmed; ADJUSTMENT usa target_stock
//	y note obligatoria.
//
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementDetail
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	createdBy := GetSubject(c)
	res, err := h.register.RegisterFromRequest(c.Context(), createdBy, in)
	for attempt := 0; errors.Is(err, domain.ErrLockTimeout) && attempt < h.retryAttempts; attempt++ {
		res, err = h.register.RegisterFromRequest(c.Context(), createdBy, in)
	}
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toMovementDetail(&repository.MovementWithItem{
		Movement: *res.Movement,
		ItemName: res.ItemName,
	}))
}

// List godoc
// @Summary      Listar movimientos (paginado, más recientes primero)
// @Tags         movements
// @Produce      json
// @Param        from_date  query  string  false  "YYYY-MM-DD (por defecto: hace 30 días)"
// @Param        to_date    query  string  false  "YYYY-MM-DD (por defecto: hoy)"
// @Param        item_id    query  string  false  "Filtrar por artículo"
// @Param        type       query  string  false  "IN | OUT | ADJUSTMENT"
// @Param        limit      query  int     false  "Máximo de resultados"  default(100)
// @Param        offset     query  int     false  "Offset de paginación"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ItemID: c.Query("item_id"),
		Type:   c.Query("type"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if raw := c.Query("from_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from_date inválida (YYYY-MM-DD)"})
		}
		filter.FromDate = &d
	}
	if raw := c.Query("to_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to_date inválida (YYYY-MM-DD)"})
		}
		filter.ToDate = &d
	}

	movements, total, err := h.list.List(c.Context(), filter)
	if err != nil {
		return writeDomainError(c, err)
	}

	out := dto.MovementListResponse{
		Movements: make([]dto.MovementDetail, 0, len(movements)),
		Total:     total,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, toMovementDetail(m))
	}
	return c.JSON(out)
}

func toMovementDetail(m *repository.MovementWithItem) dto.MovementDetail {
	return dto.MovementDetail{
		ID:               m.ID,
		ItemID:           m.ItemID,
		ItemName:         m.ItemName,
		Type:             m.Type,
		Quantity:         m.Quantity,
		EffectiveDate:    m.EffectiveDate.Format("2006-01-02"),
		CreatedAt:        m.CreatedAt,
		UnitCostOverride: m.UnitCostOverride,
		Note:             m.Note,
		CreatedBy:        m.CreatedBy,
	}
}
