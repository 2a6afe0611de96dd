package catalog

import (
	"strconv"

	"romdat/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves record lookups over a loaded table.
type Handler struct {
	table  *Table
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(table *Table, logger *zap.Logger) *Handler {
	return &Handler{table: table, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/records")
	group.Get("/:crc", h.HandleGetRecord)
	app.Get("/patches/:index", h.HandleGetPatch)
}

// recordResponse is the resolved configuration for one checksum.
type recordResponse struct {
	CRC             string `json:"crc"`
	SaveType        string `json:"save_type"`
	Players         uint8  `json:"players"`
	Status          uint8  `json:"status"`
	CountPerOp      uint8  `json:"count_per_op"`
	Rumble          bool   `json:"rumble"`
	Transferpak     bool   `json:"transferpak"`
	Mempak          bool   `json:"mempak"`
	Biopak          bool   `json:"biopak"`
	DisableExtraMem bool   `json:"disable_extra_mem"`
	SiDmaDuration   bool   `json:"si_dma_duration"`
	AiDmaModifier   bool   `json:"ai_dma_modifier"`
	Patch           string `json:"patch,omitempty"`
}

// HandleGetRecord looks up one record by its 16-hex-digit checksum and
// returns the resolved configuration.
func (h *Handler) HandleGetRecord(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	crc, err := strconv.ParseUint(c.Params("crc"), 16, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "crc must be a 64-bit hex checksum",
		})
	}

	cfg, ok := h.table.Lookup(crc)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no record for checksum; defaults apply",
		})
	}

	l.Debug("record lookup", zap.Uint64("crc", crc))
	return c.JSON(recordResponse{
		CRC:             strconv.FormatUint(crc, 16),
		SaveType:        cfg.SaveType.String(),
		Players:         cfg.Players,
		Status:          cfg.Status,
		CountPerOp:      cfg.CountPerOp,
		Rumble:          cfg.Rumble,
		Transferpak:     cfg.Transferpak,
		Mempak:          cfg.Mempak,
		Biopak:          cfg.Biopak,
		DisableExtraMem: cfg.DisableExtraMem,
		SiDmaDuration:   cfg.SiDmaDuration,
		AiDmaModifier:   cfg.AiDmaModifier,
		Patch:           h.table.Patch(cfg.PatchIndex),
	})
}

// HandleGetPatch returns one interned patch payload by index.
func (h *Handler) HandleGetPatch(c *fiber.Ctx) error {
	index, err := strconv.ParseUint(c.Params("index"), 10, 8)
	if err != nil || index == 0 || int(index) >= len(h.table.Patches) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no such patch index",
		})
	}
	return c.JSON(fiber.Map{
		"index":   index,
		"payload": h.table.Patches[index],
	})
}
