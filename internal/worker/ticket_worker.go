package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"paraisopos/internal/config"
	"paraisopos/internal/infra"
	"paraisopos/internal/repository"
)

// TicketPayload identifies the sale whose voucher should be archived.
type TicketPayload struct {
	VentaID string `json:"venta_id"`
}

// TicketWorker renders the PDF copy of each finalized sale in the
// background, keeping the checkout response path free of disk I/O.
type TicketWorker struct {
	ventas repository.VentaRepository
	cfg    *config.Config
}

func NewTicketWorker(ventas repository.VentaRepository, cfg *config.Config) *TicketWorker {
	return &TicketWorker{ventas: ventas, cfg: cfg}
}

func (w *TicketWorker) Handle(ctx context.Context, job Job) error {
	var payload TicketPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("ticket job: bad payload: %w", err)
	}
	id, err := uuid.Parse(payload.VentaID)
	if err != nil {
		return fmt.Errorf("ticket job: bad venta id %q: %w", payload.VentaID, err)
	}

	venta, err := w.ventas.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ticket job: load venta: %w", err)
	}

	path, err := infra.GenerateTicketPDF(venta, w.cfg.StoreName, w.cfg.PDFStoragePath)
	if err != nil {
		return fmt.Errorf("ticket job: render pdf: %w", err)
	}

	log.Info().
		Int("folio", venta.Folio).
		Str("path", path).
		Msg("ticket archived")
	return nil
}
