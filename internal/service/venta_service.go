package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"paraisopos/internal/config"
	"paraisopos/internal/dto"
	"paraisopos/internal/model"
	"paraisopos/internal/pos"
	"paraisopos/internal/repository"
	"paraisopos/internal/ticket"
)

// TicketEnqueuer hands finished sales to the background print pipeline.
// The worker package implements it over a Redis list.
type TicketEnqueuer interface {
	EnqueueTicket(ctx context.Context, ventaID uuid.UUID) error
}

type VentaService interface {
	// RegistrarVenta persists a settled checkout: folio, sale rows and one
	// drawer movement per payment, all inside one transaction.
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, chk *pos.Checkout, boletear bool) (*model.Venta, error)
	VentaInterna(ctx context.Context, usuarioID uuid.UUID, req dto.VentaInternaRequest) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	// TicketVenta re-renders the voucher text and its print URL for a
	// stored sale (reprints).
	TicketVenta(ctx context.Context, id uuid.UUID) (texto string, printURL string, err error)
}

type ventaService struct {
	ventas    repository.VentaRepository
	productos repository.ProductoRepository
	caja      repository.CajaRepository
	cfg       *config.Config
	tickets   TicketEnqueuer
}

func NewVentaService(
	ventas repository.VentaRepository,
	productos repository.ProductoRepository,
	caja repository.CajaRepository,
	cfg *config.Config,
	tickets TicketEnqueuer,
) VentaService {
	return &ventaService{ventas: ventas, productos: productos, caja: caja, cfg: cfg, tickets: tickets}
}

// runTx wraps fn in a transaction. A nil DB runs the closure directly so
// the service can be exercised against fake repositories.
func runTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.Transaction(fn)
}

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, chk *pos.Checkout, boletear bool) (*model.Venta, error) {
	if !chk.ListoParaFinalizar() {
		return nil, pos.ErrSaldoPendiente
	}

	sesion, err := s.caja.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pos.ErrCajaCerrada
	}
	if err != nil {
		return nil, err
	}

	venta := &model.Venta{
		SesionCajaID: &sesion.ID,
		UsuarioID:    usuarioID,
		TotalAfecto:  chk.Carrito.TotalAfecto(),
		TotalExento:  chk.Carrito.TotalExento(),
		TotalGeneral: chk.Carrito.TotalGeneral(),
		Tipo:         "pos",
		Boleteada:    boletear,
	}
	for _, linea := range chk.Carrito.Lineas {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     linea.Producto.ID,
			Nombre:         linea.Producto.Nombre,
			Cantidad:       linea.Cantidad,
			PrecioUnitario: linea.PrecioUnitario(),
			EsPromo:        linea.EsPromo,
			ExentoIVA:      linea.Producto.ExentoIVA,
			Total:          linea.Total(),
		})
	}
	for _, pago := range chk.Pagos.Pagos {
		venta.Pagos = append(venta.Pagos, model.VentaPago{
			Metodo: string(pago.Metodo),
			Monto:  pago.Monto,
		})
	}

	err = runTx(s.ventas.DB(), func(tx *gorm.DB) error {
		folio, err := s.ventas.NextFolio(ctx, tx)
		if err != nil {
			return err
		}
		venta.Folio = folio
		if err := s.ventas.Create(ctx, tx, venta); err != nil {
			return err
		}
		return s.registrarMovimientos(tx, sesion.ID, usuarioID, venta)
	})
	if err != nil {
		return nil, err
	}

	s.encolarTicket(ctx, venta.ID)
	return venta, nil
}

// registrarMovimientos writes one drawer movement per payment so the
// arqueo can split cash from digital without reopening the sale rows.
func (s *ventaService) registrarMovimientos(tx *gorm.DB, sesionID, usuarioID uuid.UUID, venta *model.Venta) error {
	for i := range venta.Pagos {
		pago := &venta.Pagos[i]
		metodo := pago.Metodo
		mov := &model.MovimientoCaja{
			SesionCajaID: sesionID,
			Tipo:         "venta",
			Metodo:       &metodo,
			Monto:        pago.Monto,
			Motivo:       "Venta folio #" + strconv.Itoa(venta.Folio),
			UsuarioID:    usuarioID,
			VentaID:      &venta.ID,
		}
		if err := s.caja.CreateMovimientoTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// VentaInterna records an operator-priced sale (employee purchase, merma
// sold at cost). The amount charged is whatever the admin typed; list
// prices are snapshotted per item as reference only.
func (s *ventaService) VentaInterna(ctx context.Context, usuarioID uuid.UUID, req dto.VentaInternaRequest) (*dto.VentaResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, pos.ErrMontoInvalido
	}
	metodo := pos.MetodoPago(req.Pago)
	if !pos.MetodoValido(metodo) {
		return nil, pos.ErrMontoInvalido
	}

	sesion, err := s.caja.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pos.ErrCajaCerrada
	}
	if err != nil {
		return nil, err
	}

	venta := &model.Venta{
		SesionCajaID: &sesion.ID,
		UsuarioID:    usuarioID,
		TotalAfecto:  req.Monto,
		TotalExento:  decimal.Zero,
		TotalGeneral: req.Monto,
		Tipo:         "interna",
		Pagos:        []model.VentaPago{{Metodo: req.Pago, Monto: req.Monto}},
	}
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, pos.ErrProductoNoEncontrado
		}
		producto, err := s.productos.FindByID(ctx, pid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pos.ErrProductoNoEncontrado
		}
		if err != nil {
			return nil, err
		}
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     producto.ID,
			Nombre:         producto.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: producto.Precio,
			ExentoIVA:      producto.ExentoIVA,
			Total:          producto.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		})
	}

	err = runTx(s.ventas.DB(), func(tx *gorm.DB) error {
		folio, err := s.ventas.NextFolio(ctx, tx)
		if err != nil {
			return err
		}
		venta.Folio = folio
		if err := s.ventas.Create(ctx, tx, venta); err != nil {
			return err
		}
		return s.registrarMovimientos(tx, sesion.ID, usuarioID, venta)
	})
	if err != nil {
		return nil, err
	}

	s.encolarTicket(ctx, venta.ID)
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 50
	}
	ventas, total, err := s.ventas.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, 0, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		resp.Data = append(resp.Data, *ventaToResponse(&ventas[i]))
	}
	return resp, nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) TicketVenta(ctx context.Context, id uuid.UUID) (string, string, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	texto := ticket.Render(s.datosTicket(venta))
	return texto, ticket.PrintURL(texto), nil
}

func (s *ventaService) datosTicket(venta *model.Venta) ticket.Datos {
	d := ticket.Datos{
		Nombre:    s.cfg.StoreName,
		Direccion: s.cfg.StoreAddress,
		Folio:     venta.Folio,
		Fecha:     venta.CreatedAt,
		Total:     venta.TotalGeneral,
	}
	if venta.Usuario != nil {
		d.Vendedor = venta.Usuario.Nombre
	}
	for _, item := range venta.Items {
		d.Items = append(d.Items, ticket.Item{
			Cantidad: item.Cantidad,
			Nombre:   item.Nombre,
			EsPromo:  item.EsPromo,
			Total:    item.Total,
		})
	}
	for _, pago := range venta.Pagos {
		d.Pagos = append(d.Pagos, ticket.Pago{Metodo: pago.Metodo, Monto: pago.Monto})
	}
	return d
}

// encolarTicket is best effort: a down queue must never roll back a sale.
func (s *ventaService) encolarTicket(ctx context.Context, ventaID uuid.UUID) {
	if s.tickets == nil {
		return
	}
	if err := s.tickets.EnqueueTicket(ctx, ventaID); err != nil {
		log.Warn().Err(err).Str("venta_id", ventaID.String()).Msg("no se pudo encolar el ticket")
	}
}

func ventaToResponse(venta *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:           venta.ID.String(),
		Folio:        venta.Folio,
		TotalAfecto:  venta.TotalAfecto,
		TotalExento:  venta.TotalExento,
		TotalGeneral: venta.TotalGeneral,
		Tipo:         venta.Tipo,
		Boleteada:    venta.Boleteada,
		CreatedAt:    venta.CreatedAt.Format(time.RFC3339),
	}
	if venta.Usuario != nil {
		resp.Vendedor = venta.Usuario.Nombre
	}
	for _, item := range venta.Items {
		resp.Items = append(resp.Items, dto.VentaItemResponse{
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			EsPromo:        item.EsPromo,
			ExentoIVA:      item.ExentoIVA,
			Total:          item.Total,
		})
	}
	for _, pago := range venta.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{
			Metodo: pago.Metodo,
			Monto:  pago.Monto,
		})
	}
	return resp
}
