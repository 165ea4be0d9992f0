package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"paraisopos/internal/dto"
	"paraisopos/internal/model"
	"paraisopos/internal/pos"
	"paraisopos/internal/repository"
)

const (
	productoCacheTTL = 5 * time.Minute
	borradorTTL      = 12 * time.Hour
)

// CheckoutService holds one in-flight checkout per operator and drives the
// engine in internal/pos. State lives in memory; a Redis snapshot of each
// draft survives a process restart.
type CheckoutService interface {
	Escanear(ctx context.Context, usuarioID uuid.UUID, codigo string) (*dto.CarritoResponse, error)
	EscanearCombo(ctx context.Context, usuarioID uuid.UUID, codigo string) (*dto.ComboEstadoResponse, *dto.CarritoResponse, error)
	CancelarCombo(ctx context.Context, usuarioID uuid.UUID) error
	CambiarCantidad(ctx context.Context, usuarioID uuid.UUID, idx, cantidad int) (*dto.CarritoResponse, error)
	EliminarLinea(ctx context.Context, usuarioID uuid.UUID, idx int) (*dto.CarritoResponse, error)
	Vaciar(ctx context.Context, usuarioID uuid.UUID) error
	VerCarrito(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error)
	AgregarPago(ctx context.Context, usuarioID uuid.UUID, metodo string, monto decimal.Decimal) (*dto.CarritoResponse, error)
	ReiniciarPagos(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error)
	Finalizar(ctx context.Context, usuarioID uuid.UUID, boletear bool) (*dto.FinalizarResponse, error)
	// ConsultarPrecio backs the public price-check kiosk endpoint.
	ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error)
}

type checkoutService struct {
	mu        sync.Mutex
	checkouts map[uuid.UUID]*pos.Checkout

	productos repository.ProductoRepository
	ventas    VentaService
	rdb       *redis.Client
}

func NewCheckoutService(productos repository.ProductoRepository, ventas VentaService, rdb *redis.Client) CheckoutService {
	return &checkoutService{
		checkouts: make(map[uuid.UUID]*pos.Checkout),
		productos: productos,
		ventas:    ventas,
		rdb:       rdb,
	}
}

// checkout returns the operator's live checkout, restoring the Redis draft
// after a restart when one exists. Callers hold no lock; every exported
// method serializes through mu.
func (s *checkoutService) checkout(ctx context.Context, usuarioID uuid.UUID) *pos.Checkout {
	if chk, ok := s.checkouts[usuarioID]; ok {
		return chk
	}
	chk := pos.NuevoCheckout()
	if restaurado := s.cargarBorrador(ctx, usuarioID); restaurado != nil {
		chk = restaurado
	}
	s.checkouts[usuarioID] = chk
	return chk
}

func (s *checkoutService) Escanear(ctx context.Context, usuarioID uuid.UUID, codigo string) (*dto.CarritoResponse, error) {
	producto, err := s.resolverProducto(ctx, codigo)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)
	if err := chk.AgregarProducto(*producto); err != nil {
		return nil, err
	}
	s.guardarBorrador(ctx, usuarioID, chk)
	return carritoToResponse(chk), nil
}

func (s *checkoutService) EscanearCombo(ctx context.Context, usuarioID uuid.UUID, codigo string) (*dto.ComboEstadoResponse, *dto.CarritoResponse, error) {
	producto, err := s.resolverProducto(ctx, codigo)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)
	completo, err := chk.EscanearCombo(*producto)
	if err != nil {
		return comboToResponse(chk.Combo), nil, err
	}
	if completo {
		s.guardarBorrador(ctx, usuarioID, chk)
		return &dto.ComboEstadoResponse{Estado: "completo"}, carritoToResponse(chk), nil
	}
	return comboToResponse(chk.Combo), nil, nil
}

func (s *checkoutService) CancelarCombo(ctx context.Context, usuarioID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout(ctx, usuarioID).CancelarCombo()
	return nil
}

func (s *checkoutService) CambiarCantidad(ctx context.Context, usuarioID uuid.UUID, idx, cantidad int) (*dto.CarritoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)
	if err := chk.CambiarCantidad(idx, cantidad); err != nil {
		return nil, err
	}
	s.guardarBorrador(ctx, usuarioID, chk)
	return carritoToResponse(chk), nil
}

func (s *checkoutService) EliminarLinea(ctx context.Context, usuarioID uuid.UUID, idx int) (*dto.CarritoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)
	if err := chk.EliminarLinea(idx); err != nil {
		return nil, err
	}
	s.guardarBorrador(ctx, usuarioID, chk)
	return carritoToResponse(chk), nil
}

func (s *checkoutService) Vaciar(ctx context.Context, usuarioID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)
	chk.Vaciar()
	s.borrarBorrador(ctx, usuarioID)
	return nil
}

func (s *checkoutService) VerCarrito(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return carritoToResponse(s.checkout(ctx, usuarioID)), nil
}

func (s *checkoutService) AgregarPago(ctx context.Context, usuarioID uuid.UUID, metodo string, monto decimal.Decimal) (*dto.CarritoResponse, error) {
	m := pos.MetodoPago(metodo)
	if !pos.MetodoValido(m) {
		return nil, pos.ErrMontoInvalido
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)
	if err := chk.AgregarPago(m, monto); err != nil {
		return nil, err
	}
	s.guardarBorrador(ctx, usuarioID, chk)
	return carritoToResponse(chk), nil
}

func (s *checkoutService) ReiniciarPagos(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)
	chk.ReiniciarPagos()
	s.guardarBorrador(ctx, usuarioID, chk)
	return carritoToResponse(chk), nil
}

// Finalizar persists the settled checkout. The in-memory state is cleared
// only after the sale committed, so a storage failure leaves the operator
// exactly where they were.
func (s *checkoutService) Finalizar(ctx context.Context, usuarioID uuid.UUID, boletear bool) (*dto.FinalizarResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chk := s.checkout(ctx, usuarioID)

	if chk.Carrito.Vacio() {
		return nil, pos.ErrCarritoVacio
	}
	if !chk.ListoParaFinalizar() {
		return nil, pos.ErrSaldoPendiente
	}
	vuelto := chk.Pagos.Vuelto

	venta, err := s.ventas.RegistrarVenta(ctx, usuarioID, chk, boletear)
	if err != nil {
		return nil, err
	}

	texto, printURL, err := s.ventas.TicketVenta(ctx, venta.ID)
	if err != nil {
		// The sale is committed; a render failure only costs the voucher.
		log.Warn().Err(err).Int("folio", venta.Folio).Msg("no se pudo renderizar el ticket")
	}

	chk.Vaciar()
	s.borrarBorrador(ctx, usuarioID)

	return &dto.FinalizarResponse{
		VentaID:  venta.ID.String(),
		Folio:    venta.Folio,
		Total:    venta.TotalGeneral,
		Vuelto:   vuelto,
		Ticket:   texto,
		PrintURL: printURL,
	}, nil
}

func (s *checkoutService) ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error) {
	producto, err := s.resolverProducto(ctx, codigo)
	if err != nil {
		return nil, err
	}
	return &dto.ConsultaPrecioResponse{
		Codigo:    producto.Codigo,
		Nombre:    producto.Nombre,
		Precio:    producto.Precio,
		ExentoIVA: producto.ExentoIVA,
	}, nil
}

// ── Resolución de productos ──────────────────────────────────────────────────
// Cache-aside over Redis: scans hit the same few hundred products all day.

func (s *checkoutService) resolverProducto(ctx context.Context, codigo string) (*model.Producto, error) {
	cacheKey := "producto:" + codigo

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var p model.Producto
			if json.Unmarshal(raw, &p) == nil {
				return &p, nil
			}
		}
	}

	producto, err := s.productos.FindByCodigo(ctx, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pos.ErrProductoNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(producto); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, productoCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Str("codigo", codigo).Msg("cache de producto no disponible")
			}
		}
	}
	return producto, nil
}

// ── Borradores ───────────────────────────────────────────────────────────────
// Best effort: a Redis outage never blocks a scan.

func borradorKey(usuarioID uuid.UUID) string {
	return "carrito:" + usuarioID.String()
}

func (s *checkoutService) guardarBorrador(ctx context.Context, usuarioID uuid.UUID, chk *pos.Checkout) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(chk)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, borradorKey(usuarioID), raw, borradorTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("no se pudo guardar el borrador del carrito")
	}
}

func (s *checkoutService) cargarBorrador(ctx context.Context, usuarioID uuid.UUID) *pos.Checkout {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, borradorKey(usuarioID)).Bytes()
	if err != nil {
		return nil
	}
	var chk pos.Checkout
	if err := json.Unmarshal(raw, &chk); err != nil {
		return nil
	}
	return &chk
}

func (s *checkoutService) borrarBorrador(ctx context.Context, usuarioID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, borradorKey(usuarioID)).Err(); err != nil {
		log.Debug().Err(err).Msg("no se pudo borrar el borrador del carrito")
	}
}

// ── Mapeos ───────────────────────────────────────────────────────────────────

func carritoToResponse(chk *pos.Checkout) *dto.CarritoResponse {
	resp := &dto.CarritoResponse{
		Lineas:          make([]dto.LineaResponse, 0, len(chk.Carrito.Lineas)),
		TotalAfecto:     chk.Carrito.TotalAfecto(),
		TotalExento:     chk.Carrito.TotalExento(),
		TotalGeneral:    chk.Carrito.TotalGeneral(),
		TotalPagado:     decimal.Zero,
		SaldoRestante:   chk.Carrito.TotalGeneral(),
		SaldoNoEfectivo: chk.Carrito.TotalAfecto(),
		Vuelto:          decimal.Zero,
	}
	for _, l := range chk.Carrito.Lineas {
		resp.Lineas = append(resp.Lineas, dto.LineaResponse{
			ProductoID:     l.Producto.ID.String(),
			Codigo:         l.Producto.Codigo,
			Nombre:         l.Producto.Nombre,
			Cantidad:       l.Cantidad,
			PrecioLista:    l.Producto.Precio,
			PrecioUnitario: l.PrecioUnitario(),
			Total:          l.Total(),
			ExentoIVA:      l.Producto.ExentoIVA,
			EsPromo:        l.EsPromo,
			Mayorista:      l.AplicaMayorista(),
		})
	}
	if chk.Pagos != nil {
		for _, p := range chk.Pagos.Pagos {
			resp.Pagos = append(resp.Pagos, dto.PagoResponse{Metodo: string(p.Metodo), Monto: p.Monto})
		}
		resp.TotalPagado = chk.Pagos.TotalPagado()
		resp.SaldoRestante = chk.Pagos.Restante()
		resp.SaldoNoEfectivo = chk.Pagos.TotalAfecto.Sub(chk.Pagos.TotalNoEfectivo())
		resp.Vuelto = chk.Pagos.Vuelto
	}
	return resp
}

func comboToResponse(combo *pos.ComboSesion) *dto.ComboEstadoResponse {
	if combo == nil {
		return &dto.ComboEstadoResponse{Estado: "completo"}
	}
	resp := &dto.ComboEstadoResponse{}
	switch combo.Estado {
	case pos.EsperandoLicor:
		resp.Estado = "esperando_licor"
	case pos.EsperandoBebida:
		resp.Estado = "esperando_bebida"
	}
	if combo.Licor != nil {
		nombre := combo.Licor.Nombre
		resp.Licor = &nombre
	}
	return resp
}
