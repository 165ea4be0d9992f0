package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"paraisopos/internal/config"
	"paraisopos/internal/dto"
	"paraisopos/internal/model"
	"paraisopos/internal/pos"
	"paraisopos/internal/repository"
)

var (
	_ repository.ProductoRepository = (*fakeProductoRepo)(nil)
	_ repository.VentaRepository    = (*fakeVentaRepo)(nil)
)

// ── In-memory ProductoRepository ─────────────────────────────────────────────

type fakeProductoRepo struct {
	porCodigo map[string]*model.Producto
}

func newFakeProductoRepo(productos ...*model.Producto) *fakeProductoRepo {
	r := &fakeProductoRepo{porCodigo: make(map[string]*model.Producto)}
	for _, p := range productos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.porCodigo[p.Codigo] = p
	}
	return r
}

func (r *fakeProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	p, ok := r.porCodigo[codigo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	for _, p := range r.porCodigo {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── In-memory VentaRepository ────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas []*model.Venta
	folio  int
}

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

func (r *fakeVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas = append(r.ventas, v)
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVentaRepo) NextFolio(_ context.Context, _ *gorm.DB) (int, error) {
	r.folio++
	return r.folio, nil
}

func (r *fakeVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type posFixture struct {
	checkout  CheckoutService
	ventas    *fakeVentaRepo
	caja      *fakeCajaRepo
	usuarioID uuid.UUID
}

func newPOSFixture(t *testing.T, productos ...*model.Producto) *posFixture {
	t.Helper()
	cfg := &config.Config{StoreName: "BOTILLERIA EL PARAISO", StoreAddress: "Santo Domingo 2557"}
	productoRepo := newFakeProductoRepo(productos...)
	ventaRepo := &fakeVentaRepo{}
	cajaRepo := newFakeCajaRepo()

	ventaSvc := NewVentaService(ventaRepo, productoRepo, cajaRepo, cfg, nil)
	return &posFixture{
		checkout:  NewCheckoutService(productoRepo, ventaSvc, nil),
		ventas:    ventaRepo,
		caja:      cajaRepo,
		usuarioID: uuid.New(),
	}
}

func (f *posFixture) abrirCaja(t *testing.T, monto int64) {
	t.Helper()
	svc := NewCajaService(f.caja)
	_, err := svc.Abrir(context.Background(), f.usuarioID, decimal.NewFromInt(monto))
	require.NoError(t, err)
}

func cerveza() *model.Producto {
	return &model.Producto{
		Codigo: "CERV01", Nombre: "Cerveza Lager 473cc",
		Precio: decimal.NewFromInt(1500), CategoriaID: 3, Activo: true,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestEscanearProductoDesconocido(t *testing.T) {
	f := newPOSFixture(t)
	_, err := f.checkout.Escanear(context.Background(), f.usuarioID, "NOEXISTE")
	assert.ErrorIs(t, err, pos.ErrProductoNoEncontrado)
}

func TestFlujoVentaCompleta(t *testing.T) {
	f := newPOSFixture(t, cerveza())
	f.abrirCaja(t, 10000)
	ctx := context.Background()

	carrito, err := f.checkout.Escanear(ctx, f.usuarioID, "CERV01")
	require.NoError(t, err)
	require.Len(t, carrito.Lineas, 1)

	carrito, err = f.checkout.CambiarCantidad(ctx, f.usuarioID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "3000", carrito.TotalGeneral.String())

	carrito, err = f.checkout.AgregarPago(ctx, f.usuarioID, "EFECTIVO", decimal.NewFromInt(5000))
	require.NoError(t, err)
	assert.Equal(t, "2000", carrito.Vuelto.String())
	assert.True(t, carrito.SaldoRestante.IsZero())

	resp, err := f.checkout.Finalizar(ctx, f.usuarioID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Folio)
	assert.Equal(t, "3000", resp.Total.String())
	assert.Equal(t, "2000", resp.Vuelto.String())
	assert.Contains(t, resp.Ticket, "Cerveza Lager 47")
	assert.Contains(t, resp.PrintURL, "rawbt:base64,")

	// Sale persisted with its drawer movement, cart cleared.
	require.Len(t, f.ventas.ventas, 1)
	venta := f.ventas.ventas[0]
	assert.True(t, venta.Boleteada)
	assert.Equal(t, "pos", venta.Tipo)
	require.Len(t, f.caja.movimientos, 1)
	assert.Equal(t, "venta", f.caja.movimientos[0].Tipo)
	assert.Equal(t, "3000", f.caja.movimientos[0].Monto.String())

	carrito, err = f.checkout.VerCarrito(ctx, f.usuarioID)
	require.NoError(t, err)
	assert.Empty(t, carrito.Lineas)
}

func TestFinalizarSinSaldar(t *testing.T) {
	f := newPOSFixture(t, cerveza())
	f.abrirCaja(t, 5000)
	ctx := context.Background()

	_, err := f.checkout.Escanear(ctx, f.usuarioID, "CERV01")
	require.NoError(t, err)
	_, err = f.checkout.AgregarPago(ctx, f.usuarioID, "DEBITO", decimal.NewFromInt(1000))
	require.NoError(t, err)

	_, err = f.checkout.Finalizar(ctx, f.usuarioID, false)
	assert.ErrorIs(t, err, pos.ErrSaldoPendiente)
}

func TestFinalizarConCajaCerradaConservaCarrito(t *testing.T) {
	f := newPOSFixture(t, cerveza())
	ctx := context.Background()

	_, err := f.checkout.Escanear(ctx, f.usuarioID, "CERV01")
	require.NoError(t, err)
	_, err = f.checkout.AgregarPago(ctx, f.usuarioID, "EFECTIVO", decimal.NewFromInt(1500))
	require.NoError(t, err)

	_, err = f.checkout.Finalizar(ctx, f.usuarioID, false)
	assert.ErrorIs(t, err, pos.ErrCajaCerrada)

	// Nothing was lost: open the drawer and finalize the same checkout.
	f.abrirCaja(t, 1000)
	resp, err := f.checkout.Finalizar(ctx, f.usuarioID, false)
	require.NoError(t, err)
	assert.Equal(t, "1500", resp.Total.String())
}

func TestPagoExentoPropagaError(t *testing.T) {
	exento := &model.Producto{
		Codigo: "PAN01", Nombre: "Pan Amasado",
		Precio: decimal.NewFromInt(2000), ExentoIVA: true, Activo: true,
	}
	f := newPOSFixture(t, exento)
	ctx := context.Background()

	_, err := f.checkout.Escanear(ctx, f.usuarioID, "PAN01")
	require.NoError(t, err)

	_, err = f.checkout.AgregarPago(ctx, f.usuarioID, "CREDITO", decimal.NewFromInt(2000))
	assert.ErrorIs(t, err, pos.ErrPagoExcedeExento)
}

func TestConsultarPrecio(t *testing.T) {
	f := newPOSFixture(t, cerveza())

	resp, err := f.checkout.ConsultarPrecio(context.Background(), "CERV01")
	require.NoError(t, err)
	assert.Equal(t, "Cerveza Lager 473cc", resp.Nombre)
	assert.Equal(t, "1500", resp.Precio.String())
}

func TestVentaInterna(t *testing.T) {
	p := cerveza()
	f := newPOSFixture(t, p)
	f.abrirCaja(t, 5000)
	ctx := context.Background()

	ventaSvc := NewVentaService(f.ventas, newFakeProductoRepo(p), f.caja, &config.Config{}, nil)
	resp, err := ventaSvc.VentaInterna(ctx, f.usuarioID, dto.VentaInternaRequest{
		Items: []dto.VentaInternaItem{{ProductoID: p.ID.String(), Cantidad: 3}},
		Monto: decimal.NewFromInt(2500),
		Pago:  "EFECTIVO",
	})
	require.NoError(t, err)
	assert.Equal(t, "interna", resp.Tipo)
	assert.Equal(t, "2500", resp.TotalGeneral.String())
	require.Len(t, resp.Items, 1)
	// List price kept as reference, not as the charged amount.
	assert.Equal(t, "1500", resp.Items[0].PrecioUnitario.String())
	require.Len(t, f.caja.movimientos, 1)
	assert.Equal(t, "2500", f.caja.movimientos[0].Monto.String())
}
