package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"paraisopos/internal/dto"
	"paraisopos/internal/model"
	"paraisopos/internal/pos"
	"paraisopos/internal/repository"
)

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

// ── In-memory CajaRepository ─────────────────────────────────────────────────

type fakeCajaRepo struct {
	sesiones    map[uuid.UUID]*model.SesionCaja
	movimientos []model.MovimientoCaja
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *fakeCajaRepo) CreateSesion(_ context.Context, s *model.SesionCaja) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) FindSesionAbierta(_ context.Context) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.Estado == "abierta" {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeCajaRepo) UpdateSesion(_ context.Context, s *model.SesionCaja) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	return r.CreateMovimiento(context.Background(), m)
}

func (r *fakeCajaRepo) ListMovimientos(_ context.Context, sesionID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.SesionCajaID == sesionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeCajaRepo) ListCerradas(_ context.Context, _, _ int) ([]model.SesionCaja, int64, error) {
	var out []model.SesionCaja
	for _, s := range r.sesiones {
		if s.Estado == "cerrada" {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestAbrirCaja(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())

	resp, err := svc.Abrir(context.Background(), uuid.New(), decimal.NewFromInt(10000))
	require.NoError(t, err)
	assert.Equal(t, "abierta", resp.Estado)
	assert.Equal(t, "10000", resp.MontoInicial.String())
	assert.Equal(t, "10000", resp.EfectivoEsperado.String())
}

func TestAbrirCajaDuplicada(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	ctx := context.Background()

	_, err := svc.Abrir(ctx, uuid.New(), decimal.NewFromInt(5000))
	require.NoError(t, err)

	_, err = svc.Abrir(ctx, uuid.New(), decimal.NewFromInt(5000))
	assert.ErrorIs(t, err, pos.ErrCajaYaAbierta)
}

func TestAbrirCajaMontoNegativo(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	_, err := svc.Abrir(context.Background(), uuid.New(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, pos.ErrMontoInvalido)
}

func TestMovimientoSinCaja(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())

	err := svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: decimal.NewFromInt(500), Motivo: "cambio",
	})
	assert.ErrorIs(t, err, pos.ErrCajaCerrada)
}

func TestMovimientoValidaciones(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	ctx := context.Background()
	usuario := uuid.New()
	_, err := svc.Abrir(ctx, usuario, decimal.NewFromInt(1000))
	require.NoError(t, err)

	err = svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: decimal.Zero, Motivo: "pago proveedor",
	})
	assert.ErrorIs(t, err, pos.ErrMontoInvalido)

	err = svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: decimal.NewFromInt(100), Motivo: "   ",
	})
	assert.ErrorIs(t, err, pos.ErrMotivoRequerido)
}

func TestEfectivoEsperadoDerivado(t *testing.T) {
	repo := newFakeCajaRepo()
	svc := NewCajaService(repo)
	ctx := context.Background()
	usuario := uuid.New()

	_, err := svc.Abrir(ctx, usuario, decimal.NewFromInt(10000))
	require.NoError(t, err)

	require.NoError(t, svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: decimal.NewFromInt(5000), Motivo: "sencillo",
	}))
	require.NoError(t, svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: decimal.NewFromInt(2000), Motivo: "hielo proveedor",
	}))

	// A card sale feeds digital, not the drawer.
	sesion, err := svc.SesionAbierta(ctx)
	require.NoError(t, err)
	debito := "DEBITO"
	require.NoError(t, repo.CreateMovimiento(ctx, &model.MovimientoCaja{
		SesionCajaID: sesion.ID, Tipo: "venta", Metodo: &debito,
		Monto: decimal.NewFromInt(7000), UsuarioID: usuario,
	}))
	efectivo := "EFECTIVO"
	require.NoError(t, repo.CreateMovimiento(ctx, &model.MovimientoCaja{
		SesionCajaID: sesion.ID, Tipo: "venta", Metodo: &efectivo,
		Monto: decimal.NewFromInt(3000), UsuarioID: usuario,
	}))

	estado, err := svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3000", estado.VentasEfectivo.String())
	assert.Equal(t, "7000", estado.VentasDigital.String())
	// 10000 + 3000 + 5000 - 2000
	assert.Equal(t, "16000", estado.EfectivoEsperado.String())
}

func TestCerrarCajaCalculaDiferencia(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	ctx := context.Background()
	usuario := uuid.New()

	_, err := svc.Abrir(ctx, usuario, decimal.NewFromInt(10000))
	require.NoError(t, err)
	require.NoError(t, svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: decimal.NewFromInt(5000), Motivo: "sencillo",
	}))
	require.NoError(t, svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: decimal.NewFromInt(2000), Motivo: "proveedor",
	}))

	cierre, err := svc.Cerrar(ctx, usuario, decimal.NewFromInt(12500))
	require.NoError(t, err)
	assert.Equal(t, "13000", cierre.MontoEsperado.String())
	assert.Equal(t, "-500", cierre.Diferencia.String())

	// The drawer is closed now: everything downstream rejects.
	_, err = svc.Cerrar(ctx, usuario, decimal.NewFromInt(12500))
	assert.ErrorIs(t, err, pos.ErrCajaCerrada)
	_, err = svc.SesionAbierta(ctx)
	assert.ErrorIs(t, err, pos.ErrCajaCerrada)

	estado, err := svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cerrada", estado.Estado)
}

func TestCierreExactoSinDiferencia(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	ctx := context.Background()
	usuario := uuid.New()

	_, err := svc.Abrir(ctx, usuario, decimal.NewFromInt(8000))
	require.NoError(t, err)

	cierre, err := svc.Cerrar(ctx, usuario, decimal.NewFromInt(8000))
	require.NoError(t, err)
	assert.True(t, cierre.Diferencia.IsZero())
}
