package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"paraisopos/internal/dto"
	"paraisopos/internal/model"
	"paraisopos/internal/pos"
	"paraisopos/internal/repository"
)

// CajaService runs the drawer state machine: a strict abierta↔cerrada
// alternation with an immutable movement ledger in between.
type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, montoInicial decimal.Decimal) (*dto.EstadoCajaResponse, error)
	Estado(ctx context.Context) (*dto.EstadoCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoManualRequest) error
	Cerrar(ctx context.Context, usuarioID uuid.UUID, montoContado decimal.Decimal) (*dto.CierreCajaResponse, error)
	Historial(ctx context.Context, page, limit int) ([]dto.CierreCajaResponse, int64, error)
	// SesionAbierta is used by the sale flow to attach sale movements.
	SesionAbierta(ctx context.Context) (*model.SesionCaja, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, montoInicial decimal.Decimal) (*dto.EstadoCajaResponse, error) {
	if montoInicial.IsNegative() {
		return nil, pos.ErrMontoInvalido
	}
	if _, err := s.repo.FindSesionAbierta(ctx); err == nil {
		return nil, pos.ErrCajaYaAbierta
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sesion := &model.SesionCaja{
		UsuarioID:    usuarioID,
		MontoInicial: montoInicial,
		Estado:       "abierta",
		OpenedAt:     time.Now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}
	return s.buildEstado(ctx, sesion)
}

// ── Estado ────────────────────────────────────────────────────────────────────

func (s *cajaService) Estado(ctx context.Context) (*dto.EstadoCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.EstadoCajaResponse{Estado: "cerrada"}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.buildEstado(ctx, sesion)
}

func (s *cajaService) SesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pos.ErrCajaCerrada
	}
	if err != nil {
		return nil, err
	}
	return sesion, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Manual ingreso/egreso. Movements are immutable — there is no update or
// delete path. Sale movements go through the sale transaction, never here.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoManualRequest) error {
	if !req.Monto.IsPositive() {
		return pos.ErrMontoInvalido
	}
	if strings.TrimSpace(req.Motivo) == "" {
		return pos.ErrMotivoRequerido
	}
	sesion, err := s.SesionAbierta(ctx)
	if err != nil {
		return err
	}
	mov := &model.MovimientoCaja{
		SesionCajaID: sesion.ID,
		Tipo:         req.Tipo,
		Monto:        req.Monto,
		Motivo:       req.Motivo,
		UsuarioID:    usuarioID,
	}
	return s.repo.CreateMovimiento(ctx, mov)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Arqueo: the operator counts the drawer, the system derives the expected
// amount from the ledger, and the difference is archived with the session.

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, montoContado decimal.Decimal) (*dto.CierreCajaResponse, error) {
	if montoContado.IsNegative() {
		return nil, pos.ErrMontoInvalido
	}
	sesion, err := s.SesionAbierta(ctx)
	if err != nil {
		return nil, err
	}

	movs, err := s.repo.ListMovimientos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	totales := sumarMovimientos(movs)
	esperado := efectivoEsperado(sesion.MontoInicial, totales)
	diferencia := montoContado.Sub(esperado)

	now := time.Now()
	sesion.Estado = "cerrada"
	sesion.ClosedAt = &now
	sesion.VentasEfectivo = &totales.VentasEfectivo
	sesion.VentasDigital = &totales.VentasDigital
	sesion.TotalIngresos = &totales.Ingresos
	sesion.TotalEgresos = &totales.Egresos
	sesion.MontoEsperado = &esperado
	sesion.MontoContado = &montoContado
	sesion.Diferencia = &diferencia

	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	return cierreToResponse(sesion), nil
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.CierreCajaResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	sesiones, total, err := s.repo.ListCerradas(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.CierreCajaResponse, 0, len(sesiones))
	for i := range sesiones {
		out = append(out, *cierreToResponse(&sesiones[i]))
	}
	return out, total, nil
}

// ── Derivaciones ──────────────────────────────────────────────────────────────
// Expected cash is a pure function over the ledger, recomputed on demand.
// Egresos are stored positive; the sign lives here.

type totalesCaja struct {
	VentasEfectivo decimal.Decimal
	VentasDigital  decimal.Decimal
	Ingresos       decimal.Decimal
	Egresos        decimal.Decimal
}

func sumarMovimientos(movs []model.MovimientoCaja) totalesCaja {
	t := totalesCaja{
		VentasEfectivo: decimal.Zero,
		VentasDigital:  decimal.Zero,
		Ingresos:       decimal.Zero,
		Egresos:        decimal.Zero,
	}
	for _, m := range movs {
		switch m.Tipo {
		case "venta":
			if m.Metodo != nil && pos.MetodoPago(*m.Metodo).EsEfectivo() {
				t.VentasEfectivo = t.VentasEfectivo.Add(m.Monto)
			} else {
				t.VentasDigital = t.VentasDigital.Add(m.Monto)
			}
		case "ingreso":
			t.Ingresos = t.Ingresos.Add(m.Monto)
		case "egreso":
			t.Egresos = t.Egresos.Add(m.Monto)
		}
	}
	return t
}

func efectivoEsperado(montoInicial decimal.Decimal, t totalesCaja) decimal.Decimal {
	return montoInicial.Add(t.VentasEfectivo).Add(t.Ingresos).Sub(t.Egresos)
}

func (s *cajaService) buildEstado(ctx context.Context, sesion *model.SesionCaja) (*dto.EstadoCajaResponse, error) {
	movs, err := s.repo.ListMovimientos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	totales := sumarMovimientos(movs)

	resp := &dto.EstadoCajaResponse{
		Estado:           sesion.Estado,
		SesionID:         sesion.ID.String(),
		MontoInicial:     sesion.MontoInicial,
		VentasEfectivo:   totales.VentasEfectivo,
		VentasDigital:    totales.VentasDigital,
		TotalIngresos:    totales.Ingresos,
		TotalEgresos:     totales.Egresos,
		EfectivoEsperado: efectivoEsperado(sesion.MontoInicial, totales),
		OpenedAt:         sesion.OpenedAt.Format(time.RFC3339),
	}
	for _, m := range movs {
		resp.Movimientos = append(resp.Movimientos, dto.MovimientoResponse{
			Tipo:      m.Tipo,
			Metodo:    m.Metodo,
			Monto:     m.Monto,
			Motivo:    m.Motivo,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func cierreToResponse(sesion *model.SesionCaja) *dto.CierreCajaResponse {
	resp := &dto.CierreCajaResponse{
		SesionID:     sesion.ID.String(),
		MontoInicial: sesion.MontoInicial,
	}
	if sesion.VentasEfectivo != nil {
		resp.VentasEfectivo = *sesion.VentasEfectivo
	}
	if sesion.VentasDigital != nil {
		resp.VentasDigital = *sesion.VentasDigital
	}
	if sesion.TotalIngresos != nil {
		resp.TotalIngresos = *sesion.TotalIngresos
	}
	if sesion.TotalEgresos != nil {
		resp.TotalEgresos = *sesion.TotalEgresos
	}
	if sesion.MontoEsperado != nil {
		resp.MontoEsperado = *sesion.MontoEsperado
	}
	if sesion.MontoContado != nil {
		resp.MontoContado = *sesion.MontoContado
	}
	if sesion.Diferencia != nil {
		resp.Diferencia = *sesion.Diferencia
	}
	if sesion.ClosedAt != nil {
		resp.ClosedAt = sesion.ClosedAt.Format(time.RFC3339)
	}
	return resp
}
