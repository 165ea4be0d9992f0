// Package pos implements the in-memory point-of-sale transaction engine:
// the cart with its wholesale pricing rule, the two-scan combo assembly
// state machine, and the multi-tender payment allocator. Everything here
// is pure state manipulation over decimal amounts — no I/O, no clock, no
// persistence — so the whole engine is testable without a harness.
package pos

import "errors"

// Every rejection either blocks the mutation entirely or leaves previously
// accepted state exactly as it was; none of these is ever swallowed into a
// default price or a skipped validation.
var (
	// ErrProductoNoEncontrado: the scanned code has no catalog match.
	ErrProductoNoEncontrado = errors.New("producto no encontrado")

	// ErrComboPasoInvalido: the scanned product does not fit the current
	// combo step (wrong category or bottle format). The combo state is
	// preserved so the operator can re-scan.
	ErrComboPasoInvalido = errors.New("producto no válido para el combo")

	// ErrMontoInvalido: a zero or negative amount where a positive one is
	// required, or a negative opening/closing count.
	ErrMontoInvalido = errors.New("monto inválido")

	// ErrMotivoRequerido: a manual drawer movement without a reason.
	ErrMotivoRequerido = errors.New("debe indicar un motivo")

	// ErrPagoExcedeExento: electronic instruments may never fund exempt
	// goods — the non-cash sum is capped at the taxed total.
	ErrPagoExcedeExento = errors.New("los productos exentos solo se pagan con efectivo o giro")

	// ErrSobrepago: a non-cash payment above the remaining balance.
	ErrSobrepago = errors.New("el monto excede el saldo restante")

	// ErrSaldoPendiente: finalize attempted with a nonzero remaining balance.
	ErrSaldoPendiente = errors.New("aún queda saldo pendiente")

	// ErrPagoEnCurso: cart mutation attempted after payment entry started.
	ErrPagoEnCurso = errors.New("hay un pago en curso; anule los pagos para modificar el carrito")

	// ErrCarritoVacio: payment or finalize attempted on an empty cart.
	ErrCarritoVacio = errors.New("no hay productos en el carrito")

	// ErrLineaInvalida: a cart line index out of range.
	ErrLineaInvalida = errors.New("línea de carrito inexistente")

	// ErrCajaYaAbierta / ErrCajaCerrada: drawer state machine violations.
	ErrCajaYaAbierta = errors.New("ya existe una caja abierta")
	ErrCajaCerrada   = errors.New("no hay caja abierta")
)
