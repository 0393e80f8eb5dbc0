package service

import "errors"

// Expected business failures. Handlers map these to precise client-facing
// statuses; anything else is logged in full and surfaced as a generic 500.
var (
	ErrProductoNoEncontrado  = errors.New("producto no encontrado")
	ErrStockInsuficiente     = errors.New("stock insuficiente")
	ErrCheckoutVacio         = errors.New("el checkout no contiene items")
	ErrEmailRegistrado       = errors.New("el email ya esta registrado")
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrResetRequerido        = errors.New("debe restablecer su contraseña antes de iniciar sesion")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrTokenReset            = errors.New("token de reseteo invalido o expirado")
	ErrRangoInvalido         = errors.New("rango de fechas invalido")
)
