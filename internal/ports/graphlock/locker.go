package graphlock

import "context"

// Locker serializa las mutaciones de aristas padre-hijo (locales y cross-tenant).
// Quien agrega una arista valida slot y aciclicidad y escribe sin soltar el lock.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}
