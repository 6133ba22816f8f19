package service

import "errors"

var (
	ErrInvalidCandidate    = errors.New("invalid participant details")
	ErrItemNotOpen         = errors.New("item is not open for registration")
	ErrItemFree            = errors.New("item has no registration fee")
	ErrItemNotFree         = errors.New("item requires payment")
	ErrInvalidSignature    = errors.New("payment signature verification failed")
	ErrPaymentNotSettled   = errors.New("payment is not settled at the gateway")
	ErrInvalidCredentials  = errors.New("invalid admin credentials")
	ErrUnsupportedResource = errors.New("unsupported legacy resource")
)
