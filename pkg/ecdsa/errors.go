package ecdsa

import "errors"

// Errors returned by key handling, signing and recovery.
var (
	ErrInvalidPrivateKey = errors.New("ecdsa: private key scalar out of range")
	ErrInvalidPublicKey  = errors.New("ecdsa: invalid public key")
	ErrInvalidSignature  = errors.New("ecdsa: invalid signature encoding")
	ErrRecoveryFailed    = errors.New("ecdsa: public key recovery failed")
	ErrNonceExhausted    = errors.New("ecdsa: nonce candidates exhausted")
)
