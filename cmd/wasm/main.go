//go:build js && wasm

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-affine-ecdsa/internal/crypto/curves"
	"github.com/smallyu/go-affine-ecdsa/pkg/ecdsa"
)

// One scheme serves all calls; keys travel as hex strings so the JS
// side never handles big integers.
var scheme = ecdsa.NewScheme(curves.Secp256k1())

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Go affine-ECDSA WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoECDSA", map[string]interface{}{
		"GenerateKey": js.FuncOf(GenerateKey),
		"Sign":        js.FuncOf(Sign),
		"Verify":      js.FuncOf(Verify),
		"Recover":     js.FuncOf(Recover),
	})

	<-c
}

// GenerateKey creates a fresh key pair.
// Returns:
// JSON {"privateKey": hex, "publicKey": hex} or an error string
func GenerateKey(this js.Value, args []js.Value) interface{} {
	priv, err := scheme.GenerateKey()
	if err != nil {
		return fmt.Sprintf("error: key generation failed: %v", err)
	}

	resp := map[string]interface{}{
		"privateKey": hex.EncodeToString(scheme.SerializePrivateKey(priv)),
		"publicKey":  hex.EncodeToString(scheme.SerializePublicKeyCompressed(&priv.PublicKey)),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// Sign signs a message.
// Arguments:
// 0: private key (hex)
// 1: message (hex)
// Returns:
// JSON {"signature": hex, "recoveryCode": int} or an error string
func Sign(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (privateKeyHex, messageHex)"
	}

	priv, err := parsePrivateKeyHex(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	message, err := hex.DecodeString(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: invalid message hex: %v", err)
	}

	sig, err := scheme.Sign(priv, message)
	if err != nil {
		return fmt.Sprintf("error: signing failed: %v", err)
	}

	resp := map[string]interface{}{
		"signature":    hex.EncodeToString(scheme.SerializeSignature(sig)),
		"recoveryCode": sig.RecID,
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// Verify checks a signature.
// Arguments:
// 0: public key (hex)
// 1: message (hex)
// 2: signature (hex)
// Returns:
// bool, or an error string when the inputs cannot be decoded
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (publicKeyHex, messageHex, signatureHex)"
	}

	pubBytes, err := hex.DecodeString(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: invalid public key hex: %v", err)
	}
	pub, err := scheme.ParsePublicKey(pubBytes)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	message, err := hex.DecodeString(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: invalid message hex: %v", err)
	}
	sig, err := parseSignatureHex(args[2].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	return scheme.Verify(pub, message, sig)
}

// Recover derives the signer's public key from a signature.
// Arguments:
// 0: message (hex)
// 1: signature (hex)
// 2: recovery code (int)
// Returns:
// public key hex (compressed) or an error string
func Recover(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (messageHex, signatureHex, recoveryCode)"
	}

	message, err := hex.DecodeString(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: invalid message hex: %v", err)
	}
	sig, err := parseSignatureHex(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	sig.RecID = args[2].Int()

	pub, err := scheme.RecoverPublicKey(message, sig)
	if err != nil {
		return fmt.Sprintf("error: recovery failed: %v", err)
	}
	return hex.EncodeToString(scheme.SerializePublicKeyCompressed(pub))
}

// Helpers

func parsePrivateKeyHex(s string) (*ecdsa.PrivateKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	return scheme.ParsePrivateKey(raw)
}

func parseSignatureHex(s string) (*ecdsa.Signature, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid signature hex: %w", err)
	}
	return scheme.ParseSignature(raw)
}
