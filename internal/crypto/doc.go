// Package crypto exposes the minimal primitives used by xprlink.
//
// Contents
//
//   - Ed25519 request-key generation, signing and verification
//     (GenerateEd25519, SignEd25519, VerifyEd25519)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Request keys only authenticate the client to the wallet over the relay.
// Chain signatures are produced by the wallet and never touch this package.
package crypto
