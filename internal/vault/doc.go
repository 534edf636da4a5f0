// Package vault implements the password layer: the AES-256-GCM envelope
// that wraps every persisted payload, the PBKDF2 verifier record used to
// check a password without decrypting, and the in-process rate limiter
// for failed unlock attempts.
//
// Decryption is deliberately silent about why it failed. A wrong
// password, a tampered ciphertext, and a malformed envelope all return
// nil, so callers cannot leak which one happened.
package vault
