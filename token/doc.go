// Package token carries masks inside signed JWTs so that services can hand a flag set
// to each other without a shared store.
//
// The mask travels as its canonical byte encoding in the "mask" claim (base64 in the
// JSON payload) next to the flag-domain name in "dom". Verification checks signature,
// expiry, issuer and audience before any bit is decoded.
package token
