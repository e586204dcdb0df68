// Package account implements credential verification and the session
// token lifecycle: issue on registration or login, verify on every
// request, revoke on logout.
//
// A token is a signed statement that a given user id may act with the
// auth access label. The signature alone can never be the whole
// answer: once signed, a token stays cryptographically valid forever,
// so revocation cannot be expressed through signatures. The user
// document therefore keeps the list of live tokens, and verification
// demands both an intact signature and membership in that list.
// Logout is nothing more than removing one entry from it.
//
// Tokens carry no expiry, matching the data already out there in
// existing stores. Rotating the signing secret invalidates every
// outstanding session at once, which is the recovery lever if a
// secret ever leaks.
package account
