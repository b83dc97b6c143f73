// Package auth holds the authentication contracts errguard middleware
// depends on, with focused subpackages:
//
//   - auth/jwt      HMAC JWT issuing and verification
//   - auth/password bcrypt credential hashing
//   - auth/authctx  request context propagation for claims
//
// Every verification failure surfaces as an UnauthorizedError, so a
// wrapped handler renders it as a 401 envelope without extra mapping.
//
//	auth:
//	  enabled: true
//	  jwt:
//	    secret: "my-secret"
//	    access_token_ttl: "15m"
package auth
