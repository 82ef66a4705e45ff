package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

const (
	principalKey = "principal"
	rawTokenKey  = "raw_token"
)

// SetPrincipal stores the resolved principal on the request context. The
// snapshot lives for this request only.
func SetPrincipal(c *gin.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the resolved principal, or nil when the request is
// unauthenticated.
func PrincipalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, ok := v.(*domain.Principal)
	if !ok {
		return nil
	}
	return p
}

// SetRawToken stores the bearer token the principal was resolved from, for
// handlers that need to act on the token itself.
func SetRawToken(c *gin.Context, raw string) {
	c.Set(rawTokenKey, raw)
}

// RawTokenFrom returns the bearer token of the current request, if any.
func RawTokenFrom(c *gin.Context) string {
	v, ok := c.Get(rawTokenKey)
	if !ok {
		return ""
	}
	raw, _ := v.(string)
	return raw
}
