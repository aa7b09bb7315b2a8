package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// NewEngine returns a gin engine with recovery, request IDs and access
// logging installed. X-Forwarded-For is only honoured when the peer is one of
// trustedProxies; with none, ClientIP is the peer address.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	return r, nil
}
