// Package i defines the contracts HTTP controllers implement.
package i

import "github.com/gin-gonic/gin"

// Controller registers its routes on the public and the authenticated groups.
type Controller interface {
	// RegisterPublic registers routes open to anyone.
	RegisterPublic(*gin.RouterGroup)
	// RegisterProtected registers routes behind the authorization middleware.
	RegisterProtected(*gin.RouterGroup)
}
