//go:build !swagger

package bootstrap

import "github.com/gin-gonic/gin"

const swaggerEnabled = false

// setupSwagger is a no-op unless built with -tags swagger after running
// swag init.
func setupSwagger(*gin.Engine) {}
