package node

import "github.com/gin-gonic/gin"

// Node is a process component that exposes an HTTP surface.
type Node interface {
	NodeID() string
	Kind() string
	HTTPRouter() *gin.Engine
}
