// Package swagger embeds the REST API description served under /swagger/.
// The document is maintained by hand; keep it in step with the routes in
// pkg/core/api.
package swagger

import (
	"embed"
	"net/http"
)

//go:embed swagger.json
var swaggerFiles embed.FS

// GetSwaggerHandler returns an http.Handler that serves the embedded
// Swagger files.
func GetSwaggerHandler() http.Handler {
	return http.FileServer(http.FS(swaggerFiles))
}

// GetSwaggerJSON returns the swagger.json content as a byte slice.
func GetSwaggerJSON() ([]byte, error) {
	return swaggerFiles.ReadFile("swagger.json")
}
