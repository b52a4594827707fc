package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// RegisterSwaggerUI serves the API documentation under /swagger/. The UI reads
// the embedded OpenAPI document through the swag registry.
func RegisterSwaggerUI(e *echo.Echo, swagger *openapi3.T) error {
	doc, err := swagger.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(doc)})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
