// Package docs registra la descripción OpenAPI de la API para swag y el visor /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/register": {
            "post": {"tags": ["auth"], "summary": "Registrar usuario", "description": "El primer usuario de la empresa queda como admin; los siguientes solo como sales.", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/companies": {
            "get": {"tags": ["companies"], "summary": "Listar empresas", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["companies"], "summary": "Crear empresa", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/companies/{companyId}": {
            "get": {"tags": ["companies"], "summary": "Obtener empresa", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["companies"], "summary": "Actualizar empresa", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/me": {
            "get": {"tags": ["users"], "summary": "Usuario de la sesión", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/companies/{companyId}/users": {
            "get": {"tags": ["users"], "summary": "Listar usuarios de la empresa", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"tags": ["users"], "summary": "Crear usuario de la empresa", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}
        },
        "/api/companies/{companyId}/customers": {
            "get": {"tags": ["customers"], "summary": "Listar clientes", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["customers"], "summary": "Crear cliente", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/companies/{companyId}/products": {
            "get": {"tags": ["products"], "summary": "Listar productos", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["products"], "summary": "Crear producto", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/companies/{companyId}/options": {
            "get": {"tags": ["reference"], "summary": "Tarifas GST, estados y estados de documento", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "kind", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/companies/{companyId}/documents/calculate": {
            "post": {"tags": ["documents"], "summary": "Recalcular líneas y totales", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/companies/{companyId}/documents/place-of-supply": {
            "post": {"tags": ["documents"], "summary": "Cambiar lugar de suministro", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/companies/{companyId}/documents/edit-item": {
            "post": {"tags": ["documents"], "summary": "Editar un campo de una línea", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/companies/{companyId}/documents/{id}": {
            "get": {"tags": ["documents"], "summary": "Obtener documento", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/companies/{companyId}/documents/{id}/status": {
            "patch": {"tags": ["documents"], "summary": "Cambiar estado", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/api/companies/{companyId}/documents/{id}/convert": {
            "post": {"tags": ["documents"], "summary": "Convertir al siguiente documento", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/api/companies/{companyId}/documents/{id}/pdf": {
            "get": {"tags": ["documents"], "summary": "Descargar PDF", "produces": ["application/pdf"], "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/companies/{companyId}/invoices": {
            "get": {"tags": ["documents"], "summary": "Registro de facturas", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["documents"], "summary": "Enviar factura", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/api/companies/{companyId}/invoices/export/register": {
            "get": {"tags": ["exports"], "summary": "Registro de facturas en Excel", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}, {"name": "status", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/companies/{companyId}/invoices/export/tally": {
            "get": {"tags": ["exports"], "summary": "Comprobantes Tally XML", "security": [{"BearerAuth": []}], "parameters": [{"name": "companyId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo metadatos exportados de la API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Facturación GST API",
	Description:      "Facturas, cotizaciones, órdenes y devoluciones con cálculo GST (CGST/SGST/IGST).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
