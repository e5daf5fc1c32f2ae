// Package docs registers the OpenAPI document served under /swagger.
//
// Regenerate with `swag init -g cmd/api/main.go` after changing controller annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["root"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "503": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/schools": {
            "get": {
                "description": "Returns one page of schools ordered by id. All filters are optional and combined with AND.",
                "produces": ["application/json"],
                "tags": ["schools"],
                "summary": "List schools",
                "parameters": [
                    {"type": "integer", "default": 0, "minimum": 0, "description": "Number of records to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "minimum": 1, "maximum": 500, "description": "Max number of records to return", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Exact school code, case-insensitive", "name": "code", "in": "query"},
                    {"type": "string", "description": "Two-letter country code, case-insensitive", "name": "country", "in": "query"},
                    {"enum": ["public", "private"], "type": "string", "description": "School type", "name": "type", "in": "query"},
                    {"type": "boolean", "description": "Only verified (true) or unverified (false) schools", "name": "verified", "in": "query"},
                    {"type": "string", "description": "Substring of name or code, case-insensitive", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Schools retrieved successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Creates a school together with its campuses and faculties in one transaction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schools"],
                "summary": "Create a school",
                "parameters": [
                    {"description": "School with nested campuses and faculties", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SchoolInput"}}
                ],
                "responses": {
                    "201": {"description": "School created successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Malformed body or validation failure", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "School id, school code or faculty id already exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/schools/{id}": {
            "get": {
                "description": "Returns the school with its campuses and faculties",
                "produces": ["application/json"],
                "tags": ["schools"],
                "summary": "Get school details",
                "parameters": [{"type": "string", "description": "School ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "School retrieved successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "School not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Overwrites every top-level field and replaces both child collections. The path id wins over the body id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schools"],
                "summary": "Update a school",
                "parameters": [
                    {"type": "string", "description": "School ID", "name": "id", "in": "path", "required": true},
                    {"description": "Full replacement record", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SchoolInput"}}
                ],
                "responses": {
                    "200": {"description": "School updated successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Malformed body or validation failure", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "School not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "School code or faculty id already exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Deletes the school and every campus and faculty it owns",
                "produces": ["application/json"],
                "tags": ["schools"],
                "summary": "Delete a school",
                "parameters": [{"type": "string", "description": "School ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "School deleted successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "School not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/schools/{id}/campuses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schools", "campuses"],
                "summary": "List campuses of a school",
                "parameters": [{"type": "string", "description": "School ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Campuses retrieved successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "School not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/schools/{id}/faculties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schools", "faculties"],
                "summary": "List faculties of a school",
                "parameters": [{"type": "string", "description": "School ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Faculties retrieved successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "School not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/faculties": {
            "get": {
                "description": "Returns one page of faculties ordered by id",
                "produces": ["application/json"],
                "tags": ["faculties"],
                "summary": "List faculties",
                "parameters": [
                    {"type": "integer", "default": 0, "minimum": 0, "description": "Number of records to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "minimum": 1, "maximum": 500, "description": "Max number of records to return", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Only faculties of this school", "name": "school_id", "in": "query"},
                    {"type": "string", "description": "Substring of name or code, case-insensitive", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Faculties retrieved successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/faculties/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["faculties"],
                "summary": "Get faculty details",
                "parameters": [{"type": "string", "description": "Faculty ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Faculty retrieved successfully", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Faculty not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string"},
                "data": {},
                "pagination": {"$ref": "#/definitions/dto.PaginationInfo"},
                "timestamp": {"type": "string", "example": "2025-04-23T12:01:05.123Z"}
            }
        },
        "dto.PaginationInfo": {
            "type": "object",
            "properties": {
                "skip": {"type": "integer", "example": 0},
                "limit": {"type": "integer", "example": 100},
                "total": {"type": "integer", "example": 42},
                "count": {"type": "integer", "example": 42}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "RES_001"},
                "message": {"type": "string"},
                "field": {"type": "string"},
                "severity": {"type": "string", "example": "ERROR"},
                "details": {}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string"}
            }
        },
        "models.Contact": {
            "type": "object",
            "properties": {
                "website": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "models.CampusInput": {
            "type": "object",
            "required": ["name", "address"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "address": {"type": "string"},
                "is_main": {"type": "boolean"}
            }
        },
        "models.FacultyInput": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
                "id": {"type": "string", "maxLength": 100},
                "name": {"type": "string", "maxLength": 255},
                "code": {"type": "string", "maxLength": 10},
                "website": {"type": "string", "maxLength": 500},
                "programs": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "verified": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.SchoolInput": {
            "type": "object",
            "required": ["id", "code", "name", "type"],
            "properties": {
                "id": {"type": "string", "maxLength": 100, "example": "hust"},
                "code": {"type": "string", "maxLength": 10, "example": "BKA"},
                "name": {"type": "string", "maxLength": 255},
                "logo_url": {"type": "string", "maxLength": 500},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["public", "private"]},
                "country": {"type": "string", "example": "VN"},
                "contact": {"$ref": "#/definitions/models.Contact"},
                "campuses": {"type": "array", "items": {"$ref": "#/definitions/models.CampusInput"}},
                "faculties": {"type": "array", "items": {"$ref": "#/definitions/models.FacultyInput"}},
                "metadata": {"$ref": "#/definitions/models.Metadata"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "School Directory API",
	Description:      "Directory of schools, their campuses and their faculties",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
