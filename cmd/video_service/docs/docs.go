// Package docs swag 文件, 由 `swag init -g internal/api/router/router.go -o cmd/video_service/docs` 重新產生
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
    "paths": {
        "/": {
            "get": {
                "tags": ["Shared"],
                "summary": "Check service status",
                "responses": {"200": {"description": "video service start!", "schema": {"type": "string"}}}
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "registration closed"}, "409": {"description": "email or username taken"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user profile",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Update own profile",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/users/{id}/follow": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Follow user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Unfollow user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos": {
            "get": {
                "tags": ["Videos"],
                "summary": "List videos",
                "parameters": [
                    {"type": "string", "name": "scope", "in": "query"},
                    {"type": "string", "name": "userId", "in": "query"},
                    {"type": "boolean", "name": "following", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Videos"],
                "summary": "Create video",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/videos/{id}": {
            "get": {
                "tags": ["Videos"],
                "summary": "Get video",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Videos"],
                "summary": "Update video",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Videos"],
                "summary": "Delete video",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/videos/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interactions"],
                "summary": "Like video",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "already liked"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interactions"],
                "summary": "Unlike video",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/videos/{id}/comments": {
            "get": {
                "tags": ["Interactions"],
                "summary": "List comments",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interactions"],
                "summary": "Create comment",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "comments disabled"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/comments/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interactions"],
                "summary": "Delete comment",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/upload/video": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["Videos"],
                "summary": "Upload video file",
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Short Video Service API",
	Description:      "API documentation for Short Video Service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
