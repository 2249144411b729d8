// Package docs registers the OpenAPI document served at /swagger-doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "in": "header", "name": "Cookie"}
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
            "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
            "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Logout", "responses": {"204": {"description": "No Content"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"CookieAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}, "401": {"description": "Unauthorized"}}}},
        "/todos": {
            "get": {"tags": ["todos"], "summary": "List todos", "security": [{"CookieAuth": []}],
                "parameters": [{"in": "query", "name": "filter", "type": "string", "enum": ["all", "active", "completed"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTodosResponse"}}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["todos"], "summary": "Create a todo", "security": [{"CookieAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTodoRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreateTodoResponse"}}, "400": {"description": "Bad Request"}}}
        },
        "/todos/search": {"get": {"tags": ["todos"], "summary": "Search todos by query", "security": [{"CookieAuth": []}],
            "parameters": [{"in": "query", "name": "q", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTodosResponse"}}}}},
        "/todos/overdue": {"get": {"tags": ["todos"], "summary": "List overdue todos", "security": [{"CookieAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTodosResponse"}}}}},
        "/todos/stats": {"get": {"tags": ["todos"], "summary": "Todo counts by state and quadrant", "security": [{"CookieAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatsResponse"}}}}},
        "/todos/auto-categorize": {"post": {"tags": ["todos"], "summary": "Classify every uncategorized todo", "security": [{"CookieAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AutoCategorizeResponse"}}}}},
        "/todos/{id}": {
            "get": {"tags": ["todos"], "summary": "Get a todo by ID", "security": [{"CookieAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["todos"], "summary": "Update a todo", "security": [{"CookieAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTodoRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["todos"], "summary": "Update a todo", "security": [{"CookieAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTodoRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["todos"], "summary": "Delete a todo", "security": [{"CookieAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/todos/{id}/complete": {"post": {"tags": ["todos"], "summary": "Mark a todo as done", "security": [{"CookieAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}}, "404": {"description": "Not Found"}}}},
        "/ai/categorize": {"post": {"tags": ["ai"], "summary": "Suggest a category and priority", "security": [{"CookieAuth": []}],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CategorizeRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategorySuggestionResponse"}}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}},
        "/ai/matrix-categorize": {"post": {"tags": ["ai"], "summary": "Suggest an Eisenhower quadrant", "security": [{"CookieAuth": []}],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CategorizeRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SuggestionResponse"}}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}}
    },
    "definitions": {
        "dto.LoginRequest": {"type": "object", "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "dto.RegisterRequest": {"type": "object", "required": ["username", "password"],
            "properties": {"username": {"type": "string", "maxLength": 120}, "password": {"type": "string", "minLength": 8, "maxLength": 72}}},
        "dto.UserResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}}},
        "dto.CreateTodoRequest": {"type": "object", "required": ["title"], "properties": {
            "title": {"type": "string", "maxLength": 120}, "description": {"type": "string", "maxLength": 1000},
            "priority": {"type": "integer", "minimum": 1, "maximum": 3}, "category": {"type": "string"},
            "urgency": {"type": "integer", "minimum": 1, "maximum": 3}, "importance": {"type": "integer", "minimum": 1, "maximum": 3},
            "quadrant": {"type": "string", "enum": ["do_first", "schedule", "delegate", "do_later"]},
            "due_date": {"type": "string", "example": "2026-02-19"}, "skip_ai": {"type": "boolean"}}},
        "dto.UpdateTodoRequest": {"type": "object", "properties": {
            "title": {"type": "string", "maxLength": 120}, "description": {"type": "string", "maxLength": 1000},
            "completed": {"type": "boolean"}, "priority": {"type": "integer", "minimum": 1, "maximum": 3},
            "category": {"type": "string"}, "urgency": {"type": "integer", "minimum": 1, "maximum": 3},
            "importance": {"type": "integer", "minimum": 1, "maximum": 3},
            "quadrant": {"type": "string", "enum": ["do_first", "schedule", "delegate", "do_later"]},
            "due_date": {"type": "string"}}},
        "dto.TodoResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"},
            "completed": {"type": "boolean"}, "priority": {"type": "integer"}, "category": {"type": "string"},
            "urgency": {"type": "integer"}, "importance": {"type": "integer"}, "quadrant": {"type": "string"},
            "due_date": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "dto.ListTodosResponse": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/dto.TodoResponse"}}}},
        "dto.CreateTodoResponse": {"type": "object", "properties": {
            "todo": {"$ref": "#/definitions/dto.TodoResponse"}, "ai_suggestion": {"$ref": "#/definitions/dto.SuggestionResponse"}}},
        "dto.AutoCategorizeResponse": {"type": "object", "properties": {
            "updated": {"type": "array", "items": {"$ref": "#/definitions/dto.TodoResponse"}},
            "failed": {"type": "array", "items": {"type": "string"}},
            "updated_count": {"type": "integer"}, "failed_count": {"type": "integer"}}},
        "dto.StatsResponse": {"type": "object", "properties": {
            "total": {"type": "integer"}, "completed": {"type": "integer"}, "active": {"type": "integer"},
            "uncategorized": {"type": "integer"}, "do_first": {"type": "integer"}, "schedule": {"type": "integer"},
            "delegate": {"type": "integer"}, "do_later": {"type": "integer"}}},
        "dto.CategorizeRequest": {"type": "object", "required": ["title"], "properties": {
            "title": {"type": "string"}, "description": {"type": "string"}, "due_date": {"type": "string"}}},
        "dto.SuggestionResponse": {"type": "object", "properties": {
            "category": {"type": "string"}, "urgency": {"type": "integer"}, "importance": {"type": "integer"},
            "quadrant": {"type": "string"}, "priority": {"type": "integer"}, "reasoning": {"type": "string"}}},
        "dto.CategorySuggestionResponse": {"type": "object", "properties": {
            "category": {"type": "string"}, "priority": {"type": "integer"}, "reasoning": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TaskFlow API",
	Description:      "Todos with Eisenhower matrix categorization.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
