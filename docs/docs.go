// Package docs registers the OpenAPI description served at /api/swagger.
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
        "ApiKeyAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "api-key"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/medias": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["medias"],
                "summary": "Upload tweet media",
                "parameters": [
                    {"type": "file", "description": "Image file (png, jpg, jpeg, gif)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.MediaCreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/tweets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tweets"],
                "summary": "Home feed",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.FeedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tweets"],
                "summary": "Post a tweet",
                "parameters": [
                    {"description": "Tweet", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CreateTweetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.TweetCreatedResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/tweets/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["tweets"],
                "summary": "Delete own tweet",
                "parameters": [
                    {"type": "integer", "description": "Tweet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ResultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "423": {"description": "Locked", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/tweets/{id}/likes": {
            "post": {
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Like a tweet",
                "parameters": [
                    {"type": "integer", "description": "Tweet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.ResultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "423": {"description": "Locked", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Remove a like",
                "parameters": [
                    {"type": "integer", "description": "Tweet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ResultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "423": {"description": "Locked", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/me/avatar": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Replace avatar",
                "parameters": [
                    {"type": "file", "description": "Image file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.AvatarResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User profile",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.UserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/follow": {
            "post": {
                "produces": ["application/json"],
                "tags": ["follows"],
                "summary": "Follow a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.ResultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "423": {"description": "Locked", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["follows"],
                "summary": "Unfollow a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ResultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "boolean"},
                "error_type": {"type": "string"},
                "error_message": {"type": "string"}
            }
        },
        "server.ResultResponse": {
            "type": "object",
            "properties": {"result": {"type": "boolean"}}
        },
        "server.UserRef": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "server.LikeRef": {
            "type": "object",
            "properties": {"user_id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "server.TweetResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "content": {"type": "string"},
                "author": {"$ref": "#/definitions/server.UserRef"},
                "likes": {"type": "array", "items": {"$ref": "#/definitions/server.LikeRef"}},
                "attachments": {"type": "array", "items": {"type": "string"}}
            }
        },
        "server.FeedResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "boolean"},
                "tweets": {"type": "array", "items": {"$ref": "#/definitions/server.TweetResponse"}}
            }
        },
        "server.UserProfile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "following": {"type": "array", "items": {"$ref": "#/definitions/server.UserRef"}},
                "followers": {"type": "array", "items": {"$ref": "#/definitions/server.UserRef"}}
            }
        },
        "server.UserResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "boolean"},
                "user": {"$ref": "#/definitions/server.UserProfile"}
            }
        },
        "server.CreateTweetRequest": {
            "type": "object",
            "properties": {
                "tweet_data": {"type": "string"},
                "tweet_media_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "server.TweetCreatedResponse": {
            "type": "object",
            "properties": {"result": {"type": "boolean"}, "tweet_id": {"type": "integer"}}
        },
        "server.MediaCreatedResponse": {
            "type": "object",
            "properties": {"result": {"type": "boolean"}, "media_id": {"type": "integer"}}
        },
        "server.AvatarResponse": {
            "type": "object",
            "properties": {"result": {"type": "boolean"}, "avatar": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Microblog API",
	Description:      "Tweets, follows, likes and media for a small social network.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
