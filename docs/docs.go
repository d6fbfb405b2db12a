// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
		"/api/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a user and organization",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Log in",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/auth/password": {
			"put": {
				"tags": [
					"auth"
				],
				"summary": "Change password",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/users/profile": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Get own profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"users"
				],
				"summary": "Update own profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/users/onboarding": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Complete onboarding",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "List organization users",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "role",
						"in": "query",
						"required": false
					}
				],
				"description": "Admin only"
			}
		},
		"/api/users/{id}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Get user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"description": "Admin only"
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Delete user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"description": "Admin only"
			}
		},
		"/api/users/{id}/admin": {
			"put": {
				"tags": [
					"users"
				],
				"summary": "Grant or revoke admin",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"description": "Admin only"
			}
		},
		"/api/projects": {
			"get": {
				"tags": [
					"projects"
				],
				"summary": "List projects",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"name": "page",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					}
				]
			},
			"post": {
				"tags": [
					"projects"
				],
				"summary": "Create project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/projects/{id}": {
			"get": {
				"tags": [
					"projects"
				],
				"summary": "Get project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"projects"
				],
				"summary": "Replace project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"projects"
				],
				"summary": "Delete project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/resources": {
			"get": {
				"tags": [
					"resources"
				],
				"summary": "List resources",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"name": "page",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					}
				]
			},
			"post": {
				"tags": [
					"resources"
				],
				"summary": "Create resource",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/resources/{id}": {
			"get": {
				"tags": [
					"resources"
				],
				"summary": "Get resource",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"resources"
				],
				"summary": "Replace resource",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"resources"
				],
				"summary": "Delete resource",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/tasks": {
			"get": {
				"tags": [
					"tasks"
				],
				"summary": "List tasks",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"name": "page",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					}
				]
			},
			"post": {
				"tags": [
					"tasks"
				],
				"summary": "Create task",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/tasks/{id}": {
			"get": {
				"tags": [
					"tasks"
				],
				"summary": "Get task",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"tasks"
				],
				"summary": "Replace task",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"tasks"
				],
				"summary": "Delete task",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/tasks/mine": {
			"get": {
				"tags": [
					"tasks"
				],
				"summary": "Tasks assigned to the caller",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "status",
						"in": "query",
						"required": false
					}
				]
			}
		},
		"/api/tasks/{id}/status": {
			"patch": {
				"tags": [
					"tasks"
				],
				"summary": "Change task status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/api/projects/{id}/tasks": {
			"get": {
				"tags": [
					"tasks"
				],
				"summary": "Tasks of a project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/analytics/overview": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Dashboard summary and department overview",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/roles": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Role distribution",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/experience": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Experience level distribution",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/skills": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Skill distribution",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/work-preferences": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Work preference counts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/disliked-areas": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Disliked work area distribution",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/departments": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Department overview",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/history": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Stored stats snapshots",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/users-by-role/{role}": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Users holding a role",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "role",
						"in": "path",
						"required": true
					}
				],
				"description": "Admin only"
			}
		},
		"/api/analytics/export": {
			"get": {
				"tags": [
					"analytics"
				],
				"summary": "Download xlsx workbook",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Admin only"
			}
		},
		"/api/audit-logs": {
			"get": {
				"tags": [
					"audit"
				],
				"summary": "List audit logs",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "module",
						"in": "query",
						"required": false
					},
					{
						"type": "string",
						"name": "action",
						"in": "query",
						"required": false
					}
				],
				"description": "Admin only"
			}
		},
		"/api/ws": {
			"get": {
				"tags": [
					"realtime"
				],
				"summary": "Realtime activity feed (websocket)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "token",
						"in": "query",
						"required": true
					}
				]
			}
		},
		"/health": {
			"get": {
				"tags": [
					"system"
				],
				"summary": "Service health",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "VFX Studio Dashboard API",
	Description:      "Team, project and analytics backend for VFX studios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
