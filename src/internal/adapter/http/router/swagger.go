package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Bank Portal API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Bank Portal API",
    "version": "1.0.0"
  },
  "paths": {
    "/auth/login": {
      "post": {
        "summary": "Log in with username or email",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                  "username": {"type": "string", "description": "Username or email"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Access token issued"},
          "400": {"description": "Username/email and password are required"},
          "401": {"description": "Invalid credentials"}
        }
      }
    },
    "/auth/logout": {
      "post": {
        "summary": "Invalidate the current access token",
        "security": [{"TokenAuth": []}],
        "responses": {
          "200": {"description": "Logged out"},
          "401": {"description": "Authorization header missing"},
          "403": {"description": "Invalid or expired token"}
        }
      }
    },
    "/customer/dashboard": {
      "get": {
        "summary": "Account snapshot and transaction history",
        "security": [{"TokenAuth": []}],
        "responses": {
          "200": {"description": "Dashboard"},
          "403": {"description": "Access denied: Customer role required"},
          "404": {"description": "Account not found for this customer."}
        }
      }
    },
    "/customer/deposit": {
      "post": {
        "summary": "Deposit funds",
        "security": [{"TokenAuth": []}],
        "requestBody": {"$ref": "#/components/requestBodies/Amount"},
        "responses": {
          "200": {"description": "Deposit successful"},
          "400": {"description": "Invalid deposit amount."}
        }
      }
    },
    "/customer/withdraw": {
      "post": {
        "summary": "Withdraw funds",
        "security": [{"TokenAuth": []}],
        "requestBody": {"$ref": "#/components/requestBodies/Amount"},
        "responses": {
          "200": {"description": "Withdrawal successful"},
          "400": {"description": "Invalid withdrawal amount. or Insufficient Funds"}
        }
      }
    },
    "/customer/profile": {
      "put": {
        "summary": "Update own username, email or password",
        "security": [{"TokenAuth": []}],
        "requestBody": {"$ref": "#/components/requestBodies/UserUpdate"},
        "responses": {
          "200": {"description": "Profile updated"},
          "400": {"description": "Validation error"},
          "409": {"description": "Username or email already exists"}
        }
      }
    },
    "/banker/accounts": {
      "get": {
        "summary": "List customer accounts",
        "security": [{"TokenAuth": []}],
        "responses": {
          "200": {"description": "Customer accounts ordered by username"},
          "403": {"description": "Access denied: Banker role required"}
        }
      }
    },
    "/banker/accounts/{userId}/transactions": {
      "get": {
        "summary": "Customer account and transaction history",
        "security": [{"TokenAuth": []}],
        "parameters": [{"name": "userId", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Customer transactions"},
          "404": {"description": "Customer or account not found"}
        }
      }
    },
    "/banker/users/{userId}": {
      "put": {
        "summary": "Update any user's credentials",
        "security": [{"TokenAuth": []}],
        "parameters": [{"name": "userId", "in": "path", "required": true, "schema": {"type": "string"}}],
        "requestBody": {"$ref": "#/components/requestBodies/UserUpdate"},
        "responses": {
          "200": {"description": "User updated"},
          "400": {"description": "Validation error"},
          "404": {"description": "User not found."},
          "409": {"description": "Username or email already exists"}
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Liveness probe",
        "responses": {
          "200": {"description": "ok"}
        }
      }
    }
  },
  "components": {
    "requestBodies": {
      "Amount": {
        "required": true,
        "content": {
          "application/json": {
            "schema": {
              "type": "object",
              "required": ["amount"],
              "properties": {
                "amount": {"oneOf": [{"type": "number"}, {"type": "string"}]}
              }
            }
          }
        }
      },
      "UserUpdate": {
        "required": true,
        "content": {
          "application/json": {
            "schema": {
              "type": "object",
              "properties": {
                "username": {"type": "string", "minLength": 3},
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string", "minLength": 6}
              }
            }
          }
        }
      }
    },
    "securitySchemes": {
      "TokenAuth": {
        "type": "apiKey",
        "in": "header",
        "name": "Authorization"
      }
    }
  }
}`
