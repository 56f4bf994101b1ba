// cmd/main.go
package main

import (
	"go-blog-api/app"
)

// @title           Go-Blog API
// @version         1.0
// @description     A blogging platform API: users, posts, categories, and subcategories.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
