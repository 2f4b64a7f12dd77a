// cmd/main.go
package main

import (
	"go-recruit-api/app"
)

// @title           Go-Recruit API
// @version         1.0
// @description     Real-time communication core for a recruitment platform.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
