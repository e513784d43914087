// @title           CareerHub API
// @version         1.0
// @description     API маркетплейса вакансий и стажировок.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "careerhub_backend/internal/app"

func main() {
	app.Run()
}
