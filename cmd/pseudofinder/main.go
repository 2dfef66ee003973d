// cmd/pseudofinder/main.go
package main

import (
	"pseudofinder/internal/app"
	"pseudofinder/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
