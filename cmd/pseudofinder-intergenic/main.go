// cmd/pseudofinder-intergenic/main.go
package main

import (
	"pseudofinder/internal/appshell"
	"pseudofinder/internal/intergenicapp"
)

func main() { appshell.Main(intergenicapp.RunContext) }
