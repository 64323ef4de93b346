package main

import (
	_ "embed"

	"github.com/prompthub/prompt-hub-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
