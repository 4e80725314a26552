package main

import (
	"context"
	"os"

	"harvest-market/internal/cli"
	"harvest-market/utils"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		utils.Error("harvest-market failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
