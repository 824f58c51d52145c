package main

import (
	"os"

	"github.com/mahfuzanam/bloodlink/internal/server"
	"github.com/mahfuzanam/bloodlink/pkg/logger"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
