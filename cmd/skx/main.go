package main

import (
	"github.com/skillctx/skx/internal/cli"
	"github.com/skillctx/skx/internal/utils"
)

// main is the entry point for the skx command.
func main() {
	loggerInstance := utils.NewApplicationLogger()
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
