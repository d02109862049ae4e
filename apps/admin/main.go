package main

import (
	"context"
	"os"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/dashboard"
	"github.com/trezcool/marksheet/core/user"
	logsvc "github.com/trezcool/marksheet/services/logger"
	"github.com/trezcool/marksheet/storage/database"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(logsvc.NewConsoleLogger(os.Stderr, "admin", conf), conf)
	logger.Enable(false)

	// set up DB
	guard, err := database.OpenGuard(context.Background(), conf, logger)
	if err != nil {
		logger.Fatal("setting up database", err)
	}

	// start CLI
	cli := commandLine{
		usrSvc:  user.NewService(guard, logger),
		dashSvc: dashboard.NewService(guard),
		out:     os.Stdout,
	}
	err = cli.run(os.Args)
	if cErr := guard.Close(); cErr != nil {
		logger.Error("closing database", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
