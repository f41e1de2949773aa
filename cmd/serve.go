package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mahmoudkheyrati/cpu-scheduler/api"
)

// serveCmd exposes the scheduler over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := api.NewApp(api.NewSchedulerHandlerImpl(cfg))
		addr := fmt.Sprintf(":%d", cfg.Port)
		logrus.Infof("listening on %s", addr)
		return app.Listen(addr)
	},
}
