package system

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Ebi50/training28-sub000/internal/api"
	"github.com/Ebi50/training28-sub000/internal/cli"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Defaults to the [server] addr in the config file."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	var pinger api.Pinger
	if s, ok := ctx.Store.(interface{ DB() *sql.DB }); ok && s.DB() != nil {
		pinger = s.DB()
	}

	gin.SetMode(gin.ReleaseMode)
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving the planning API on http://%s\n", addr)
	return api.New(ctx.Config.PlanningConfig(), pinger).ListenAndServe(sigCtx, addr)
}
