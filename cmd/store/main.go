package main

import (
	"os"

	"github.com/georgemunganga/printa-retail/internal/audit"
	"github.com/georgemunganga/printa-retail/internal/config"
	"github.com/georgemunganga/printa-retail/internal/console"
	"github.com/georgemunganga/printa-retail/internal/modules/store"
	"github.com/georgemunganga/printa-retail/internal/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "store",
		Usage: "interactive inventory and sales console",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "session user name"},
			&cli.StringFlag{Name: "role", Aliases: []string{"r"}, Usage: "session role (admin|customer)"},
			&cli.StringFlag{Name: "inventory-file", Usage: "inventory snapshot path (overrides INVENTORY_FILE)"},
			&cli.StringFlag{Name: "sales-file", Usage: "sales history snapshot path (overrides SALES_FILE)"},
			&cli.StringFlag{Name: "log-file", Usage: "audit log path (overrides LOG_FILE)"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("inventory-file") {
		cfg.InventoryFile = c.String("inventory-file")
	}
	if c.IsSet("sales-file") {
		cfg.SalesFile = c.String("sales-file")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	defer logFile.Close()

	auditLog := log.New()
	auditLog.SetOutput(logFile)
	auditLog.SetFormatter(audit.LineFormatter{})
	auditLog.SetLevel(cfg.Level())

	repos, err := storage.Open(c.Context, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	term := console.New(os.Stdin, os.Stdout)
	u, err := term.PromptUser(c.String("username"), c.String("role"))
	if err != nil {
		return err
	}

	s := store.New(u, store.Options{
		Sink:          audit.NewLogrusSink(auditLog),
		InventoryRepo: repos.Inventory,
		SalesRepo:     repos.Sales,
	})
	return term.Run(c.Context, s)
}
