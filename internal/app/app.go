package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
	"github.com/vladislavdragonenkov/pizzeria/internal/service/orders"
	"github.com/vladislavdragonenkov/pizzeria/internal/version"
)

var (
	// ErrUsage — неверные аргументы командной строки.
	ErrUsage = errors.New("usage error")
	// ErrUnhealthy — команда health обнаружила неработающий компонент.
	ErrUnhealthy = errors.New("service is unhealthy")
)

const usageText = `usage: pizzeria <command> [flags]

commands:
  register -name NAME -size Small|Medium|Large [-toppings Ham,Pineapple,Mushrooms] [-quantity N]
  list
  load -name NAME
  delete -name NAME
  totals
  total -name NAME
  sales-today
  kitchen-feed [-group GROUP] [-from-beginning]
  health
  version
`

// ExitCode переводит ошибку Run в код завершения процесса.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}

// Run выполняет одну команду CLI. Результат печатается в stdout, справка в stderr.
func Run(ctx context.Context, cfg Config, args []string, stdout, stderr io.Writer) error {
	return run(ctx, cfg, args, stdout, stderr)
}

func run(ctx context.Context, cfg Config, args []string, stdout, stderr io.Writer, opts ...orders.Option) error {
	if len(args) == 0 {
		_, _ = io.WriteString(stderr, usageText)
		return fmt.Errorf("%w: command is required", ErrUsage)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "version":
		_, err := fmt.Fprintln(stdout, version.String())
		return err
	case "help", "-h", "-help", "--help":
		_, _ = io.WriteString(stdout, usageText)
		return nil
	}

	handler, ok := commands[command]
	if !ok {
		_, _ = io.WriteString(stderr, usageText)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}

	logger := log.WithFields(log.Fields{
		"component": "app",
		"command":   command,
	})

	deps, err := initRuntimeDependencies(ctx, cfg, logger, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := deps.close(); closeErr != nil {
			logger.WithError(closeErr).Warn("failed to close dependencies")
		}
	}()

	cmdErr := handler(ctx, deps, rest, stdout, stderr)

	if err := deps.flushMetrics(cfg.MetricsTextfile); err != nil {
		logger.WithError(err).Warn("failed to write metrics textfile")
	}
	return cmdErr
}

type commandFunc func(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error

var commands = map[string]commandFunc{
	"register":     runRegister,
	"list":         runList,
	"load":         runLoad,
	"delete":       runDelete,
	"totals":       runTotals,
	"total":        runTotal,
	"sales-today":  runSalesToday,
	"kitchen-feed": runKitchenFeed,
	"health":       runHealth,
}

// newFlagSet создаёт набор флагов команды, ошибки разбора которого становятся ErrUsage.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected arguments %v", ErrUsage, fs.Name(), fs.Args())
	}
	return nil
}

func runRegister(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("register", stderr)
	name := fs.String("name", "", "customer name")
	size := fs.String("size", "", "pizza size: Small|Medium|Large")
	toppings := fs.String("toppings", "", "comma-separated toppings: "+strings.Join(domain.ToppingCatalog(), ","))
	quantity := fs.Int("quantity", 1, fmt.Sprintf("number of pizzas (1..%d)", domain.MaxQuantity))
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	selected, err := parseToppings(*toppings)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	form := domain.NewOrderForm(*name)
	form.Size = domain.ParseSize(*size)
	form.ToppingFlags = domain.FlagsFromToppings(selected)
	form.Quantity = *quantity

	result, err := deps.service.Register(ctx, form)
	if err != nil {
		return err
	}
	return printRegistered(stdout, result)
}

func parseToppings(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var toppings []string
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		topping, err := domain.ParseTopping(part)
		if err != nil {
			return nil, err
		}
		toppings = append(toppings, topping)
	}
	return toppings, nil
}

func runList(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	if err := parseFlags(newFlagSet("list", stderr), args); err != nil {
		return err
	}
	orderList, err := deps.service.ListAll(ctx)
	if err != nil {
		return err
	}
	return printOrders(stdout, orderList)
}

func runLoad(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("load", stderr)
	name := fs.String("name", "", "customer name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("%w: load: -name is required", ErrUsage)
	}

	orderList, err := deps.service.ListAll(ctx)
	if err != nil {
		return err
	}
	form, found := deps.service.LoadIntoForm(*name, orderList)
	if !found {
		_, err := fmt.Fprintf(stdout, "no order for %s\n", *name)
		return err
	}
	return printForm(stdout, form)
}

func runDelete(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("delete", stderr)
	name := fs.String("name", "", "customer name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("%w: delete: -name is required", ErrUsage)
	}

	orderList, err := deps.service.ListAll(ctx)
	if err != nil {
		return err
	}
	remaining, removed, err := deps.service.Delete(ctx, *name, orderList)
	if err != nil {
		return err
	}
	if !removed {
		_, err := fmt.Fprintf(stdout, "no order for %s\n", *name)
		return err
	}
	_, err = fmt.Fprintf(stdout, "deleted first order for %s, %d left\n", *name, len(remaining))
	return err
}

func runTotals(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	if err := parseFlags(newFlagSet("totals", stderr), args); err != nil {
		return err
	}
	totals, err := deps.service.TotalsByName(ctx)
	if err != nil {
		return err
	}
	return printTotals(stdout, totals)
}

func runTotal(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("total", stderr)
	name := fs.String("name", "", "customer name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("%w: total: -name is required", ErrUsage)
	}

	total, err := deps.service.TotalForName(ctx, *name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\t%d\n", *name, total)
	return err
}

func runSalesToday(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	if err := parseFlags(newFlagSet("sales-today", stderr), args); err != nil {
		return err
	}
	total, err := deps.service.TotalSalesToday(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%d\n", total)
	return err
}

func runHealth(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	if err := parseFlags(newFlagSet("health", stderr), args); err != nil {
		return err
	}
	report := deps.health.Report(ctx)
	if err := report.WriteJSON(stdout); err != nil {
		return err
	}
	if !report.Healthy() {
		return ErrUnhealthy
	}
	return nil
}
