package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/usecase"
	"github.com/posiumhq/posium-codegen/pkg/logg"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Interface struct {
	config   *config.Config
	logger   *zap.Logger
	usecase  *usecase.Service
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	stopping bool
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)

	return &Interface{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase:  params.Usecase,
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  sigChan,
		stopping: false,
	}
}

func (i *Interface) Start() error {
	i.printBanner()
	i.printHelp()

	signal.Notify(i.sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-i.sigChan
		fmt.Println("\n\nInterrupt received, stopping...")
		i.stopping = true
		i.Stop()
	}()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if i.stopping {
			break
		}

		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			continue
		}

		if err := i.handleCommand(input); err != nil {
			if err.Error() == "exit" {
				break
			}

			i.logger.Error("Command error", zap.Error(err))
			fmt.Printf("Error: %v\n", err)
		}
	}

	return nil
}

func (i *Interface) Stop() error {
	if i.stopping {
		return nil
	}

	i.stopping = true
	i.logger.Info("Stopping console interface...")

	i.cancel()

	fmt.Println("Goodbye!")
	os.Exit(0)

	return nil
}

func (i *Interface) handleCommand(input string) error {
	fields := strings.Fields(input)
	command := fields[0]
	args := fields[1:]

	switch command {
	case "help", "h":
		i.printHelp()

		return nil
	case "exit", "quit", "q":
		fmt.Println("Shutting down...")

		return fmt.Errorf("exit")
	case "open":
		if len(args) < 1 {
			return fmt.Errorf("usage: open <url>")
		}

		return i.usecase.Browser.Navigate(i.ctx, args[0])
	case "generate":
		if len(args) < 1 {
			return fmt.Errorf("usage: generate <plan.json> [out.spec.ts]")
		}

		return i.generate(args)
	case "raw":
		if len(args) < 1 {
			return fmt.Errorf("usage: raw <plan.json>")
		}

		return i.generateRaw(args[0])
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", command)
	}
}

func (i *Interface) generate(args []string) error {
	plan, err := i.usecase.Script.LoadPlan(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("\nGenerating script for plan %q (%d steps)...\n", plan.Name, len(plan.Steps))

	run, err := i.usecase.Script.GenerateScript(i.ctx, plan)
	if err != nil {
		return err
	}

	if len(args) > 1 {
		if err := os.WriteFile(args[1], []byte(run.Script), 0644); err != nil {
			return err
		}

		fmt.Printf("Wrote %s (%d steps, %d selectors resolved)\n", args[1], run.Steps, run.Resolved)

		return nil
	}

	fmt.Println()
	fmt.Println(run.Script)
	fmt.Printf("%d steps, %d selectors resolved\n", run.Steps, run.Resolved)

	return nil
}

func (i *Interface) generateRaw(path string) error {
	plan, err := i.usecase.Script.LoadPlan(path)
	if err != nil {
		return err
	}

	raw, err := i.usecase.Script.GenerateRaw(i.ctx, plan)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(raw)

	return nil
}

func (i *Interface) printBanner() {
	fmt.Println(`
posium-codegen - stable selector resolution & Playwright code generation`)
}

func (i *Interface) printHelp() {
	help := `
Available commands:
  open <url>                     - Navigate the live page used for selector resolution
  generate <plan.json> [out.ts]  - Emit a full Playwright test for a recorded plan
  raw <plan.json>                - Emit only the statement stream
  help, h                        - Show this help message
  exit, quit, q                  - Exit the application
`
	fmt.Println(help)
}
