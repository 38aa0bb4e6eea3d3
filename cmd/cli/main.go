package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/marcelsud/webhook-scheduler/config"
	"github.com/marcelsud/webhook-scheduler/targets"
	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/marcelsud/webhook-scheduler/webhook/memory"
	"github.com/rs/zerolog"
)

/* cli - calls one target once and prints the recorded response
 * Usage: go run cmd/cli/main.go [primary|secondary]
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}

	loader := targets.NewLoader(cfg.PrimaryTarget(), cfg.SecondaryTarget())
	if cfg.TargetsFile != "" {
		if err := loader.Load(cfg.TargetsFile); err != nil {
			fmt.Println(err)
			return
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	repo := memory.NewRepository(1)
	s := webhook.NewService(repo, webhook.NewInvoker(repo, nil, nil, logger), loader.Primary(), loader.Secondary(), logger)

	ctx := context.Background()
	var response webhook.Response
	if len(os.Args) > 1 && os.Args[1] == webhook.SecondaryTarget {
		response = s.TriggerSecondary(ctx)
	} else {
		response = s.TriggerPrimary(ctx)
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out))
	if response.Failed() {
		os.Exit(1)
	}
}
