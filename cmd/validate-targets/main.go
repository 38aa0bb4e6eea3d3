package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/webhook-scheduler/targets"
	"github.com/marcelsud/webhook-scheduler/webhook"
)

/* validate-targets - Standalone CLI tool to validate targets.yaml
 * Usage: go run cmd/validate-targets/main.go [targets.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	targetsFile := "targets.yaml"
	if len(os.Args) > 1 {
		targetsFile = os.Args[1]
	}

	fmt.Printf("Validating targets file: %s\n", targetsFile)
	fmt.Println(strings.Repeat("-", 50))

	// Seed with unconfigured targets so only the file is reported
	loader := targets.NewLoader(
		webhook.NewTarget(webhook.PrimaryTarget, "", "", 0, ""),
		webhook.NewTarget(webhook.SecondaryTarget, "", "", 0, ""),
	)
	if err := loader.Load(targetsFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ VALIDATION PASSED\n\n")
	for i, target := range loader.List() {
		fmt.Printf("%d. Target: %s\n", i+1, target.Name)
		if !target.Configured() {
			fmt.Printf("   URL:     (not configured, calls will be recorded as errors)\n\n")
			continue
		}
		fmt.Printf("   URL:     %s\n", target.URL)
		fmt.Printf("   Method:  %s\n", target.Method)
		fmt.Printf("   Timeout: %s\n", target.Timeout)
		fmt.Printf("   Signed:  %t\n\n", target.SigningSecret != "")
	}

	if !loader.Primary().Configured() {
		fmt.Fprintf(os.Stderr, "⚠ primary target has no URL\n")
	}
	os.Exit(0)
}
