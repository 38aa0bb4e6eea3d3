package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/marcelsud/webhook-scheduler/webhook/signature"
)

/* generate-secret - prints a new whsec_ signing secret for a target
 * Usage: go run cmd/generate-secret/main.go [size-in-bytes]
 * Put the output in WEBHOOK_SIGNING_SECRET or a target's signing_secret
 */

func main() {
	size := 32
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid size %q: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		size = n
	}

	secret, err := signature.GenerateSecret(size)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(secret.String())
}
