package main

import (
	"fmt"
	"os"
)

func main() {
	cli := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := cli.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
