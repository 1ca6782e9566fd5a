package main

import (
	"fmt"
	"os"

	"github.com/corvidlang/unboxlower/cmd/unboxlower/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
