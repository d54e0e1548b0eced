package main

import (
	"flag"
	"fmt"
	"os"

	"supermarket-checkout/pkg/pricing"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: checkout <items>")
		os.Exit(2)
	}

	market := pricing.NewDefaultSupermarket()
	fmt.Println(market.Checkout(flag.Arg(0)))
}
