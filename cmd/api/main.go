package main

import (
	"context"
	"log"

	"github.com/sh1m0r1an1n/seller-apis/internal/app"
)

func main() {
	r, auto, addr, err := app.Build()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	auto.Start(ctx)

	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
