package main

import (
	"log"

	"github.com/talentscout/screener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
