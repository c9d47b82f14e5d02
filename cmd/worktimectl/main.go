package main

import (
	"os"
	_ "time/tzdata"

	"github.com/cmlabs-hris/worktime-backend-go/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
