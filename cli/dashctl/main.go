package main

import (
	"os"

	dashctlcmder "github.com/weelink/dashctl/cmd/dashctl"
)

func main() {
	cmd := dashctlcmder.NewDashctlCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
