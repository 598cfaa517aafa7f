package main

import "github.com/nfrund/portal/cmd/portal-cli/cmd"

func main() {
	cmd.Execute()
}
