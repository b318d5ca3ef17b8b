package main

import "github.com/theirongolddev/budgetflow/cmd"

func main() {
	cmd.Execute()
}
