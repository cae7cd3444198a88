package main

import "github.com/churnlens/churn-api/apps/cli/commands"

func main() {
	commands.Execute()
}
