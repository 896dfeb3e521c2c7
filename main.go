package main

import "github.com/hanneshbsrt/fehlmengen/cmd"

func main() {
	cmd.Execute()
}
