package main

import "github.com/yigit/schooldirectory/internal/cli"

func main() {
	cli.Execute()
}
