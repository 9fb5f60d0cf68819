package main

import "github.com/LeJamon/tokendex/internal/cli"

func main() {
	cli.Execute()
}
