package main

import (
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/cli"
)

func main() {
	cli.Execute()
}
