package main

import "github.com/buildforge/gosdk/cmd/gosdk/internal"

func main() {
	internal.Execute()
}
