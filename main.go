package main

import "github.com/saadjs/caloriecam/cmd/caloriecam"

func main() {
	caloriecam.Execute()
}
