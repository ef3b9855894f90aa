package main

import (
	"github.com/arrowpeak/docfusiondb-bench/cmd"
)

func main() {
	cmd.Execute()
}
