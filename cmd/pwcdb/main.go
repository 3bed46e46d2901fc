// Package main provides the pwcdb CLI application.
package main

import (
	"github.com/pwcdb/pwcdb/cmd"
)

func main() {
	cmd.Execute()
}
