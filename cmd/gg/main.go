// Command gg presents remote documentation sites as a local Markdown
// cache and hands the resolved files to a host command.
package main

import (
	cmd "github.com/rohmanhakim/docs-crawler/internal/cli"
)

func main() {
	cmd.Execute()
}
