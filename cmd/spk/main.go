// Command spk resolves package dependency requests against one or more
// content-addressed repositories.
package main

import "avular-packages/internal/cli"

func main() {
	cli.Execute()
}
