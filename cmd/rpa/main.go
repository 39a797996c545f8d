// Command rpa packs directories into RPAK archives and unpacks them.
package main

import "github.com/meigma/rpa/cmd/rpa/cmd"

func main() {
	cmd.Execute()
}
